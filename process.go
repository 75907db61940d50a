package uthread

import "os"

// exitProcess ends the process the same way the reference does when the
// main thread, or the last runnable thread, terminates: there is nothing
// left for the single kernel thread to return control to. Pulled out as a
// function (rather than inlined os.Exit(0) calls) so tests can replace it
// with a stub instead of actually killing the test binary.
var exitProcess = func() { os.Exit(0) }
