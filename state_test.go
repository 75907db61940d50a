package uthread

import "testing"

func TestStateInfo_Constructors(t *testing.T) {
	cases := []struct {
		name string
		info stateInfo
		want ThreadState
	}{
		{"unused", unusedState(), Unused},
		{"ready", readyState(), Ready},
		{"running", runningState(), Running},
		{"blocked", blockedState(42), Blocked},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.info.state != c.want {
				t.Fatalf("state = %v, want %v", c.info.state, c.want)
			}
		})
	}
}

func TestStateInfo_Sleeping(t *testing.T) {
	if (stateInfo{}).sleeping() {
		t.Fatal("zero-value stateInfo must not report sleeping")
	}
	if blockedState(0).sleeping() {
		t.Fatal("an explicit block (sleepUntil == 0) must not report sleeping")
	}
	if !blockedState(5).sleeping() {
		t.Fatal("a timed sleep (sleepUntil > 0) must report sleeping")
	}
	if readyState().sleeping() {
		t.Fatal("a Ready thread can never be sleeping")
	}
}

func TestThreadState_String(t *testing.T) {
	cases := map[ThreadState]string{
		Unused:            "UNUSED",
		Ready:             "READY",
		Running:           "RUNNING",
		Blocked:           "BLOCKED",
		ThreadState(1000): "UNKNOWN",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("ThreadState(%d).String() = %q, want %q", state, got, want)
		}
	}
}
