package uthread

import "testing"

func TestTCB_ArmAndRelease(t *testing.T) {
	tc := newTCB(7)
	if tc.info.state != Unused {
		t.Fatalf("fresh tcb state = %v, want Unused", tc.info.state)
	}

	entryCalled := false
	tc.arm(func() { entryCalled = true })

	if tc.info.state != Ready {
		t.Fatalf("armed tcb state = %v, want Ready", tc.info.state)
	}
	if tc.quantums != 0 {
		t.Fatalf("armed tcb quantums = %d, want 0", tc.quantums)
	}
	if tc.baton == nil || cap(tc.baton) != 1 {
		t.Fatal("armed tcb must have a capacity-1 baton channel")
	}
	if tc.done == nil {
		t.Fatal("armed tcb must have a done channel")
	}

	tc.entry()
	if !entryCalled {
		t.Fatal("entry closure was not preserved by arm")
	}

	tc.release()
	if tc.info.state != Unused {
		t.Fatalf("released tcb state = %v, want Unused", tc.info.state)
	}
	if tc.entry != nil || tc.baton != nil || tc.done != nil {
		t.Fatal("release must drop entry/baton/done references")
	}
}
