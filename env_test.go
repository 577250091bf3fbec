package main

import "testing"

func TestVariablesDefaultZeroAndPersist(t *testing.T) {
	env := NewEnvironment()

	if v, ok := env.getVar('A'); !ok || v != 0 {
		t.Fatalf("getVar(A) = (%d, %v), want (0, true)", v, ok)
	}

	env.setVar('A', 42)
	if v, _ := env.getVar('A'); v != 42 {
		t.Fatalf("getVar(A) after set = %d, want 42", v)
	}

	if _, ok := env.getVar('a'); ok {
		t.Fatalf("getVar should reject lowercase letters")
	}
	if _, ok := env.getVar('1'); ok {
		t.Fatalf("getVar should reject non-letters")
	}
}

func TestResetRunStateZeroesEverything(t *testing.T) {
	env := NewEnvironment()
	env.setVar('A', 9)
	env.pc = 5
	env.running = true
	_ = env.pushCall(3)

	env.resetRunState()

	if v, _ := env.getVar('A'); v != 0 {
		t.Fatalf("A = %d after reset, want 0", v)
	}
	if env.pc != 0 {
		t.Fatalf("pc = %d after reset, want 0", env.pc)
	}
	if env.running {
		t.Fatalf("running should be false after reset")
	}
	if env.callDepth() != 0 {
		t.Fatalf("callDepth = %d after reset, want 0", env.callDepth())
	}
}

func TestCallStackBoundedDepth(t *testing.T) {
	env := NewEnvironment()

	for i := 0; i < callStackMax; i++ {
		if err := env.pushCall(i); err != nil {
			t.Fatalf("pushCall(%d): %v", i, err)
		}
	}
	assertBasicError(t, env.pushCall(999), eGosubStackOverflow)

	for i := callStackMax - 1; i >= 0; i-- {
		idx, err := env.popCall()
		if err != nil {
			t.Fatalf("popCall: %v", err)
		}
		if idx != i {
			t.Fatalf("popCall() = %d, want %d (LIFO order)", idx, i)
		}
	}
	assertBasicError(t, func() error { _, err := env.popCall(); return err }(), eReturnWithoutGosub)
}
