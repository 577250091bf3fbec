package main

import "testing"

func buildProgram(t *testing.T, env *Environment, lines map[int]string) {
	t.Helper()
	for n, text := range lines {
		if err := env.store.upsert(n, text); err != nil {
			t.Fatalf("upsert(%d, %q): %v", n, text, err)
		}
	}
}

func TestRunGosubReturn(t *testing.T) {
	env := NewEnvironment()
	io, buf := newTestIO()

	buildProgram(t, env, map[int]string{
		10:  "LET A=0",
		20:  "GOSUB 100",
		30:  "PRINT A",
		40:  "END",
		100: "LET A=A+1",
		110: "RETURN",
	})

	if err := runProgram(env, io); err != nil {
		t.Fatalf("runProgram: %v", err)
	}
	if buf.String() != "1\n" {
		t.Fatalf("output = %q, want %q", buf.String(), "1\n")
	}
	if env.callDepth() != 0 {
		t.Fatalf("callDepth = %d, want 0 after matched GOSUB/RETURN", env.callDepth())
	}
}

// The loop runs while A<3 (A=1, A=2), then falls through once A=3: IF's
// false branch does nothing to pc, so the runloop auto-increments from
// line 20 to line 30 and PRINT 99 executes exactly once.
func TestRunIfGotoLoopFallsThroughToPrint99(t *testing.T) {
	env := NewEnvironment()
	io, buf := newTestIO()

	buildProgram(t, env, map[int]string{
		10: "LET A=1",
		20: "IF A<3 THEN 50",
		30: "PRINT 99",
		40: "END",
		50: "LET A=A+1",
		60: "GOTO 20",
	})

	if err := runProgram(env, io); err != nil {
		t.Fatalf("runProgram: %v", err)
	}
	if buf.String() != "99\n" {
		t.Fatalf("output = %q, want %q", buf.String(), "99\n")
	}
}

func TestRunHaltsOnRuntimeErrorAndReportsIt(t *testing.T) {
	env := NewEnvironment()
	io, buf := newTestIO()

	buildProgram(t, env, map[int]string{
		10: "PRINT 10/0",
		20: "PRINT 99",
	})

	if err := runProgram(env, io); err != nil {
		t.Fatalf("runProgram should absorb the BASIC error, got %v", err)
	}
	want := bel + "ERROR: DIVISION BY ZERO\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
	if env.running {
		t.Fatalf("running should be false after a halting error")
	}
}

func TestRunResetsVariablesAndCallStack(t *testing.T) {
	env := NewEnvironment()
	io, _ := newTestIO()
	env.setVar('A', 42)
	_ = env.pushCall(7)

	buildProgram(t, env, map[int]string{10: "END"})

	if err := runProgram(env, io); err != nil {
		t.Fatalf("runProgram: %v", err)
	}
	if v, _ := env.getVar('A'); v != 0 {
		t.Fatalf("A = %d after RUN, want 0 (reset at RUN start)", v)
	}
	if env.callDepth() != 0 {
		t.Fatalf("callDepth = %d after RUN, want 0", env.callDepth())
	}
}

func TestListReproducesStoredOrder(t *testing.T) {
	env := NewEnvironment()
	io, buf := newTestIO()

	buildProgram(t, env, map[int]string{
		10: "LET A=5",
		20: "LET B=A*2",
		30: "PRINT B",
	})

	if err := dispatch(t, env, io, "LIST"); err != nil {
		t.Fatalf("LIST: %v", err)
	}

	want := "10 LET A=5\n20 LET B=A*2\n30 PRINT B\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestEditorDeleteByRetypingLineNumber(t *testing.T) {
	env := NewEnvironment()

	buildProgram(t, env, map[int]string{
		10: "PRINT 1",
		20: "PRINT 2",
	})
	if env.store.count != 2 {
		t.Fatalf("count = %d, want 2", env.store.count)
	}

	if err := env.store.upsert(10, ""); err != nil {
		t.Fatalf("delete line 10: %v", err)
	}
	if env.store.count != 1 {
		t.Fatalf("count after delete = %d, want 1", env.store.count)
	}
	if line := env.store.lookup(10); line != nil {
		t.Fatalf("line 10 should be gone, got %+v", line)
	}
}

func TestNewClearsStoreAndVariables(t *testing.T) {
	env := NewEnvironment()
	io, _ := newTestIO()

	buildProgram(t, env, map[int]string{10: "PRINT 1"})
	env.setVar('A', 9)

	if err := dispatch(t, env, io, "NEW"); err != nil {
		t.Fatalf("NEW: %v", err)
	}
	if env.store.count != 0 {
		t.Fatalf("count = %d after NEW, want 0", env.store.count)
	}
	if v, _ := env.getVar('A'); v != 0 {
		t.Fatalf("A = %d after NEW, want 0", v)
	}
}
