package main

import "testing"

func TestReplDirectModeOKReady(t *testing.T) {
	env := NewEnvironment()
	ioAdapters, buf := newTestIO()
	r := &Repl{env: env, io: ioAdapters}

	r.dispatchDirect("PRINT 3+4*5")
	r.dispatchDirect("PRINT 3+(4*5)")

	want := "35\nOK\nREADY\n23\nOK\nREADY\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestReplDirectModeErrorSkipsOK(t *testing.T) {
	env := NewEnvironment()
	ioAdapters, buf := newTestIO()
	r := &Repl{env: env, io: ioAdapters}

	r.dispatchDirect("PRINT 10/0")

	want := bel + "ERROR: DIVISION BY ZERO\n" + "READY\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestReplStoreLineEditing(t *testing.T) {
	env := NewEnvironment()
	ioAdapters, _ := newTestIO()
	r := &Repl{env: env, io: ioAdapters}

	r.storeLine(10, "PRINT 1")
	r.storeLine(20, "PRINT 2")
	if env.store.count != 2 {
		t.Fatalf("count = %d, want 2", env.store.count)
	}

	r.storeLine(10, "")
	if env.store.count != 1 {
		t.Fatalf("count after delete = %d, want 1", env.store.count)
	}
}

func TestReplStoreLineErrorStillPrintsReady(t *testing.T) {
	env := NewEnvironment()
	ioAdapters, buf := newTestIO()
	r := &Repl{env: env, io: ioAdapters}

	r.storeLine(70000, "PRINT 1")

	want := bel + "ERROR: " + eInvalidLineNumber + "\n" + "READY\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}
