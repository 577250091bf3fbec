package main

import (
	"errors"
	"fmt"
)

//
// Execution loop: the RUN procedure from spec.md S4.7. Grounded on the
// debug-trace call sites of original_source/ib.c's run_program, and on
// rob05c-vvm's cu.go ControlUnit.Run for the snapshot-then-compare
// program-counter pattern (pc := cu.ProgramCounter before Execute, so the
// driver can tell whether the instruction itself moved the counter).
//

// runProgram resets run state, then steps the program counter across the
// sorted store until running clears or the counter runs off the end.
// Returns errQuit if a QUIT/EXIT fired during the run (which must
// terminate the whole process, not just this loop); any other BASIC
// error is reported and absorbed here, per spec.md S7 ("an error
// reported inside an executing program sets running = false").
func runProgram(env *Environment, io *IOAdapters) error {
	env.resetRunState()
	env.running = true

	if env.debug {
		fmt.Fprintln(io.out, "[DEBUG] --- RUNNING PROGRAM ---")
	}

	for env.running && env.pc < env.store.count {
		prevPC := env.pc

		line := env.store.atIndex(env.pc)
		if line == nil {
			break
		}

		if env.debug {
			fmt.Fprintf(io.out, "[DEBUG] running line %d: %s\n", line.lineNumber, line.text)
		}

		cur := NewCursor(line.text)
		if err := dispatchStatement(cur, env, io); err != nil {
			if errors.Is(err, errQuit) {
				env.running = false
				return errQuit
			}
			reportError(io, err)
			if env.debug {
				fmt.Fprintln(io.out, "[DEBUG] halting program due to error.")
			}
			env.running = false
			break
		}

		if env.running && env.pc == prevPC {
			env.pc++
		}
	}

	env.running = false

	if env.debug {
		fmt.Fprintln(io.out, "[DEBUG] --- PROGRAM ENDED ---")
	}

	return nil
}

// reportError sounds the bell and prints "ERROR: <MESSAGE>", per spec.md
// S6/S7. Shared between program-mode (runProgram) and direct-mode
// (repl.go) error handling so both report identically.
func reportError(io *IOAdapters, err error) {
	io.beep()
	fmt.Fprintf(io.out, "ERROR: %s\n", err.Error())
}
