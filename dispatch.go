package main

import (
	"errors"
	"fmt"
	"strings"
)

//
// Statement dispatcher: maps a case-insensitive leading keyword to a
// handler.  Grounded in shape on execute.go's per-statement handler
// functions and switch-style dispatch, collapsed to the closed keyword
// table spec.md S4.6 specifies (no DEC BASIC-PLUS grammar, no PRINT
// zones, no file channels).
//

// errQuit is the sentinel QUIT/EXIT return to signal "terminate the
// process now", distinct from an ordinary basicError: it must propagate
// all the way out of a running program's execution loop, not just abort
// the current statement (spec.md S4.6, S6 exit codes).
var errQuit = errors.New("quit")

// Handler consumes the remainder of a statement's line via cur, given
// the environment and external I/O.
type Handler func(cur *Cursor, env *Environment, io *IOAdapters) error

// dispatchTable is populated in init() rather than via a direct map
// literal initializer: handleIf calls dispatchStatement, which looks up
// dispatchTable, so a literal initializer here would create a package
// initialization cycle (dispatchTable -> handleIf -> dispatchStatement
// -> dispatchTable).
var dispatchTable map[string]Handler

func init() {
	dispatchTable = map[string]Handler{
		"PRINT":  handlePrint,
		"LPRINT": handleLPrint,
		"LET":    handleLet,
		"INPUT":  handleInput,
		"GOTO":   handleGoto,
		"GOSUB":  handleGosub,
		"RETURN": handleReturn,
		"IF":     handleIf,
		"REM":    handleRem,
		"END":    handleEnd,
		"STOP":   handleEnd, // spec.md S9: STOP is a plain alias for END
		"BEEP":   handleBeep,
		"RUN":    handleRun,
		"LIST":   handleList,
		"NEW":    handleNew,
		"SAVE":   handleSave,
		"LOAD":   handleLoad,
		"SYSTEM": handleSystem,
		"QUIT":   handleQuit,
		"EXIT":   handleQuit,
	}
}

// dispatchStatement reads one keyword from the cursor and runs its
// handler. A blank keyword (nothing but whitespace on the line) is a
// no-op; an unrecognized keyword is UNKNOWN COMMAND; a `$...` keyword
// always falls through to the module hook (spec.md S4.6).
func dispatchStatement(cur *Cursor, env *Environment, io *IOAdapters) error {
	cur.skipWS()
	if cur.atEnd() {
		return nil
	}

	keyword := cur.readKeyword()
	cur.skipWS()

	if keyword == "" {
		return nil
	}

	if env.debug {
		fmt.Fprintf(io.out, "[DEBUG] dispatch %s args=%q\n", keyword, cur.rest())
	}

	if strings.HasPrefix(keyword, "$") {
		return invokeModuleHook(keyword, cur, env, io)
	}

	handler, ok := dispatchTable[keyword]
	if !ok {
		return newError(eUnknownCommand)
	}
	return handler(cur, env, io)
}

func handlePrint(cur *Cursor, env *Environment, io *IOAdapters) error {
	cur.skipWS()

	if cur.atEnd() {
		io.println(0)
		return nil
	}

	if cur.peek() == '"' {
		cur.advance()
		start := cur.pos
		for {
			ch := cur.peek()
			if ch == eol {
				return newError(eUnterminatedString)
			}
			if ch == '"' {
				break
			}
			cur.advance()
		}
		s := cur.line[start:cur.pos]
		cur.advance() // closing quote
		io.printString(s)
		return nil
	}

	v, err := evalExpression(cur, env)
	if err != nil {
		return err
	}
	io.println(v)
	return nil
}

func handleLPrint(cur *Cursor, env *Environment, io *IOAdapters) error {
	cur.skipWS()

	if cur.atEnd() {
		return io.lprint(0)
	}

	v, err := evalExpression(cur, env)
	if err != nil {
		return err
	}
	return io.lprint(v)
}

func handleLet(cur *Cursor, env *Environment, io *IOAdapters) error {
	cur.skipWS()

	letter, ok := cur.readIdentifierChar()
	if !ok {
		return newError(eExpectedVarForLet)
	}

	cur.skipWS()
	if cur.peek() != '=' {
		return newError(eExpectedEqualsInLet)
	}
	cur.advance()

	v, err := evalExpression(cur, env)
	if err != nil {
		return err
	}

	env.setVar(letter, v)
	return nil
}

func handleInput(cur *Cursor, env *Environment, io *IOAdapters) error {
	cur.skipWS()

	letter, ok := cur.readIdentifierChar()
	if !ok {
		return newError(eExpectedVarForInput)
	}

	line, eof := io.readLine(immediatePrompt)
	if eof {
		env.running = false
		return nil
	}

	env.setVar(letter, parseInputValue(line))
	return nil
}

// parseInputValue parses one decimal integer (optionally signed) from an
// INPUT line, truncating to 8 bits; unparseable input yields 0. Spec.md
// S4.6 only specifies the success path ("parses as decimal, truncates to
// 8-bit, stores"); this mirrors readInteger's tolerance for out-of-range
// magnitudes rather than rejecting the line outright.
func parseInputValue(line string) Value {
	c := NewCursor(strings.TrimSpace(line))
	v, err := readInteger(c)
	if err != nil {
		return 0
	}
	return v
}

func handleGoto(cur *Cursor, env *Environment, io *IOAdapters) error {
	n, err := readLineNumberLiteral(cur)
	if err != nil {
		return err
	}
	return gotoLine(n, env, io)
}

func gotoLine(n int, env *Environment, io *IOAdapters) error {
	idx := env.store.indexOfLineNumber(n)
	if idx < 0 {
		return newError(eLineNotFound)
	}
	if env.debug {
		fmt.Fprintf(io.out, "[DEBUG] GOTO: jumping to line %d (index %d)\n", n, idx)
	}
	env.pc = idx
	return nil
}

func handleGosub(cur *Cursor, env *Environment, io *IOAdapters) error {
	n, err := readLineNumberLiteral(cur)
	if err != nil {
		return err
	}

	returnIdx := env.pc + 1
	if err := env.pushCall(returnIdx); err != nil {
		return err
	}
	if env.debug {
		fmt.Fprintf(io.out, "[DEBUG] GOSUB: pushing return index %d, depth now %d\n", returnIdx, env.callDepth())
	}

	if err := gotoLine(n, env, io); err != nil {
		return err
	}
	return nil
}

func handleReturn(cur *Cursor, env *Environment, io *IOAdapters) error {
	idx, err := env.popCall()
	if err != nil {
		return err
	}
	if env.debug {
		fmt.Fprintf(io.out, "[DEBUG] RETURN: popping index %d, depth now %d\n", idx, env.callDepth())
	}
	env.pc = idx
	return nil
}

// handleIf implements spec.md S4.6's IF state machine: expect_lhs,
// expect_op, expect_rhs, expect_then, dispatch_tail. It is re-entrant on
// the cursor, so a THEN tail that is itself an IF recurses naturally.
func handleIf(cur *Cursor, env *Environment, io *IOAdapters) error {
	lhs, err := evalExpression(cur, env)
	if err != nil {
		return err
	}

	cur.skipWS()
	op, err := readRelop(cur)
	if err != nil {
		return err
	}

	rhs, err := evalExpression(cur, env)
	if err != nil {
		return err
	}

	cur.skipWS()
	if !cur.matchKeyword("THEN") {
		return newError(eExpectedThenInIf)
	}
	cur.skipWS()

	if env.debug {
		fmt.Fprintf(io.out, "[DEBUG] IF: %d %s %d -> %v\n", lhs, op, rhs, compareValues(lhs, op, rhs))
	}

	if !compareValues(lhs, op, rhs) {
		return nil
	}

	if isDigit(cur.peek()) {
		n, err := readLineNumberLiteral(cur)
		if err != nil {
			return err
		}
		return gotoLine(n, env, io)
	}

	return dispatchStatement(cur, env, io)
}

// readRelop reads one of `=`, `<>`, `<`, `>` (spec.md S4.6).
func readRelop(cur *Cursor) (string, error) {
	switch cur.peek() {
	case '=':
		cur.advance()
		return "=", nil
	case '<':
		cur.advance()
		if cur.peek() == '>' {
			cur.advance()
			return "<>", nil
		}
		return "<", nil
	case '>':
		cur.advance()
		return ">", nil
	default:
		return "", newError(eExpectedOpInIf)
	}
}

func compareValues(lhs Value, op string, rhs Value) bool {
	switch op {
	case "=":
		return lhs == rhs
	case "<>":
		return lhs != rhs
	case "<":
		return lhs < rhs
	case ">":
		return lhs > rhs
	default:
		return false
	}
}

func handleRem(cur *Cursor, env *Environment, io *IOAdapters) error {
	// Remainder of the line is discarded; nothing left to consume.
	cur.pos = len(cur.line)
	return nil
}

func handleEnd(cur *Cursor, env *Environment, io *IOAdapters) error {
	env.running = false
	return nil
}

func handleBeep(cur *Cursor, env *Environment, io *IOAdapters) error {
	io.beep()
	return nil
}

func handleRun(cur *Cursor, env *Environment, io *IOAdapters) error {
	if env.running {
		return newError(eCantRunInProgram)
	}
	return runProgram(env, io)
}

func handleList(cur *Cursor, env *Environment, io *IOAdapters) error {
	if env.running {
		return newError(eCantListInProgram)
	}
	env.store.iterateAscending(func(line *ProgramLine) bool {
		fmt.Fprintf(io.out, "%d %s\n", line.lineNumber, line.text)
		return true
	})
	return nil
}

func handleNew(cur *Cursor, env *Environment, io *IOAdapters) error {
	if env.running {
		return newError(eCantNewInProgram)
	}
	env.store.clear()
	env.resetRunState()
	return nil
}

func handleSave(cur *Cursor, env *Environment, io *IOAdapters) error {
	if env.running {
		return newError(eCantSaveInProgram)
	}
	filename := strings.TrimSpace(cur.rest())
	cur.pos = len(cur.line)
	return saveProgram(env.store, filename)
}

func handleLoad(cur *Cursor, env *Environment, io *IOAdapters) error {
	if env.running {
		return newError(eCantLoadInProgram)
	}
	filename := strings.TrimSpace(cur.rest())
	cur.pos = len(cur.line)
	return loadProgram(env.store, filename)
}

func handleSystem(cur *Cursor, env *Environment, io *IOAdapters) error {
	return invokeModuleHook("SYSTEM", cur, env, io)
}

func handleQuit(cur *Cursor, env *Environment, io *IOAdapters) error {
	env.running = false
	return errQuit
}
