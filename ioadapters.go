package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

//
// External I/O adapters: console output, the LPRINT append-file, program
// SAVE/LOAD, and the bell.  Grounded on utils.go's openFileFull/file
// conventions, simplified to the one fixed-name append file and the flat
// text program-file format spec.md S6 specifies -- no record files, no
// multiple open channels.
//

// IOAdapters bundles the narrow external-collaborator interfaces spec.md
// S1 calls out of scope for the core: console out, and a pluggable
// input-line reader so the REPL can back it with liner (interactive) or
// a plain scanner (piped/batch), per SPEC_FULL.md S B.
type IOAdapters struct {
	out      io.Writer
	readLine func(prompt string) (line string, eof bool)
}

func (a *IOAdapters) beep() {
	fmt.Fprint(a.out, bel)
}

func (a *IOAdapters) println(v Value) {
	fmt.Fprintln(a.out, v)
}

func (a *IOAdapters) printString(s string) {
	fmt.Fprintln(a.out, s)
}

// lprint appends one integer value, followed by a newline, to the fixed
// lprintFilename, opening it fresh for every call (spec.md S6: "opened in
// append mode for each LPRINT statement").
func (a *IOAdapters) lprint(v Value) error {
	f, err := os.OpenFile(lprintFilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return newError(eCannotOpenLprintFile)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, v); err != nil {
		return newError(eCannotOpenLprintFile)
	}
	return nil
}

// saveProgram writes the store's listing to filename, one "<n> <text>"
// line per record, LF-terminated, ascending by line number (spec.md S6
// Program file format).
func saveProgram(store *ProgramStore, filename string) error {
	if strings.TrimSpace(filename) == "" {
		return newError(eFilenameRequired)
	}

	f, err := os.Create(filename)
	if err != nil {
		return newError(eCannotOpenFile)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var writeErr error
	store.iterateAscending(func(line *ProgramLine) bool {
		_, writeErr = fmt.Fprintf(w, "%d %s\n", line.lineNumber, line.text)
		return writeErr == nil
	})
	if writeErr != nil {
		return newError(eCannotOpenFile)
	}
	if err := w.Flush(); err != nil {
		return newError(eCannotOpenFile)
	}
	return nil
}

// loadProgram clears store, then reads filename line by line as if each
// had been typed into the editor (spec.md S6: "reads each file line as
// if the user typed it into the editor"). LF and CRLF line endings are
// both accepted, per spec.md S6.
func loadProgram(store *ProgramStore, filename string) error {
	if strings.TrimSpace(filename) == "" {
		return newError(eFilenameRequired)
	}

	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return newError(eFileNotFound)
		}
		return newError(eCannotOpenFile)
	}
	defer f.Close()

	store.clear()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := strings.TrimRight(scanner.Text(), "\r")
		n, text, ok := parseLeadingLineNumber(raw)
		if !ok {
			continue
		}
		// Errors here (e.g. a line number out of range in the saved
		// file) are silently skipped rather than aborting the whole
		// load: the file format has no way to report a per-line error
		// back to the user once LOAD has already cleared the store.
		_ = store.upsert(n, text)
	}
	if err := scanner.Err(); err != nil {
		return newError(eCannotOpenFile)
	}
	return nil
}
