package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danswartzendruber/liner"
	"golang.org/x/term"
)

//
// REPL frontend: reads one line, classifies it as a stored-line edit or
// an immediate statement, and invokes the program store or the
// dispatcher accordingly. Grounded on utils.go's setupLiner/readLine/
// cleanupLiner trio, collapsed to a single liner instance -- IB Core's
// only blocking read points are the REPL prompt and INPUT, both of which
// this one instance backs (spec.md S5), unlike the teacher's separate
// parser/input instances.
//

// Repl owns the line source (interactive liner, or a plain scanner when
// stdin isn't a terminal -- e.g. piped test input) and the shared
// IOAdapters every dispatch call writes through.
type Repl struct {
	env         *Environment
	io          *IOAdapters
	interactive bool
	lineState   *liner.State
	scanner     *bufio.Scanner
}

// NewRepl builds the frontend, deciding between the liner-backed
// interactive reader and a bufio.Scanner fallback by checking whether
// stdin is a terminal (golang.org/x/term, grounded on the teacher's own
// checkTerminal/setupWindow use of the same package).
func NewRepl(env *Environment, out io.Writer) *Repl {
	r := &Repl{env: env}

	r.interactive = term.IsTerminal(int(os.Stdin.Fd()))

	if r.interactive {
		r.lineState = liner.NewLiner()
		r.lineState.SetMultiLineMode(false)
	} else {
		r.scanner = bufio.NewScanner(os.Stdin)
	}

	r.io = &IOAdapters{out: out, readLine: r.readLine}
	return r
}

// Close restores terminal state, mirroring cleanupLiner's "must be
// called even on error paths" discipline.
func (r *Repl) Close() {
	if r.lineState != nil {
		r.lineState.Close()
		r.lineState = nil
	}
}

func (r *Repl) readLine(prompt string) (string, bool) {
	if r.lineState != nil {
		s, err := r.lineState.Prompt(prompt)
		if err != nil {
			return "", true
		}
		r.lineState.AppendHistory(s)
		return s, false
	}

	if prompt != "" {
		fmt.Fprint(r.io.out, prompt)
	}

	if !r.scanner.Scan() {
		return "", true
	}
	return r.scanner.Text(), false
}

// Run drives the Read-classify-store/dispatch loop until end-of-input or
// QUIT/EXIT, at which point the process exits with status 0 (spec.md S4.8,
// S6).
func (r *Repl) Run() {
	for {
		line, eof := r.readLine(r.promptText())
		if eof {
			r.Close()
			os.Exit(0)
		}

		line = strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			fmt.Fprintln(r.io.out, readyPrompt)
			continue
		}

		if n, text, ok := parseLeadingLineNumber(line); ok {
			r.storeLine(n, text)
			continue
		}

		r.dispatchDirect(line)
	}
}

func (r *Repl) promptText() string {
	if r.interactive {
		return replPrompt
	}
	return ""
}

func (r *Repl) storeLine(n int, text string) {
	existed := r.env.store.lookup(n) != nil
	if err := r.env.store.upsert(n, text); err != nil {
		reportError(r.io, err)
		fmt.Fprintln(r.io.out, readyPrompt)
		return
	}
	if r.env.debug {
		action := "inserting"
		if existed {
			action = "replacing"
			if strings.TrimSpace(text) == "" {
				action = "deleting"
			}
		}
		fmt.Fprintf(r.io.out, "[DEBUG] %s line %d\n", action, n)
	}
	fmt.Fprintln(r.io.out, readyPrompt)
}

func (r *Repl) dispatchDirect(line string) {
	cur := NewCursor(line)
	err := dispatchStatement(cur, r.env, r.io)

	if err != nil {
		if errors.Is(err, errQuit) {
			r.Close()
			os.Exit(0)
		}
		reportError(r.io, err)
		fmt.Fprintln(r.io.out, readyPrompt)
		return
	}

	fmt.Fprintln(r.io.out, okPrompt)
	fmt.Fprintln(r.io.out, readyPrompt)
}
