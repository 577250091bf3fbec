package main

import (
	"strconv"
	"strings"

	"github.com/danswartzendruber/avl"
)

//
// ProgramStore: the sorted, content-addressed program line store, keyed
// by line number.  Grounded on stmt.go's stmtAvlTree* wrapper family over
// g.program *avl.AvlNode, repurposed here from *stmtNode to *ProgramLine.
// The wrapper shape (hide the AVL interface behind named operations) is
// kept verbatim; only the payload and the keyword lookup direction
// changed.
//

// ProgramLine is one (line_number, text) record in the program store.
// Spec.md S3: line_number in [1, 65535], text excludes the stored prefix
// and is bounded to maxLineTextLen characters.
type ProgramLine struct {
	avl        avl.AvlNode
	lineNumber int
	text       string
}

// ProgramStore owns the AVL root and the current record count.  Count is
// tracked separately since AvlNode does not expose a size.
type ProgramStore struct {
	root  *avl.AvlNode
	count int
}

func NewProgramStore() *ProgramStore {
	return &ProgramStore{root: nil}
}

func cmpLineNumberKey(key any, node any) int {
	return cmpLineNumbers(key.(int), node.(*ProgramLine).lineNumber)
}

func cmpLineNumberNode(node1, node2 any) int {
	return cmpLineNumbers(node1.(*ProgramLine).lineNumber, node2.(*ProgramLine).lineNumber)
}

func cmpLineNumbers(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// lookup returns the record for line n, or nil if absent.  Spec.md S4.4:
// lookup(n) -> index | not-found; the AVL tree makes this a direct keyed
// lookup rather than the short-circuiting linear scan spec.md describes
// for an array-backed store — same observable contract, O(log n) instead
// of the spec's O(n) worst case.
func (s *ProgramStore) lookup(n int) *ProgramLine {
	p := avl.AvlTreeLookup(s.root, n, cmpLineNumberKey)
	if p == nil {
		return nil
	}
	return p.(*ProgramLine)
}

// upsert implements spec.md S4.4's editor contract: empty text (after
// trimming) deletes; existing line number replaces text in place; new
// line number inserts in sorted position (free, since the AVL tree keeps
// its own order).
func (s *ProgramStore) upsert(n int, text string) error {
	if n < 1 || n > maxLineNumber {
		return newError(eInvalidLineNumber)
	}

	trimmed := strings.TrimSpace(text)

	if existing := s.lookup(n); existing != nil {
		if trimmed == "" {
			s.remove(existing)
			return nil
		}
		existing.text = truncateLineText(text)
		return nil
	}

	if trimmed == "" {
		// No such line; deleting an absent line is a no-op.
		return nil
	}

	if s.count >= maxProgramLines {
		return newError(eProgramMemoryFull)
	}

	line := &ProgramLine{lineNumber: n, text: truncateLineText(text)}
	if p := avl.AvlTreeInsert(&s.root, &line.avl, line, cmpLineNumberNode); p != nil {
		// Can't happen: lookup above already proved n is absent.
		return newErrorf("line %d already in store", n)
	}
	s.count++
	return nil
}

func (s *ProgramStore) remove(line *ProgramLine) {
	avl.AvlTreeRemove(&s.root, &line.avl)
	s.count--
}

func (s *ProgramStore) clear() {
	s.root = nil
	s.count = 0
}

// iterateAscending calls fn for every stored line in ascending line-number
// order, stopping early if fn returns false.  Used by LIST, SAVE and RUN.
func (s *ProgramStore) iterateAscending(fn func(*ProgramLine) bool) {
	p := avl.AvlTreeFirstInOrder(s.root)
	for p != nil {
		line := p.(*ProgramLine)
		if !fn(line) {
			return
		}
		p = avl.AvlTreeNextInOrder(&line.avl)
	}
}

// atIndex and indexOf let the execution loop (runloop.go) address lines
// by store index, per spec.md's program_counter being an index rather
// than a line number (spec.md S3 ExecutionState, S4.7).  Built on top of
// iterateAscending since the AVL tree itself is keyed by line number, not
// position.
func (s *ProgramStore) atIndex(idx int) *ProgramLine {
	if idx < 0 || idx >= s.count {
		return nil
	}
	var found *ProgramLine
	i := 0
	s.iterateAscending(func(line *ProgramLine) bool {
		if i == idx {
			found = line
			return false
		}
		i++
		return true
	})
	return found
}

// indexOfLineNumber returns the store index of line number n, or -1 if
// absent.
func (s *ProgramStore) indexOfLineNumber(n int) int {
	idx := -1
	i := 0
	s.iterateAscending(func(line *ProgramLine) bool {
		if line.lineNumber == n {
			idx = i
			return false
		}
		i++
		return true
	})
	return idx
}

// parseLeadingLineNumber classifies one raw REPL/LOAD input line: if it
// starts (after leading whitespace) with a decimal integer, returns that
// number and the trimmed remainder as editor text; otherwise ok is false
// and the line is not a stored-line edit. Shared by the REPL frontend
// (repl.go) and LOAD (ioadapters.go), per spec.md S4.8 and S6.
func parseLeadingLineNumber(raw string) (n int, text string, ok bool) {
	cur := NewCursor(raw)
	cur.skipWS()
	if !isDigit(cur.peek()) {
		return 0, "", false
	}
	start := cur.pos
	for isDigit(cur.peek()) {
		cur.advance()
	}
	num, err := strconv.Atoi(cur.line[start:cur.pos])
	if err != nil {
		return 0, "", false
	}
	cur.skipWS()
	return num, cur.rest(), true
}

func truncateLineText(text string) string {
	if len(text) <= maxLineTextLen {
		return text
	}
	return text[:maxLineTextLen-1]
}
