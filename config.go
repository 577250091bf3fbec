package main

//
// Tunable constants for the interpreter core.  Mirrors the teacher's
// definitions.go constant block: one file, plain untyped constants,
// no config struct or flags package for values this static.
//

const dialectName = "core"

const version = "1.0.0"

// Program store limits (spec.md S3: ProgramLine / ProgramStore)
const maxLineNumber = 65535
const maxLineTextLen = 127
const maxProgramLines = 500

// Call stack depth (spec.md S3: CallStack)
const callStackMax = 64

// Bytes charged per stored line for the startup banner's free-memory
// figure: 4 bytes for the line-number key plus maxLineTextLen for the
// text buffer, matching original_source/ib.c's sizeof(Line) accounting.
const bytesPerLine = 4 + maxLineTextLen

const immediatePrompt = "? "
const okPrompt = "OK"
const readyPrompt = "READY"
const replPrompt = "> "

const lprintFilename = "lprint.out"

const bel = "\a"
