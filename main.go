package main

import (
	"fmt"
	"os"

	"github.com/goforj/godump"
	sysconf "github.com/tklauser/go-sysconf"
)

//
// Entry point: argv scan for --debug, startup banner, then the REPL
// loop. Grounded on basic.go's main/init/printVersionInfo and, for the
// --debug scan specifically, original_source/ib.c's own argv loop (the
// teacher parses no flags at all; IB Core's one flag is closer to the
// original C than to BASIC-PLUS's richer CLI).
//

func main() {
	env := NewEnvironment()
	env.debug = hasDebugFlag(os.Args[1:])

	if env.debug {
		fmt.Println("[DEBUG] Debug mode enabled.")
	}

	printBanner(env)

	if env.debug {
		godump.Dump(env)
		printPageSize()
	}

	repl := NewRepl(env, os.Stdout)
	defer repl.Close()

	repl.Run()
}

// hasDebugFlag scans argv for --debug anywhere, per spec.md S6
// ("--debug (anywhere in argv) enables verbose tracing"); every other
// argument is ignored.
func hasDebugFlag(args []string) bool {
	for _, a := range args {
		if a == "--debug" {
			return true
		}
	}
	return false
}

// printBanner writes spec.md S6's three-line startup banner. <K> is the
// program-storage capacity in bytes, divided by 1024 with integer
// truncation (SPEC_FULL.md S C.4).
func printBanner(env *Environment) {
	fmt.Printf("BASIC++ (%s) v%s\n", dialectName, version)
	fmt.Printf("%d kbytes Free\n", capacityKB())
	fmt.Println(readyPrompt)
}

func capacityKB() int {
	return (maxProgramLines * bytesPerLine) / 1024
}

// printPageSize reports the host's memory page size in the debug
// banner, via github.com/tklauser/go-sysconf -- the teacher's own
// host-query dependency (used there alongside golang.org/x/term for
// terminal geometry), here giving the debug trace one concrete host
// fact the way the teacher's executeConfig reports DIM space.
func printPageSize() {
	pageSize, err := sysconf.Sysconf(sysconf.SC_PAGESIZE)
	if err != nil {
		fmt.Println("[DEBUG] page size: unavailable")
		return
	}
	fmt.Printf("[DEBUG] host page size: %d bytes\n", pageSize)
}
