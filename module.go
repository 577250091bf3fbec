package main

import "fmt"

//
// Module hook: the `$...` keyword prefix dispatches to a pluggable
// handler.  Grounded on original_source/ib.c's "reserved module commands"
// section (cmd_stub) and spec.md S9's design note describing this as a
// fixed core table plus a pluggable fallthrough.  The core ships only the
// stub; SYSTEM reuses the same stub path since spec.md reserves it
// identically ("invokes module stub").
//

// ModuleHandler is the capability surface a future plugin would
// implement: given the keyword that triggered it and the remainder of
// the line, do something with the environment and I/O, or fail.
type ModuleHandler func(keyword string, cur *Cursor, env *Environment, io *IOAdapters) error

// moduleHandler is the currently installed hook. Swappable so a future
// module loader can replace it without touching the dispatcher; defaults
// to the stub every $... command falls through to today.
var moduleHandler ModuleHandler = stubModuleHandler

func stubModuleHandler(keyword string, cur *Cursor, env *Environment, io *IOAdapters) error {
	fmt.Fprintf(io.out, "FRAMEWORK: Command %s is not implemented.\n", keyword)
	return nil
}

func invokeModuleHook(keyword string, cur *Cursor, env *Environment, io *IOAdapters) error {
	if env.debug {
		fmt.Fprintf(io.out, "[DEBUG] module hook: %s %q\n", keyword, cur.rest())
	}
	return moduleHandler(keyword, cur, env, io)
}
