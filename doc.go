// File: argmap/doc.go

// Package argmap turns a process's raw command-line tokens into a typed,
// nested, dot-accessible configuration tree, optionally merged over one or
// more default configurations.
//
// Arguments need no declaration and no leading dashes:
//
//	key=value        assigns a classified value
//	flag             positive flag, stored as true
//	-flag            negative flag, stored as false
//
// Values are classified automatically (int, float, bool, lists, mappings,
// sets, strings), may reference environment variables ($HOME, ${USER}),
// and may force a type with a key suffix (layers___int=3.0). Dotted keys
// expand into nested trees:
//
//	args, err := argmap.Parse(os.Args[1:], argmap.DefaultOptions())
//	// "server.port=8080 save -log" becomes
//	// {server: {port: 8080}, save: true, log: false}
//
// Defaults can be supplied as in-memory maps, Dicts, or paths to JSON,
// YAML, TOML, or CBOR files; with strict mode on, command-line keys absent
// from the defaults are rejected. Special @-prefixed arguments (@defaults,
// @strict, ...) reconfigure the parser from the command line itself.
//
// The resulting Dict supports recursive merging, deep freezing against
// mutation, serialization round trips, struct decoding via mapstructure,
// and a box-drawing pretty printer.
//
// The package performs no I/O during parsing beyond environment lookup and
// defaults-file loading, never exits the process, and reports non-fatal
// conditions through a caller-supplied warning function. A Dict is not
// safe for concurrent mutation; callers needing shared access must
// serialize access externally.
package argmap
