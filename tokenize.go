// File: argmap/tokenize.go
package argmap

import (
	"fmt"
	"regexp"
	"strings"
)

// DirectivePrefix marks command-line arguments that configure the parser
// itself ("@strict=false") rather than contributing a data value.
const DirectivePrefix = "@"

// directiveNames mirrors the option set that may be overridden from the
// command line.
var directiveNames = map[string]bool{
	"allow_overwrites":  true,
	"warn_overwrites":   true,
	"parse_env":         true,
	"warn_env":          true,
	"defaults":          true,
	"strict":            true,
	"keep_special_keys": true,
}

// rawArg is one tokenized argument before classification. Flags carry the
// synthesized raw values "True"/"False".
type rawArg struct {
	key       string
	value     string
	flag      bool
	directive bool
}

// CheckArgs validates the syntax of a raw argument list. Only key=value,
// positiveFlag, and -negativeFlag shapes are allowed; stray spaces around
// '=' (which arrive as separate tokens), a trailing '=', dashed named
// arguments, and keys starting with '.' are rejected.
func CheckArgs(args []string) error {
	joined := strings.Join(args, " ")
	if strings.Contains(joined, " =") || strings.Contains(joined, "= ") {
		return fmt.Errorf("%w: found space around '=', named arguments must be key=value", ErrBadArgument)
	}
	if strings.HasSuffix(joined, "=") {
		return fmt.Errorf("%w: missing value after '='", ErrBadArgument)
	}
	for _, arg := range args {
		if strings.Contains(arg, "=") && strings.HasPrefix(arg, "-") {
			return fmt.Errorf("%w: named argument %q cannot start with '-'", ErrBadArgument, arg)
		}
		if strings.HasPrefix(arg, ".") {
			return fmt.Errorf("%w: argument %q cannot start with '.'", ErrBadArgument, arg)
		}
	}
	return nil
}

// splitToken splits an argument at its first top-level '=': the first '='
// that is not nested inside brackets or quotes, so "d={'k': 'a=b'}" keeps
// its embedded '=' intact. ok is false for flag tokens.
func splitToken(arg string) (key, value string, ok bool) {
	depth := 0
	var quote rune
	for i, r := range arg {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '[' || r == '{' || r == '(':
			depth++
		case r == ']' || r == '}' || r == ')':
			depth--
		case r == '=' && depth == 0:
			return strings.TrimSpace(arg[:i]), strings.TrimSpace(arg[i+1:]), true
		}
	}
	return "", "", false
}

// isDirective reports whether key names a recognized parser directive.
func isDirective(key string) bool {
	if !strings.HasPrefix(key, DirectivePrefix) {
		return false
	}
	return directiveNames[strings.TrimPrefix(key, DirectivePrefix)]
}

// mapArgs tokenizes an argument list into ordered rawArg entries:
//
//	key=value -> (key, value)
//	key       -> (key, "True")
//	-key      -> (key, "False")
//
// A repeated key fails with ErrDuplicateKey unless allowOverwrites; an
// accepted overwrite keeps the key's first position, replaces its value,
// and surfaces a warning when warnOverwrites.
func mapArgs(args []string, allowOverwrites, warnOverwrites bool, warn WarnFunc) ([]rawArg, error) {
	entries := make([]rawArg, 0, len(args))
	index := make(map[string]int, len(args))

	for _, arg := range args {
		var entry rawArg
		if key, value, ok := splitToken(arg); ok {
			entry = rawArg{key: key, value: value}
		} else if strings.HasPrefix(arg, "-") {
			entry = rawArg{key: strings.TrimSpace(arg[1:]), value: "False", flag: true}
		} else {
			entry = rawArg{key: strings.TrimSpace(arg), value: "True", flag: true}
		}
		entry.directive = isDirective(entry.key)

		if i, seen := index[entry.key]; seen {
			if !allowOverwrites {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, entry.key)
			}
			if warnOverwrites {
				warn(fmt.Sprintf("repeated argument %q, overwriting previous value", entry.key))
			}
			entries[i] = entry
			continue
		}
		index[entry.key] = len(entries)
		entries = append(entries, entry)
	}
	return entries, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// ExpandEnv substitutes $NAME and ${NAME} references in value using
// lookup. Undefined variables are left as their literal reference and
// reported through warn when warnEnv is set.
func ExpandEnv(value string, lookup func(string) (string, bool), warnEnv bool, warn WarnFunc) string {
	return envVarPattern.ReplaceAllStringFunc(value, func(ref string) string {
		name := strings.TrimPrefix(ref, "$")
		name = strings.TrimPrefix(name, "{")
		name = strings.TrimSuffix(name, "}")
		if v, ok := lookup(name); ok {
			return v
		}
		if warnEnv {
			warn(fmt.Sprintf("detected variable $%s but could not find it in the environment, keeping raw value", name))
		}
		return ref
	})
}
