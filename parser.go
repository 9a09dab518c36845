// File: argmap/parser.go
package argmap

import (
	"fmt"
	"os"
	"strings"
)

// WarnFunc receives non-fatal parser warnings (accepted overwrites,
// unresolvable environment variables).
type WarnFunc func(msg string)

// Options configures argument resolution.
type Options struct {
	// AllowOverwrites permits the same key to appear more than once in
	// the argument list; the last value wins.
	AllowOverwrites bool
	// WarnOverwrites surfaces a warning when an allowed overwrite occurs.
	WarnOverwrites bool
	// ParseEnv substitutes $NAME / ${NAME} references in raw values.
	ParseEnv bool
	// WarnEnv surfaces a warning when a referenced variable is undefined.
	WarnEnv bool
	// Defaults supplies baseline configuration: a file path, a *Dict, a
	// map[string]any, or a list of those merged left to right (later
	// entries override earlier ones).
	Defaults any
	// Strict rejects command-line keys absent from Defaults.
	Strict bool
	// KeepSpecialKeys retains @-directive entries in the parsed result.
	KeepSpecialKeys bool
	// Freeze locks the returned Dict against mutation.
	Freeze bool
	// Warn delivers warnings; nil writes them to stderr.
	Warn WarnFunc
	// LookupEnv resolves environment variables; nil uses os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// DefaultOptions returns the standard resolution options: overwrites
// rejected, environment parsing on, strict defaults merging, directive
// keys kept.
func DefaultOptions() Options {
	return Options{
		AllowOverwrites: false,
		WarnOverwrites:  true,
		ParseEnv:        true,
		WarnEnv:         true,
		Strict:          true,
		KeepSpecialKeys: true,
	}
}

func (o *Options) warnFunc() WarnFunc {
	if o.Warn != nil {
		return o.Warn
	}
	return func(msg string) { fmt.Fprintln(os.Stderr, "[argmap] warning:", msg) }
}

func (o *Options) lookupEnv() func(string) (string, bool) {
	if o.LookupEnv != nil {
		return o.LookupEnv
	}
	return os.LookupEnv
}

// ParseArgs resolves an argument list with DefaultOptions.
func ParseArgs(args []string) (*Dict, error) {
	return Parse(args, DefaultOptions())
}

// Parse resolves a raw argument list into a nested Dict: tokenize,
// apply @-directives, classify values, merge over defaults, expand dotted
// keys, and optionally freeze. Any failure aborts the whole call with no
// partial result; only accepted-overwrite and missing-environment
// conditions are reported as warnings.
func Parse(args []string, opts Options) (*Dict, error) {
	if err := CheckArgs(args); err != nil {
		return nil, err
	}

	if err := applyDirectives(args, &opts); err != nil {
		return nil, err
	}
	warn := opts.warnFunc()

	entries, err := mapArgs(args, opts.AllowOverwrites, opts.WarnOverwrites, warn)
	if err != nil {
		return nil, err
	}

	flat := NewDict()
	directives := NewDict()
	for _, entry := range entries {
		key, kind := SplitTypedKey(entry.key)
		raw := entry.value
		if opts.ParseEnv && !entry.flag {
			raw = ExpandEnv(raw, opts.lookupEnv(), opts.WarnEnv, warn)
		}
		value, err := Classify(raw, kind)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", entry.key, err)
		}
		if entry.directive {
			if err := directives.Set(key, value); err != nil {
				return nil, err
			}
			if !opts.KeepSpecialKeys {
				continue
			}
		}
		if err := flat.Set(key, value); err != nil {
			return nil, err
		}
	}

	if opts.Defaults == nil {
		if _, err := flat.Resolve(); err != nil {
			return nil, err
		}
		if opts.Freeze {
			flat.Freeze()
		}
		return flat, nil
	}

	baseline, err := LoadDefaults(opts.Defaults)
	if err != nil {
		return nil, err
	}

	// Directive entries configure the parser; they are not matched
	// against the defaults. Strip them before the strict merge and bring
	// them back afterwards when requested.
	cmdline := flat.DeepCopy()
	for _, k := range directives.Keys() {
		if err := cmdline.Delete(k); err != nil {
			return nil, err
		}
	}
	if _, err := cmdline.Resolve(); err != nil {
		return nil, err
	}
	if _, err := baseline.Update(cmdline, opts.Strict); err != nil {
		return nil, err
	}
	if opts.KeepSpecialKeys {
		for _, k := range directives.Keys() {
			v, _ := directives.Get(k)
			if err := baseline.Set(k, v); err != nil {
				return nil, err
			}
		}
	}
	if opts.Freeze {
		baseline.Freeze()
	}
	return baseline, nil
}

// applyDirectives extracts recognized @-arguments and folds them into the
// options before normal resolution. Directive values pass through the same
// classification pipeline as ordinary arguments.
func applyDirectives(args []string, opts *Options) error {
	warn := opts.warnFunc()
	var special []string
	for _, arg := range args {
		key := arg
		if k, _, ok := splitToken(arg); ok {
			key = k
		} else {
			key = strings.TrimPrefix(key, "-")
		}
		if isDirective(key) {
			special = append(special, arg)
		}
	}
	if len(special) == 0 {
		return nil
	}

	entries, err := mapArgs(special, false, false, warn)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := strings.TrimPrefix(entry.key, DirectivePrefix)
		raw := entry.value
		if !entry.flag {
			raw = ExpandEnv(raw, opts.lookupEnv(), true, warn)
		}
		value, err := Classify(raw, KindAuto)
		if err != nil {
			return fmt.Errorf("directive %q: %w", entry.key, err)
		}
		if err := applyDirective(opts, name, value); err != nil {
			return err
		}
	}
	return nil
}

func applyDirective(opts *Options, name string, value any) error {
	boolValue := func() (bool, error) {
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return false, fmt.Errorf("%w: directive @%s expects a boolean, got %s",
			ErrTypeCoercion, name, FormatValue(value))
	}
	switch name {
	case "defaults":
		opts.Defaults = value
		return nil
	case "strict":
		b, err := boolValue()
		if err == nil {
			opts.Strict = b
		}
		return err
	case "allow_overwrites":
		b, err := boolValue()
		if err == nil {
			opts.AllowOverwrites = b
		}
		return err
	case "warn_overwrites":
		b, err := boolValue()
		if err == nil {
			opts.WarnOverwrites = b
		}
		return err
	case "parse_env":
		b, err := boolValue()
		if err == nil {
			opts.ParseEnv = b
		}
		return err
	case "warn_env":
		b, err := boolValue()
		if err == nil {
			opts.WarnEnv = b
		}
		return err
	case "keep_special_keys":
		b, err := boolValue()
		if err == nil {
			opts.KeepSpecialKeys = b
		}
		return err
	default:
		return fmt.Errorf("%w: unknown directive @%s", ErrBadArgument, name)
	}
}

// LoadDefaults materializes a defaults specification into a resolved Dict:
// a string loads a serialized file, a *Dict or map is copied and resolved,
// and a list is merged left to right so later entries override earlier
// ones.
func LoadDefaults(spec any) (*Dict, error) {
	switch t := spec.(type) {
	case nil:
		return NewDict(), nil
	case string:
		d, err := Load(t)
		if err != nil {
			return nil, fmt.Errorf("loading defaults from %q: %w", t, err)
		}
		return d.Resolve()
	case *Dict:
		return t.DeepCopy().Resolve()
	case map[string]any:
		return FromMap(t).Resolve()
	case []string:
		specs := make([]any, len(t))
		for i, s := range t {
			specs[i] = s
		}
		return LoadDefaults(specs)
	case []any:
		merged := NewDict()
		for _, entry := range t {
			d, err := LoadDefaults(entry)
			if err != nil {
				return nil, err
			}
			if _, err := merged.Update(d, false); err != nil {
				return nil, err
			}
		}
		return merged, nil
	default:
		return nil, fmt.Errorf("%w: unsupported defaults specification of type %T", ErrTypeCoercion, spec)
	}
}
