// File: argmap/builder.go
package argmap

import (
	"fmt"
	"os"
)

// ValidatorFunc validates a fully parsed Dict and returns an error to
// reject it.
type ValidatorFunc func(d *Dict) error

// Builder provides a fluent interface for assembling parse options
type Builder struct {
	opts       Options
	args       []string
	validators []ValidatorFunc
}

// NewBuilder creates a new parse builder seeded with os.Args
func NewBuilder() *Builder {
	return &Builder{
		opts: DefaultOptions(),
		args: os.Args[1:],
	}
}

// WithArgs sets the command-line arguments to parse
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithDefaults sets the baseline configuration: a file path, *Dict, map,
// or list of those
func (b *Builder) WithDefaults(defaults any) *Builder {
	b.opts.Defaults = defaults
	return b
}

// WithStrict controls whether command-line keys must exist in the defaults
func (b *Builder) WithStrict(strict bool) *Builder {
	b.opts.Strict = strict
	return b
}

// WithAllowOverwrites permits repeated keys on the command line
func (b *Builder) WithAllowOverwrites(allow bool) *Builder {
	b.opts.AllowOverwrites = allow
	return b
}

// WithParseEnv controls environment-variable substitution in values
func (b *Builder) WithParseEnv(parse bool) *Builder {
	b.opts.ParseEnv = parse
	return b
}

// WithKeepSpecialKeys controls whether @-directives stay in the result
func (b *Builder) WithKeepSpecialKeys(keep bool) *Builder {
	b.opts.KeepSpecialKeys = keep
	return b
}

// WithFreeze locks the parsed Dict against later mutation
func (b *Builder) WithFreeze(freeze bool) *Builder {
	b.opts.Freeze = freeze
	return b
}

// WithWarnFunc routes parser warnings to fn instead of stderr
func (b *Builder) WithWarnFunc(fn WarnFunc) *Builder {
	b.opts.Warn = fn
	return b
}

// WithLookupEnv overrides environment lookup, mainly for tests
func (b *Builder) WithLookupEnv(fn func(string) (string, bool)) *Builder {
	b.opts.LookupEnv = fn
	return b
}

// WithValidator adds a validation function that runs after parsing.
// Multiple validators can be added and are executed in the order they
// are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build parses the arguments with the accumulated options
func (b *Builder) Build() (*Dict, error) {
	d, err := Parse(b.args, b.opts)
	if err != nil {
		return nil, err
	}
	for _, validator := range b.validators {
		if err := validator(d); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	}
	return d, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Dict {
	d, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("argument parse failed: %v", err))
	}
	return d
}

// BuildAndScan parses the arguments and decodes the subtree at basePath
// into the provided target struct pointer
func (b *Builder) BuildAndScan(basePath string, target any) error {
	d, err := b.Build()
	if err != nil {
		return err
	}
	if err := d.Scan(basePath, target); err != nil {
		return fmt.Errorf("failed to scan parsed arguments into target: %w", err)
	}
	return nil
}
