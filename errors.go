// File: argmap/errors.go
package argmap

import "errors"

var (
	// ErrFrozen is returned by any mutating operation on a frozen Dict.
	ErrFrozen = errors.New("dict is frozen")

	// ErrDuplicateKey is returned when an argument key repeats and
	// overwrites are disallowed.
	ErrDuplicateKey = errors.New("repeated argument")

	// ErrPathConflict is returned when resolving a dotted key would
	// overwrite a scalar with a nested map (or vice versa) at an
	// intermediate segment.
	ErrPathConflict = errors.New("key path conflict")

	// ErrStrictKey is returned by a strict merge when a source key is
	// absent from the target.
	ErrStrictKey = errors.New("unknown key in strict mode")

	// ErrTypeCoercion is returned when a forced type conversion is
	// impossible for the given raw value.
	ErrTypeCoercion = errors.New("cannot coerce value")

	// ErrBadArgument is returned for malformed command-line syntax.
	ErrBadArgument = errors.New("malformed argument")

	// ErrFileExists is returned by Save when the destination exists and
	// overwrites were not allowed.
	ErrFileExists = errors.New("file already exists")

	// ErrFileNotFound is returned when a defaults or load path does not
	// point to an existing file.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnknownFormat is returned when a file's serialization format
	// cannot be determined from its extension or content.
	ErrUnknownFormat = errors.New("unknown serialization format")
)
