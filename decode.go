// File: argmap/decode.go
package argmap

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the subtree at basePath into target, which must be a
// pointer to a struct. Fields are matched by the "argmap" tag, falling
// back to case-insensitive field names. Numeric and string values are
// weakly converted, duration strings parse into time.Duration, and
// comma-separated strings fill slices. An empty basePath scans the whole
// Dict.
func (d *Dict) Scan(basePath string, target any) error {
	source := d
	if basePath != "" {
		v, ok := d.GetPath(basePath)
		if !ok {
			return fmt.Errorf("%w: %s", ErrStrictKey, basePath)
		}
		sub, ok := v.(*Dict)
		if !ok {
			return fmt.Errorf("%w: %s is %s, not a mapping", ErrTypeCoercion, basePath, FormatValue(v))
		}
		source = sub
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "argmap",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := decoder.Decode(source.ToMap()); err != nil {
		return fmt.Errorf("%w: %v", ErrTypeCoercion, err)
	}
	return nil
}
