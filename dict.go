// File: argmap/dict.go
package argmap

import (
	"fmt"
	"sort"
	"strings"
)

// Delimiter separates path segments in flat keys ("server.port").
const Delimiter = "."

// Set is an ordered, deduplicated collection parsed from a {a, b, c}
// literal. It serializes as a list.
type Set []any

// Contains reports whether v is already an element of the set.
func (s Set) Contains(v any) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// Dict is an insertion-ordered mapping from string keys to typed values.
// Values are scalars (bool, int64, float64, string, nil), []any, Set, or
// nested *Dict, forming a tree. A Dict can be frozen: while frozen, every
// mutating operation fails with ErrFrozen and leaves the tree untouched.
//
// Dict is not safe for concurrent mutation.
type Dict struct {
	keys   []string
	values map[string]any
	frozen bool
}

// NewDict returns an empty, mutable Dict.
func NewDict() *Dict {
	return &Dict{values: make(map[string]any)}
}

// FromMap converts a plain nested map into a Dict. Nested map values
// become nested Dicts, recursively, including maps inside slices. Since Go
// maps carry no order, keys are inserted in sorted order for determinism.
func FromMap(m map[string]any) *Dict {
	d := NewDict()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d.values[k] = hookValue(m[k])
		d.keys = append(d.keys, k)
	}
	return d
}

// hookValue converts raw containers into Dict-friendly values.
func hookValue(v any) any {
	switch t := v.(type) {
	case *Dict:
		return t
	case map[string]any:
		return FromMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = hookValue(e)
		}
		return out
	case Set:
		out := make(Set, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// Len returns the number of top-level keys.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the top-level keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Has reports whether key exists at the top level.
func (d *Dict) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the value stored under a top-level key. An absent key yields
// (nil, false), never an error.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// GetPath looks a value up through nested Dicts using a dotted path.
// Any absent segment yields (nil, false); chained lookups on unresolved
// paths never fault.
func (d *Dict) GetPath(path string) (any, bool) {
	segments := strings.Split(path, Delimiter)
	current := any(d)
	for _, segment := range segments {
		sub, ok := current.(*Dict)
		if !ok {
			return nil, false
		}
		current, ok = sub.values[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set stores a value under a top-level key, overwriting any previous
// value. Map values are converted to nested Dicts.
func (d *Dict) Set(key string, value any) error {
	if d.frozen {
		return fmt.Errorf("%w: cannot set %q", ErrFrozen, key)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = hookValue(value)
	return nil
}

// Delete removes a top-level key. Deleting an absent key is a no-op.
func (d *Dict) Delete(key string) error {
	if d.frozen {
		return fmt.Errorf("%w: cannot delete %q", ErrFrozen, key)
	}
	if _, ok := d.values[key]; !ok {
		return nil
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Frozen reports whether the Dict is currently frozen.
func (d *Dict) Frozen() bool { return d.frozen }

// Freeze recursively locks the Dict and every nested Dict against
// mutation. The lock is cooperative: every mutating operation checks it.
func (d *Dict) Freeze() { d.setFrozen(true) }

// Unfreeze recursively restores mutability.
func (d *Dict) Unfreeze() { d.setFrozen(false) }

func (d *Dict) setFrozen(frozen bool) {
	d.frozen = frozen
	for _, v := range d.values {
		if sub, ok := v.(*Dict); ok {
			sub.setFrozen(frozen)
		}
	}
}

// Update merges source into d, recursively, and returns d. With strict
// set, source keys absent from d are rejected. The merge is all-or-nothing:
// the whole source tree is validated against d before the first mutation,
// so a failed Update leaves d unchanged.
//
// Merge semantics per key: absent keys are inserted (deep-copied); when
// both sides hold Dicts the merge recurses; any other combination is a
// last-write-wins overwrite with no type checking.
func (d *Dict) Update(source *Dict, strict bool) (*Dict, error) {
	if err := d.validateUpdate(source, strict); err != nil {
		return d, err
	}
	d.applyUpdate(source)
	return d, nil
}

func (d *Dict) validateUpdate(source *Dict, strict bool) error {
	if d.frozen {
		return fmt.Errorf("%w: cannot merge into frozen dict", ErrFrozen)
	}
	for _, k := range source.keys {
		sv := source.values[k]
		tv, ok := d.values[k]
		if !ok {
			if strict {
				return fmt.Errorf("%w: cannot create key %q (value: %s)",
					ErrStrictKey, k, FormatValue(sv))
			}
			continue
		}
		td, tIsDict := tv.(*Dict)
		sd, sIsDict := sv.(*Dict)
		if tIsDict && sIsDict {
			if err := td.validateUpdate(sd, strict); err != nil {
				return err
			}
		} else if tIsDict && td.frozen {
			return fmt.Errorf("%w: cannot overwrite frozen dict at %q", ErrFrozen, k)
		}
	}
	return nil
}

func (d *Dict) applyUpdate(source *Dict) {
	for _, k := range source.keys {
		sv := source.values[k]
		tv, ok := d.values[k]
		if !ok {
			d.keys = append(d.keys, k)
			d.values[k] = deepCopyValue(sv)
			continue
		}
		td, tIsDict := tv.(*Dict)
		sd, sIsDict := sv.(*Dict)
		if tIsDict && sIsDict {
			td.applyUpdate(sd)
		} else {
			d.values[k] = deepCopyValue(sv)
		}
	}
}

// DeepCopy returns an independent copy of the Dict. The copy is mutable
// regardless of the original's frozen state.
func (d *Dict) DeepCopy() *Dict {
	out := NewDict()
	out.keys = make([]string, len(d.keys))
	copy(out.keys, d.keys)
	for k, v := range d.values {
		out.values[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case *Dict:
		return t.DeepCopy()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	case Set:
		out := make(Set, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}

// Resolve expands delimiter-separated keys into nested Dicts, in place,
// and returns d to allow chaining:
//
//	{"a.b.c": 1}  ->  {"a": {"b": {"c": 1}}}
//
// Resolving an already-resolved Dict is a no-op. Expanding a path through
// an existing non-Dict intermediate value fails with ErrPathConflict
// before any key of that path is touched.
func (d *Dict) Resolve() (*Dict, error) {
	if d.frozen {
		return d, fmt.Errorf("%w: cannot resolve frozen dict", ErrFrozen)
	}
	for _, k := range d.Keys() {
		v := d.values[k]
		if sub, ok := v.(*Dict); ok {
			if _, err := sub.Resolve(); err != nil {
				return d, err
			}
		}
		if !strings.Contains(k, Delimiter) {
			continue
		}
		segments := strings.Split(k, Delimiter)
		current := d
		for i, segment := range segments[:len(segments)-1] {
			next, exists := current.values[segment]
			if !exists {
				sub := NewDict()
				current.keys = append(current.keys, segment)
				current.values[segment] = sub
				current = sub
				continue
			}
			sub, isDict := next.(*Dict)
			if !isDict {
				return d, fmt.Errorf("%w: segment %q of key %q already holds a non-map value",
					ErrPathConflict, strings.Join(segments[:i+1], Delimiter), k)
			}
			if _, err := sub.Resolve(); err != nil {
				return d, err
			}
			current = sub
		}
		last := segments[len(segments)-1]
		if _, exists := current.values[last]; !exists {
			current.keys = append(current.keys, last)
		}
		current.values[last] = v
		if err := d.Delete(k); err != nil {
			return d, err
		}
	}
	return d, nil
}

// Flatten is the inverse of Resolve: nested Dicts collapse into
// delimiter-joined keys mapping to leaf values.
func (d *Dict) Flatten(delimiter string) map[string]any {
	flat := make(map[string]any)
	d.flattenInto(flat, "", delimiter)
	return flat
}

func (d *Dict) flattenInto(flat map[string]any, prefix, delimiter string) {
	for _, k := range d.keys {
		path := k
		if prefix != "" {
			path = prefix + delimiter + k
		}
		if sub, ok := d.values[k].(*Dict); ok {
			sub.flattenInto(flat, path, delimiter)
		} else {
			flat[path] = d.values[k]
		}
	}
}

// ToMap converts the Dict tree back into plain nested maps. Sets become
// []any so the result is serializable by every codec.
func (d *Dict) ToMap() map[string]any {
	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		out[k] = plainValue(d.values[k])
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Dict:
		return t.ToMap()
	case Set:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

// String retrieves a string value through a dotted path, converting
// scalars when the stored value is not already a string.
func (d *Dict) String(path string) (string, error) {
	v, ok := d.GetPath(path)
	if !ok {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	switch v.(type) {
	case bool, int64, float64, nil:
		return FormatValue(v), nil
	}
	return "", fmt.Errorf("cannot convert type %T to string for path %s", v, path)
}

// Int64 retrieves an integer value through a dotted path. Floats are
// truncated; numeric strings are parsed.
func (d *Dict) Int64(path string) (int64, error) {
	v, ok := d.GetPath(path)
	if !ok {
		return 0, fmt.Errorf("path not found: %s", path)
	}
	switch t := v.(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := Classify(t, KindInt)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to int64 for path %s: %w", t, path, err)
		}
		return n.(int64), nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int64 for path %s", v, path)
}

// Float64 retrieves a float value through a dotted path.
func (d *Dict) Float64(path string) (float64, error) {
	v, ok := d.GetPath(path)
	if !ok {
		return 0, fmt.Errorf("path not found: %s", path)
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case string:
		f, err := Classify(t, KindFloat)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to float64 for path %s: %w", t, path, err)
		}
		return f.(float64), nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for path %s", v, path)
}

// Bool retrieves a boolean value through a dotted path. Numbers are true
// when non-zero; strings follow the forced-bool coercion rules.
func (d *Dict) Bool(path string) (bool, error) {
	v, ok := d.GetPath(path)
	if !ok {
		return false, fmt.Errorf("path not found: %s", path)
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case int64:
		return t != 0, nil
	case float64:
		return t != 0, nil
	case string:
		b, err := Classify(t, KindBool)
		if err != nil {
			return false, err
		}
		return b.(bool), nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for path %s", v, path)
}
