// File: argmap/classify.go
package argmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects a forced type for classification. KindAuto lets Classify
// infer the type from the raw token.
type Kind int

const (
	KindAuto Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindSet
	KindDict
)

// TypeSeparator is the reserved key suffix marker for forced types:
// "layers___int=3.0" forces the value of "layers" to an integer.
const TypeSeparator = "___"

var kindNames = map[string]Kind{
	"bool":  KindBool,
	"int":   KindInt,
	"float": KindFloat,
	"str":   KindString,
	"list":  KindList,
	"set":   KindSet,
	"dict":  KindDict,
}

// SplitTypedKey strips a trailing type-separator suffix from a key and
// returns the bare key with the forced Kind. Keys without a recognized
// suffix come back unchanged with KindAuto.
func SplitTypedKey(key string) (string, Kind) {
	i := strings.LastIndex(key, TypeSeparator)
	if i < 0 {
		return key, KindAuto
	}
	if kind, ok := kindNames[key[i+len(TypeSeparator):]]; ok {
		return key[:i], kind
	}
	return key, KindAuto
}

// Classify converts one raw string token into a typed value. With a forced
// kind the token is coerced to exactly that type; with KindAuto the type
// is inferred: integer literal, then float literal, then the bare words
// true/false (case-insensitive), then a restricted literal expression,
// falling back to the raw string itself. Classify is a pure function.
func Classify(raw string, kind Kind) (any, error) {
	switch kind {
	case KindAuto:
		return inferValue(raw), nil
	case KindBool:
		l := strings.ToLower(raw)
		return l != "false" && l != "0" && l != "", nil
	case KindInt:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q to int", ErrTypeCoercion, raw)
		}
		return int64(f), nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q to float", ErrTypeCoercion, raw)
		}
		return f, nil
	case KindString:
		return raw, nil
	case KindList:
		if v, ok := containerLiteral(raw); ok {
			return v, nil
		}
		return charList(raw), nil
	case KindSet:
		if v, ok := containerLiteral(raw); ok {
			return v, nil
		}
		return charSet(raw), nil
	case KindDict:
		v, err := ParseLiteral(raw)
		if err == nil {
			if d, ok := v.(*Dict); ok {
				return d, nil
			}
		}
		return nil, fmt.Errorf("%w: %q to dict", ErrTypeCoercion, raw)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrTypeCoercion, kind)
	}
}

// inferValue implements the automatic classification order. Tokens that
// fit no earlier rule remain strings, so "04" (an invalid leading-zero
// literal) survives untouched.
func inferValue(raw string) any {
	if isIntToken(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		// Out of int64 range: fall through to the float rule.
	}
	if isFloatToken(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if v, err := ParseLiteral(raw); err == nil {
		return reinferContainers(v)
	}
	return raw
}

// reinferContainers applies the inference rules to the string elements of a
// parsed container literal, recursively, so "['false', '1']" classifies to
// [false, 1] just as the bare tokens would. Scalars outside containers keep
// their literal form: "'04'" stays the string "04".
func reinferContainers(v any) any {
	switch t := v.(type) {
	case []any:
		for i, e := range t {
			t[i] = reinferElem(e)
		}
		return t
	case Set:
		out := Set{}
		for _, e := range t {
			n := reinferElem(e)
			if !out.Contains(n) {
				out = append(out, n)
			}
		}
		return out
	case *Dict:
		for _, k := range t.keys {
			t.values[k] = reinferElem(t.values[k])
		}
		return t
	default:
		return v
	}
}

func reinferElem(v any) any {
	if s, ok := v.(string); ok {
		return inferValue(s)
	}
	return reinferContainers(v)
}

// isIntToken reports whether raw is a plain decimal integer literal.
// Leading zeros disqualify ("04", "007"); all-zero runs denote zero.
func isIntToken(raw string) bool {
	s := strings.TrimPrefix(strings.TrimPrefix(raw, "+"), "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return !hasLeadingZero(s)
}

// isFloatToken reports whether raw is a decimal float literal: it must
// contain a fraction or an exponent, and its integer part must not carry
// leading zeros, so zero-prefixed tokens stay strings rather than turning
// into numbers.
func isFloatToken(raw string) bool {
	s := strings.TrimPrefix(strings.TrimPrefix(raw, "+"), "-")
	if s == "" {
		return false
	}
	mantissa, exponent, hasExp := cutAny(s, "eE")
	if hasExp {
		if exponent == "" {
			return false
		}
		e := strings.TrimPrefix(strings.TrimPrefix(exponent, "+"), "-")
		if e == "" || !allDigits(e) {
			return false
		}
	}
	intPart, fracPart, hasDot := strings.Cut(mantissa, ".")
	if !hasDot && !hasExp {
		return false // plain integer, handled by the integer rule
	}
	if intPart == "" && fracPart == "" {
		return false
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return false
	}
	return !hasLeadingZero(intPart)
}

func cutAny(s, chars string) (before, after string, found bool) {
	if i := strings.IndexAny(s, chars); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// containerLiteral parses raw as a container literal when it is
// syntactically one; forced list/set conversion falls back to character
// splitting otherwise.
func containerLiteral(raw string) (any, bool) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}
	switch trimmed[0] {
	case '[', '{', '(':
		if v, err := ParseLiteral(raw); err == nil {
			return v, true
		}
	}
	return nil, false
}

func charList(raw string) []any {
	out := make([]any, 0, len(raw))
	for _, r := range raw {
		out = append(out, string(r))
	}
	return out
}

func charSet(raw string) Set {
	out := Set{}
	for _, r := range raw {
		if c := string(r); !out.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}
