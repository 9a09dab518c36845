// File: argmap/literal.go
package argmap

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LiteralError reports where a literal expression stopped making sense.
type LiteralError struct {
	Pos     int
	Message string
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("invalid literal at offset %d: %s", e.Pos, e.Message)
}

// ParseLiteral evaluates a single restricted literal expression: numbers,
// quoted strings, True/False/None, lists, tuples, mappings, and sets,
// nested arbitrarily. It is a dedicated recursive-descent parser, not an
// expression evaluator; nothing is ever executed.
//
// Mappings are returned as *Dict with keys coerced to strings; tuples are
// returned as lists; sets as Set. Decimal integers with leading zeros are
// not valid literals.
func ParseLiteral(input string) (any, error) {
	p := &litParser{input: input}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing %q", p.rest())
	}
	return v, nil
}

type litParser struct {
	input string
	pos   int
}

func (p *litParser) errorf(format string, args ...any) error {
	return &LiteralError{Pos: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *litParser) rest() string {
	r := p.input[p.pos:]
	if len(r) > 12 {
		r = r[:12] + "..."
	}
	return r
}

func (p *litParser) peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return r, true
}

func (p *litParser) advance() rune {
	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	return r
}

func (p *litParser) skipSpace() {
	for {
		r, ok := p.peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		p.advance()
	}
}

// accept consumes r if it is next, skipping leading whitespace.
func (p *litParser) accept(r rune) bool {
	p.skipSpace()
	if next, ok := p.peek(); ok && next == r {
		p.advance()
		return true
	}
	return false
}

func (p *litParser) value() (any, error) {
	p.skipSpace()
	r, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of input")
	}
	switch {
	case r == '\'' || r == '"':
		return p.stringValue()
	case r == '[':
		return p.listValue()
	case r == '(':
		return p.tupleValue()
	case r == '{':
		return p.braceValue()
	case r == '+' || r == '-' || r == '.' || unicode.IsDigit(r):
		return p.numberValue()
	case unicode.IsLetter(r):
		return p.identValue()
	default:
		return nil, p.errorf("unexpected %q", r)
	}
}

func (p *litParser) identValue() (any, error) {
	start := p.pos
	for {
		r, ok := p.peek()
		if !ok || (!unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_') {
			break
		}
		p.advance()
	}
	switch p.input[start:p.pos] {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		p.pos = start
		return nil, p.errorf("unknown identifier %q", p.input[start:])
	}
}

func (p *litParser) stringValue() (string, error) {
	quote := p.advance()
	var b strings.Builder
	for {
		r, ok := p.peek()
		if !ok {
			return "", p.errorf("unterminated string")
		}
		p.advance()
		switch r {
		case quote:
			return b.String(), nil
		case '\\':
			esc, ok := p.peek()
			if !ok {
				return "", p.errorf("unterminated escape")
			}
			p.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			case '\\', '\'', '"':
				b.WriteRune(esc)
			case 'x':
				if p.pos+2 > len(p.input) {
					return "", p.errorf("truncated \\x escape")
				}
				n, err := strconv.ParseUint(p.input[p.pos:p.pos+2], 16, 8)
				if err != nil {
					return "", p.errorf("bad \\x escape")
				}
				p.pos += 2
				b.WriteByte(byte(n))
			case 'u':
				if p.pos+4 > len(p.input) {
					return "", p.errorf("truncated \\u escape")
				}
				n, err := strconv.ParseUint(p.input[p.pos:p.pos+4], 16, 32)
				if err != nil {
					return "", p.errorf("bad \\u escape")
				}
				p.pos += 4
				b.WriteRune(rune(n))
			default:
				return "", p.errorf("unsupported escape \\%c", esc)
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (p *litParser) numberValue() (any, error) {
	start := p.pos
	if r, ok := p.peek(); ok && (r == '+' || r == '-') {
		p.advance()
	}

	// Prefixed integer bases.
	if strings.HasPrefix(p.input[p.pos:], "0x") || strings.HasPrefix(p.input[p.pos:], "0X") ||
		strings.HasPrefix(p.input[p.pos:], "0o") || strings.HasPrefix(p.input[p.pos:], "0O") ||
		strings.HasPrefix(p.input[p.pos:], "0b") || strings.HasPrefix(p.input[p.pos:], "0B") {
		p.pos += 2
		digitStart := p.pos
		for {
			r, ok := p.peek()
			if !ok || (!unicode.IsDigit(r) && !unicode.IsLetter(r)) {
				break
			}
			p.advance()
		}
		n, err := strconv.ParseInt(p.input[start:p.pos], 0, 64)
		if err != nil || digitStart == p.pos {
			return nil, p.errorf("invalid integer literal %q", p.input[start:p.pos])
		}
		return n, nil
	}

	p.scanDigits()
	isFloat := false
	if r, ok := p.peek(); ok && r == '.' {
		p.advance()
		isFloat = true
		p.scanDigits()
	}
	if r, ok := p.peek(); ok && (r == 'e' || r == 'E') {
		p.advance()
		isFloat = true
		if r, ok := p.peek(); ok && (r == '+' || r == '-') {
			p.advance()
		}
		if p.scanDigits() == 0 {
			return nil, p.errorf("missing exponent digits")
		}
	}

	text := p.input[start:p.pos]
	digits := strings.TrimLeft(text, "+-")
	if len(digits) == 0 || digits == "." {
		return nil, p.errorf("invalid number %q", text)
	}
	if !isFloat {
		if hasLeadingZero(digits) {
			return nil, p.errorf("leading zeros in decimal literal %q", text)
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// Out of int64 range: keep the value as a float.
			f, ferr := strconv.ParseFloat(text, 64)
			if ferr != nil {
				return nil, p.errorf("invalid integer literal %q", text)
			}
			return f, nil
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("invalid float literal %q", text)
	}
	return f, nil
}

func (p *litParser) scanDigits() int {
	n := 0
	for {
		r, ok := p.peek()
		if !ok || !unicode.IsDigit(r) {
			return n
		}
		p.advance()
		n++
	}
}

// hasLeadingZero reports whether a digit run is an invalid zero-prefixed
// decimal ("04", "007"). All-zero runs ("0", "00") denote zero and are
// allowed.
func hasLeadingZero(digits string) bool {
	if len(digits) < 2 || digits[0] != '0' {
		return false
	}
	return strings.Trim(digits, "0") != ""
}

func (p *litParser) listValue() (any, error) {
	p.advance() // '['
	items := []any{}
	for {
		if p.accept(']') {
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if p.accept(',') {
			continue
		}
		if p.accept(']') {
			return items, nil
		}
		return nil, p.errorf("expected ',' or ']'")
	}
}

func (p *litParser) tupleValue() (any, error) {
	p.advance() // '('
	items := []any{}
	sawComma := false
	for {
		if p.accept(')') {
			// A single parenthesized value without a trailing comma is a
			// grouping, not a one-element tuple.
			if len(items) == 1 && !sawComma {
				return items[0], nil
			}
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if p.accept(',') {
			sawComma = true
			continue
		}
		if p.accept(')') {
			if len(items) == 1 && !sawComma {
				return items[0], nil
			}
			return items, nil
		}
		return nil, p.errorf("expected ',' or ')'")
	}
}

// braceValue parses either a mapping or a set, deciding after the first
// element: a ':' makes it a mapping. "{}" is an empty mapping.
func (p *litParser) braceValue() (any, error) {
	p.advance() // '{'
	if p.accept('}') {
		return NewDict(), nil
	}
	first, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.accept(':') {
		return p.dictValue(first)
	}
	return p.setValue(first)
}

func (p *litParser) dictValue(firstKey any) (any, error) {
	d := NewDict()
	key := firstKey
	for {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if err := d.Set(literalKey(key), v); err != nil {
			return nil, err
		}
		if p.accept(',') {
			if p.accept('}') {
				return d, nil
			}
			key, err = p.value()
			if err != nil {
				return nil, err
			}
			if !p.accept(':') {
				return nil, p.errorf("expected ':' after mapping key")
			}
			continue
		}
		if p.accept('}') {
			return d, nil
		}
		return nil, p.errorf("expected ',' or '}'")
	}
}

func (p *litParser) setValue(first any) (any, error) {
	s := Set{}
	elem := first
	for {
		if !isHashable(elem) {
			return nil, p.errorf("unhashable set element of type %T", elem)
		}
		if !s.Contains(elem) {
			s = append(s, elem)
		}
		if p.accept(',') {
			if p.accept('}') {
				return s, nil
			}
			var err error
			elem, err = p.value()
			if err != nil {
				return nil, err
			}
			continue
		}
		if p.accept('}') {
			return s, nil
		}
		return nil, p.errorf("expected ',' or '}'")
	}
}

func isHashable(v any) bool {
	switch v.(type) {
	case nil, bool, int64, float64, string:
		return true
	default:
		return false
	}
}

// literalKey coerces a mapping key to a string, mirroring the documented
// key coercion of the JSON codec so the tree stays uniformly string-keyed.
func literalKey(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return FormatValue(key)
}

// FormatValue renders a typed value in literal notation: booleans as
// True/False, nil as None, strings and containers in their literal form.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatElem(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Set:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatElem(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Dict:
		parts := make([]string, 0, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			parts = append(parts, fmt.Sprintf("%q: %s", k, formatElem(val)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatElem(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return FormatValue(v)
}
