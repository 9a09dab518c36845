// File: argmap/literal_test.go
package argmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteralScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"int", "42", int64(42)},
		{"negative int", "-7", int64(-7)},
		{"positive sign", "+3", int64(3)},
		{"zero", "0", int64(0)},
		{"float", "3.5", 3.5},
		{"float exponent", "1e-4", 1e-4},
		{"float leading dot", ".5", 0.5},
		{"float trailing dot", "2.", 2.0},
		{"hex", "0x1A", int64(26)},
		{"octal", "0o17", int64(15)},
		{"binary", "0b101", int64(5)},
		{"true", "True", true},
		{"false", "False", false},
		{"none", "None", nil},
		{"single quoted", "'hello'", "hello"},
		{"double quoted", `"hello"`, "hello"},
		{"escapes", `'a\n\tb'`, "a\n\tb"},
		{"escaped quote", `'it\'s'`, "it's"},
		{"hex escape", `'\x41'`, "A"},
		{"unicode escape", `'\u00e9'`, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLiteral(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLiteralContainers(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		got, err := ParseLiteral("[1, 2.5, 'a', True, None]")
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), 2.5, "a", true, nil}, got)
	})

	t.Run("nested list", func(t *testing.T) {
		got, err := ParseLiteral("[[1, 2], [3]]")
		require.NoError(t, err)
		assert.Equal(t, []any{[]any{int64(1), int64(2)}, []any{int64(3)}}, got)
	})

	t.Run("empty list", func(t *testing.T) {
		got, err := ParseLiteral("[]")
		require.NoError(t, err)
		assert.Equal(t, []any{}, got)
	})

	t.Run("tuple becomes list", func(t *testing.T) {
		got, err := ParseLiteral("(1, 2)")
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), int64(2)}, got)
	})

	t.Run("single element tuple needs comma", func(t *testing.T) {
		got, err := ParseLiteral("(1,)")
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1)}, got)
	})

	t.Run("parenthesized value is grouping", func(t *testing.T) {
		got, err := ParseLiteral("(1)")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("set deduplicates in order", func(t *testing.T) {
		got, err := ParseLiteral("{1, 2, 2, 3}")
		require.NoError(t, err)
		assert.Equal(t, Set{int64(1), int64(2), int64(3)}, got)
	})

	t.Run("mapping", func(t *testing.T) {
		got, err := ParseLiteral("{'a': 1, 'b': [2, 3]}")
		require.NoError(t, err)
		d, ok := got.(*Dict)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, d.Keys())
		assert.Equal(t, map[string]any{"a": int64(1), "b": []any{int64(2), int64(3)}}, d.ToMap())
	})

	t.Run("non-string mapping keys are stringified", func(t *testing.T) {
		got, err := ParseLiteral("{1: 'x', True: 'y'}")
		require.NoError(t, err)
		d, ok := got.(*Dict)
		require.True(t, ok)
		assert.Equal(t, []string{"1", "True"}, d.Keys())
	})

	t.Run("empty braces are an empty mapping", func(t *testing.T) {
		got, err := ParseLiteral("{}")
		require.NoError(t, err)
		d, ok := got.(*Dict)
		require.True(t, ok)
		assert.Equal(t, 0, d.Len())
	})

	t.Run("nested mapping", func(t *testing.T) {
		got, err := ParseLiteral("{'outer': {'inner': 1}}")
		require.NoError(t, err)
		d, ok := got.(*Dict)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"outer": map[string]any{"inner": int64(1)}}, d.ToMap())
	})
}

func TestParseLiteralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"leading zero int", "04"},
		{"bare identifier", "hello"},
		{"unterminated string", "'abc"},
		{"unterminated list", "[1, 2"},
		{"trailing garbage", "1 2"},
		{"missing mapping value", "{'a':}"},
		{"unhashable set element", "{[1], [2]}"},
		{"empty input", ""},
		{"bad escape", `'\q'`},
		{"missing exponent digits", "1e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLiteral(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseLiteralIntOverflowFallsToFloat(t *testing.T) {
	got, err := ParseLiteral("99999999999999999999")
	require.NoError(t, err)
	assert.IsType(t, float64(0), got)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "None"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"int", int64(42), "42"},
		{"float", 2.5, "2.5"},
		{"string", "plain", "plain"},
		{"list", []any{int64(1), "a"}, `[1, "a"]`},
		{"set", Set{int64(1), int64(2)}, "{1, 2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}
}
