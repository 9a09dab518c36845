// File: argmap/classify_test.go
package argmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAuto(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"int", "1", int64(1)},
		{"negative int", "-12", int64(-12)},
		{"zero", "0", int64(0)},
		{"float", "3.0", 3.0},
		{"scientific", "1e-4", 1e-4},
		{"capital exponent", "1E4", 1e4},
		{"bool lower", "true", true},
		{"bool upper", "True", true},
		{"bool false", "FALSE", false},
		{"leading zero stays string", "04", "04"},
		{"leading zero one stays string", "01", "01"},
		{"leading zero float stays string", "007", "007"},
		{"plain string", "hello", "hello"},
		{"path string", "/tmp/out", "/tmp/out"},
		{"none literal", "None", nil},
		{"list literal", "[1, 2]", []any{int64(1), int64(2)}},
		{"quoted number stays string", "'04'", "04"},
		{"set literal", "{1, 2}", Set{int64(1), int64(2)}},
		{"malformed literal stays string", "[1, 2", "[1, 2"},
		{"empty value", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.raw, KindAuto)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyAutoReinfersContainerElements(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"bool word in list", "['false']", []any{false}},
		{"mixed strings in list", "['1', 2, 'x']", []any{int64(1), int64(2), "x"}},
		{"nested list", "[['false'], 'true']", []any{[]any{false}, true}},
		{"leading zero element stays string", "['04']", []any{"04"}},
		{"set elements", "{'true', '2'}", Set{true, int64(2)}},
		{"tuple elements", "('1', 'false')", []any{int64(1), false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.raw, KindAuto)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("dict values", func(t *testing.T) {
		got, err := Classify("{'a': 'true', 'b': '3', 'c': 'x'}", KindAuto)
		require.NoError(t, err)
		d, ok := got.(*Dict)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"a": true, "b": int64(3), "c": "x"}, d.ToMap())
	})

	t.Run("top-level quoted scalar is not re-inferred", func(t *testing.T) {
		got, err := Classify("'false'", KindAuto)
		require.NoError(t, err)
		assert.Equal(t, "false", got)
	})
}

func TestClassifyAutoDict(t *testing.T) {
	got, err := Classify("{'a': 1}", KindAuto)
	require.NoError(t, err)
	d, ok := got.(*Dict)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": int64(1)}, d.ToMap())
}

func TestClassifyForced(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		for raw, want := range map[string]bool{
			"false": false, "False": false, "0": false, "": false,
			"true": true, "yes": true, "1": true, "anything": true,
		} {
			got, err := Classify(raw, KindBool)
			require.NoError(t, err)
			assert.Equal(t, want, got, "raw %q", raw)
		}
	})

	t.Run("int truncates floats", func(t *testing.T) {
		got, err := Classify("3.9", KindInt)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got)
	})

	t.Run("int rejects non-numeric", func(t *testing.T) {
		_, err := Classify("abc", KindInt)
		assert.ErrorIs(t, err, ErrTypeCoercion)
	})

	t.Run("float", func(t *testing.T) {
		got, err := Classify("2", KindFloat)
		require.NoError(t, err)
		assert.Equal(t, 2.0, got)
	})

	t.Run("str keeps raw token", func(t *testing.T) {
		got, err := Classify("04", KindString)
		require.NoError(t, err)
		assert.Equal(t, "04", got)
	})

	t.Run("list from literal", func(t *testing.T) {
		got, err := Classify("[1, 2]", KindList)
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), int64(2)}, got)
	})

	t.Run("list from plain string splits characters", func(t *testing.T) {
		got, err := Classify("hello", KindList)
		require.NoError(t, err)
		assert.Equal(t, []any{"h", "e", "l", "l", "o"}, got)
	})

	t.Run("set from plain string deduplicates characters", func(t *testing.T) {
		got, err := Classify("hello", KindSet)
		require.NoError(t, err)
		assert.Equal(t, Set{"h", "e", "l", "o"}, got)
	})

	t.Run("dict", func(t *testing.T) {
		got, err := Classify("{'k': 1}", KindDict)
		require.NoError(t, err)
		d, ok := got.(*Dict)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"k": int64(1)}, d.ToMap())
	})

	t.Run("dict rejects non-mapping", func(t *testing.T) {
		_, err := Classify("[1]", KindDict)
		assert.ErrorIs(t, err, ErrTypeCoercion)
	})
}

func TestSplitTypedKey(t *testing.T) {
	tests := []struct {
		key      string
		wantKey  string
		wantKind Kind
	}{
		{"layers___int", "layers", KindInt},
		{"name___str", "name", KindString},
		{"flags___bool", "flags", KindBool},
		{"lr___float", "lr", KindFloat},
		{"chars___list", "chars", KindList},
		{"uniq___set", "uniq", KindSet},
		{"mapping___dict", "mapping", KindDict},
		{"plain", "plain", KindAuto},
		{"weird___suffix", "weird___suffix", KindAuto},
		{"a.b___int", "a.b", KindInt},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			key, kind := SplitTypedKey(tt.key)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}
