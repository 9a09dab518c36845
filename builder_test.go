// File: argmap/builder_test.go
package argmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBuild(t *testing.T) {
	d, err := NewBuilder().
		WithArgs([]string{"model.layers=12", "save"}).
		Build()
	require.NoError(t, err)

	v, _ := d.GetPath("model.layers")
	assert.Equal(t, int64(12), v)
	v, _ = d.Get("save")
	assert.Equal(t, true, v)
}

func TestBuilderWithDefaults(t *testing.T) {
	d, err := NewBuilder().
		WithArgs([]string{"lr=0.01"}).
		WithDefaults(map[string]any{"lr": 0.1, "epochs": int64(10)}).
		Build()
	require.NoError(t, err)

	v, _ := d.Get("lr")
	assert.Equal(t, 0.01, v)
	v, _ = d.Get("epochs")
	assert.Equal(t, int64(10), v)
}

func TestBuilderStrictToggle(t *testing.T) {
	b := func() *Builder {
		return NewBuilder().
			WithArgs([]string{"extra=1"}).
			WithDefaults(map[string]any{"lr": 0.1})
	}

	_, err := b().Build()
	assert.ErrorIs(t, err, ErrStrictKey, "strict by default")

	d, err := b().WithStrict(false).Build()
	require.NoError(t, err)
	assert.True(t, d.Has("extra"))
}

func TestBuilderFreeze(t *testing.T) {
	d, err := NewBuilder().
		WithArgs([]string{"a=1"}).
		WithFreeze(true).
		Build()
	require.NoError(t, err)
	assert.True(t, d.Frozen())
}

func TestBuilderValidators(t *testing.T) {
	t.Run("run in order", func(t *testing.T) {
		var order []int
		_, err := NewBuilder().
			WithArgs([]string{"a=1"}).
			WithValidator(func(*Dict) error { order = append(order, 1); return nil }).
			WithValidator(func(*Dict) error { order = append(order, 2); return nil }).
			Build()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("failure aborts", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewBuilder().
			WithArgs([]string{"a=1"}).
			WithValidator(func(*Dict) error { return boom }).
			Build()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil validator ignored", func(t *testing.T) {
		_, err := NewBuilder().
			WithArgs([]string{"a=1"}).
			WithValidator(nil).
			Build()
		assert.NoError(t, err)
	})
}

func TestBuilderWarnFunc(t *testing.T) {
	var warnings []string
	_, err := NewBuilder().
		WithArgs([]string{"a=1", "a=2"}).
		WithAllowOverwrites(true).
		WithWarnFunc(func(msg string) { warnings = append(warnings, msg) }).
		Build()
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}

func TestBuilderLookupEnv(t *testing.T) {
	d, err := NewBuilder().
		WithArgs([]string{"p=$ROOT/data"}).
		WithLookupEnv(func(name string) (string, bool) {
			if name == "ROOT" {
				return "/srv", true
			}
			return "", false
		}).
		Build()
	require.NoError(t, err)
	v, _ := d.Get("p")
	assert.Equal(t, "/srv/data", v)
}

func TestBuilderMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder().WithArgs([]string{"a="}).MustBuild()
	})
}

func TestBuilderBuildAndScan(t *testing.T) {
	var cfg struct {
		Layers int    `argmap:"layers"`
		Name   string `argmap:"name"`
	}
	err := NewBuilder().
		WithArgs([]string{"model.layers=12", "model.name=resnet"}).
		BuildAndScan("model", &cfg)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Layers)
	assert.Equal(t, "resnet", cfg.Name)
}
