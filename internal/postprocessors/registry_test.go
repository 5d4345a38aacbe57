package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.Empty(t, r.builders)
}

func TestRegistry_Build_Success(t *testing.T) {
	r := NewRegistry()

	r.Register("test", func(cfg map[string]any) (driven.PostProcessor, error) {
		name := "default"
		if n, ok := cfg["name"].(string); ok {
			name = n
		}
		return &mockProcessor{name: name}, nil
	})

	proc, err := r.Build("test", map[string]any{"name": "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", proc.Name())
}

func TestRegistry_Build_UnknownProcessor(t *testing.T) {
	_, err := NewRegistry().Build("unknown", nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_Build_BuilderError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("bad", func(_ map[string]any) (driven.PostProcessor, error) { return nil, boom })

	_, err := r.Build("bad", nil)
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())

	for _, name := range []string{"beta", "alpha"} {
		r.Register(name, func(_ map[string]any) (driven.PostProcessor, error) {
			return &mockProcessor{name: name}, nil
		})
	}

	assert.True(t, r.Has("alpha"))
	assert.False(t, r.Has("gamma"))
	assert.Equal(t, []string{"alpha", "beta"}, r.Names())
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, name := range DefaultProcessors {
		assert.True(t, r.Has(name), name)
	}
}

func TestBuildPipeline_Defaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := BuildPipeline(r, nil, DefaultProcessors...)
	require.NoError(t, err)
	assert.Equal(t, DefaultProcessors, p.Names())

	got, err := p.Process(context.Background(), "東京は首都である。\n| 1 || 2\n人口は多い。")
	require.NoError(t, err)
	assert.Equal(t, []string{"東京は首都である。", "人口は多い。"}, got)
}

func TestBuildPipeline_WithConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	configs := map[string]map[string]any{
		"sentences": {"min_runes": int64(5)},
	}
	p, err := BuildPipeline(r, configs, "sentences")
	require.NoError(t, err)

	got, err := p.Process(context.Background(), "はい。東京は首都である。")
	require.NoError(t, err)
	assert.Equal(t, []string{"東京は首都である。"}, got)
}

func TestBuildPipeline_UnknownName(t *testing.T) {
	_, err := BuildPipeline(NewRegistry(), nil, "missing")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestGetIntFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      map[string]any
		key      string
		expected int
	}{
		{"int value", map[string]any{"size": 100}, "size", 100},
		{"int64 value", map[string]any{"size": int64(200)}, "size", 200},
		{"float64 value", map[string]any{"size": float64(300)}, "size", 300},
		{"string value", map[string]any{"size": "400"}, "size", 0},
		{"missing key", map[string]any{"other": 100}, "size", 0},
		{"nil config", nil, "size", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getIntFromConfig(tt.cfg, tt.key))
		})
	}
}
