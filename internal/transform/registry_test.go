package transform

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
	"github.com/eshaffer321/cart-bundle-transforms/internal/infrastructure/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubTransform struct {
	name   string
	result cart.Result
	calls  int
}

func (s *stubTransform) Name() string        { return s.name }
func (s *stubTransform) Description() string { return "stub" }
func (s *stubTransform) Run(*cart.Input) cart.Result {
	s.calls++
	return s.result
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry(quietLogger())
	stub := &stubTransform{name: "stub"}

	require.NoError(t, r.Register(stub))

	got, err := r.Get("stub")
	require.NoError(t, err)
	assert.Same(t, stub, got)

	err = r.Register(&stubTransform{name: "stub"})
	assert.Error(t, err)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTransform))
}

func TestRegistry_ListIsSorted(t *testing.T) {
	r := NewRegistry(quietLogger())
	require.NoError(t, r.Register(&stubTransform{name: "zeta"}))
	require.NoError(t, r.Register(&stubTransform{name: "alpha"}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name())
	assert.Equal(t, "zeta", list[1].Name())
}

func TestRegistry_Run(t *testing.T) {
	r := NewRegistry(quietLogger())
	stub := &stubTransform{name: "stub", result: cart.NoChanges()}
	require.NoError(t, r.Register(stub))

	result, err := r.Run("stub", &cart.Input{})
	require.NoError(t, err)
	assert.Equal(t, cart.NoChanges(), result)
	assert.Equal(t, 1, stub.calls)

	_, err = r.Run("nope", &cart.Input{})
	assert.True(t, errors.Is(err, ErrUnknownTransform))
}

func TestNewDefaultRegistry(t *testing.T) {
	t.Run("registers enabled transforms", func(t *testing.T) {
		r, err := NewDefaultRegistry(config.Default().Transforms, quietLogger())
		require.NoError(t, err)

		var names []string
		for _, tr := range r.List() {
			names = append(names, tr.Name())
		}
		assert.Equal(t, []string{"expand", "merge"}, names)
	})

	t.Run("skips disabled transforms", func(t *testing.T) {
		cfg := config.Default().Transforms
		cfg.Expand.Enabled = false

		r, err := NewDefaultRegistry(cfg, quietLogger())
		require.NoError(t, err)

		_, err = r.Get("expand")
		assert.Error(t, err)
		_, err = r.Get("merge")
		assert.NoError(t, err)
	})
}
