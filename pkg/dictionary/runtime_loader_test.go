package dictionary

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bastiangx/morpho/pkg/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeSession(t *testing.T) {
	rt := NewRuntime(nil)
	assert.Equal(t, SessionName, rt.Model().Name)
	assert.Equal(t, 0, rt.Lexicon().Size())

	_, err := rt.Reload(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestRuntimeReload(t *testing.T) {
	dir := newModelDir(t)
	rt := NewRuntime(nil, WithLexiconOptions(lexicon.WithCacheSize(16)))

	model, err := rt.Reload(context.Background(), dir)
	require.NoError(t, err)
	assert.Same(t, model, rt.Model())
	assert.Equal(t, 4, rt.Lexicon().Size())

	// edits made in the session are dropped by a reload of the same directory
	require.NoError(t, rt.Lexicon().Insert(lexicon.NewEntry("zzz")))
	_, err = rt.Reload(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, rt.Lexicon().HasKey("zzz"))

	_, err = rt.Reload(context.Background(), filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Equal(t, "jp", rt.Model().Name)
}
