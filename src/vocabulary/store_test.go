package vocabulary

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStore_NoPathUsesDefaults(t *testing.T) {
	s, err := LoadStore("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s.Get())
}

func TestLoadStore_OverridesOnlySetTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cuisine:\n  - Nyonya\n  - Peranakan\n"), 0o644))

	s, err := LoadStore(path)
	require.NoError(t, err)

	v := s.Get()
	assert.Equal(t, []string{"nyonya", "peranakan"}, v.CuisineTerms)
	assert.Equal(t, Default().ReadinessPhrases, v.ReadinessPhrases)
}

func TestLoadStore_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cuisine: [unterminated"), 0o644))

	_, err := LoadStore(path)
	assert.Error(t, err)
}

func TestStore_WatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("atmosphere: [rooftop]\n"), 0o644))

	s, err := LoadStore(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte("atmosphere: [speakeasy]\n"), 0o644))

	assert.Eventually(t, func() bool {
		terms := s.Get().AtmosphereTerms
		return len(terms) == 1 && terms[0] == "speakeasy"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestStore_WatchMissingDirectory(t *testing.T) {
	s := &Store{path: filepath.Join(t.TempDir(), "missing", "vocabulary.yaml")}
	s.current.Store(Default())

	err := s.Watch(context.Background())
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	v := Default()
	assert.Equal(t, []string{"italian", "pizza"}, Matches("cheap italian pizza tonight", v.CuisineTerms))
	assert.True(t, ContainsAny("somewhere near klcc", v.LocationSignals))
	assert.False(t, ContainsAny("hello", v.BudgetSignals))
}
