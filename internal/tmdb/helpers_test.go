package tmdb

import (
	"testing"

	"github.com/lepinkainen/marquee/internal/cache"
	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client pointed at a fresh fake TMDB server with the
// cache in a temporary directory.
func newTestClient(t *testing.T) (*Client, *testutil.TMDBServer) {
	t.Helper()

	env := testutil.NewTestEnv(t)
	testutil.ResetConfig(t)
	testutil.SetupTestCache(t, env)
	require.NoError(t, cache.ResetGlobalCache())
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })

	server := testutil.NewTMDBServer(t)
	client := NewClient("test-key", WithBaseURL(server.URL), WithImageBaseURL(server.URL+"/img"))
	return client, server
}

func TestGetInt(t *testing.T) {
	m := map[string]any{"float": 12.0, "int": 7, "str": "x"}

	v, ok := getInt(m, "float")
	require.True(t, ok)
	require.Equal(t, 12, v)

	v, ok = getInt(m, "int")
	require.True(t, ok)
	require.Equal(t, 7, v)

	_, ok = getInt(m, "str")
	require.False(t, ok)
	_, ok = getInt(m, "missing")
	require.False(t, ok)
}

func TestGetEpisodeRuntime(t *testing.T) {
	v, ok := getEpisodeRuntime(map[string]any{"episode_run_time": []any{45.0, 50.0}})
	require.True(t, ok)
	require.Equal(t, 45, v)

	_, ok = getEpisodeRuntime(map[string]any{"episode_run_time": []any{}})
	require.False(t, ok)
}

func TestNormalizeQuery(t *testing.T) {
	require.Equal(t, "the_matrix__1999_", normalizeQuery("  The Matrix (1999) "))
}
