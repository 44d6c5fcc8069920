package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchFixture builds a small populated index for query tests.
func searchFixture(t *testing.T) *Store {
	t.Helper()
	store := newTestStore(t)
	fetcher := &fakeFetcher{docs: map[string]string{"mdi": mdiDoc, "lucide": lucideDoc, "fa": faDoc}}
	_, err := newTestBuilder(fetcher).Build(context.Background(), store, testCollections("mdi", "lucide", "fa"), false)
	require.NoError(t, err)
	return store
}

func TestSearchExactNameIsFound(t *testing.T) {
	store := searchFixture(t)

	results, err := store.Search(context.Background(), "settings", 10, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "mdi", results[0].Prefix)
	assert.Equal(t, "settings", results[0].Name)
}

func TestSearchPrefixOfToken(t *testing.T) {
	store := searchFixture(t)

	// Each query token matches indexed tokens by prefix.
	results, err := store.Search(context.Background(), "sett", 10, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "settings", results[0].Name)
}

func TestSearchMatchesAliases(t *testing.T) {
	store := searchFixture(t)

	// "house" exists only as an alias of mdi:home (and its children).
	results, err := store.Search(context.Background(), "house", 10, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, "mdi", r.Prefix)
	}
}

func TestSearchMultiTokenRequiresAll(t *testing.T) {
	store := searchFixture(t)

	// Both tokens must match the same row: "home house" only matches
	// icons carrying the house alias, not every icon named home.
	results, err := store.Search(context.Background(), "home house", 10, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, "mdi", r.Prefix, "lucide:home has no house alias")
	}
}

func TestSearchRankedBestFirst(t *testing.T) {
	store := searchFixture(t)

	results, err := store.Search(context.Background(), "home", 10, nil)
	require.NoError(t, err)
	require.Greater(t, len(results), 1)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearchPrefixFilter(t *testing.T) {
	store := searchFixture(t)

	results, err := store.Search(context.Background(), "home", 10, []string{"lucide"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "lucide", results[0].Prefix)
}

func TestSearchUnknownPrefixYieldsNothing(t *testing.T) {
	store := searchFixture(t)

	results, err := store.Search(context.Background(), "home", 10, []string{"no-such-set"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLimitTruncates(t *testing.T) {
	store := searchFixture(t)

	results, err := store.Search(context.Background(), "home", 1, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchNonPositiveLimit(t *testing.T) {
	store := searchFixture(t)

	for _, limit := range []int{0, -1} {
		results, err := store.Search(context.Background(), "home", limit, nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	store := searchFixture(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := store.Search(context.Background(), query, 10, nil)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	}
}

func TestSearchQuotesAreNeutralized(t *testing.T) {
	store := searchFixture(t)

	// FTS5 operators and quotes in user input must not break the query.
	_, err := store.Search(context.Background(), `home" OR "x`, 10, nil)
	require.NoError(t, err)
	_, err = store.Search(context.Background(), `NEAR AND NOT`, 10, nil)
	require.NoError(t, err)
}

func TestBuildMatchExpr(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"home", `"home"*`},
		{"home outline", `"home"* "outline"*`},
		{"  spaced   out  ", `"spaced"* "out"*`},
		{`with"quote`, `"with""quote"*`},
	}
	for _, tt := range tests {
		got, err := buildMatchExpr(tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
