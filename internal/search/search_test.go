package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-bunny/aural-player/internal/domain"
	"github.com/code-bunny/aural-player/internal/log"
	"github.com/code-bunny/aural-player/internal/playlist"
)

func seedStore(t *testing.T) *playlist.Store {
	t.Helper()
	store := playlist.NewStore(log.NullLogger())
	tracks := []*domain.Track{
		{Title: "Comfortably Numb", Artist: "Pink Floyd", Album: "The Wall"},
		{Title: "Come Together", Artist: "The Beatles", Album: "Abbey Road"},
		{Title: "Karma Police", Artist: "Radiohead", Album: "OK Computer"},
		{Title: "Paranoid Android", Artist: "Radiohead", Album: "OK Computer"},
	}
	for i, tr := range tracks {
		tr.Path = fmt.Sprintf("/music/%02d.mp3", i)
		tr.Duration = 4 * time.Minute
		_, added := store.AddTrack(tr)
		require.True(t, added)
	}
	return store
}

func TestSearch_TitleMatchRankedFirst(t *testing.T) {
	svc := NewService(seedStore(t), log.NullLogger())

	results := svc.Search("karma police")
	require.NotEmpty(t, results)
	assert.Equal(t, "Karma Police", results[0].Track.Title)
	assert.Equal(t, 0, results[0].Score)
	assert.Equal(t, 2, results[0].Index)
}

func TestSearch_PrefixBeatsSubstring(t *testing.T) {
	svc := NewService(seedStore(t), log.NullLogger())

	results := svc.Search("com")
	require.GreaterOrEqual(t, len(results), 2)
	// Both title hits share the prefix score; fuzz-only matches rank below.
	assert.Equal(t, 10, results[0].Score)
	assert.Equal(t, 10, results[1].Score)
}

func TestSearch_ArtistFallback(t *testing.T) {
	svc := NewService(seedStore(t), log.NullLogger())

	results := svc.Search("radiohead")
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "Radiohead", r.Track.Artist)
		assert.GreaterOrEqual(t, r.Score, 200)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewService(seedStore(t), log.NullLogger())
	assert.Nil(t, svc.Search("  "))
}

func TestSearch_NoMatch(t *testing.T) {
	svc := NewService(seedStore(t), log.NullLogger())
	assert.Empty(t, svc.Search("zzzzqqqq"))
}

func groupIndexByName(t *testing.T, store *playlist.Store, gt domain.GroupType, name string) int {
	t.Helper()
	for i := 0; i < store.GroupCount(gt); i++ {
		g, ok := store.GroupAt(gt, i)
		require.True(t, ok)
		if g.Name == name {
			return i
		}
	}
	t.Fatalf("group %q not found", name)
	return -1
}

func TestSearchGroup_RestrictsToGroup(t *testing.T) {
	store := seedStore(t)
	svc := NewService(store, log.NullLogger())

	idx := groupIndexByName(t, store, domain.GroupTypeArtist, "Radiohead")
	results := svc.SearchGroup("police", domain.GroupTypeArtist, idx)
	require.Len(t, results, 1)
	assert.Equal(t, "Karma Police", results[0].Track.Title)

	// The same query against a group that lacks the track finds nothing.
	other := groupIndexByName(t, store, domain.GroupTypeArtist, "Pink Floyd")
	assert.Empty(t, svc.SearchGroup("police", domain.GroupTypeArtist, other))
}

func TestSearchGroup_BadIndex(t *testing.T) {
	svc := NewService(seedStore(t), log.NullLogger())
	assert.Nil(t, svc.SearchGroup("karma", domain.GroupTypeArtist, 99))
}
