package playlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-bunny/aural-player/internal/domain"
)

func TestStore_SortFlatByTitle(t *testing.T) {
	s := NewStore(nil)
	s.AddTrack(testTrack("cherry", "A", "X"))
	s.AddTrack(testTrack("apple", "B", "X"))
	s.AddTrack(testTrack("Banana", "C", "X"))

	s.Sort(domain.SortCriteria{Field: domain.SortByTitle})

	assert.Equal(t, []string{"/music/apple.mp3", "/music/Banana.mp3", "/music/cherry.mp3"}, paths(s))
}

func TestStore_SortFlatDescending(t *testing.T) {
	s := NewStore(nil)
	s.AddTrack(testTrack("apple", "A", "X"))
	s.AddTrack(testTrack("cherry", "B", "X"))
	s.AddTrack(testTrack("banana", "C", "X"))

	s.Sort(domain.SortCriteria{Field: domain.SortByTitle, Descending: true})

	assert.Equal(t, []string{"/music/cherry.mp3", "/music/banana.mp3", "/music/apple.mp3"}, paths(s))
}

func TestStore_SortIsStableOnTies(t *testing.T) {
	s := NewStore(nil)
	a := testTrack("first", "Same Artist", "X")
	b := testTrack("second", "Same Artist", "X")
	c := testTrack("third", "Same Artist", "X")
	s.AddTrack(a)
	s.AddTrack(b)
	s.AddTrack(c)

	// Sorting by a key every track shares must preserve insertion order.
	s.Sort(domain.SortCriteria{Field: domain.SortByArtist})

	assert.Equal(t, []string{"/music/first.mp3", "/music/second.mp3", "/music/third.mp3"}, paths(s))
}

func TestStore_SortByDuration(t *testing.T) {
	s := NewStore(nil)
	long := testTrack("long", "A", "X")
	long.Duration = 10 * time.Minute
	short := testTrack("short", "A", "X")
	short.Duration = time.Minute
	s.AddTrack(long)
	s.AddTrack(short)

	s.Sort(domain.SortCriteria{Field: domain.SortByDuration})

	assert.Equal(t, []string{"/music/short.mp3", "/music/long.mp3"}, paths(s))
}

func TestStore_GroupedSortStaysWithinGroups(t *testing.T) {
	s := NewStore(nil)
	s.AddTrack(testTrack("zebra", "ArtistA", "X"))
	s.AddTrack(testTrack("yak", "ArtistB", "X"))
	s.AddTrack(testTrack("aardvark", "ArtistA", "X"))

	s.Sort(domain.SortCriteria{
		Field:     domain.SortByTitle,
		Scope:     domain.SortScopeGroups,
		GroupType: domain.GroupTypeArtist,
	})

	// Flat order untouched.
	assert.Equal(t, []string{"/music/zebra.mp3", "/music/yak.mp3", "/music/aardvark.mp3"}, paths(s))

	// ArtistA's group reordered internally; groups themselves not moved.
	groupA, ok := s.GroupAt(domain.GroupTypeArtist, 0)
	require.True(t, ok)
	assert.Equal(t, "ArtistA", groupA.Name)
	require.Equal(t, 2, groupA.Size())
	assert.Equal(t, "aardvark", groupA.Tracks[0].Title)
	assert.Equal(t, "zebra", groupA.Tracks[1].Title)
}
