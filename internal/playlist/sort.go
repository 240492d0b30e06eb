package playlist

import (
	"sort"
	"strings"

	"github.com/code-bunny/aural-player/internal/domain"
)

// Sort orders the playlist by the given criteria. Flat scope reorders the
// whole flat list; group scope reorders tracks within each group of one
// grouping and leaves the flat list untouched. Sorting is stable with
// respect to ties on the field.
func (s *Store) Sort(criteria domain.SortCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()

	less := lessFunc(criteria)

	switch criteria.Scope {
	case domain.SortScopeGroups:
		for _, group := range s.groupings[criteria.GroupType].groups {
			tracks := group.Tracks
			sort.SliceStable(tracks, func(i, j int) bool { return less(tracks[i], tracks[j]) })
		}
	default:
		sort.SliceStable(s.tracks, func(i, j int) bool { return less(s.tracks[i], s.tracks[j]) })
		s.reindex()
	}
	s.logger.Debug("sorted playlist", "field", int(criteria.Field), "scope", int(criteria.Scope))
}

func lessFunc(criteria domain.SortCriteria) func(a, b *domain.Track) bool {
	var less func(a, b *domain.Track) bool
	switch criteria.Field {
	case domain.SortByArtist:
		less = func(a, b *domain.Track) bool { return foldLess(a.Artist, b.Artist) }
	case domain.SortByAlbum:
		less = func(a, b *domain.Track) bool { return foldLess(a.Album, b.Album) }
	case domain.SortByDuration:
		less = func(a, b *domain.Track) bool { return a.Duration < b.Duration }
	case domain.SortByPath:
		less = func(a, b *domain.Track) bool { return a.Path < b.Path }
	default:
		less = func(a, b *domain.Track) bool { return foldLess(a.DisplayName(), b.DisplayName()) }
	}
	if criteria.Descending {
		asc := less
		return func(a, b *domain.Track) bool { return asc(b, a) }
	}
	return less
}

func foldLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
