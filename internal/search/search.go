// Package search provides fuzzy matching over the playlist, either across
// the whole flat list or restricted to one grouping.
package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/code-bunny/aural-player/internal/domain"
	"github.com/code-bunny/aural-player/internal/playlist"
)

// Result is one search hit with match metadata for highlighting.
type Result struct {
	Track          *domain.Track
	Index          int   // Flat playlist index at query time
	Score          int   // Lower is better
	MatchedIndexes []int // Matched rune positions within the display name
}

// trackIndex implements sahilm/fuzzy.Source over a track snapshot.
type trackIndex struct {
	tracks []*domain.Track
	names  []string // Pre-computed lowercase display names
}

func (idx *trackIndex) String(i int) string { return idx.names[i] }
func (idx *trackIndex) Len() int            { return len(idx.tracks) }

// Service runs queries against a playlist store snapshot.
type Service struct {
	store  *playlist.Store
	logger *slog.Logger
}

// NewService creates a search service over the store.
func NewService(store *playlist.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Search matches the query against every track's display name, artist and
// album in the flat playlist, ranked best-first.
func (s *Service) Search(query string) []Result {
	return s.search(query, s.store.Tracks())
}

// SearchGroup restricts the query to the tracks of one grouping's group.
func (s *Service) SearchGroup(query string, gt domain.GroupType, groupIndex int) []Result {
	group, ok := s.store.GroupAt(gt, groupIndex)
	if !ok {
		return nil
	}
	return s.search(query, group.Tracks)
}

func (s *Service) search(query string, tracks []*domain.Track) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(tracks) == 0 {
		return nil
	}

	idx := &trackIndex{tracks: tracks, names: make([]string, len(tracks))}
	for i, t := range tracks {
		idx.names[i] = strings.ToLower(t.DisplayName())
	}

	matches := sahilm.FindFrom(query, idx)

	results := make([]Result, 0, len(matches))
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		seen[m.Index] = true
		results = append(results, Result{
			Track:          tracks[m.Index],
			Index:          s.store.IndexOfPath(tracks[m.Index].Path),
			Score:          scoreFor(idx.names[m.Index], query),
			MatchedIndexes: m.MatchedIndexes,
		})
	}

	// Name matching misses tracks that only hit on artist or album; a
	// ranked pass over those fields catches them.
	for i, t := range tracks {
		if seen[i] {
			continue
		}
		fields := []string{strings.ToLower(t.Artist), strings.ToLower(t.Album)}
		if len(fuzzy.RankFindFold(query, fields)) == 0 {
			continue
		}
		results = append(results, Result{
			Track: t,
			Index: s.store.IndexOfPath(t.Path),
			Score: 200 + scoreFor(idx.names[i], query),
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score < results[j].Score })
	s.logger.Debug("search complete", "query", query, "results", len(results))
	return results
}

// scoreFor ranks a title against the query; lower is better.
func scoreFor(title, query string) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	default:
		return 100 + fuzzy.LevenshteinDistance(query, title)
	}
}
