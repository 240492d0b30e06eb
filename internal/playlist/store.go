// Package playlist owns the canonical flat ordered track list and its
// derived groupings, and implements every structural mutation over them.
// The Store serializes mutations behind one mutex; any interleaving of
// callers yields a consistent flat+grouped state.
package playlist

import (
	"log/slog"
	"sync"
	"time"

	"github.com/code-bunny/aural-player/internal/domain"
)

// Store is the single source of truth for the playlist. Every track appears
// exactly once in the flat list and exactly once in each grouping.
type Store struct {
	mu        sync.RWMutex
	tracks    []*domain.Track
	byPath    map[string]int
	groupings map[domain.GroupType]*grouping
	logger    *slog.Logger
}

// RemovalResult reports which tracks a RemoveTracks call actually removed.
type RemovalResult struct {
	Removed []*domain.Track
}

// NewStore creates an empty playlist store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		byPath:    make(map[string]int),
		groupings: make(map[domain.GroupType]*grouping),
		logger:    logger,
	}
	for _, gt := range domain.GroupTypes {
		s.groupings[gt] = newGrouping(gt)
	}
	return s
}

// AddTrack appends the track to the flat list and every grouping. Adding a
// path already present is a no-op: the existing index is returned with
// added=false.
func (s *Store) AddTrack(t *domain.Track) (index int, added bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.byPath[t.Path]; ok {
		s.logger.Debug("track already present", "path", t.Path, "index", idx)
		return idx, false
	}

	index = len(s.tracks)
	s.tracks = append(s.tracks, t)
	s.byPath[t.Path] = index
	for _, g := range s.groupings {
		g.add(t)
	}
	s.logger.Debug("added track", "path", t.Path, "index", index)
	return index, true
}

// RemoveTracks removes the tracks at the given flat indexes. Invalid
// indexes are skipped. Groupings are recomputed; groups left empty are
// deleted.
func (s *Store) RemoveTracks(indexes []int) RemovalResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := make(map[int]bool, len(indexes))
	var removed []*domain.Track
	for _, idx := range indexes {
		if idx < 0 || idx >= len(s.tracks) || doomed[idx] {
			continue
		}
		doomed[idx] = true
		removed = append(removed, s.tracks[idx])
	}
	if len(removed) == 0 {
		return RemovalResult{}
	}

	kept := s.tracks[:0]
	for i, t := range s.tracks {
		if !doomed[i] {
			kept = append(kept, t)
		}
	}
	s.tracks = kept
	s.reindex()
	for _, t := range removed {
		for _, g := range s.groupings {
			g.remove(t)
		}
	}
	s.logger.Info("removed tracks", "count", len(removed), "remaining", len(s.tracks))
	return RemovalResult{Removed: removed}
}

// Clear empties the flat list and destroys all groups.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks = nil
	s.byPath = make(map[string]int)
	for _, gt := range domain.GroupTypes {
		s.groupings[gt] = newGrouping(gt)
	}
	s.logger.Info("cleared playlist")
}

// Size returns the number of tracks in the flat list.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks)
}

// TotalDuration returns the combined duration of all tracks.
func (s *Store) TotalDuration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total time.Duration
	for _, t := range s.tracks {
		total += t.Duration
	}
	return total
}

// TrackAt returns the track at a flat index.
func (s *Store) TrackAt(index int) (*domain.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.tracks) {
		return nil, false
	}
	return s.tracks[index], true
}

// IndexOfPath returns the flat index of the track with the given resolved
// path, or -1.
func (s *Store) IndexOfPath(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx, ok := s.byPath[path]; ok {
		return idx
	}
	return -1
}

// Contains reports whether a resolved path is already in the playlist.
func (s *Store) Contains(path string) bool {
	return s.IndexOfPath(path) >= 0
}

// Tracks returns a snapshot copy of the flat list.
func (s *Store) Tracks() []*domain.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// GroupCount returns the number of groups in one grouping.
func (s *Store) GroupCount(gt domain.GroupType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groupings[gt].groups)
}

// GroupAt returns the group at position index within a grouping.
func (s *Store) GroupAt(gt domain.GroupType, index int) (*domain.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := s.groupings[gt]
	if index < 0 || index >= len(g.groups) {
		return nil, false
	}
	return g.groups[index], true
}

// IndexOfGroup returns a group's position within its grouping, or -1.
func (s *Store) IndexOfGroup(group *domain.Group) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, g := range s.groupings[group.Type].groups {
		if g == group {
			return i
		}
	}
	return -1
}

// GroupedTrackFor locates a track within one grouping.
func (s *Store) GroupedTrackFor(t *domain.Track, gt domain.GroupType) (domain.GroupedTrack, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groupings[gt].byName[t.GroupKey(gt)]
	if !ok {
		return domain.GroupedTrack{}, false
	}
	for i, gt := range group.Tracks {
		if gt == t {
			return domain.GroupedTrack{Track: t, Group: group, Index: i}, true
		}
	}
	return domain.GroupedTrack{}, false
}

// reindex rebuilds the path index after a structural change. Callers must
// hold the write lock.
func (s *Store) reindex() {
	for i, t := range s.tracks {
		s.byPath[t.Path] = i
	}
	for path, idx := range s.byPath {
		if idx >= len(s.tracks) || s.tracks[idx].Path != path {
			delete(s.byPath, path)
		}
	}
}
