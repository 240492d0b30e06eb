package playlist

import (
	"sort"

	"github.com/code-bunny/aural-player/internal/domain"
)

// MoveUp moves the tracks at the given flat indexes one slot toward the
// front. Indexes need not be contiguous. A track already at index 0, or
// blocked by a selected track that could not move, stays put and reports
// OldIndex == NewIndex. Invalid indexes are skipped.
func (s *Store) MoveUp(indexes []int) domain.MoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := s.validSelection(indexes)
	sort.Ints(selected)

	var result domain.MoveResult
	floor := 0
	for _, idx := range selected {
		if idx <= floor {
			// At the top, or pinned against an unmovable selected neighbor.
			result.Moves = append(result.Moves, domain.TrackMove{
				Track: s.tracks[idx], OldIndex: idx, NewIndex: idx,
			})
			floor = idx + 1
			continue
		}
		s.tracks[idx-1], s.tracks[idx] = s.tracks[idx], s.tracks[idx-1]
		result.Moves = append(result.Moves, domain.TrackMove{
			Track: s.tracks[idx-1], OldIndex: idx, NewIndex: idx - 1,
		})
	}
	s.reindex()
	return result
}

// MoveDown is the mirror of MoveUp: tracks move one slot toward the end,
// processed in descending index order so adjacent selections travel
// together.
func (s *Store) MoveDown(indexes []int) domain.MoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := s.validSelection(indexes)
	sort.Sort(sort.Reverse(sort.IntSlice(selected)))

	var result domain.MoveResult
	ceiling := len(s.tracks) - 1
	for _, idx := range selected {
		if idx >= ceiling {
			result.Moves = append(result.Moves, domain.TrackMove{
				Track: s.tracks[idx], OldIndex: idx, NewIndex: idx,
			})
			ceiling = idx - 1
			continue
		}
		s.tracks[idx], s.tracks[idx+1] = s.tracks[idx+1], s.tracks[idx]
		result.Moves = append(result.Moves, domain.TrackMove{
			Track: s.tracks[idx+1], OldIndex: idx, NewIndex: idx + 1,
		})
	}
	s.reindex()
	return result
}

// validSelection drops out-of-range and duplicate indexes. Callers must
// hold the write lock.
func (s *Store) validSelection(indexes []int) []int {
	seen := make(map[int]bool, len(indexes))
	var out []int
	for _, idx := range indexes {
		if idx < 0 || idx >= len(s.tracks) || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out
}
