package playlist

import (
	"fmt"

	"github.com/code-bunny/aural-player/internal/domain"
)

// Reorder applies an explicit set of (fromIndex, toIndex) instructions
// atomically. The op set must form a permutation over the indexes it
// touches: sources and destinations are each unique and the two sets are
// equal. Anything else fails with ErrInvalidReorder and leaves the store
// unchanged.
func (s *Store) Reorder(ops []domain.ReorderOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ops) == 0 {
		return nil
	}

	from := make(map[int]bool, len(ops))
	to := make(map[int]bool, len(ops))
	for _, op := range ops {
		if op.FromIndex < 0 || op.FromIndex >= len(s.tracks) ||
			op.ToIndex < 0 || op.ToIndex >= len(s.tracks) {
			return fmt.Errorf("index out of range (%d -> %d): %w", op.FromIndex, op.ToIndex, domain.ErrInvalidReorder)
		}
		if from[op.FromIndex] || to[op.ToIndex] {
			return fmt.Errorf("duplicate position (%d -> %d): %w", op.FromIndex, op.ToIndex, domain.ErrInvalidReorder)
		}
		from[op.FromIndex] = true
		to[op.ToIndex] = true
	}
	for idx := range from {
		if !to[idx] {
			return fmt.Errorf("index %d vacated but never filled: %w", idx, domain.ErrInvalidReorder)
		}
	}

	reordered := make([]*domain.Track, len(s.tracks))
	copy(reordered, s.tracks)
	for _, op := range ops {
		reordered[op.ToIndex] = s.tracks[op.FromIndex]
	}
	s.tracks = reordered
	s.reindex()
	s.logger.Debug("reordered tracks", "ops", len(ops))
	return nil
}
