// Package playback owns the playing-track cursor and consumes the
// playback-related bus traffic. The actual audio output sits behind the
// Engine interface.
package playback

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/code-bunny/aural-player/internal/domain"
	"github.com/code-bunny/aural-player/internal/playlist"
)

// Engine starts and stops actual sound output. Out of scope for the core;
// cmd wires a stub.
type Engine interface {
	Start(t *domain.Track) error
	Stop()
}

// Sequencer implements the Player capability over a playlist store and an
// engine. It owns the cursor: the flat index of the track currently
// selected for playback. The playlist facade recomputes and publishes the
// cursor after structural changes; UpdateCursor applies those values.
type Sequencer struct {
	mu      sync.Mutex
	store   *playlist.Store
	engine  Engine
	current *domain.Track
	cursor  int
	logger  *slog.Logger
}

var _ domain.Player = (*Sequencer)(nil)

// NewSequencer creates a sequencer with no playing track.
func NewSequencer(store *playlist.Store, engine Engine, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{store: store, engine: engine, cursor: -1, logger: logger}
}

// Play starts the track at the given flat index. When a track is already
// playing and interrupt is false, the call is a no-op returning the
// playing track. Unplayable tracks fail with ErrUnplayableTrack.
func (s *Sequencer) Play(index int, interrupt bool) (*domain.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !interrupt {
		return s.current, nil
	}

	track, ok := s.store.TrackAt(index)
	if !ok {
		return nil, fmt.Errorf("no track at index %d: %w", index, domain.ErrUnplayableTrack)
	}
	if s.current != nil {
		s.engine.Stop()
	}
	if err := s.engine.Start(track); err != nil {
		s.current = nil
		s.cursor = -1
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrUnplayableTrack, track.Path, err)
	}
	s.current = track
	s.cursor = index
	s.logger.Info("playback started", "track", track.DisplayName(), "index", index)
	return track, nil
}

// CurrentlyPlaying reports the playing track and its cursor.
func (s *Sequencer) CurrentlyPlaying() (*domain.Track, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, -1, false
	}
	return s.current, s.cursor, true
}

// UpdateCursor applies a recomputed cursor published after a structural
// mutation. A negative cursor while a track is playing means the track left
// the playlist, which stops playback.
func (s *Sequencer) UpdateCursor(newCursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	if newCursor < 0 {
		s.engine.Stop()
		s.current = nil
		s.cursor = -1
		s.logger.Info("playing track removed, playback stopped")
		return
	}
	s.cursor = newCursor
}

// Stop halts playback and clears the cursor. Returns whether anything was
// actually playing.
func (s *Sequencer) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	s.engine.Stop()
	s.current = nil
	s.cursor = -1
	s.logger.Info("playback stopped")
	return true
}
