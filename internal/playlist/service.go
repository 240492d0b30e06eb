package playlist

import (
	"fmt"
	"log/slog"

	"github.com/code-bunny/aural-player/internal/bus"
	"github.com/code-bunny/aural-player/internal/domain"
)

// BatchSubmitter is the add orchestrator as the facade sees it.
type BatchSubmitter interface {
	SubmitBatch(paths []string, policy domain.AutoplayPolicy)
}

// Service is the playlist mutator facade. Structural mutations go through
// here so that every one is followed by a playing-cursor recompute and an
// event on the notification bus. The cursor itself is owned by the playback
// component; the facade only reads it via the Player capability and
// publishes the recomputed value.
type Service struct {
	store     *Store
	submitter BatchSubmitter
	notify    *bus.NotificationBus
	requests  *bus.RequestBus
	player    domain.Player
	codec     domain.PlaylistCodec
	logger    *slog.Logger
}

// NewService wires the facade. submitter may be nil when adds are not
// needed (some tests); player may be nil when no playback capability is
// attached, in which case cursor recomputes are skipped.
func NewService(store *Store, submitter BatchSubmitter, notify *bus.NotificationBus, requests *bus.RequestBus, player domain.Player, codec domain.PlaylistCodec, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		submitter: submitter,
		notify:    notify,
		requests:  requests,
		player:    player,
		codec:     codec,
		logger:    logger,
	}
}

// Store exposes the underlying store for read accessors.
func (s *Service) Store() *Store { return s.store }

// Add submits the paths as one asynchronous add batch.
func (s *Service) Add(paths []string, policy domain.AutoplayPolicy) {
	s.submitter.SubmitBatch(paths, policy)
}

// LoadPlaylist ingests a saved playlist file as an add batch.
func (s *Service) LoadPlaylist(path string, policy domain.AutoplayPolicy) {
	s.Add([]string{path}, policy)
}

// SavePlaylist writes the current flat playlist through the codec.
func (s *Service) SavePlaylist(path string) error {
	if err := s.codec.Save(path, s.store.Tracks()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIOFailure, err)
	}
	s.logger.Info("saved playlist", "path", path, "tracks", s.store.Size())
	return nil
}

// Remove removes the tracks at the given indexes. If the playing track is
// among them, the synchronous stop-playback decision completes before the
// removal happens; then the cursor is recomputed and TracksRemoved fires.
func (s *Service) Remove(indexes []int) RemovalResult {
	playing, playingIdx, isPlaying := s.currentlyPlaying()

	if isPlaying && containsIndex(indexes, playingIdx) {
		s.requests.Publish(domain.StopPlaybackRequest{Removed: tracksAt(s.store, indexes)})
	}

	result := s.store.RemoveTracks(indexes)
	if len(result.Removed) == 0 {
		return result
	}

	newCursor := -1
	if isPlaying {
		newCursor = s.store.IndexOfPath(playing.Path)
	}
	s.notify.Publish(domain.TracksRemoved{Tracks: result.Removed, NewCursor: newCursor})
	return result
}

// MoveUp moves the selected tracks one slot up and recomputes the cursor.
func (s *Service) MoveUp(indexes []int) domain.MoveResult {
	result := s.store.MoveUp(indexes)
	s.publishReordered(result)
	return result
}

// MoveDown moves the selected tracks one slot down and recomputes the
// cursor.
func (s *Service) MoveDown(indexes []int) domain.MoveResult {
	result := s.store.MoveDown(indexes)
	s.publishReordered(result)
	return result
}

// Reorder applies an explicit permutation atomically. On success the cursor
// is recomputed by identity and PlaylistReordered fires; on failure the
// store is untouched and no event fires.
func (s *Service) Reorder(ops []domain.ReorderOp) error {
	if err := s.store.Reorder(ops); err != nil {
		return err
	}
	s.publishReordered(domain.MoveResult{})
	return nil
}

// Sort orders the playlist by the criteria and recomputes the cursor.
func (s *Service) Sort(criteria domain.SortCriteria) {
	s.store.Sort(criteria)
	s.publishReordered(domain.MoveResult{})
}

// Clear empties the playlist. A playing track triggers the synchronous
// stop decision first.
func (s *Service) Clear() {
	if _, _, isPlaying := s.currentlyPlaying(); isPlaying {
		s.requests.Publish(domain.StopPlaybackRequest{})
	}
	s.store.Clear()
	s.notify.Publish(domain.PlaylistCleared{})
}

// publishReordered recomputes the playing cursor after a structural change
// and announces the new value. If the playing track's old index was moved
// directly, its reported new index wins; otherwise the cursor re-resolves
// by identity, which covers tracks displaced by someone else's move.
func (s *Service) publishReordered(result domain.MoveResult) {
	playing, oldIdx, isPlaying := s.currentlyPlaying()
	newCursor := -1
	if isPlaying {
		if idx, ok := result.NewIndexOf(oldIdx); ok {
			newCursor = idx
		} else {
			newCursor = s.store.IndexOfPath(playing.Path)
		}
	}
	s.notify.Publish(domain.PlaylistReordered{NewCursor: newCursor})
}

func (s *Service) currentlyPlaying() (*domain.Track, int, bool) {
	if s.player == nil {
		return nil, -1, false
	}
	return s.player.CurrentlyPlaying()
}

func containsIndex(indexes []int, idx int) bool {
	for _, i := range indexes {
		if i == idx {
			return true
		}
	}
	return false
}

func tracksAt(store *Store, indexes []int) []*domain.Track {
	var out []*domain.Track
	for _, idx := range indexes {
		if t, ok := store.TrackAt(idx); ok {
			out = append(out, t)
		}
	}
	return out
}
