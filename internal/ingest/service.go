// Package ingest runs add batches: expansion, insertion, progress events
// and the autoplay decision, all off the caller's goroutine.
package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/code-bunny/aural-player/internal/bus"
	"github.com/code-bunny/aural-player/internal/domain"
	"github.com/code-bunny/aural-player/internal/expand"
	"github.com/code-bunny/aural-player/internal/playlist"
)

// Service is the add-batch orchestrator. SubmitBatch returns immediately;
// the batch runs on its own goroutine and reports through the notification
// bus. Metadata enrichment runs on a separate serial queue and is not
// required to finish before the batch's terminal event.
type Service struct {
	store    *playlist.Store
	pipeline *expand.Pipeline
	loader   domain.TrackLoader
	notify   *bus.NotificationBus
	enrich   *bus.Queue
	logger   *slog.Logger

	wg sync.WaitGroup
}

// NewService creates the orchestrator. A nil enrichment queue gets a
// dedicated one.
func NewService(store *playlist.Store, pipeline *expand.Pipeline, loader domain.TrackLoader, notify *bus.NotificationBus, enrich *bus.Queue, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if enrich == nil {
		enrich = bus.NewQueue()
	}
	return &Service{
		store:    store,
		pipeline: pipeline,
		loader:   loader,
		notify:   notify,
		enrich:   enrich,
		logger:   logger,
	}
}

// SubmitBatch starts an add batch over the given top-level paths and
// returns without blocking. Concurrent batches are not serialized against
// each other; the store's own locking keeps the playlist consistent.
func (s *Service) SubmitBatch(paths []string, policy domain.AutoplayPolicy) {
	batchID := uuid.NewString()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runBatch(batchID, paths, policy)
	}()
}

// Wait blocks until all submitted batches have reached their terminal
// state. Enrichment may still be in flight.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) runBatch(batchID string, paths []string, policy domain.AutoplayPolicy) {
	progress := domain.NewAddProgress(len(paths))
	s.logger.Info("batch started", "batch", batchID, "inputs", len(paths))
	s.notify.Publish(domain.BatchStarted{BatchID: batchID, Inputs: len(paths)})

	for _, path := range paths {
		s.processPath(batchID, path, progress, policy)
	}

	added, total := progress.Snapshot()
	s.logger.Info("batch done", "batch", batchID, "added", added, "total", total)
	s.notify.Publish(domain.BatchDone{BatchID: batchID, Added: added, Total: total})

	if failures := progress.Failures(); len(failures) > 0 {
		s.logger.Warn("batch had failures", "batch", batchID, "failures", len(failures))
		s.notify.Publish(domain.BatchFailures{BatchID: batchID, Failures: failures})
	}
}

// processPath handles one input depth-first: containers are expanded and
// their contents processed in place before the next top-level input, so
// perceived progress is monotonic left-to-right over the argument list.
func (s *Service) processPath(batchID, path string, progress *domain.AddProgress, policy domain.AutoplayPolicy) {
	resolved, err := s.pipeline.Resolve(path)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			progress.Fail(path, domain.ErrFileNotFound)
		} else {
			progress.Fail(path, err)
		}
		progress.Skipped()
		return
	}

	switch s.pipeline.Classify(resolved) {
	case expand.KindNotFound:
		progress.Fail(path, domain.ErrFileNotFound)
		progress.Skipped()

	case expand.KindUnsupported:
		// Not an error record, just not ours.
		progress.Skipped()

	case expand.KindTrack:
		s.addTrack(batchID, resolved, progress, policy)

	case expand.KindDirectory:
		children, err := s.pipeline.ExpandDirectory(resolved)
		if err != nil {
			progress.Fail(path, err)
			progress.Skipped()
			return
		}
		progress.Expanded(len(children))
		for _, child := range children {
			s.processPath(batchID, child, progress, policy)
		}

	case expand.KindPlaylist:
		children, err := s.pipeline.ExpandPlaylistFile(resolved)
		if err != nil {
			progress.Fail(path, fmt.Errorf("%w: %w", domain.ErrParseFailure, err))
			progress.Skipped()
			return
		}
		progress.Expanded(len(children))
		for _, child := range children {
			s.processPath(batchID, child, progress, policy)
		}
	}
}

func (s *Service) addTrack(batchID, resolved string, progress *domain.AddProgress, policy domain.AutoplayPolicy) {
	track := &domain.Track{Path: resolved}
	if err := s.loader.LoadDisplayInfo(track); err != nil {
		progress.Fail(resolved, fmt.Errorf("%w: %w", domain.ErrInvalidTrack, err))
		progress.Skipped()
		return
	}

	index, added := s.store.AddTrack(track)
	if !added {
		// Already present: no event, and the entry leaves the total.
		progress.Skipped()
		return
	}

	addedCount, total := progress.TrackAdded()
	s.notify.Publish(domain.TrackAdded{
		BatchID: batchID,
		Track:   track,
		Index:   index,
		Added:   addedCount,
		Total:   total,
	})

	if policy.Enabled && progress.FireAutoplay() {
		s.notify.Publish(domain.PlaybackRequested{Index: index, Interrupt: policy.Interrupt})
	}

	s.enrich.Submit(func() {
		if err := s.loader.LoadDuration(track); err != nil {
			s.logger.Warn("metadata enrichment failed", "path", track.Path, "error", err)
			return
		}
		s.notify.Publish(domain.TrackUpdated{Track: track})
	})
}
