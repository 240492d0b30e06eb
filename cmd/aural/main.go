package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/code-bunny/aural-player/internal/bus"
	"github.com/code-bunny/aural-player/internal/config"
	"github.com/code-bunny/aural-player/internal/domain"
	"github.com/code-bunny/aural-player/internal/expand"
	"github.com/code-bunny/aural-player/internal/ingest"
	"github.com/code-bunny/aural-player/internal/log"
	"github.com/code-bunny/aural-player/internal/metadata"
	"github.com/code-bunny/aural-player/internal/playback"
	"github.com/code-bunny/aural-player/internal/playlist"
	"github.com/code-bunny/aural-player/internal/playlistfile"
	"github.com/code-bunny/aural-player/internal/search"
	"github.com/code-bunny/aural-player/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		savePath    string
		query       string
		noRestore   bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&savePath, "save", "", "write the resulting playlist to this m3u file")
	flag.StringVar(&query, "search", "", "search the playlist after ingesting")
	flag.BoolVar(&noRestore, "no-restore", false, "skip restoring the previous session's playlist")
	flag.Parse()

	if showVersion {
		fmt.Printf("aural %s\n", Version)
		return
	}

	if err := run(flag.Args(), savePath, query, noRestore); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(paths []string, savePath, query string, noRestore bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	logger.Info("starting aural", "version", Version)

	stateStore, err := store.Open(config.DefaultStatePath())
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer stateStore.Close()

	// Messaging substrate: one async notification bus, one sync request bus.
	notify := bus.NewNotificationBus(logger)
	requests := bus.NewRequestBus(logger)

	playlistStore := playlist.NewStore(logger)
	codec := playlistfile.NewM3UCodec()
	pipeline := expand.NewPipeline(codec, cfg.Library.AudioExtensions, cfg.Library.PlaylistExtensions, logger)
	loader := metadata.NewLoader(logger)
	adder := ingest.NewService(playlistStore, pipeline, loader, notify, nil, logger)

	sequencer := playback.NewSequencer(playlistStore, &logEngine{logger: logger}, logger)
	controller := playback.NewController(sequencer, notify, requests, logger)
	controller.Attach()
	defer controller.Detach()

	svc := playlist.NewService(playlistStore, adder, notify, requests, sequencer, codec, logger)

	progress := newConsoleProgress(notify)
	defer progress.detach(notify)

	// Restore the previous session before ingesting new paths.
	batches := 0
	if cfg.Startup.RememberPlaylist && !noRestore {
		if state, ok := stateStore.Load(); ok && len(state.TrackPaths) > 0 {
			svc.Add(state.TrackPaths, domain.AutoplayPolicy{
				Enabled:   cfg.Playback.AutoplayOnStartup,
				Interrupt: false,
			})
			batches++
		}
	}

	if len(paths) > 0 {
		svc.Add(paths, domain.AutoplayPolicy{
			Enabled:   cfg.Playback.AutoplayOnAdd,
			Interrupt: cfg.Playback.InterruptOnAdd,
		})
		batches++
	}

	if batches > 0 {
		adder.Wait()
		progress.waitTerminal(batches, 30*time.Second)
	}

	fmt.Printf("%d tracks, total %s\n", playlistStore.Size(), playlistStore.TotalDuration().Round(time.Second))

	if query != "" {
		searcher := search.NewService(playlistStore, logger)
		for _, r := range searcher.Search(query) {
			fmt.Printf("  [%d] %s (%s)\n", r.Index, r.Track.DisplayName(), r.Track.FormattedDuration())
		}
	}

	if savePath != "" {
		if err := svc.SavePlaylist(savePath); err != nil {
			return err
		}
		fmt.Printf("saved playlist to %s\n", savePath)
	}

	cursor := -1
	if _, idx, ok := sequencer.CurrentlyPlaying(); ok {
		cursor = idx
	}
	var trackPaths []string
	for _, t := range playlistStore.Tracks() {
		trackPaths = append(trackPaths, t.Path)
	}
	if err := stateStore.Save(store.SavedState{TrackPaths: trackPaths, Cursor: cursor}); err != nil {
		logger.Error("failed to persist state", "error", err)
	}

	logger.Info("shutting down")
	return nil
}

// logEngine is the playback engine stub wired in the headless binary: it
// only records what a real audio backend would do.
type logEngine struct {
	logger *slog.Logger
}

func (e *logEngine) Start(t *domain.Track) error {
	e.logger.Info("engine start", "track", t.DisplayName())
	return nil
}

func (e *logEngine) Stop() {
	e.logger.Info("engine stop")
}

// consoleProgress mirrors batch lifecycle events to stdout.
type consoleProgress struct {
	mu       sync.Mutex
	terminal chan struct{}
	subs     []*bus.Subscription
}

func newConsoleProgress(notify *bus.NotificationBus) *consoleProgress {
	p := &consoleProgress{terminal: make(chan struct{}, 16)}
	q := bus.NewQueue()
	p.subs = append(p.subs,
		notify.Subscribe(domain.EventBatchStarted, p.handle, q),
		notify.Subscribe(domain.EventTrackAdded, p.handle, q),
		notify.Subscribe(domain.EventBatchDone, p.handle, q),
		notify.Subscribe(domain.EventBatchFailures, p.handle, q),
		notify.Subscribe(domain.EventPlaybackFailed, p.handle, q),
	)
	return p
}

func (p *consoleProgress) handle(e domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch ev := e.(type) {
	case domain.BatchStarted:
		fmt.Printf("adding %d inputs...\n", ev.Inputs)
	case domain.TrackAdded:
		fmt.Printf("  + %s (%d/%d)\n", ev.Track.DisplayName(), ev.Added, ev.Total)
	case domain.BatchDone:
		fmt.Printf("done: %d tracks added\n", ev.Added)
		p.terminal <- struct{}{}
	case domain.BatchFailures:
		for _, f := range ev.Failures {
			fmt.Printf("  ! %s: %v\n", f.Path, f.Err)
		}
	case domain.PlaybackFailed:
		fmt.Printf("  ! playback failed: %v\n", ev.Err)
	}
}

// waitTerminal blocks until n batches reported done, or the timeout.
func (p *consoleProgress) waitTerminal(n int, timeout time.Duration) {
	deadline := time.After(timeout)
	for i := 0; i < n; i++ {
		select {
		case <-p.terminal:
		case <-deadline:
			return
		}
	}
}

func (p *consoleProgress) detach(notify *bus.NotificationBus) {
	for _, sub := range p.subs {
		notify.Unsubscribe(sub)
	}
}
