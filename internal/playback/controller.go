package playback

import (
	"log/slog"

	"github.com/code-bunny/aural-player/internal/bus"
	"github.com/code-bunny/aural-player/internal/domain"
)

// Controller is the decoupled consumer of playback decisions. The add
// orchestrator only emits PlaybackRequested; this component performs the
// play call, reports failures as events, keeps the sequencer's cursor in
// step with structural changes, and answers the synchronous stop decision.
type Controller struct {
	sequencer *Sequencer
	notify    *bus.NotificationBus
	requests  *bus.RequestBus
	logger    *slog.Logger

	subs []*bus.Subscription
}

// NewController creates a controller; call Attach to start consuming.
func NewController(sequencer *Sequencer, notify *bus.NotificationBus, requests *bus.RequestBus, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{sequencer: sequencer, notify: notify, requests: requests, logger: logger}
}

// Attach subscribes to the bus channels. The handler queue serializes all
// playback reactions.
func (c *Controller) Attach() {
	q := bus.NewQueue()

	c.subs = append(c.subs,
		c.notify.Subscribe(domain.EventPlaybackRequested, c.onPlaybackRequested, q),
		c.notify.Subscribe(domain.EventPlaylistReordered, c.onReordered, q),
		c.notify.Subscribe(domain.EventTracksRemoved, c.onRemoved, q),
		c.notify.Subscribe(domain.EventPlaylistCleared, c.onCleared, q),
	)

	c.requests.Handle(domain.RequestStopPlayback, func(domain.Request) any {
		return domain.StopPlaybackResponse{Stopped: c.sequencer.Stop()}
	})
}

// Detach tears down all subscriptions.
func (c *Controller) Detach() {
	for _, sub := range c.subs {
		c.notify.Unsubscribe(sub)
	}
	c.subs = nil
	c.requests.Unhandle(domain.RequestStopPlayback)
}

func (c *Controller) onPlaybackRequested(e domain.Event) {
	req, ok := e.(domain.PlaybackRequested)
	if !ok {
		return
	}
	track, err := c.sequencer.Play(req.Index, req.Interrupt)
	if err != nil {
		// An unplayable autoplay target is its own failure event, never a
		// batch failure.
		var failed *domain.Track
		if t, tok := c.sequencer.store.TrackAt(req.Index); tok {
			failed = t
		}
		c.logger.Warn("autoplay failed", "index", req.Index, "error", err)
		c.notify.Publish(domain.PlaybackFailed{Track: failed, Err: err})
		return
	}
	c.logger.Debug("autoplay satisfied", "track", track.DisplayName())
}

func (c *Controller) onReordered(e domain.Event) {
	if ev, ok := e.(domain.PlaylistReordered); ok {
		c.sequencer.UpdateCursor(ev.NewCursor)
	}
}

func (c *Controller) onRemoved(e domain.Event) {
	if ev, ok := e.(domain.TracksRemoved); ok {
		c.sequencer.UpdateCursor(ev.NewCursor)
	}
}

func (c *Controller) onCleared(domain.Event) {
	c.sequencer.Stop()
}
