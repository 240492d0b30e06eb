package playlist

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-bunny/aural-player/internal/bus"
	"github.com/code-bunny/aural-player/internal/domain"
	"github.com/code-bunny/aural-player/internal/log"
)

type fakePlayer struct {
	mu      sync.Mutex
	track   *domain.Track
	index   int
	playing bool
}

func (p *fakePlayer) Play(index int, interrupt bool) (*domain.Track, error) { return nil, nil }

func (p *fakePlayer) CurrentlyPlaying() (*domain.Track, int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return nil, -1, false
	}
	return p.track, p.index, true
}

func (p *fakePlayer) setPlaying(t *domain.Track, index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.track, p.index, p.playing = t, index, true
}

type eventRecorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *eventRecorder) record(e domain.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) all() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *eventRecorder) last() domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// serviceFixture wires a facade over a real store with inline event
// delivery, so tests observe events synchronously.
type serviceFixture struct {
	store    *Store
	svc      *Service
	player   *fakePlayer
	recorder *eventRecorder
	requests *bus.RequestBus
}

func newServiceFixture(t *testing.T, trackCount int) *serviceFixture {
	t.Helper()
	logger := log.NullLogger()
	store := fillStore(t, trackCount)
	notify := bus.NewNotificationBus(logger)
	requests := bus.NewRequestBus(logger)
	player := &fakePlayer{}
	recorder := &eventRecorder{}

	q := bus.NewInlineQueue()
	for _, kind := range []domain.EventKind{
		domain.EventTracksRemoved,
		domain.EventPlaylistReordered,
		domain.EventPlaylistCleared,
	} {
		notify.Subscribe(kind, recorder.record, q)
	}

	svc := NewService(store, nil, notify, requests, player, nil, logger)
	return &serviceFixture{store: store, svc: svc, player: player, recorder: recorder, requests: requests}
}

func TestService_MoveRecomputesCursorFromMoveResult(t *testing.T) {
	f := newServiceFixture(t, 5)
	playing, _ := f.store.TrackAt(3)
	f.player.setPlaying(playing, 3)

	result := f.svc.MoveUp([]int{3})
	newIdx, ok := result.NewIndexOf(3)
	require.True(t, ok)
	require.Equal(t, 2, newIdx)

	ev, ok := f.recorder.last().(domain.PlaylistReordered)
	require.True(t, ok)
	assert.Equal(t, 2, ev.NewCursor)
}

func TestService_MoveOfOtherTracksShiftsCursorByIdentity(t *testing.T) {
	f := newServiceFixture(t, 5)
	playing, _ := f.store.TrackAt(2)
	f.player.setPlaying(playing, 2)

	// Moving index 3 up displaces the playing track from 2 to 3.
	f.svc.MoveUp([]int{3})

	ev, ok := f.recorder.last().(domain.PlaylistReordered)
	require.True(t, ok)
	assert.Equal(t, 3, ev.NewCursor)
}

func TestService_MoveWithNothingPlaying(t *testing.T) {
	f := newServiceFixture(t, 3)

	f.svc.MoveDown([]int{0})

	ev, ok := f.recorder.last().(domain.PlaylistReordered)
	require.True(t, ok)
	assert.Equal(t, -1, ev.NewCursor)
}

func TestService_RemovePlayingTrackStopsPlaybackAndClearsCursor(t *testing.T) {
	f := newServiceFixture(t, 4)
	playing, _ := f.store.TrackAt(1)
	f.player.setPlaying(playing, 1)

	var stopAsked bool
	f.requests.Handle(domain.RequestStopPlayback, func(domain.Request) any {
		stopAsked = true
		return domain.StopPlaybackResponse{Stopped: true}
	})

	result := f.svc.Remove([]int{1})
	require.Len(t, result.Removed, 1)

	assert.True(t, stopAsked, "stop decision must complete before removal")
	ev, ok := f.recorder.last().(domain.TracksRemoved)
	require.True(t, ok)
	assert.Equal(t, -1, ev.NewCursor)
}

func TestService_RemoveOtherTracksShiftsCursor(t *testing.T) {
	f := newServiceFixture(t, 4)
	playing, _ := f.store.TrackAt(2)
	f.player.setPlaying(playing, 2)

	var stopAsked bool
	f.requests.Handle(domain.RequestStopPlayback, func(domain.Request) any {
		stopAsked = true
		return domain.StopPlaybackResponse{Stopped: true}
	})

	f.svc.Remove([]int{0})

	assert.False(t, stopAsked)
	ev, ok := f.recorder.last().(domain.TracksRemoved)
	require.True(t, ok)
	assert.Equal(t, 1, ev.NewCursor)
}

func TestService_SortRecomputesCursorByIdentity(t *testing.T) {
	f := newServiceFixture(t, 3)
	// fillStore names are t0..t2; sorting by title descending reverses them.
	playing, _ := f.store.TrackAt(0)
	f.player.setPlaying(playing, 0)

	f.svc.Sort(domain.SortCriteria{Field: domain.SortByTitle, Descending: true})

	ev, ok := f.recorder.last().(domain.PlaylistReordered)
	require.True(t, ok)
	assert.Equal(t, 2, ev.NewCursor)
}

func TestService_InvalidReorderEmitsNothing(t *testing.T) {
	f := newServiceFixture(t, 3)

	err := f.svc.Reorder([]domain.ReorderOp{
		{FromIndex: 0, ToIndex: 1},
		{FromIndex: 2, ToIndex: 1},
	})
	require.ErrorIs(t, err, domain.ErrInvalidReorder)
	assert.Empty(t, f.recorder.all())
}

func TestService_ClearStopsPlayback(t *testing.T) {
	f := newServiceFixture(t, 2)
	playing, _ := f.store.TrackAt(0)
	f.player.setPlaying(playing, 0)

	var stopAsked bool
	f.requests.Handle(domain.RequestStopPlayback, func(domain.Request) any {
		stopAsked = true
		return domain.StopPlaybackResponse{Stopped: true}
	})

	f.svc.Clear()

	assert.True(t, stopAsked)
	assert.Equal(t, 0, f.store.Size())
	_, ok := f.recorder.last().(domain.PlaylistCleared)
	assert.True(t, ok)
}
