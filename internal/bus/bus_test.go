package bus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-bunny/aural-player/internal/domain"
	"github.com/code-bunny/aural-player/internal/log"
)

func TestQueue_RunsTasksInOrder(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		i := i
		q.Submit(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, want, got)
}

func TestQueue_CloseDrainsPendingTasks(t *testing.T) {
	q := NewQueue()
	var ran int
	var mu sync.Mutex
	for i := 0; i < 5; i++ {
		q.Submit(func() {
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}
	q.Close()
	assert.Equal(t, 5, ran)

	// Submitting after close is a no-op, not a panic.
	q.Submit(func() { t.Fatal("task ran on closed queue") })
}

func TestNotificationBus_SubscribersInvokedInSubscriptionOrder(t *testing.T) {
	b := NewNotificationBus(log.NullLogger())

	var order []string
	q := NewInlineQueue()
	b.Subscribe(domain.EventPlaylistCleared, func(domain.Event) { order = append(order, "first") }, q)
	b.Subscribe(domain.EventPlaylistCleared, func(domain.Event) { order = append(order, "second") }, q)

	b.Publish(domain.PlaylistCleared{})

	require.Equal(t, []string{"first", "second"}, order)

	// Exactly once each.
	b.Publish(domain.PlaylistCleared{})
	assert.Len(t, order, 4)
}

func TestNotificationBus_KindFiltering(t *testing.T) {
	b := NewNotificationBus(log.NullLogger())

	var cleared, removed int
	q := NewInlineQueue()
	b.Subscribe(domain.EventPlaylistCleared, func(domain.Event) { cleared++ }, q)
	b.Subscribe(domain.EventTracksRemoved, func(domain.Event) { removed++ }, q)

	b.Publish(domain.PlaylistCleared{})
	b.Publish(domain.TracksRemoved{NewCursor: -1})
	b.Publish(domain.PlaylistCleared{})

	assert.Equal(t, 2, cleared)
	assert.Equal(t, 1, removed)
}

func TestNotificationBus_UnsubscribeStopsFutureDeliveries(t *testing.T) {
	b := NewNotificationBus(log.NullLogger())

	var count int
	sub := b.Subscribe(domain.EventPlaylistCleared, func(domain.Event) { count++ }, NewInlineQueue())

	b.Publish(domain.PlaylistCleared{})
	b.Unsubscribe(sub)
	b.Publish(domain.PlaylistCleared{})

	assert.Equal(t, 1, count)
}

func TestNotificationBus_UnsubscribeDoesNotRetractInFlightDelivery(t *testing.T) {
	b := NewNotificationBus(log.NullLogger())

	q := NewQueue()
	defer q.Close()

	gate := make(chan struct{})
	delivered := make(chan struct{})

	// Block the subscriber's queue so the published event sits behind the
	// gate while we unsubscribe.
	q.Submit(func() { <-gate })

	sub := b.Subscribe(domain.EventPlaylistCleared, func(domain.Event) { close(delivered) }, q)
	b.Publish(domain.PlaylistCleared{})
	b.Unsubscribe(sub)
	close(gate)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueued delivery was retracted by unsubscribe")
	}
}

func TestNotificationBus_PublishDoesNotWaitForSubscribers(t *testing.T) {
	b := NewNotificationBus(log.NullLogger())

	q := NewQueue()
	defer q.Close()

	release := make(chan struct{})
	b.Subscribe(domain.EventPlaylistCleared, func(domain.Event) { <-release }, q)

	done := make(chan struct{})
	go func() {
		b.Publish(domain.PlaylistCleared{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	close(release)
}

func TestRequestBus_SingleHandlerBlockingResponse(t *testing.T) {
	b := NewRequestBus(log.NullLogger())

	b.Handle(domain.RequestStopPlayback, func(req domain.Request) any {
		_, ok := req.(domain.StopPlaybackRequest)
		require.True(t, ok)
		return domain.StopPlaybackResponse{Stopped: true}
	})

	resp, ok := b.Publish(domain.StopPlaybackRequest{})
	require.True(t, ok)
	assert.Equal(t, domain.StopPlaybackResponse{Stopped: true}, resp)
}

func TestRequestBus_NoHandler(t *testing.T) {
	b := NewRequestBus(log.NullLogger())
	resp, ok := b.Publish(domain.StopPlaybackRequest{})
	assert.False(t, ok)
	assert.Nil(t, resp)
}

func TestRequestBus_HandlerReplacedAndRemoved(t *testing.T) {
	b := NewRequestBus(log.NullLogger())

	b.Handle(domain.RequestStopPlayback, func(domain.Request) any {
		return domain.StopPlaybackResponse{Stopped: false}
	})
	b.Handle(domain.RequestStopPlayback, func(domain.Request) any {
		return domain.StopPlaybackResponse{Stopped: true}
	})

	resp, ok := b.Publish(domain.StopPlaybackRequest{})
	require.True(t, ok)
	assert.Equal(t, domain.StopPlaybackResponse{Stopped: true}, resp)

	b.Unhandle(domain.RequestStopPlayback)
	_, ok = b.Publish(domain.StopPlaybackRequest{})
	assert.False(t, ok)
}
