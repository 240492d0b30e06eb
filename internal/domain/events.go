package domain

// EventKind discriminates notification payloads on the async bus. Subscribers
// register per kind and switch on the concrete type.
type EventKind int

const (
	EventBatchStarted EventKind = iota
	EventTrackAdded
	EventBatchDone
	EventBatchFailures
	EventTrackUpdated
	EventTracksRemoved
	EventPlaylistReordered
	EventPlaylistCleared
	EventPlaybackRequested
	EventPlaybackFailed
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventBatchStarted:
		return "batch_started"
	case EventTrackAdded:
		return "track_added"
	case EventBatchDone:
		return "batch_done"
	case EventBatchFailures:
		return "batch_failures"
	case EventTrackUpdated:
		return "track_updated"
	case EventTracksRemoved:
		return "tracks_removed"
	case EventPlaylistReordered:
		return "playlist_reordered"
	case EventPlaylistCleared:
		return "playlist_cleared"
	case EventPlaybackRequested:
		return "playback_requested"
	case EventPlaybackFailed:
		return "playback_failed"
	default:
		return "unknown"
	}
}

// Event is the closed set of notifications published on the async bus.
type Event interface {
	Kind() EventKind
}

// BatchStarted fires when an add batch enters its running state.
type BatchStarted struct {
	BatchID string
	Inputs  int // Number of top-level input paths
}

func (BatchStarted) Kind() EventKind { return EventBatchStarted }

// TrackAdded fires once per track successfully inserted during a batch.
// Total may still grow as directories and playlist files expand, so the
// implied percentage is not monotonic.
type TrackAdded struct {
	BatchID string
	Track   *Track
	Index   int // Flat playlist index at insertion time
	Added   int // Tracks added so far in this batch
	Total   int // Known batch total so far
}

func (TrackAdded) Kind() EventKind { return EventTrackAdded }

// BatchDone fires when a batch reaches its terminal state. It strictly
// follows every TrackAdded of the same batch.
type BatchDone struct {
	BatchID string
	Added   int
	Total   int
}

func (BatchDone) Kind() EventKind { return EventBatchDone }

// BatchFailures fires after BatchDone when any inputs failed, carrying the
// aggregate failure records.
type BatchFailures struct {
	BatchID  string
	Failures []AddFailure
}

func (BatchFailures) Kind() EventKind { return EventBatchFailures }

// TrackUpdated fires when deferred metadata enrichment for a track
// completes. It may arrive after the owning batch's BatchDone.
type TrackUpdated struct {
	Track *Track
}

func (TrackUpdated) Kind() EventKind { return EventTrackUpdated }

// TracksRemoved fires after tracks are removed from the flat playlist.
type TracksRemoved struct {
	Tracks    []*Track
	NewCursor int // Recomputed playing index, -1 if none or removed
}

func (TracksRemoved) Kind() EventKind { return EventTracksRemoved }

// PlaylistReordered fires after any move, sort or reorder, carrying the
// recomputed playing-track cursor.
type PlaylistReordered struct {
	NewCursor int // -1 if no track is playing
}

func (PlaylistReordered) Kind() EventKind { return EventPlaylistReordered }

// PlaylistCleared fires when the whole playlist is emptied.
type PlaylistCleared struct{}

func (PlaylistCleared) Kind() EventKind { return EventPlaylistCleared }

// PlaybackRequested is the autoplay decision emitted by the add
// orchestrator. The playback controller, not the store or pipeline, performs
// the actual play call.
type PlaybackRequested struct {
	Index     int
	Interrupt bool // Interrupt current playback if any
}

func (PlaybackRequested) Kind() EventKind { return EventPlaybackRequested }

// PlaybackFailed fires when a requested play call could not start.
type PlaybackFailed struct {
	Track *Track
	Err   error
}

func (PlaybackFailed) Kind() EventKind { return EventPlaybackFailed }
