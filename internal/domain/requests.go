package domain

// RequestKind discriminates synchronous request payloads. The sync bus
// allows exactly one active handler per kind.
type RequestKind int

const (
	// RequestStopPlayback asks whether playback must stop because the
	// playing track is about to be removed, and performs the stop.
	RequestStopPlayback RequestKind = iota
)

// Request is a synchronous, blocking control decision. The handler runs on
// the publisher's goroutine and its response is returned to the caller.
type Request interface {
	RequestKind() RequestKind
}

// StopPlaybackRequest is published before removing or clearing tracks that
// include the one currently playing.
type StopPlaybackRequest struct {
	Removed []*Track // Tracks about to be removed; nil means a full clear
}

func (StopPlaybackRequest) RequestKind() RequestKind { return RequestStopPlayback }

// StopPlaybackResponse reports whether playback was stopped.
type StopPlaybackResponse struct {
	Stopped bool
}
