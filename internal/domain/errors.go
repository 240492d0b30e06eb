package domain

import "errors"

// Sentinel errors for playlist operations
var (
	// ErrFileNotFound indicates an input path does not exist after resolution
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidTrack indicates the file exists but cannot be loaded as audio
	ErrInvalidTrack = errors.New("not a valid audio track")

	// ErrInvalidReorder indicates a reorder op set is not a consistent permutation
	ErrInvalidReorder = errors.New("reorder operations do not form a permutation")

	// ErrUnplayableTrack indicates playback of a track failed
	ErrUnplayableTrack = errors.New("track cannot be played")

	// ErrParseFailure indicates a playlist file could not be parsed
	ErrParseFailure = errors.New("playlist file parse failure")

	// ErrIOFailure indicates a playlist file could not be read or written
	ErrIOFailure = errors.New("playlist file I/O failure")
)

// AddFailure records one input that could not be ingested during a batch.
// Failures accumulate; they never abort the batch.
type AddFailure struct {
	Path string
	Err  error
}

func (f AddFailure) Error() string { return f.Path + ": " + f.Err.Error() }

// Unwrap exposes the underlying sentinel for errors.Is checks.
func (f AddFailure) Unwrap() error { return f.Err }
