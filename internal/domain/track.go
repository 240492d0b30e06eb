package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Track represents a single audio file in the playlist. Its identity is the
// resolved file path; display fields are filled in asynchronously after
// insertion and may be empty until a TrackUpdated event fires.
type Track struct {
	Path string // Resolved absolute path; immutable identity

	Title    string        // Display title (tag title or filename stem)
	Artist   string        // Tag artist
	Album    string        // Tag album
	Genre    string        // Tag genre
	Duration time.Duration // Playback length, loaded post-insertion
	FileSize int64         // File size in bytes
}

// DisplayName returns the track's title, falling back to the filename stem
// when no tag title has been loaded yet.
func (t *Track) DisplayName() string {
	if t.Title != "" {
		return t.Title
	}
	base := filepath.Base(t.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// GroupKey returns the grouping key for the given group type. Tracks with
// missing metadata fall into the "<Unknown>" group.
func (t *Track) GroupKey(gt GroupType) string {
	var key string
	switch gt {
	case GroupTypeArtist:
		key = t.Artist
	case GroupTypeAlbum:
		key = t.Album
	case GroupTypeGenre:
		key = t.Genre
	}
	if key == "" {
		return UnknownGroupKey
	}
	return key
}

// FormattedDuration returns the duration in a human-readable format.
func (t *Track) FormattedDuration() string {
	if t.Duration <= 0 {
		return "--:--"
	}
	total := int(t.Duration.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// UnknownGroupKey is the grouping key for tracks missing the relevant tag.
const UnknownGroupKey = "<Unknown>"

// GroupType identifies the attribute a grouping partitions the playlist by.
type GroupType int

const (
	GroupTypeArtist GroupType = iota
	GroupTypeAlbum
	GroupTypeGenre
)

// String returns a human-readable representation of the group type.
func (g GroupType) String() string {
	switch g {
	case GroupTypeArtist:
		return "artist"
	case GroupTypeAlbum:
		return "album"
	case GroupTypeGenre:
		return "genre"
	default:
		return "unknown"
	}
}

// GroupTypes lists all grouping dimensions maintained by the store.
var GroupTypes = []GroupType{GroupTypeArtist, GroupTypeAlbum, GroupTypeGenre}

// Group is an ordered collection of track references sharing one grouping
// key. Groups are derived state: created when the first matching track is
// added, destroyed when the last is removed. Groups reference tracks owned
// by the store; they never own them.
type Group struct {
	Type   GroupType
	Name   string
	Tracks []*Track
}

// Size returns the number of tracks in the group.
func (g *Group) Size() int { return len(g.Tracks) }

// TotalDuration returns the combined duration of the group's tracks.
func (g *Group) TotalDuration() time.Duration {
	var total time.Duration
	for _, t := range g.Tracks {
		total += t.Duration
	}
	return total
}

// GroupedTrack locates a track within one grouping: the group it belongs to
// and its position inside that group. Recomputed on every structural change.
type GroupedTrack struct {
	Track *Track
	Group *Group
	Index int // Position within Group.Tracks
}
