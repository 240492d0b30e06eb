package domain

// TrackLoader populates track metadata. LoadDisplayInfo must be cheap; it is
// called synchronously at insertion time. LoadDuration may be slow and runs
// on the enrichment queue after insertion.
type TrackLoader interface {
	LoadDisplayInfo(t *Track) error
	LoadDuration(t *Track) error
}

// Player is the playback capability consumed by the core. Play returns the
// track that started, or ErrUnplayableTrack (wrapped) on failure.
// CurrentlyPlaying reports ok=false when nothing is playing.
type Player interface {
	Play(index int, interrupt bool) (*Track, error)
	CurrentlyPlaying() (track *Track, index int, ok bool)
}

// PlaylistCodec reads and writes playlist files. The on-disk syntax is the
// codec's concern; the core only sees ordered track paths.
type PlaylistCodec interface {
	Load(path string) ([]string, error)
	Save(path string, tracks []*Track) error
}

// AutoplayPolicy controls whether an add batch may start playback.
type AutoplayPolicy struct {
	Enabled   bool // Play the first successfully added track
	Interrupt bool // Interrupt current playback when doing so
}

// MoveResult reports the outcome of a move operation as (old, new) index
// pairs. Tracks that could not move (already at a boundary) report
// OldIndex == NewIndex.
type MoveResult struct {
	Moves []TrackMove
}

// TrackMove is one track's index delta within a MoveResult.
type TrackMove struct {
	Track    *Track
	OldIndex int
	NewIndex int
}

// NewIndexOf returns the post-move index for a pre-move index, and whether
// the index appeared in the result at all.
func (r MoveResult) NewIndexOf(oldIndex int) (int, bool) {
	for _, m := range r.Moves {
		if m.OldIndex == oldIndex {
			return m.NewIndex, true
		}
	}
	return -1, false
}

// ReorderOp assigns one track, addressed by its current index, a new
// position. A Reorder call's op set must form a permutation.
type ReorderOp struct {
	FromIndex int
	ToIndex   int
}

// SortField selects the primary sort key.
type SortField int

const (
	SortByTitle SortField = iota
	SortByArtist
	SortByAlbum
	SortByDuration
	SortByPath
)

// SortScope selects whether sorting reorders the flat playlist or the
// tracks within each group of one grouping.
type SortScope int

const (
	SortScopeFlat SortScope = iota
	SortScopeGroups
)

// SortCriteria describes one sort request. Sorting is stable with respect
// to ties on the field.
type SortCriteria struct {
	Field      SortField
	Descending bool
	Scope      SortScope
	GroupType  GroupType // Grouping to sort within when Scope is SortScopeGroups
}
