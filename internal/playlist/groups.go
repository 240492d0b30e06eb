package playlist

import "github.com/code-bunny/aural-player/internal/domain"

// grouping maintains one derived partition of the flat list (by artist,
// album or genre). Groups are created on first use and destroyed when their
// last track is removed; creation order is preserved for index addressing.
type grouping struct {
	gt     domain.GroupType
	groups []*domain.Group
	byName map[string]*domain.Group
}

func newGrouping(gt domain.GroupType) *grouping {
	return &grouping{gt: gt, byName: make(map[string]*domain.Group)}
}

func (g *grouping) add(t *domain.Track) {
	key := t.GroupKey(g.gt)
	group, ok := g.byName[key]
	if !ok {
		group = &domain.Group{Type: g.gt, Name: key}
		g.byName[key] = group
		g.groups = append(g.groups, group)
	}
	group.Tracks = append(group.Tracks, t)
}

func (g *grouping) remove(t *domain.Track) {
	key := t.GroupKey(g.gt)
	group, ok := g.byName[key]
	if !ok {
		return
	}
	for i, gt := range group.Tracks {
		if gt == t {
			group.Tracks = append(group.Tracks[:i:i], group.Tracks[i+1:]...)
			break
		}
	}
	if len(group.Tracks) == 0 {
		delete(g.byName, key)
		for i, grp := range g.groups {
			if grp == group {
				g.groups = append(g.groups[:i:i], g.groups[i+1:]...)
				break
			}
		}
	}
}
