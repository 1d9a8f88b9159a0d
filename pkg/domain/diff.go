package domain

import (
	"maps"
	"slices"
)

// SceneDiff represents the changes between two versions of a scene.
// It is serialized to JSON for partial updates on clients.
type SceneDiff struct {
	// SceneID is always present to identify the target.
	SceneID string `json:"scene_id"`

	Name   *string `json:"name,omitempty"`
	RootID *NodeID `json:"root_id,omitempty"`

	// Nodes contains only added, modified or deleted nodes.
	// For deletions, the key is present with a nil value.
	Nodes map[NodeID]*Node `json:"nodes,omitempty"`
}

// Diff calculates the difference between oldScene and newScene.
// If oldScene is nil, it returns a diff representing the entire newScene (initial load).
// It returns nil when nothing changed.
func Diff(oldScene, newScene *Scene) *SceneDiff {
	if newScene == nil {
		return nil
	}

	diff := &SceneDiff{
		SceneID: newScene.ID,
	}

	if oldScene == nil || oldScene.Name != newScene.Name {
		diff.Name = &newScene.Name
	}
	if oldScene == nil || oldScene.RootID != newScene.RootID {
		diff.RootID = &newScene.RootID
	}
	diff.Nodes = diffNodes(oldScene, newScene)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffNodes(old, new *Scene) map[NodeID]*Node {
	delta := make(map[NodeID]*Node)

	if old == nil {
		for id, n := range new.Nodes {
			delta[id] = n
		}
		return delta
	}

	for id, n := range new.Nodes {
		prev, exists := old.Nodes[id]
		if !exists || !nodesEqual(prev, n) {
			delta[id] = n
		}
	}
	for id := range old.Nodes {
		if _, exists := new.Nodes[id]; !exists {
			delta[id] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

func nodesEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Name != b.Name || a.Type != b.Type {
		return false
	}
	pa, oka := a.Parent()
	pb, okb := b.Parent()
	if oka != okb || pa != pb {
		return false
	}
	return slices.Equal(a.Children, b.Children) && maps.Equal(a.Properties, b.Properties)
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SceneDiff) IsEmpty() bool {
	return d.Name == nil &&
		d.RootID == nil &&
		len(d.Nodes) == 0
}

// Removed lists the identifiers deleted by this diff, sorted.
func (d *SceneDiff) Removed() []NodeID {
	var ids []NodeID
	for id, n := range d.Nodes {
		if n == nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
