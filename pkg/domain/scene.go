package domain

import (
	"slices"
)

// Scene is the whole editable document: a named tree of nodes plus a root reference.
type Scene struct {
	// ID identifies the document in a persistence store.
	ID string `json:"id" yaml:"id"`

	Name   string           `json:"name" yaml:"name"`
	RootID NodeID           `json:"root_id" yaml:"root_id"`
	Nodes  map[NodeID]*Node `json:"nodes" yaml:"nodes"`

	// Sealed carries an encrypted copy of the scene when a persistence
	// middleware stores an envelope instead of the plain document.
	Sealed string `json:"sealed,omitempty" yaml:"sealed,omitempty"`
}

// Root returns the root identifier.
func (s *Scene) Root() NodeID {
	return s.RootID
}

// Lookup returns the node with the given identifier.
// The returned node belongs to the scene and must not be mutated by readers.
func (s *Scene) Lookup(id NodeID) (*Node, bool) {
	n, ok := s.Nodes[id]
	return n, ok
}

// NodeCount returns the total number of nodes, root included.
func (s *Scene) NodeCount() int {
	return len(s.Nodes)
}

// IDs returns all node identifiers in sorted order.
func (s *Scene) IDs() []NodeID {
	ids := make([]NodeID, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Snapshot returns a deep copy of the scene.
func (s *Scene) Snapshot() *Scene {
	if s == nil {
		return nil
	}
	c := &Scene{
		ID:     s.ID,
		Name:   s.Name,
		RootID: s.RootID,
		Sealed: s.Sealed,
	}
	if s.Nodes != nil {
		c.Nodes = make(map[NodeID]*Node, len(s.Nodes))
		for id, n := range s.Nodes {
			c.Nodes[id] = n.Clone()
		}
	}
	return c
}
