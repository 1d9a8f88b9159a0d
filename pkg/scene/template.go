package scene

import (
	"fmt"
	"maps"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// Instantiate copies tpl under parentID with fresh identifiers and returns the
// identifier of the new subtree root. Either the whole template is added or
// nothing is.
func (s *Store) Instantiate(parentID domain.NodeID, tpl *domain.Template) (domain.NodeID, error) {
	if tpl == nil {
		return "", fmt.Errorf("instantiate under %q: %w", parentID, domain.ErrTemplateNotFound)
	}
	parent, ok := s.scene.Nodes[parentID]
	if !ok {
		return "", fmt.Errorf("instantiate %q under %q: %w", tpl.ID, parentID, domain.ErrNodeNotFound)
	}

	staged := make(map[domain.NodeID]*domain.Node, tpl.Root.Count())
	taken := make(map[domain.NodeID]struct{}, tpl.Root.Count())
	var order []domain.NodeID

	type frame struct {
		tn     *domain.TemplateNode
		parent domain.NodeID
	}
	var rootID domain.NodeID
	stack := []frame{{&tpl.Root, parentID}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, err := f.tn.Type.MarshalText(); err != nil {
			return "", fmt.Errorf("instantiate %q: node %q: %w", tpl.ID, f.tn.Name, err)
		}
		for k, v := range f.tn.Properties {
			if !v.IsValid() {
				return "", fmt.Errorf("instantiate %q: node %q property %q: %w", tpl.ID, f.tn.Name, k, domain.ErrTypeMismatch)
			}
		}
		id, err := s.allocate(taken)
		if err != nil {
			return "", fmt.Errorf("instantiate %q: %w", tpl.ID, err)
		}
		taken[id] = struct{}{}

		n := domain.NewNode(id, f.tn.Name, f.tn.Type)
		maps.Copy(n.Properties, f.tn.Properties)
		p := f.parent
		n.ParentID = &p
		if f.parent == parentID {
			rootID = id
		} else {
			staged[f.parent].Children = append(staged[f.parent].Children, id)
		}
		staged[id] = n
		order = append(order, id)

		for i := len(f.tn.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{&f.tn.Children[i], id})
		}
	}

	parent.Children = append(parent.Children, rootID)
	for _, id := range order {
		s.scene.Nodes[id] = staged[id]
	}

	s.logger.Debug("Template instantiated", "scene_id", s.scene.ID, "template", tpl.ID, "node_id", rootID, "nodes", len(order))
	for _, id := range order {
		s.fireNode(s.hooks.OnNodeAdded, domain.EventNodeAdded, staged[id], 0)
	}
	return rootID, nil
}
