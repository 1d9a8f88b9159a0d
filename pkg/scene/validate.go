package scene

import (
	"fmt"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// Validate checks the tree invariants of sc and returns every violation found.
// Each error wraps domain.ErrInvalidScene. An empty result means the scene is
// a single acyclic tree rooted at sc.RootID with consistent parent links.
func Validate(sc *domain.Scene) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrInvalidScene))
	}

	root, ok := sc.Nodes[sc.RootID]
	if !ok || root == nil {
		fail("root %q is missing", sc.RootID)
		return errs
	}
	if _, hasParent := root.Parent(); hasParent {
		fail("root %q has a parent", sc.RootID)
	}
	if root.Type != domain.NodeTypeContainer {
		fail("root %q is a %s, not a Container", sc.RootID, root.Type)
	}

	for key, n := range sc.Nodes {
		if n == nil {
			fail("node %q is nil", key)
			continue
		}
		if n.ID != key {
			fail("node stored under %q carries id %q", key, n.ID)
		}
		if key == sc.RootID {
			continue
		}
		pid, ok := n.Parent()
		if !ok {
			fail("node %q has no parent", key)
			continue
		}
		parent, ok := sc.Nodes[pid]
		if !ok || parent == nil {
			fail("node %q references missing parent %q", key, pid)
			continue
		}
		count := 0
		for _, c := range parent.Children {
			if c == key {
				count++
			}
		}
		if count != 1 {
			fail("parent %q lists node %q %d times", pid, key, count)
		}
	}

	seen := make(map[domain.NodeID]struct{}, len(sc.Nodes))
	stack := []domain.NodeID{sc.RootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, dup := seen[id]; dup {
			fail("node %q is reachable twice", id)
			continue
		}
		seen[id] = struct{}{}
		n := sc.Nodes[id]
		for _, c := range n.Children {
			child, ok := sc.Nodes[c]
			if !ok || child == nil {
				fail("node %q lists missing child %q", id, c)
				continue
			}
			if pid, _ := child.Parent(); pid != id {
				fail("child %q of %q points to parent %q", c, id, pid)
			}
			stack = append(stack, c)
		}
	}
	for id := range sc.Nodes {
		if _, ok := seen[id]; !ok {
			fail("node %q is not reachable from the root", id)
		}
	}
	return errs
}
