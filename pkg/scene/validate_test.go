package scene

import (
	"testing"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	build := func() *domain.Scene {
		s := New("Demo", WithIDGenerator(sequentialIDs()))
		a, _ := s.AddNode(s.RootID(), "A", domain.NodeTypeContainer)
		_, _ = s.AddNode(a, "B", domain.NodeTypeSprite)
		return s.Scene()
	}
	require.Empty(t, Validate(build()))

	tests := []struct {
		name   string
		mutate func(sc *domain.Scene)
	}{
		{"Missing Root", func(sc *domain.Scene) { sc.RootID = "nope" }},
		{"Root With Parent", func(sc *domain.Scene) {
			p := domain.NodeID("n2")
			sc.Nodes["n1"].ParentID = &p
		}},
		{"Root Not Container", func(sc *domain.Scene) { sc.Nodes["n1"].Type = domain.NodeTypeSprite }},
		{"Key Mismatch", func(sc *domain.Scene) { sc.Nodes["n3"].ID = "other" }},
		{"Duplicate Child Entry", func(sc *domain.Scene) {
			sc.Nodes["n2"].Children = append(sc.Nodes["n2"].Children, "n3")
		}},
		{"Orphan", func(sc *domain.Scene) {
			orphan := domain.NewNode("n9", "Lost", domain.NodeTypeSprite)
			p := domain.NodeID("ghost")
			orphan.ParentID = &p
			sc.Nodes["n9"] = orphan
		}},
		{"Cycle", func(sc *domain.Scene) {
			sc.Nodes["n3"].Children = []domain.NodeID{"n2"}
		}},
		{"Missing Child", func(sc *domain.Scene) {
			sc.Nodes["n3"].Children = []domain.NodeID{"n7"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := build()
			tt.mutate(sc)
			errs := Validate(sc)
			require.NotEmpty(t, errs)
			for _, err := range errs {
				assert.ErrorIs(t, err, domain.ErrInvalidScene)
			}
		})
	}
}
