package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/turbo-editor/internal/presentation/graph"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/scene"
)

func sequentialIDs(ids ...domain.NodeID) scene.Option {
	i := 0
	return scene.WithIDGenerator(func() domain.NodeID {
		id := ids[i]
		i++
		return id
	})
}

func buildScene(t *testing.T) *domain.Scene {
	t.Helper()
	s := scene.New("Menu", sequentialIDs("root", "bg", "btn-1", "label", "dot", "line"))
	add := func(parent domain.NodeID, name string, typ domain.NodeType) domain.NodeID {
		id, err := s.AddNode(parent, name, typ)
		if err != nil {
			t.Fatalf("AddNode(%s): %v", name, err)
		}
		return id
	}
	add(s.RootID(), "Bg", domain.NodeTypeRectangle)
	btn := add(s.RootID(), "Play \"now\"", domain.NodeTypeSprite)
	add(btn, "Label", domain.NodeTypeText)
	add(btn, "Dot", domain.NodeTypeCircle)
	add(s.RootID(), "Line", domain.NodeTypePath)
	return s.Scene()
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(buildScene(t), nil)

	contains := []string{
		"graph TD\n",
		`n_root["Menu <br/> Container"]`,
		`n_bg[/"Bg <br/> Rectangle"/]`,
		`n_btn_1[["Play 'now' <br/> Sprite"]]`,
		`n_label{{"Label <br/> Text"}}`,
		`n_dot(("Dot <br/> Circle"))`,
		`n_line>"Line <br/> Path"]`,
		"n_root --> n_bg",
		"n_btn_1 --> n_label",
	}
	for _, want := range contains {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q\nGot:\n%s", want, got)
		}
	}
	if strings.Contains(got, "classDef") {
		t.Errorf("no overlay expected\nGot:\n%s", got)
	}

	// Pre-order: a child edge follows its parent's box and precedes later siblings.
	if strings.Index(got, "n_btn_1 --> n_dot") > strings.Index(got, "n_root --> n_line") {
		t.Errorf("expected pre-order emission\nGot:\n%s", got)
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	got := graph.GenerateMermaid(buildScene(t), &graph.GraphOverlay{
		Changed:  []domain.NodeID{"bg", "bg", "gone"},
		Selected: "btn-1",
	})

	if strings.Count(got, "class n_bg changed;") != 1 {
		t.Errorf("expected changed node styled once\nGot:\n%s", got)
	}
	if strings.Contains(got, "n_gone") {
		t.Errorf("removed nodes must not be styled\nGot:\n%s", got)
	}
	if !strings.Contains(got, "class n_btn_1 selected;") {
		t.Errorf("expected selected style\nGot:\n%s", got)
	}
}

func TestGenerateMermaid_Nil(t *testing.T) {
	if got := graph.GenerateMermaid(nil, nil); got != "graph TD\n" {
		t.Errorf("unexpected output %q", got)
	}
}
