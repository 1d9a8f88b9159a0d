package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"gopkg.in/yaml.v3"
)

func TestValidate_AbsentKeysAreValid(t *testing.T) {
	s := Schema{"path": String(), "width": NonNegative()}
	if err := Validate(s, nil); err != nil {
		t.Errorf("Validate(nil props) = %v, want nil", err)
	}
	if err := Validate(s, map[string]domain.PropertyValue{"path": domain.Text("a.png")}); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	s := Schema{"path": String(), "width": NonNegative(), "color": Color()}
	props := map[string]domain.PropertyValue{
		"path":  domain.Number(1),
		"width": domain.Number(-5),
		"color": domain.Color(0),
		"extra": domain.Bool(true), // not in schema, ignored
	}

	err := Validate(s, props)
	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("Validate() = %d errors, want 2: %v", len(errs), err)
	}
	// Keys are reported in sorted order.
	var first *ValidationError
	if !errors.As(errs[0], &first) || first.Key != "path" {
		t.Errorf("first error = %v, want path", errs[0])
	}
	if !strings.Contains(err.Error(), "2 validation errors") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	var s Schema
	if err := Validate(s, map[string]domain.PropertyValue{"x": domain.Text("a")}); err != nil {
		t.Errorf("Validate() with nil schema should return nil, got %v", err)
	}
}

func TestValidateFields(t *testing.T) {
	s := Schema{"path": String(), "width": Number()}
	props := map[string]domain.PropertyValue{"path": domain.Text("a.png"), "width": domain.Text("wide")}

	if err := ValidateFields(s, props, "path"); err != nil {
		t.Errorf("ValidateFields(path) = %v, want nil", err)
	}
	if err := ValidateFields(s, props); err != nil {
		t.Errorf("ValidateFields() = %v, want nil", err)
	}

	err := ValidateFields(s, map[string]domain.PropertyValue{}, "path", "nope")
	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("ValidateFields() = %d errors, want 2", len(errs))
	}
	if !strings.Contains(errs[0].Error(), "required") {
		t.Errorf("errs[0] = %v", errs[0])
	}
	if !strings.Contains(errs[1].Error(), "not defined in schema") {
		t.Errorf("errs[1] = %v", errs[1])
	}
}

func TestDefaultsAcceptDefaultProperties(t *testing.T) {
	set := Defaults()
	for _, typ := range domain.NodeTypes() {
		if _, ok := set[typ]; !ok {
			t.Errorf("Defaults() has no schema for %s", typ)
		}
		if err := Validate(set[typ], domain.DefaultProperties(typ)); err != nil {
			t.Errorf("defaults of %s fail their schema: %v", typ, err)
		}
	}
}

func TestCheck(t *testing.T) {
	root := domain.NewNode("root", "Root", domain.NodeTypeContainer)
	hero := domain.NewNode("hero", "Hero", domain.NodeTypeSprite)
	bg := domain.NewNode("bg", "Bg", domain.NodeTypeRectangle)
	rootID := root.ID
	hero.ParentID, bg.ParentID = &rootID, &rootID
	root.Children = []domain.NodeID{"bg", "hero"}
	hero.Properties["path"] = domain.Number(7)
	bg.Properties["color"] = domain.Text("red")

	sc := &domain.Scene{ID: "s", Name: "check", RootID: "root", Nodes: map[domain.NodeID]*domain.Node{
		"root": root, "hero": hero, "bg": bg,
	}}

	errs := Check(sc)
	if len(errs) != 2 {
		t.Fatalf("Check() = %d errors, want 2: %v", len(errs), errs)
	}
	var ne *NodeError
	if !errors.As(errs[0], &ne) || ne.NodeID != "bg" {
		t.Errorf("errs[0] = %v, want node bg first", errs[0])
	}
	var ve *ValidationError
	if !errors.As(errs[1], &ve) || ve.Key != "path" {
		t.Errorf("errs[1] = %v, want path failure", errs[1])
	}

	set := Defaults()
	set.Extend(domain.NodeTypeSprite, Schema{"opacity": Range(0, 1)})
	hero.Properties["path"] = domain.Text("ok.png")
	hero.Properties["opacity"] = domain.Number(2)
	errs = set.Check(sc)
	if len(errs) != 2 || !strings.Contains(errs[1].Error(), "opacity") {
		t.Errorf("extended Check() = %v", errs)
	}
	if Check(nil) != nil {
		t.Error("Check(nil) should be nil")
	}
}

func TestSchemaSerialization(t *testing.T) {
	s := Schema{"path": String(), "opacity": Range(0, 1)}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back Schema
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back["opacity"].Name() != "number[0,1]" || back["path"].Name() != "string" {
		t.Errorf("round trip = %v", back)
	}

	var cfg struct {
		Schemas map[string]Schema `yaml:"schemas"`
	}
	doc := "schemas:\n  Sprite:\n    opacity: number[0,1]\n  Text:\n    font_size: number>=1\n"
	if err := yaml.Unmarshal([]byte(doc), &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	set, err := ParseSet(cfg.Schemas)
	if err != nil {
		t.Fatalf("ParseSet() error = %v", err)
	}
	if set[domain.NodeTypeText]["font_size"].Name() != "number>=1" {
		t.Errorf("ParseSet() = %v", set)
	}

	if _, err := ParseSet(map[string]Schema{"Hexagon": {}}); err == nil {
		t.Error("ParseSet() should reject unknown node types")
	}
	if err := yaml.Unmarshal([]byte("schemas:\n  Sprite:\n    a: vector\n"), &cfg); err == nil {
		t.Error("yaml.Unmarshal() should reject unknown property types")
	}
}
