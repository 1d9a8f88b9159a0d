package schema

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"gopkg.in/yaml.v3"
)

// MarshalJSON serializes the schema as a map of property keys to type strings.
func (s Schema) MarshalJSON() ([]byte, error) {
	raw, err := s.typeMap()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []byte("null"), nil
	}
	return json.Marshal(raw)
}

// UnmarshalJSON deserializes the schema from a map of property keys to type strings.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTypeMap(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML renders the schema as a type-string map.
func (s Schema) MarshalYAML() (any, error) {
	return s.typeMap()
}

// UnmarshalYAML reads a type-string map, as found in turbo.yaml.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseTypeMap(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Schema) typeMap() (map[string]string, error) {
	if s == nil {
		return nil, nil
	}
	raw := make(map[string]string, len(s))
	for key, typ := range s {
		if typ == nil {
			return nil, fmt.Errorf("field %s: type is nil", key)
		}
		raw[key] = typ.Name()
	}
	return raw, nil
}

// ParseSet converts node type names to schemas, as read from configuration.
func ParseSet(raw map[string]Schema) (Set, error) {
	set := make(Set, len(raw))
	for name, s := range raw {
		t, err := domain.ParseNodeType(name)
		if err != nil {
			return nil, err
		}
		set[t] = s
	}
	return set, nil
}
