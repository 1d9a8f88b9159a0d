package schema

import (
	"fmt"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// Schema is a map of property keys to their expected types.
// Example: {"path": String(), "width": NonNegative()}
type Schema map[string]Type

// Validate checks present properties against the schema.
// Keys absent from props are not errors.
func Validate(schema Schema, props map[string]domain.PropertyValue) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error
	for _, key := range sortedKeys(schema) {
		value, exists := props[key]
		if !exists {
			continue
		}
		if err := schema[key].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateFields validates only specific fields from props against the schema.
// Missing fields are treated as an error.
func ValidateFields(schema Schema, props map[string]domain.PropertyValue, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	var errs []error
	for _, key := range fields {
		fieldType, exists := schema[key]
		if !exists {
			errs = append(errs, &ValidationError{Key: key, Reason: "not defined in schema"})
			continue
		}

		value, present := props[key]
		if !present {
			errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Set holds one schema per node type.
type Set map[domain.NodeType]Schema

var position = Schema{
	"x": Number(),
	"y": Number(),
}

var box = Schema{
	"x":      Number(),
	"y":      Number(),
	"width":  NonNegative(),
	"height": NonNegative(),
}

// Defaults returns the schemas of the built-in node types. The result is a
// fresh copy the caller may extend.
func Defaults() Set {
	return Set{
		domain.NodeTypeContainer: box.with(nil),
		domain.NodeTypeSprite:    box.with(Schema{"path": String()}),
		domain.NodeTypeRectangle: box.with(Schema{"color": Color(), "border_radius": NonNegative()}),
		domain.NodeTypeCircle:    position.with(Schema{"radius": NonNegative(), "color": Color()}),
		domain.NodeTypePath:      position.with(Schema{"color": Color()}),
		domain.NodeTypeText:      position.with(Schema{"content": String(), "color": Color()}),
	}
}

func (s Schema) with(extra Schema) Schema {
	out := make(Schema, len(s)+len(extra))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Extend merges extra into the schema of t.
func (set Set) Extend(t domain.NodeType, extra Schema) {
	set[t] = set[t].with(extra)
}

// Check validates every node of sc against its type's schema and returns
// one error per offending node, in identifier order.
func (set Set) Check(sc *domain.Scene) []error {
	if sc == nil {
		return nil
	}
	var errs []error
	for _, id := range sc.IDs() {
		n := sc.Nodes[id]
		if n == nil {
			continue
		}
		if err := Validate(set[n.Type], n.Properties); err != nil {
			errs = append(errs, &NodeError{NodeID: id, Name: n.Name, Err: err})
		}
	}
	return errs
}

// Check validates sc against Defaults.
func Check(sc *domain.Scene) []error {
	return Defaults().Check(sc)
}

// NodeError attributes a validation failure to a node.
type NodeError struct {
	NodeID domain.NodeID
	Name   string
	Err    error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s (%s): %v", e.NodeID, e.Name, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }
