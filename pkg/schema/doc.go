// Package schema describes which properties each node type expects and checks
// scenes against those expectations.
//
// A Schema maps property keys to a Type. Built-in types mirror the property
// variants (string, number, bool, color) and can be narrowed with custom checks:
//
//	sprite := schema.Schema{
//	    "path":    schema.String(),
//	    "width":   schema.NonNegative(),
//	    "opacity": schema.Range(0, 1),
//	}
//
//	if err := schema.Validate(sprite, node.Properties); err != nil {
//	    // Handle validation errors
//	}
//
// Validation is advisory. Absent keys are valid because reads fall back to a
// default; only present values of the wrong kind or outside a range are
// reported. Use ValidateFields when specific keys must be present.
//
// Schemas can be parsed from type strings, which is how project files
// declare them:
//
//	s, err := schema.ParseTypeMap(map[string]string{
//	    "path":  "string",
//	    "color": "color",
//	})
//
// Set bundles one schema per node type; Defaults returns the schemas of the
// built-in node types and Check runs a Set over a whole scene.
package schema
