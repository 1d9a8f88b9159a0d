/*
Package codegen translates a scene into source text for the turbo rendering DSL.

Generation is a pure pre-order walk from the root. Each node type maps to a Rule
in a Registry; types without a rule fall back to a comment placeholder and the
walk continues into their children. Container is transparent: it emits nothing
and its children stay at the container's depth.

	out := codegen.Generate(store.Scene())

The output for identical scenes is byte-identical.
*/
package codegen
