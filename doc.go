/*
Package editor is a scene-graph editor core that turns a tree of typed nodes into
source code for the turbo rendering DSL.

It keeps an arena of nodes (containers, sprites, rectangles, text...) whose tree
invariants hold after every mutation, and compiles a scene deterministically into
a `turbo::go! { ... }` program.

# Concept

A Scene is a named tree rooted at a Container. Nodes refer to each other by
opaque identifiers; properties are typed (text, number, boolean, packed color)
and reads fall back to a default instead of failing. The code generator walks
the tree in child order and dispatches on node type through a rule registry.

The Editor ties the core to persistence with a single-writer session per
scene, so the same API serves a CLI, an HTTP server or an MCP agent.

# Key Features

  - Strong guarantee: a failed mutation leaves the scene unchanged.
  - Deterministic output: the same scene always yields byte-identical code.
  - Pluggable storage: memory, files, Redis, with encryption middleware.
  - Templates: reusable subtrees read from Markdown, JSON or YAML.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		editor "github.com/aretw0/turbo-editor"
		"github.com/aretw0/turbo-editor/pkg/domain"
	)

	func main() {
		ctx := context.Background()
		ed, err := editor.New()
		if err != nil {
			log.Fatal(err)
		}

		sc, err := ed.CreateScene(ctx, "Demo")
		if err != nil {
			log.Fatal(err)
		}
		bg, _, err := ed.AddNode(ctx, sc.ID, "/", "Bg", domain.NodeTypeRectangle)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := ed.SetProperty(ctx, sc.ID, string(bg), "color", domain.Color(0x00FF00FF)); err != nil {
			log.Fatal(err)
		}

		code, err := ed.Generate(ctx, sc.ID)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(code)
	}

The scene and codegen packages can also be used directly, without persistence.
*/
package editor
