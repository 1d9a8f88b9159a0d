package domain

import "errors"

// Store errors
var (
	// ErrNodeNotFound is returned when an operation references an identifier absent from the scene.
	ErrNodeNotFound = errors.New("node not found")

	// ErrRootOperation is returned when an operation would remove or move the root.
	ErrRootOperation = errors.New("operation not allowed on the root node")

	// ErrTypeMismatch is returned when a property value does not decode to a known variant.
	ErrTypeMismatch = errors.New("property type mismatch")

	// ErrCycle is returned when a move would place a node under its own subtree.
	ErrCycle = errors.New("move would create a cycle")

	// ErrIndexOutOfRange is returned when a child index is outside the parent's child list.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrIDExhausted is returned when the id generator keeps producing identifiers already in use.
	ErrIDExhausted = errors.New("could not allocate a fresh node id")

	// ErrInvalidScene is returned when a scene document violates the tree invariants.
	ErrInvalidScene = errors.New("invalid scene")
)

// Persistence errors
var (
	// ErrSceneNotFound is returned when a scene ID cannot be found in the store.
	ErrSceneNotFound = errors.New("scene not found")

	// ErrSceneExists is returned when creating a scene whose ID is already taken.
	ErrSceneExists = errors.New("scene already exists")

	// ErrTemplateNotFound is returned when a template ID cannot be resolved by a loader.
	ErrTemplateNotFound = errors.New("template not found")
)
