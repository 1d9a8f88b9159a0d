package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeAdded   EventType = "node_added"
	EventNodeRemoved EventType = "node_removed"
	EventNodeMoved   EventType = "node_moved"
	EventPropertySet EventType = "property_set"
	EventGenerate    EventType = "generate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SceneID   string    `json:"scene_id"`
}

// NodeEvent reports a structural change to one node.
type NodeEvent struct {
	EventBase
	NodeID   NodeID   `json:"node_id"`
	NodeType NodeType `json:"node_type"`
	ParentID NodeID   `json:"parent_id,omitempty"`
	// Removed counts the nodes deleted by a remove, descendants included.
	Removed int `json:"removed,omitempty"`
}

// PropertyEvent reports a property write.
type PropertyEvent struct {
	EventBase
	NodeID NodeID        `json:"node_id"`
	Key    string        `json:"key"`
	Value  PropertyValue `json:"value"`
}

// GenerateEvent reports a finished code generation pass.
type GenerateEvent struct {
	EventBase
	Statements int           `json:"statements"`
	Bytes      int           `json:"bytes"`
	Duration   time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for editor observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnNodeAdded   func(context.Context, *NodeEvent)
	OnNodeRemoved func(context.Context, *NodeEvent)
	OnNodeMoved   func(context.Context, *NodeEvent)
	OnPropertySet func(context.Context, *PropertyEvent)
	OnGenerate    func(context.Context, *GenerateEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeAdded:   chain(h.OnNodeAdded, other.OnNodeAdded),
		OnNodeRemoved: chain(h.OnNodeRemoved, other.OnNodeRemoved),
		OnNodeMoved:   chain(h.OnNodeMoved, other.OnNodeMoved),
		OnPropertySet: chain(h.OnPropertySet, other.OnPropertySet),
		OnGenerate:    chain(h.OnGenerate, other.OnGenerate),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
