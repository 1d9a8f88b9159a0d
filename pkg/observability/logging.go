package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// LogHooks returns hooks that log each event at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeAdded: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node added",
				"scene_id", e.SceneID, "node_id", e.NodeID, "type", e.NodeType, "parent_id", e.ParentID)
		},
		OnNodeRemoved: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node removed",
				"scene_id", e.SceneID, "node_id", e.NodeID, "removed", e.Removed)
		},
		OnNodeMoved: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node moved",
				"scene_id", e.SceneID, "node_id", e.NodeID, "parent_id", e.ParentID)
		},
		OnPropertySet: func(ctx context.Context, e *domain.PropertyEvent) {
			logger.DebugContext(ctx, "property set",
				"scene_id", e.SceneID, "node_id", e.NodeID, "key", e.Key, "value", e.Value.String())
		},
		OnGenerate: func(ctx context.Context, e *domain.GenerateEvent) {
			logger.InfoContext(ctx, "code generated",
				"scene_id", e.SceneID, "statements", e.Statements, "bytes", e.Bytes, "duration", e.Duration)
		},
	}
}
