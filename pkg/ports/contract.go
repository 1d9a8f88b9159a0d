package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSceneStoreContract runs a suite of tests to verify that a SceneStore implementation
// adheres to the defined interface contract.
func RunSceneStoreContract(t *testing.T, store SceneStore) {
	ctx := context.Background()
	sceneID := "contract-test-scene-" + time.Now().Format("20060102150405")

	build := func(id string) *domain.Scene {
		s := scene.New("Contract", scene.WithSceneID(id))
		bg, err := s.AddNode(s.RootID(), "Bg", domain.NodeTypeRectangle)
		require.NoError(t, err)
		require.NoError(t, s.SetProperty(bg, "color", domain.Color(0x00FF00FF)))
		hero, err := s.AddNode(bg, "Hero", domain.NodeTypeSprite)
		require.NoError(t, err)
		require.NoError(t, s.SetProperty(hero, "path", domain.Text("hero.png")))
		require.NoError(t, s.SetProperty(hero, "visible", domain.Bool(true)))
		return s.Scene()
	}

	t.Run("Save and Load", func(t *testing.T) {
		original := build(sceneID)

		err := store.Save(ctx, sceneID, original)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sceneID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, original.Name, loaded.Name)
		assert.Equal(t, original.RootID, loaded.RootID)
		assert.Equal(t, original.Nodes, loaded.Nodes, "nodes, child order and property variants survive a round trip")
		assert.Empty(t, scene.Validate(loaded))
	})

	t.Run("Load Is Isolated From Caller Mutation", func(t *testing.T) {
		original := build(sceneID)
		require.NoError(t, store.Save(ctx, sceneID, original))
		original.Nodes[original.RootID].Name = "changed after save"

		loaded, err := store.Load(ctx, sceneID)
		require.NoError(t, err)
		assert.Equal(t, "Root", loaded.Nodes[loaded.RootID].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sceneID)
		assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sceneID, build(sceneID))
		require.NoError(t, err)

		err = store.Delete(ctx, sceneID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sceneID)
		assert.ErrorIs(t, err, domain.ErrSceneNotFound, "Load after Delete should return ErrSceneNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sceneID + "-1"
		id2 := sceneID + "-2"
		_ = store.Save(ctx, id1, build(id1))
		_ = store.Save(ctx, id2, build(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		scenes, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, scenes, id1)
		assert.Contains(t, scenes, id2)
	})
}
