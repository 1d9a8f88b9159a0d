package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// Store implements ports.SceneStore using the local filesystem.
// It stores scenes as indented JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".turbo/scenes".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".turbo", "scenes")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(sceneID string) (string, error) {
	if sceneID == "" {
		return "", fmt.Errorf("sceneID cannot be empty")
	}
	if strings.ContainsAny(sceneID, `/\`) || sceneID == "." || sceneID == ".." {
		return "", fmt.Errorf("invalid sceneID %q", sceneID)
	}
	return filepath.Join(s.BasePath, sceneID+".json"), nil
}

// Save persists the scene to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, sceneID string, scene *domain.Scene) error {
	destPath, err := s.path(sceneID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure scene directory: %w", err)
	}

	data, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+sceneID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Close before rename; Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing scene file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to scene file: %w", err)
	}
	return nil
}

// Load retrieves the scene from its JSON file.
func (s *Store) Load(ctx context.Context, sceneID string) (*domain.Scene, error) {
	filePath, err := s.path(sceneID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSceneNotFound
		}
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var scene domain.Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene: %w", err)
	}
	return &scene, nil
}

// Delete removes the scene file.
func (s *Store) Delete(ctx context.Context, sceneID string) error {
	filePath, err := s.path(sceneID)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete scene file: %w", err)
	}
	return nil
}

// List returns all stored scene IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}

	scenes := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		scenes = append(scenes, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(scenes)
	return scenes, nil
}
