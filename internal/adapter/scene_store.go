package adapter

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/vyorkin/patchbay/internal/model"
)

// SceneStore loads and saves scene and frame-script documents.
type SceneStore interface {
	LoadScene(path string) (*m.Scene, error)
	LoadScript(path string) (*m.FrameScript, error)
	WriteScene(path string, scene *m.Scene) error
}

type localSceneStore struct{}

// NewLocalSceneStore creates a SceneStore backed by the local filesystem.
func NewLocalSceneStore() SceneStore {
	return &localSceneStore{}
}

// LoadScene implements SceneStore. The scene is validated on load.
func (a *localSceneStore) LoadScene(path string) (*m.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}

	var scene m.Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}

	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", path, err)
	}

	slog.Debug("loaded scene", "path", path, "nodes", len(scene.Nodes), "links", len(scene.Links))

	return &scene, nil
}

// LoadScript implements SceneStore.
func (a *localSceneStore) LoadScript(path string) (*m.FrameScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	var script m.FrameScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}

	slog.Debug("loaded script", "path", path, "frames", len(script.Frames))

	return &script, nil
}

// WriteScene implements SceneStore.
func (a *localSceneStore) WriteScene(path string, scene *m.Scene) error {
	if err := scene.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid scene: %w", err)
	}

	data, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scene %s: %w", path, err)
	}

	return nil
}
