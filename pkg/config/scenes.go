package config

import (
	"fmt"
	"os"

	"github.com/CrusoO/CodeSensei/pkg/model"

	"gopkg.in/yaml.v3"
)

// ScenesFile is the on-disk format for a scene descriptor list.
type ScenesFile struct {
	Scenes []model.SceneDescriptor `yaml:"scenes"`
}

// LoadScenes reads an ordered scene descriptor list from a YAML file.
func LoadScenes(path string) ([]model.SceneDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenes file: %w", err)
	}

	var f ScenesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenes file: %w", err)
	}

	if len(f.Scenes) == 0 {
		return nil, fmt.Errorf("scenes file %s contains no scenes", path)
	}

	return f.Scenes, nil
}
