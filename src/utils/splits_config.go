package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

func ParseSplitsConfig(data []byte) (eventmodels.SplitRegistryConfig, error) {
	var dto eventmodels.SplitsConfigYAML
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return eventmodels.SplitRegistryConfig{}, fmt.Errorf("ParseSplitsConfig: failed to unmarshal yaml: %w", err)
	}

	config, err := dto.ToModel()
	if err != nil {
		return eventmodels.SplitRegistryConfig{}, fmt.Errorf("ParseSplitsConfig: %w", err)
	}

	return config, nil
}

func LoadSplitsConfig(path string) (eventmodels.SplitRegistryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return eventmodels.SplitRegistryConfig{}, fmt.Errorf("LoadSplitsConfig: failed to read file: %w", err)
	}

	config, err := ParseSplitsConfig(data)
	if err != nil {
		return eventmodels.SplitRegistryConfig{}, fmt.Errorf("LoadSplitsConfig: %s: %w", path, err)
	}

	return config, nil
}

func SaveSplitsConfig(path string, config eventmodels.SplitRegistryConfig) error {
	dto := eventmodels.NewSplitsConfigYAML(config)

	data, err := yaml.Marshal(&dto)
	if err != nil {
		return fmt.Errorf("SaveSplitsConfig: failed to marshal yaml: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("SaveSplitsConfig: failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("SaveSplitsConfig: failed to write file: %w", err)
	}

	return nil
}
