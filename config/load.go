package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "cdk-variables.json"

// Load reads pipeline options from a .json, .yaml or .yml file.
func Load(path string) (PipelineOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PipelineOptions{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	opts, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return PipelineOptions{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return opts, nil
}

// Parse decodes options in the format named by ext.
func Parse(data []byte, ext string) (PipelineOptions, error) {
	var opts PipelineOptions
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&opts); err != nil {
			return PipelineOptions{}, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return PipelineOptions{}, err
		}
	default:
		return PipelineOptions{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return opts, nil
}
