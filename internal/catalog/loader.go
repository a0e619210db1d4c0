package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the tools.yaml dataset.
type Loader struct {
	filePath string
}

// NewLoader creates a new dataset loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the tools.yaml file.
func (l *Loader) Load() (ToolsFile, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return ToolsFile{}, fmt.Errorf("failed to read tools file: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals raw dataset bytes.
func Parse(data []byte) (ToolsFile, error) {
	var file ToolsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ToolsFile{}, fmt.Errorf("failed to parse tools yaml: %w", err)
	}
	if len(file.Tools) == 0 {
		return ToolsFile{}, fmt.Errorf("no tools found in dataset")
	}
	return file, nil
}
