package catalog

import "gopkg.in/yaml.v3"

// ToolsFile represents the top-level structure of tools.yaml.
type ToolsFile struct {
	Tools []ToolSpec `yaml:"tools"`
}

// ToolSpec contains the raw dataset properties for one tool. Dates are
// kept as strings here; the mapper parses and validates them.
type ToolSpec struct {
	ID          int           `yaml:"id"`
	Name        string        `yaml:"name"`
	Category    string        `yaml:"category"`
	Description string        `yaml:"description"`
	Image       string        `yaml:"image,omitempty"`
	Features    []FeatureSpec `yaml:"features,omitempty"`
	Pricing     string        `yaml:"pricing"`
	Link        string        `yaml:"link"`
	DateAdded   string        `yaml:"dateAdded"`
	Popularity  int           `yaml:"popularity"`
}

// FeatureSpec accepts both forms found in datasets: a plain string, or a
// mapping with name/description.
type FeatureSpec struct {
	Name        string
	Description string
}

func (f *FeatureSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Name = node.Value
		return nil
	}
	var full struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}
	if err := node.Decode(&full); err != nil {
		return err
	}
	f.Name = full.Name
	f.Description = full.Description
	return nil
}
