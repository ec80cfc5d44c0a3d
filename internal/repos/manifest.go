package repos

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Component is one sub-repository entry from the components manifest.
type Component struct {
	Name   string `yaml:"-"`
	Local  string `yaml:"local"`
	Remote string `yaml:"remote"`
	// Develop names the component's development branch, when it has one.
	Develop string `yaml:"develop"`
}

// Manifest is the parsed components.yaml: the auxiliary repositories the
// fixture is assembled from, in declaration order.
type Manifest struct {
	Components []Component
}

// UnmarshalYAML decodes the manifest's top-level mapping of component
// names while preserving declaration order, which a plain map would lose.
func (m *Manifest) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("components manifest must be a mapping, got %v", node.Kind)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.MappingNode {
			// Scalar top-level entries (schema version markers etc.) are
			// not components.
			continue
		}
		var c Component
		if err := value.Decode(&c); err != nil {
			return fmt.Errorf("component %q: %w", key.Value, err)
		}
		c.Name = key.Value
		m.Components = append(m.Components, c)
	}
	return nil
}

// LoadManifest reads and parses a components.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read components manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse components manifest %s: %w", path, err)
	}
	return &m, nil
}

// DevelopComponents returns the names of components that declare a
// development branch, in manifest order.
func (m *Manifest) DevelopComponents() []string {
	var names []string
	for _, c := range m.Components {
		if c.Develop != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
