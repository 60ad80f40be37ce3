package registry

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/quiltspace/quilt/pkg/domain"
)

// Manifest is the on-disk YAML shape for host-defined components.
type Manifest struct {
	Components []domain.ComponentDescriptor `yaml:"components"`
}

// LoadManifest decodes a YAML component manifest.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode component manifest: %w", err)
	}
	return &m, nil
}

// RegisterAll registers every descriptor of the manifest in file order.
// Manifests are expected to list parents before their children.
func (m *Manifest) RegisterAll(r *Registry) error {
	for _, desc := range m.Components {
		if err := r.Register(desc); err != nil {
			return err
		}
	}
	return nil
}
