package memory

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quiltspace/quilt/pkg/domain"
)

// Catalog implements ports.DecorationCatalog over a fixed item list,
// typically loaded from a YAML file at startup.
type Catalog struct {
	items map[string]domain.Decoration
	order []string
}

// NewCatalog builds a catalog from items. Later duplicates of an id
// replace earlier ones.
func NewCatalog(items []domain.Decoration) *Catalog {
	c := &Catalog{items: make(map[string]domain.Decoration, len(items))}
	for _, item := range items {
		if _, seen := c.items[item.ID]; !seen {
			c.order = append(c.order, item.ID)
		}
		c.items[item.ID] = item
	}
	return c
}

// catalogFile is the YAML shape of a decoration catalog.
type catalogFile struct {
	Decorations []domain.Decoration `yaml:"decorations"`
}

// LoadCatalog reads a decoration catalog from YAML.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode decoration catalog: %w", err)
	}
	for i, d := range file.Decorations {
		if d.ID == "" {
			return nil, fmt.Errorf("decoration %d: missing id", i)
		}
	}
	return NewCatalog(file.Decorations), nil
}

// LoadCatalogFile reads a decoration catalog from a YAML file on disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open decoration catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Item returns the decoration metadata, or false when unknown.
func (c *Catalog) Item(id string) (domain.Decoration, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns all catalog entries in load order.
func (c *Catalog) Items() []domain.Decoration {
	out := make([]domain.Decoration, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}
