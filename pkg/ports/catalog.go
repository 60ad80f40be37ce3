package ports

import "github.com/quiltspace/quilt/pkg/domain"

// DecorationCatalog is the read-only lookup of placeable decoration
// metadata the grid snapper consults for item footprints.
type DecorationCatalog interface {
	// Item returns the decoration metadata, or false when unknown.
	Item(id string) (domain.Decoration, bool)
	// Items returns all catalog entries.
	Items() []domain.Decoration
}
