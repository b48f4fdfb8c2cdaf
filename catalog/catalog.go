// Package catalog aggregates the tile, sprite, and font registries into the
// single JSON document the /catalog endpoint serves (spec §4.1, §4.6).
package catalog

import (
	"tileserve/fonts"
	"tileserve/sprites"
	"tileserve/tilesource"
)

// Catalog is the immutable snapshot returned by GET /catalog.
type Catalog struct {
	Tiles   map[string]tilesource.CatalogEntry `json:"tiles"`
	Sprites []string                           `json:"sprites"`
	Fonts   []string                           `json:"fonts"`
}

// Build assembles a Catalog from the current state of each registry. Like
// the registries it reads, the result is a point-in-time snapshot: callers
// that need live data call Build again rather than caching the result
// across a reload.
func Build(tiles tilesource.Registry, spriteCatalog *sprites.Catalog, fontCatalog *fonts.Catalog) Catalog {
	return Catalog{
		Tiles:   tiles.Catalog(),
		Sprites: spriteCatalog.Names(),
		Fonts:   fontCatalog.Names(),
	}
}
