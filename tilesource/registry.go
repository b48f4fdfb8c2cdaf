package tilesource

import "tileserve/entities"

// Registry maps a composite source identifier (one or more comma-joined
// source ids) to the ordered list of sources that back it, whether
// per-request query strings should be forwarded to those sources, and the
// TileInfo homogenized across the group.
//
// GetSources fails if any id is unknown, or if zoom is non-nil and falls
// outside a selected source's declared [MinZoom,MaxZoom] range.
type Registry interface {
	GetSources(compositeID string, zoom *int) (sources []Source, forwardQuery bool, info entities.TileInfo, err error)

	// Catalog returns a snapshot listing of every registered source, keyed
	// by id, for the /catalog endpoint. The snapshot must not be mutated by
	// callers; reload is an atomic pointer swap performed externally.
	Catalog() map[string]CatalogEntry
}

// CatalogEntry is the per-source summary exposed by /catalog.
type CatalogEntry struct {
	ContentType string `json:"content_type"`
	Description string `json:"description,omitempty"`
	Name        string `json:"name,omitempty"`
}
