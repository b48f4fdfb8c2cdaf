// Package sources provides a concrete, in-memory Registry implementation
// plus a handful of reference Source backends (static, mbtiles, PostGIS).
// The backends are illustrative, not mandated by the core spec: spec §3
// treats "how a Source fetches bytes" as an external contract.
package sources

import (
	"strconv"
	"strings"
	"sync/atomic"

	"tileserve/apierr"
	"tileserve/entities"
	"tileserve/tilesource"
)

// snapshot is the immutable, atomically-swappable registry state. Mutation
// (reload) never happens in place: a new snapshot is built and swapped in,
// so readers always observe either the whole old state or the whole new one.
type snapshot struct {
	byID map[string]tilesource.Source
}

// Registry is the in-memory implementation of tilesource.Registry. It is
// shared read-only across all HTTP workers; Reload performs the atomic
// pointer swap spec §5 requires for hot-reload safety.
type Registry struct {
	state atomic.Pointer[snapshot]
}

// NewRegistry builds a Registry from the given sources, keyed by their own ID.
func NewRegistry(all []tilesource.Source) *Registry {
	r := &Registry{}
	r.Reload(all)
	return r
}

// Reload atomically replaces the set of known sources.
func (r *Registry) Reload(all []tilesource.Source) {
	snap := &snapshot{byID: make(map[string]tilesource.Source, len(all))}
	for _, s := range all {
		snap.byID[s.ID()] = s
	}
	r.state.Store(snap)
}

// GetSources resolves a composite, comma-joined source id into its ordered
// list of sources, whether per-request queries should be forwarded, and the
// TileInfo homogenized across the group.
func (r *Registry) GetSources(compositeID string, zoom *int) ([]tilesource.Source, bool, entities.TileInfo, error) {
	snap := r.state.Load()
	ids := strings.Split(compositeID, ",")

	out := make([]tilesource.Source, 0, len(ids))
	var info entities.TileInfo
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if tilesource.IsReserved(id) {
			return nil, false, entities.TileInfo{}, apierr.New(apierr.KindUnknownSource, "unknown source: "+id)
		}
		src, ok := snap.byID[id]
		if !ok {
			return nil, false, entities.TileInfo{}, apierr.New(apierr.KindUnknownSource, "unknown source: "+id)
		}
		if zoom != nil && (*zoom < src.MinZoom() || *zoom > src.MaxZoom()) {
			return nil, false, entities.TileInfo{}, apierr.New(apierr.KindUnknownSource,
				"zoom "+strconv.Itoa(*zoom)+" out of range for source: "+id)
		}
		if i == 0 {
			info = src.TileInfo()
		}
		out = append(out, src)
	}

	// Per-request query strings are only forwarded for a single-source
	// request; once sources are fanned out and merged, a shared query string
	// has no unambiguous target. This policy lives in the registry per
	// spec's design note: "the core must not invent its own heuristic" -
	// here the registry's heuristic is exactly "single source only".
	forwardQuery := len(out) == 1

	return out, forwardQuery, info, nil
}

// Catalog returns a snapshot listing of every registered source.
func (r *Registry) Catalog() map[string]tilesource.CatalogEntry {
	snap := r.state.Load()
	out := make(map[string]tilesource.CatalogEntry, len(snap.byID))
	for id, src := range snap.byID {
		tj := src.TileJSON()
		entry := tilesource.CatalogEntry{ContentType: src.TileInfo().Format.ContentType()}
		if tj.Name != nil {
			entry.Name = *tj.Name
		}
		if tj.Description != nil {
			entry.Description = *tj.Description
		}
		out[id] = entry
	}
	return out
}

var _ tilesource.Registry = (*Registry)(nil)
