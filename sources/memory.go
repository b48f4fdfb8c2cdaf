package sources

import (
	"context"
	"fmt"
	"sync"

	"tileserve/apierr"
	"tileserve/entities"
	"tileserve/tilejson"
	"tileserve/tilesource"
)

// MemorySource is a Source backed by an in-memory map, generalized from the
// teacher's MVTMemoryStorage cache (services/mvt_storage_memory_service.go):
// a map guarded by a RWMutex, keyed here by entities.TileCoord, holding a source's
// authoritative tiles rather than a cache of someone else's.
type MemorySource struct {
	id      string
	tj      tilejson.TileJSON
	info    entities.TileInfo
	minZoom int
	maxZoom int

	mu    sync.RWMutex
	tiles map[entities.TileCoord][]byte
}

// NewMemorySource creates an empty in-memory source; call PutTile to seed it.
func NewMemorySource(id string, tj tilejson.TileJSON, info entities.TileInfo, minZoom, maxZoom int) *MemorySource {
	return &MemorySource{
		id:      id,
		tj:      tj,
		info:    info,
		minZoom: minZoom,
		maxZoom: maxZoom,
		tiles:   make(map[entities.TileCoord][]byte),
	}
}

func (m *MemorySource) ID() string                   { return m.id }
func (m *MemorySource) TileJSON() tilejson.TileJSON   { return m.tj }
func (m *MemorySource) TileInfo() entities.TileInfo   { return m.info }
func (m *MemorySource) MinZoom() int                  { return m.minZoom }
func (m *MemorySource) MaxZoom() int                  { return m.maxZoom }

// PutTile seeds (or replaces) the bytes for one coordinate. An empty data
// slice is legal and models "no content for this coordinate".
func (m *MemorySource) PutTile(coord entities.TileCoord, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiles[coord] = data
}

// Fetch never blocks beyond the mutex: the data already lives in memory.
func (m *MemorySource) Fetch(_ context.Context, coord entities.TileCoord, _ tilesource.UrlQuery) ([]byte, error) {
	if coord.Z < uint8(m.minZoom) || int(coord.Z) > m.maxZoom {
		return nil, apierr.New(apierr.KindBackendFailure, fmt.Sprintf("zoom %d out of range [%d,%d]", coord.Z, m.minZoom, m.maxZoom))
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.tiles[coord]
	if !ok {
		return nil, nil
	}
	return data, nil
}

var _ tilesource.Source = (*MemorySource)(nil)
