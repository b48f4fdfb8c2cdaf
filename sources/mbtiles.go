package sources

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"tileserve/apierr"
	"tileserve/entities"
	"tileserve/tilejson"
	"tileserve/tilesource"
)

// MBTilesSource reads pre-rendered tiles out of an mbtiles-shaped sqlite
// file (the standard "tiles(zoom_level, tile_column, tile_row, tile_data)"
// schema used across the pack's mbtiles readers). Grounded on the teacher's
// MVTGeneratorPostgis connection-lifecycle shape (services/mvt_generator_postgis_service.go)
// but reading sqlite via modernc.org/sqlite instead of opening a network
// database, and on the other_examples mbtiles readers for the query shape.
type MBTilesSource struct {
	id      string
	db      *sql.DB
	tj      tilejson.TileJSON
	info    entities.TileInfo
	minZoom int
	maxZoom int
	stmt    *sql.Stmt
}

// OpenMBTiles opens the sqlite file at path and prepares the tile lookup
// statement once, the way the teacher prepares its PostGIS statements at
// construction time rather than per request.
func OpenMBTiles(id, path string, tj tilejson.TileJSON, info entities.TileInfo, minZoom, maxZoom int) (*MBTilesSource, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, apierr.Wrap(apierr.KindBackendFailure, err, "opening mbtiles file "+path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apierr.Wrap(apierr.KindBackendFailure, err, "pinging mbtiles file "+path)
	}
	stmt, err := db.Prepare(`SELECT tile_data FROM tiles WHERE zoom_level = ? AND tile_column = ? AND tile_row = ?`)
	if err != nil {
		db.Close()
		return nil, apierr.Wrap(apierr.KindBackendFailure, err, "preparing mbtiles statement")
	}
	return &MBTilesSource{id: id, db: db, tj: tj, info: info, minZoom: minZoom, maxZoom: maxZoom, stmt: stmt}, nil
}

func (m *MBTilesSource) ID() string                 { return m.id }
func (m *MBTilesSource) TileJSON() tilejson.TileJSON { return m.tj }
func (m *MBTilesSource) TileInfo() entities.TileInfo { return m.info }
func (m *MBTilesSource) MinZoom() int                { return m.minZoom }
func (m *MBTilesSource) MaxZoom() int                { return m.maxZoom }

// Close releases the underlying sqlite connection.
func (m *MBTilesSource) Close() error {
	return m.db.Close()
}

// Fetch looks up a tile by its TMS row, flipping Y the way the mbtiles spec
// requires (row 0 is the southernmost row, XYZ's y=0 is the northernmost).
func (m *MBTilesSource) Fetch(ctx context.Context, coord entities.TileCoord, _ tilesource.UrlQuery) ([]byte, error) {
	tmsRow := (uint32(1)<<coord.Z - 1) - coord.Y

	var data []byte
	err := m.stmt.QueryRowContext(ctx, coord.Z, coord.X, tmsRow).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.KindBackendFailure, err, fmt.Sprintf("reading tile %s from %s", coord, m.id))
	}
	return data, nil
}

var _ tilesource.Source = (*MBTilesSource)(nil)
