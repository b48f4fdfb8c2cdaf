package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tileserve/apierr"
	"tileserve/entities"
	"tileserve/tilejson"
	"tileserve/tilesource"
)

// PostGISSource generates MVT tiles from a PostGIS function call, one
// connection pool per source. Generalized from the teacher's
// MVTGeneratorPostgis (services/mvt_generator_postgis_service.go), which
// opened a database/sql + lib/pq connection for the same purpose; here we
// use pgx/v5's pool directly (the pack's real PostGIS client, via
// sells-group-research-cli) rather than the database/sql indirection.
type PostGISSource struct {
	id      string
	pool    *pgxpool.Pool
	query   string // a PostGIS ST_AsMVT-shaped query taking (z, x, y) params
	tj      tilejson.TileJSON
	info    entities.TileInfo
	minZoom int
	maxZoom int
}

// OpenPostGIS connects to dsn and returns a Source that evaluates query for
// each requested tile. query must accept three positional parameters ($1=z,
// $2=x, $3=y) and return a single bytea column of MVT bytes (or no rows).
func OpenPostGIS(ctx context.Context, id, dsn, query string, tj tilejson.TileJSON, info entities.TileInfo, minZoom, maxZoom int) (*PostGISSource, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindBackendFailure, err, "connecting to postgis for source "+id)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apierr.Wrap(apierr.KindBackendFailure, err, "pinging postgis for source "+id)
	}
	return &PostGISSource{id: id, pool: pool, query: query, tj: tj, info: info, minZoom: minZoom, maxZoom: maxZoom}, nil
}

func (p *PostGISSource) ID() string                 { return p.id }
func (p *PostGISSource) TileJSON() tilejson.TileJSON { return p.tj }
func (p *PostGISSource) TileInfo() entities.TileInfo { return p.info }
func (p *PostGISSource) MinZoom() int                { return p.minZoom }
func (p *PostGISSource) MaxZoom() int                { return p.maxZoom }

// Close releases the underlying connection pool.
func (p *PostGISSource) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostGISSource) Fetch(ctx context.Context, coord entities.TileCoord, _ tilesource.UrlQuery) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, p.query, coord.Z, coord.X, coord.Y).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apierr.Wrap(apierr.KindBackendFailure, err, fmt.Sprintf("generating tile %s from %s", coord, p.id))
	}
	return data, nil
}

var _ tilesource.Source = (*PostGISSource)(nil)
