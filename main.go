package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"tileserve/config"
	"tileserve/entities"
	"tileserve/fonts"
	"tileserve/server"
	"tileserve/sources"
	"tileserve/sprites"
	"tileserve/tilejson"
	"tileserve/tilesource"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	// WorkerProcesses bounds how much the fan-out step (and everything else)
	// can run in parallel; GOMAXPROCS is Go's direct analogue of the
	// reference server's worker-process count.
	runtime.GOMAXPROCS(cfg.WorkerProcesses)

	tiles, err := loadSources(log)
	if err != nil {
		log.Fatal("loading sources", zap.Error(err))
	}

	srv := server.New(cfg, log, tiles, sprites.NewCatalog(), fonts.NewCatalog())
	defer srv.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting server", zap.Strings("listen_addresses", cfg.ListenAddresses), zap.Int("worker_processes", cfg.WorkerProcesses))
	if err := srv.Start(ctx); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("server stopped")
}

// loadSources builds the registry from MBTILES_SOURCES ("id:path,id:path")
// and POSTGIS_DSN environment variables. Populating the registry from actual
// config files/service discovery is left to deployment tooling (spec §1
// non-goals); this is the minimal wiring needed to exercise the mbtiles and
// PostGIS backends end to end.
func loadSources(log *zap.Logger) (*sources.Registry, error) {
	var all []tilesource.Source

	if raw := os.Getenv("MBTILES_SOURCES"); raw != "" {
		for _, entry := range strings.Split(raw, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			parts := strings.SplitN(entry, ":", 2)
			if len(parts) != 2 {
				log.Warn("skipping malformed MBTILES_SOURCES entry", zap.String("entry", entry))
				continue
			}
			id, path := parts[0], parts[1]
			src, err := sources.OpenMBTiles(id, path, defaultTileJSON(id), entities.TileInfo{
				Format:   entities.FormatMVT,
				Encoding: entities.EncodingGzip,
			}, 0, 14)
			if err != nil {
				return nil, err
			}
			all = append(all, src)
			log.Info("registered mbtiles source", zap.String("id", id), zap.String("path", path))
		}
	}

	if dsn := os.Getenv("POSTGIS_DSN"); dsn != "" {
		query := os.Getenv("POSTGIS_QUERY")
		if query == "" {
			query = `SELECT ST_AsMVT(tile, 'layer') FROM (
				SELECT ST_AsMVTGeom(geom, ST_TileEnvelope($1, $2, $3)) AS geom FROM features
				WHERE geom && ST_TileEnvelope($1, $2, $3)
			) AS tile`
		}
		src, err := sources.OpenPostGIS(context.Background(), "postgis", dsn, query, defaultTileJSON("postgis"), entities.TileInfo{
			Format:   entities.FormatMVT,
			Encoding: entities.EncodingUncompressed,
		}, 0, 22)
		if err != nil {
			return nil, err
		}
		all = append(all, src)
		log.Info("registered postgis source", zap.String("id", "postgis"))
	}

	return sources.NewRegistry(all), nil
}

func defaultTileJSON(id string) tilejson.TileJSON {
	name := id
	return tilejson.TileJSON{TileJSON: "3.0.0", Name: &name}
}
