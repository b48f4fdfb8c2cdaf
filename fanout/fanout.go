// Package fanout implements the tile fan-out and assembly step of spec §4.3:
// dispatch one coordinate to every selected source concurrently, then
// validate and concatenate the results. Concurrency here follows the same
// join-all-then-inspect shape as the teacher's event Dispatcher
// (events/dispatcher.go), generalized from sync.WaitGroup+channel to
// golang.org/x/sync/errgroup so the first failure cancels its siblings.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tileserve/apierr"
	"tileserve/entities"
	"tileserve/tilesource"
)

// Assemble fetches coord from every source concurrently, in source order,
// and produces the single Tile the negotiator will act on.
//
//   - zero non-empty payloads -> an empty Tile (caller emits 204).
//   - exactly one non-empty payload -> that payload, adopted directly.
//   - two or more -> only legal when info.Format == MVT and info.Encoding is
//     uncompressed or gzip (protobuf repeated fields / gzip members both
//     concatenate safely at the byte level); otherwise KindUnmergeableTiles.
//
// Any individual source failure aborts the whole request with KindBackendFailure.
func Assemble(ctx context.Context, sources []tilesource.Source, info entities.TileInfo, coord entities.TileCoord, query tilesource.UrlQuery) (entities.Tile, error) {
	results := make([][]byte, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			data, err := src.Fetch(gctx, coord, query)
			if err != nil {
				return fmt.Errorf("source %q: %w", src.ID(), err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entities.Tile{}, apierr.Wrap(apierr.KindBackendFailure, err, "fetching tile from sources")
	}

	var nonEmpty [][]byte
	for _, data := range results {
		if len(data) > 0 {
			nonEmpty = append(nonEmpty, data)
		}
	}

	switch len(nonEmpty) {
	case 0:
		return entities.NewTile(nil, info), nil
	case 1:
		return entities.NewTile(nonEmpty[0], info), nil
	default:
		if !canConcatenate(info) {
			return entities.Tile{}, apierr.New(apierr.KindUnmergeableTiles, fmt.Sprintf(
				"can't merge %s tiles: make sure there is only one non-empty tile source at zoom level %d",
				info, coord.Z))
		}
		return entities.NewTile(concat(nonEmpty), info), nil
	}
}

// canConcatenate reports whether raw byte concatenation of N tiles in this
// shape yields a valid tile: MVT is a protobuf message whose top-level field
// is repeated, and gzip members concatenate to a valid gzip stream, so only
// {mvt, uncompressed} and {mvt, gzip} are safe.
func canConcatenate(info entities.TileInfo) bool {
	return info.Format == entities.FormatMVT &&
		(info.Encoding == entities.EncodingUncompressed || info.Encoding == entities.EncodingGzip)
}

func concat(parts [][]byte) []byte {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
