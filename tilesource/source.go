// Package tilesource defines the contracts this core consumes from tile
// backends and the source registry, without prescribing how either is
// implemented (spec §3, §4.1 non-goals).
package tilesource

import (
	"context"

	"tileserve/entities"
	"tileserve/tilejson"
)

// UrlQuery is the set of request query parameters a source may receive,
// forwarded verbatim only when the registry says the group wants it.
type UrlQuery map[string]string

// Source is an opaque handle on a tile producer: a stable id, an immutable
// TileJSON snapshot, the TileInfo describing its native output, and an async
// fetch. Concrete backends (files, databases, remote services) implement
// this; the core never depends on how.
type Source interface {
	ID() string
	TileJSON() tilejson.TileJSON
	TileInfo() entities.TileInfo
	MinZoom() int
	MaxZoom() int
	Fetch(ctx context.Context, coord entities.TileCoord, query UrlQuery) ([]byte, error)
}

// ReservedKeywords shadow fixed routes and cannot be used as source ids.
// Per spec §3, none of these may end in ".<integer>", which would otherwise
// collide with a source literally named e.g. "catalog.1".
var ReservedKeywords = map[string]bool{
	"_":        true,
	"catalog":  true,
	"config":   true,
	"font":     true,
	"health":   true,
	"help":     true,
	"index":    true,
	"manifest": true,
	"metrics":  true,
	"refresh":  true,
	"reload":   true,
	"sprite":   true,
	"status":   true,
}

// IsReserved reports whether id is a reserved source identifier.
func IsReserved(id string) bool {
	return ReservedKeywords[id]
}
