// Package tilejson defines the TileJSON descriptor type and the merge
// operation that combines descriptors from several sources into one.
package tilejson

import "encoding/json"

// VectorLayer describes one layer of a vector tile schema.
type VectorLayer struct {
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Bounds is a WGS84 bounding box: west, south, east, north. It marshals as
// the tilejson-spec's flat [w, s, e, n] array rather than an object.
type Bounds struct {
	West, South, East, North float64
}

// Union returns the geometric union of two bounds (min west/south, max east/north).
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		West:  min(b.West, o.West),
		South: min(b.South, o.South),
		East:  max(b.East, o.East),
		North: max(b.North, o.North),
	}
}

func (b Bounds) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.West, b.South, b.East, b.North})
}

// Center is a [lon, lat, zoom] triple, kept distinct from Bounds so a source
// can declare one without the other. Marshals as the tilejson-spec's flat array.
type Center struct {
	Lon, Lat float64
	Zoom     int
}

func (c Center) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.Lon, c.Lat, float64(c.Zoom)})
}

// TileJSON is a subset of the https://github.com/mapbox/tilejson-spec fields
// relevant to this server; fields this core never synthesizes (scheme, format,
// version, grid) are not part of this type at all, so they never appear in
// its JSON output.
type TileJSON struct {
	TileJSON     string        `json:"tilejson"`
	Tiles        []string      `json:"tiles"`
	Name         *string       `json:"name,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Attribution  *string       `json:"attribution,omitempty"`
	VectorLayers []VectorLayer `json:"vector_layers,omitempty"`
	Bounds       *Bounds       `json:"bounds,omitempty"`
	Center       *Center       `json:"center,omitempty"`
	MinZoom      *int          `json:"minzoom,omitempty"`
	MaxZoom      *int          `json:"maxzoom,omitempty"`
}

// Clone returns a deep-enough copy safe to mutate independently of the source.
func (t TileJSON) Clone() TileJSON {
	out := t
	if t.Tiles != nil {
		out.Tiles = append([]string(nil), t.Tiles...)
	}
	if t.VectorLayers != nil {
		out.VectorLayers = append([]VectorLayer(nil), t.VectorLayers...)
	}
	return out
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
