package tilejson

// tileJSONVersion is the tilejson-spec version this core produces.
const tileJSONVersion = "3.0.0"

// Merge combines the descriptors of one or more sources into a single
// TileJSON whose Tiles field is exactly []string{tilesURL}.
//
// Field-by-field rules (spec §4.4, cross-checked against the Rust reference
// implementation's merge_tilejson):
//   - single source: clone it, overwrite Tiles.
//   - vector_layers: ordered concatenation, duplicates preserved.
//   - attribution / description: newline-joined, deduplicated, first-seen order.
//   - name: comma-joined, deduplicated, first-seen order.
//   - bounds: geometric union across sources that declare it.
//   - center: first source that declares one wins; never averaged.
//   - minzoom: component-wise minimum; maxzoom: component-wise maximum.
func Merge(sources []TileJSON, tilesURL string) TileJSON {
	if len(sources) == 1 {
		tj := sources[0].Clone()
		tj.Tiles = []string{tilesURL}
		if tj.TileJSON == "" {
			tj.TileJSON = tileJSONVersion
		}
		return tj
	}

	result := TileJSON{TileJSON: tileJSONVersion, Tiles: []string{tilesURL}}

	var attributions, descriptions, names []string
	seenAttribution := map[string]bool{}
	seenDescription := map[string]bool{}
	seenName := map[string]bool{}

	for _, tj := range sources {
		if len(tj.VectorLayers) > 0 {
			result.VectorLayers = append(result.VectorLayers, tj.VectorLayers...)
		}

		if tj.Attribution != nil && !seenAttribution[*tj.Attribution] {
			seenAttribution[*tj.Attribution] = true
			attributions = append(attributions, *tj.Attribution)
		}

		if tj.Bounds != nil {
			if result.Bounds != nil {
				u := result.Bounds.Union(*tj.Bounds)
				result.Bounds = &u
			} else {
				b := *tj.Bounds
				result.Bounds = &b
			}
		}

		if result.Center == nil && tj.Center != nil {
			// Use the first found center; averaging multiple centers could
			// place the view in the middle of nowhere.
			c := *tj.Center
			result.Center = &c
		}

		if tj.Description != nil && !seenDescription[*tj.Description] {
			seenDescription[*tj.Description] = true
			descriptions = append(descriptions, *tj.Description)
		}

		if tj.MaxZoom != nil {
			if result.MaxZoom == nil || *tj.MaxZoom > *result.MaxZoom {
				z := *tj.MaxZoom
				result.MaxZoom = &z
			}
		}

		if tj.MinZoom != nil {
			if result.MinZoom == nil || *tj.MinZoom < *result.MinZoom {
				z := *tj.MinZoom
				result.MinZoom = &z
			}
		}

		if tj.Name != nil && !seenName[*tj.Name] {
			seenName[*tj.Name] = true
			names = append(names, *tj.Name)
		}
	}

	if len(attributions) > 0 {
		result.Attribution = joinPtr(attributions, "\n")
	}
	if len(descriptions) > 0 {
		result.Description = joinPtr(descriptions, "\n")
	}
	if len(names) > 0 {
		result.Name = joinPtr(names, ",")
	}

	return result
}

func joinPtr(parts []string, sep string) *string {
	s := parts[0]
	for _, p := range parts[1:] {
		s += sep + p
	}
	return &s
}
