// Package sprites implements the thin sprite endpoints of spec §4.6: fetch
// a sprite sheet for a composite sprite id and either PNG-encode it or
// return its JSON index. Rendering/packing the sheet itself is out of
// scope (spec §1 non-goals); this package only holds an already-rendered
// sheet and serves it.
package sprites

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"

	"tileserve/apierr"
)

// Sheet is an already-composed sprite sheet: the raster image plus its
// name -> rectangle/pixelRatio index, exactly as the sprite spec expects.
type Sheet struct {
	Image image.Image
	Index map[string]SpriteEntry
}

// SpriteEntry is one named icon's placement within the sheet.
type SpriteEntry struct {
	X, Y, Width, Height int
	PixelRatio          float64
}

// EncodePNG rasterizes the sheet. Stdlib image/png is used deliberately:
// nothing downstream needs resizing or format conversion, just a correct
// encoder, so there is no ecosystem library this would meaningfully replace.
func (s Sheet) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Image); err != nil {
		return nil, apierr.Wrap(apierr.KindBackendFailure, err, "encoding sprite sheet png")
	}
	return buf.Bytes(), nil
}

// Catalog resolves a composite sprite id to its sheet, generalized from the
// teacher's in-memory MVTMemoryStorage cache pattern (sync.RWMutex over a
// map), here holding pre-rendered sheets rather than pre-rendered tiles.
type Catalog struct {
	mu     sync.RWMutex
	sheets map[string]Sheet
}

// NewCatalog builds an (initially empty) sprite catalog.
func NewCatalog() *Catalog {
	return &Catalog{sheets: make(map[string]Sheet)}
}

// PutSheet registers (or replaces) the sheet for a composite sprite id.
func (c *Catalog) PutSheet(id string, sheet Sheet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sheets[id] = sheet
}

// GetSprites resolves a composite sprite id to its sheet.
func (c *Catalog) GetSprites(_ context.Context, id string) (Sheet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sheet, ok := c.sheets[id]
	if !ok {
		return Sheet{}, apierr.New(apierr.KindUnknownSprite, "unknown sprite: "+id)
	}
	return sheet, nil
}

// Names returns every registered sprite id, for the /catalog endpoint.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.sheets))
	for id := range c.sheets {
		out = append(out, id)
	}
	return out
}
