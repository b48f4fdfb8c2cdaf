package fonts

import (
	"fmt"
	"sync"

	"tileserve/apierr"
)

// Catalog resolves (fontstack, [start,end]) to an encoded glyph range.
// Font rendering/rasterization is out of scope (spec §1 non-goals); this
// catalog only holds already-rasterized glyphs, keyed by codepoint, and
// slices out the requested range on demand.
type Catalog struct {
	mu     sync.RWMutex
	stacks map[string]map[uint32]Glyph
}

// NewCatalog builds an (initially empty) font catalog.
func NewCatalog() *Catalog {
	return &Catalog{stacks: make(map[string]map[uint32]Glyph)}
}

// PutGlyph registers (or replaces) one glyph within a fontstack.
func (c *Catalog) PutGlyph(stack string, g Glyph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stacks[stack] == nil {
		c.stacks[stack] = make(map[uint32]Glyph)
	}
	c.stacks[stack][g.ID] = g
}

// maxRangeSpan bounds how wide a single glyph-range request may be; the
// standard Mapbox glyph protocol buckets requests into 256-codepoint tiles,
// so a sane upper bound keeps a malformed request from forcing a huge scan.
const maxRangeSpan = 65536

// GetFontRange validates [start,end] and returns the encoded glyph range
// for fontstack. start>end, an out-of-range span, or an unknown fontstack
// are all KindInvalidFontRange / KindUnknownFont respectively (spec §7).
func (c *Catalog) GetFontRange(stack string, start, end uint32) ([]byte, error) {
	if start > end {
		return nil, apierr.New(apierr.KindInvalidFontRange, fmt.Sprintf("invalid font range %d-%d: start>end", start, end))
	}
	if end-start > maxRangeSpan {
		return nil, apierr.New(apierr.KindInvalidFontRange, fmt.Sprintf("invalid font range %d-%d: span too wide", start, end))
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	glyphs, ok := c.stacks[stack]
	if !ok {
		return nil, apierr.New(apierr.KindUnknownFont, "unknown font stack: "+stack)
	}

	var out []Glyph
	for id := uint64(start); id <= uint64(end); id++ {
		if g, ok := glyphs[uint32(id)]; ok {
			out = append(out, g)
		}
	}
	return EncodeGlyphRange(stack, out), nil
}

// Names returns every registered fontstack, for the /catalog endpoint.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.stacks))
	for name := range c.stacks {
		out = append(out, name)
	}
	return out
}
