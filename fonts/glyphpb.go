package fonts

import "google.golang.org/protobuf/encoding/protowire"

// Glyph is one SDF glyph bitmap, matching the Mapbox fontstack glyphs.proto
// wire shape (stacks > fontstack { name, range, glyphs { id, bitmap, width,
// height, left, top, advance } }).
type Glyph struct {
	ID      uint32
	Bitmap  []byte
	Width   uint32
	Height  uint32
	Left    int32
	Top     int32
	Advance uint32
}

// EncodeGlyphRange hand-encodes a single fontstack's glyph range as a
// protobuf message using protowire directly rather than generated code. Only
// the fontstack name and its glyphs are written; the fontstack range field
// is not. protowire is used directly because
// there is no .proto in this repo to compile against, but the wire format
// still goes through google.golang.org/protobuf rather than an ad hoc byte
// layout.
func EncodeGlyphRange(stackName string, glyphs []Glyph) []byte {
	var stack []byte
	stack = protowire.AppendTag(stack, 1, protowire.BytesType)
	stack = protowire.AppendString(stack, stackName)
	for _, g := range glyphs {
		stack = protowire.AppendTag(stack, 3, protowire.BytesType)
		stack = protowire.AppendBytes(stack, encodeGlyph(g))
	}

	var out []byte
	out = protowire.AppendTag(out, 1, protowire.BytesType)
	out = protowire.AppendBytes(out, stack)
	return out
}

func encodeGlyph(g Glyph) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.ID))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, g.Bitmap)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Width))
	b = protowire.AppendTag(b, 4, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Height))
	b = protowire.AppendTag(b, 5, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(g.Left)))
	b = protowire.AppendTag(b, 6, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(g.Top)))
	b = protowire.AppendTag(b, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Advance))
	return b
}
