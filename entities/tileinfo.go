package entities

// Format is the payload format of a tile.
type Format string

const (
	FormatMVT  Format = "mvt"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatJSON Format = "json"
)

// ContentType returns the canonical MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMVT:
		return "application/vnd.mapbox-vector-tile"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Encoding is the wire (Content-Encoding) compression applied to a tile's bytes.
type Encoding string

const (
	EncodingUncompressed Encoding = "uncompressed"
	EncodingGzip         Encoding = "gzip"
	EncodingBrotli       Encoding = "brotli"
	EncodingZstd         Encoding = "zstd"
)

// IsEncoded reports whether the encoding is anything other than identity.
func (e Encoding) IsEncoded() bool {
	return e != EncodingUncompressed
}

// ContentEncoding returns the HTTP Content-Encoding token for this encoding,
// or "" when the header should be omitted (identity).
func (e Encoding) ContentEncoding() string {
	switch e {
	case EncodingGzip:
		return "gzip"
	case EncodingBrotli:
		return "br"
	case EncodingZstd:
		return "zstd"
	default:
		return ""
	}
}

// TileInfo describes the shape of a tile's bytes: its format and its wire encoding.
type TileInfo struct {
	Format   Format
	Encoding Encoding
}

// WithEncoding returns a copy of info with a different encoding.
func (t TileInfo) WithEncoding(e Encoding) TileInfo {
	t.Encoding = e
	return t
}

func (t TileInfo) String() string {
	if t.Encoding == EncodingUncompressed {
		return string(t.Format)
	}
	return string(t.Format) + "+" + string(t.Encoding)
}
