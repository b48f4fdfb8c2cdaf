// Package negotiator implements the content-encoding state machine of
// spec §4.5: given a tile's current encoding and a client's Accept-Encoding
// preferences, decide whether to pass the bytes through, decode them, or
// re-encode them.
package negotiator

import (
	"tileserve/apierr"
	"tileserve/codec"
	"tileserve/entities"
)

// Negotiate applies the three-step policy:
//  1. No Accept-Encoding header: decode if encoded, else pass through.
//  2. Header present and tile already encoded: pass through if the header
//     explicitly accepts the current encoding; otherwise decode and fall
//     through to step 3.
//  3. Tile is identity: negotiate against {brotli, gzip, identity} and
//     (re-)encode into the winner, or leave as identity if nothing matched.
func Negotiate(tile entities.Tile, accept AcceptEncoding) (entities.Tile, error) {
	if !accept.Present() {
		return decode(tile)
	}

	if tile.Info.Encoding.IsEncoded() {
		if accept.AcceptsExplicit(tile.Info.Encoding.ContentEncoding()) {
			return tile, nil
		}
		decoded, err := decode(tile)
		if err != nil {
			return entities.Tile{}, err
		}
		tile = decoded
	}

	winner := accept.Negotiate()
	if winner == entities.EncodingUncompressed {
		return tile, nil
	}
	return encode(tile, winner)
}

func decode(tile entities.Tile) (entities.Tile, error) {
	switch tile.Info.Encoding {
	case entities.EncodingUncompressed:
		return tile, nil
	case entities.EncodingGzip:
		data, err := codec.DecodeGzip(tile.Data)
		if err != nil {
			return entities.Tile{}, apierr.Wrap(apierr.KindUndecodableEncoding, err, "decoding gzip tile")
		}
		return entities.NewTile(data, tile.Info.WithEncoding(entities.EncodingUncompressed)), nil
	case entities.EncodingBrotli:
		data, err := codec.DecodeBrotli(tile.Data)
		if err != nil {
			return entities.Tile{}, apierr.Wrap(apierr.KindUndecodableEncoding, err, "decoding brotli tile")
		}
		return entities.NewTile(data, tile.Info.WithEncoding(entities.EncodingUncompressed)), nil
	default:
		return entities.Tile{}, apierr.New(apierr.KindUndecodableEncoding,
			"tile is stored as "+string(tile.Info.Encoding)+", but client does not accept this encoding")
	}
}

func encode(tile entities.Tile, enc entities.Encoding) (entities.Tile, error) {
	switch enc {
	case entities.EncodingGzip:
		data, err := codec.EncodeGzip(tile.Data)
		if err != nil {
			return entities.Tile{}, apierr.Wrap(apierr.KindBackendFailure, err, "encoding gzip tile")
		}
		return entities.NewTile(data, tile.Info.WithEncoding(entities.EncodingGzip)), nil
	case entities.EncodingBrotli:
		data, err := codec.EncodeBrotli(tile.Data)
		if err != nil {
			return entities.Tile{}, apierr.Wrap(apierr.KindBackendFailure, err, "encoding brotli tile")
		}
		return entities.NewTile(data, tile.Info.WithEncoding(entities.EncodingBrotli)), nil
	default:
		return tile, nil
	}
}
