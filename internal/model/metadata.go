package model

import (
	"image"
	"math"
)

// Metadata holds the descriptive fields of a track.
//
// Every field starts absent. The merge policy only fills absent fields;
// explicit setters on Track overwrite unconditionally.
type Metadata struct {
	Title       Optional[string]
	Artist      Optional[string]
	Album       Optional[string]
	TrackCount  Optional[int]
	TrackNumber Optional[int]
	Artwork     Optional[image.Image]
}

// FactKey identifies which Metadata field a Fact targets.
type FactKey int

const (
	// FactUnknown targets no field. Facts with this key are ignored.
	FactUnknown FactKey = iota
	FactTitle
	FactArtist
	FactAlbum
	FactTrackNumber
	FactTrackCount
	FactArtwork
)

// String returns the name of the key.
func (k FactKey) String() string {
	switch k {
	case FactTitle:
		return "title"
	case FactArtist:
		return "artist"
	case FactAlbum:
		return "album"
	case FactTrackNumber:
		return "track_number"
	case FactTrackCount:
		return "track_count"
	case FactArtwork:
		return "artwork"
	default:
		return "unknown"
	}
}

// Fact is one metadata observation read from a resource.
//
// Value is the raw value as produced by the extractor:
//   - string for title, artist and album
//   - any integer type for track number and count
//   - []byte for artwork
type Fact struct {
	Key   FactKey
	Value any
}

// ArtworkDecoder turns raw artwork bytes into an image.
type ArtworkDecoder interface {
	DecodeArtwork(data []byte) (image.Image, error)
}

// Merger folds facts into Metadata with first-write-wins semantics.
//
// A Merger is stateless apart from its decoder. It does not synchronize
// access to the Metadata it is given.
type Merger struct {
	decoder ArtworkDecoder
}

// NewMerger creates a Merger. If decoder is nil, artwork facts are never
// coercible and are dropped.
func NewMerger(decoder ArtworkDecoder) *Merger {
	return &Merger{decoder: decoder}
}

// Merge applies facts, in order, to meta.
//
// For each fact:
//   - unknown keys are ignored
//   - if the target field is already set, the fact is skipped
//   - otherwise the value is coerced to the field type; on success the field
//     is set, on failure it stays absent and merging continues
//
// Applying the same facts twice leaves meta as after the first pass.
func (m *Merger) Merge(meta *Metadata, facts []Fact) {
	for _, fact := range facts {
		switch fact.Key {
		case FactTitle:
			mergeField(&meta.Title, fact.Value, coerceString)
		case FactArtist:
			mergeField(&meta.Artist, fact.Value, coerceString)
		case FactAlbum:
			mergeField(&meta.Album, fact.Value, coerceString)
		case FactTrackNumber:
			mergeField(&meta.TrackNumber, fact.Value, coerceInt)
		case FactTrackCount:
			mergeField(&meta.TrackCount, fact.Value, coerceInt)
		case FactArtwork:
			mergeField(&meta.Artwork, fact.Value, m.coerceArtwork)
		}
	}
}

// mergeField sets field from raw if it is absent and raw coerces.
func mergeField[T any](field *Optional[T], raw any, coerce func(any) (T, bool)) {
	if field.IsSet() {
		return
	}
	if v, ok := coerce(raw); ok {
		*field = Some(v)
	}
}

func coerceString(raw any) (string, bool) {
	s, ok := raw.(string)
	return s, ok
}

func coerceInt(raw any) (int, bool) {
	var n int64
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		n = int64(v)
	default:
		return 0, false
	}
	if n > math.MaxInt || n < math.MinInt {
		return 0, false
	}
	return int(n), true
}

func (m *Merger) coerceArtwork(raw any) (image.Image, bool) {
	data, ok := raw.([]byte)
	if !ok || len(data) == 0 || m.decoder == nil {
		return nil, false
	}

	img, err := m.decoder.DecodeArtwork(data)
	if err != nil || img == nil {
		return nil, false
	}
	return img, true
}
