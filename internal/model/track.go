package model

import (
	"image"
	"sync"
)

// Track contains every piece of information needed to play a song.
//
// Track holds:
//   - One asset per available quality, in an immutable QualityMap
//   - Descriptive metadata (title, artist, album, track position, artwork)
//
// Assets can be remote or local. Metadata can be set explicitly by the
// application or filled from the resource's embedded tags with
// ParseMetadata, which never overrides a field that is already set.
//
// Example:
//
//	low, _ := NewAsset("https://cdn.example.com/song-128.mp3")
//	high, _ := NewAsset("/music/song.flac")
//	track, err := NewTrack(map[Quality]Asset{QualityLow: low, QualityHigh: high})
//	if err != nil {
//	    return err // ErrNoAssets
//	}
//	track.Asset(QualityMedium) // {QualityLow, low}
//
// Track is safe for concurrent use.
type Track struct {
	assets QualityMap

	mu       sync.RWMutex
	metadata Metadata
}

// NewTrack creates a Track from assets keyed by quality.
//
// Returns ErrNoAssets if assets is empty (or holds only zero assets). No
// Track is created in that case.
func NewTrack(assets map[Quality]Asset) (*Track, error) {
	qm, err := NewQualityMap(assets)
	if err != nil {
		return nil, err
	}
	return &Track{assets: qm}, nil
}

// NewTrackFromAssets creates a Track from one optional asset per quality.
// Pass the zero Asset for a missing quality.
//
// Returns ErrNoAssets if every asset is zero.
func NewTrackFromAssets(high, medium, low Asset) (*Track, error) {
	return NewTrack(map[Quality]Asset{
		QualityHigh:   high,
		QualityMedium: medium,
		QualityLow:    low,
	})
}

// Assets returns the track's quality map.
func (t *Track) Assets() QualityMap {
	return t.assets
}

// Asset returns the asset that best fits the given quality.
func (t *Track) Asset(q Quality) ResolvedAsset {
	return t.assets.Resolve(q)
}

// HighestQualityAsset returns the highest quality asset available.
func (t *Track) HighestQualityAsset() ResolvedAsset {
	return t.assets.Highest()
}

// MediumQualityAsset returns the medium quality asset, or the nearest
// fallback.
func (t *Track) MediumQualityAsset() ResolvedAsset {
	return t.assets.Medium()
}

// LowestQualityAsset returns the lowest quality asset available.
func (t *Track) LowestQualityAsset() ResolvedAsset {
	return t.assets.Lowest()
}

// Metadata returns a snapshot of the track's metadata.
func (t *Track) Metadata() Metadata {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metadata
}

// ParseMetadata fills unset metadata fields from facts read from the
// resource. Fields that are already set, explicitly or by an earlier call,
// are left untouched.
//
// decoder turns artwork bytes into an image; nil skips artwork.
func (t *Track) ParseMetadata(facts []Fact, decoder ArtworkDecoder) {
	merger := NewMerger(decoder)

	t.mu.Lock()
	defer t.mu.Unlock()
	merger.Merge(&t.metadata, facts)
}

// SetTitle sets the title, replacing any existing value.
func (t *Track) SetTitle(title string) {
	t.update(func(m *Metadata) { m.Title = Some(title) })
}

// SetArtist sets the artist, replacing any existing value.
func (t *Track) SetArtist(artist string) {
	t.update(func(m *Metadata) { m.Artist = Some(artist) })
}

// SetAlbum sets the album, replacing any existing value.
func (t *Track) SetAlbum(album string) {
	t.update(func(m *Metadata) { m.Album = Some(album) })
}

// SetTrackNumber sets the position of the track in its album.
func (t *Track) SetTrackNumber(n int) {
	t.update(func(m *Metadata) { m.TrackNumber = Some(n) })
}

// SetTrackCount sets the number of tracks in the album.
func (t *Track) SetTrackCount(n int) {
	t.update(func(m *Metadata) { m.TrackCount = Some(n) })
}

// SetArtwork sets the artwork image. A nil image clears it.
func (t *Track) SetArtwork(img image.Image) {
	t.update(func(m *Metadata) {
		if img == nil {
			m.Artwork = None[image.Image]()
			return
		}
		m.Artwork = Some(img)
	})
}

func (t *Track) update(fn func(m *Metadata)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.metadata)
}
