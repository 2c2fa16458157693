package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/audioitem/internal/model"
)

// ManifestEntry describes one track in a manifest file.
//
// Addresses with no URL scheme are local paths; relative paths are resolved
// against the manifest's directory. Descriptive fields, when present, are
// applied as explicit values and win over embedded tags.
type ManifestEntry struct {
	Low    string `json:"low,omitempty"`
	Medium string `json:"medium,omitempty"`
	High   string `json:"high,omitempty"`

	Title       *string `json:"title,omitempty"`
	Artist      *string `json:"artist,omitempty"`
	Album       *string `json:"album,omitempty"`
	TrackNumber *int    `json:"track_number,omitempty"`
	TrackCount  *int    `json:"track_count,omitempty"`
}

// ReadManifest reads a JSON array of ManifestEntry and builds the tracks.
//
// Example manifest:
//
//	[
//	  {"low": "https://cdn.example.com/a-128.mp3", "high": "a.mp3", "title": "A"},
//	  {"medium": "/music/b.mp3"}
//	]
func ReadManifest(path string) ([]*model.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data, filepath.Dir(path))
}

// ParseManifest builds tracks from manifest JSON. baseDir resolves relative
// paths.
//
// Returns an error naming the first entry that has no address or an
// invalid one.
func ParseManifest(data []byte, baseDir string) ([]*model.Track, error) {
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	tracks := make([]*model.Track, 0, len(entries))
	for i, entry := range entries {
		track, err := entry.Track(baseDir)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// Track builds the track described by the entry.
func (e ManifestEntry) Track(baseDir string) (*model.Track, error) {
	assets := make(map[model.Quality]model.Asset)
	for q, address := range map[model.Quality]string{
		model.QualityLow:    e.Low,
		model.QualityMedium: e.Medium,
		model.QualityHigh:   e.High,
	} {
		if strings.TrimSpace(address) == "" {
			continue
		}
		asset, err := model.NewAsset(resolvePath(address, baseDir))
		if err != nil {
			return nil, fmt.Errorf("%s asset: %w", q, err)
		}
		assets[q] = asset
	}

	track, err := model.NewTrack(assets)
	if err != nil {
		return nil, err
	}

	if e.Title != nil {
		track.SetTitle(*e.Title)
	}
	if e.Artist != nil {
		track.SetArtist(*e.Artist)
	}
	if e.Album != nil {
		track.SetAlbum(*e.Album)
	}
	if e.TrackNumber != nil {
		track.SetTrackNumber(*e.TrackNumber)
	}
	if e.TrackCount != nil {
		track.SetTrackCount(*e.TrackCount)
	}

	return track, nil
}

// resolvePath joins relative local paths with baseDir. URLs and absolute
// paths are returned unchanged.
func resolvePath(address, baseDir string) string {
	address = strings.TrimSpace(address)
	if strings.Contains(address, "://") || filepath.IsAbs(address) {
		return address
	}
	joined := filepath.Join(baseDir, address)
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}
