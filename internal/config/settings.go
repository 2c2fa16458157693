package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/audioitem/internal/audio"
	"github.com/handiism/audioitem/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Resolution settings
	PreferredQuality   string `json:"preferred_quality"` // low, medium, high
	MaxConcurrentLoads int    `json:"max_concurrent_loads"`

	// Artwork settings
	DecodeArtwork         bool `json:"decode_artwork"`
	ArtworkMaxPixels      int  `json:"artwork_max_pixels"`
	CoverArtInTagsResize  bool `json:"cover_art_in_tags_resize"`
	CoverArtInTagsMaxSize int  `json:"cover_art_in_tags_max_size"`

	// Playlist settings
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`

	// Tag settings
	ModifyTags    bool `json:"modify_tags"`
	ClearComments bool `json:"clear_comments"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		PreferredQuality:   "high",
		MaxConcurrentLoads: 4,

		DecodeArtwork:         true,
		ArtworkMaxPixels:      8192 * 8192,
		CoverArtInTagsResize:  true,
		CoverArtInTagsMaxSize: 1000,

		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ModifyTags:    true,
		ClearComments: false,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned. Fields absent from
// the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that cannot be defaulted silently.
func (s *Settings) Validate() error {
	if _, err := model.ParseQuality(s.PreferredQuality); err != nil {
		return err
	}
	if s.MaxConcurrentLoads < 1 {
		return fmt.Errorf("max_concurrent_loads must be at least 1, got %d", s.MaxConcurrentLoads)
	}
	return nil
}

// Quality returns the preferred quality, falling back to high when the
// configured name is invalid.
func (s *Settings) Quality() model.Quality {
	q, err := model.ParseQuality(s.PreferredQuality)
	if err != nil {
		return model.QualityHigh
	}
	return q
}

// ToPlaylistFormat converts the playlist format name.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	return audio.ParsePlaylistFormat(s.PlaylistFormat)
}

// ToTagConfig converts settings to a TagConfig.
//
// With ModifyTags disabled, text fields are left untouched and only artwork
// is written.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	if !s.ModifyTags {
		cfg.Artist = audio.TagDoNotModify
		cfg.Album = audio.TagDoNotModify
		cfg.TrackTitle = audio.TagDoNotModify
		cfg.TrackNumber = audio.TagDoNotModify
	}
	if s.ClearComments {
		cfg.Comments = audio.TagEmpty
	}
	return cfg
}

// ArtworkTagSize returns the maximum artwork size for tags, 0 for no resize.
func (s *Settings) ArtworkTagSize() int {
	if !s.CoverArtInTagsResize {
		return 0
	}
	return s.CoverArtInTagsMaxSize
}
