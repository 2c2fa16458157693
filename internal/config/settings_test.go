package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/audioitem/internal/audio"
	"github.com/handiism/audioitem/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if *settings != *DefaultSettings() {
		t.Errorf("Load(missing) = %+v, want defaults", settings)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"preferred_quality": "medium", "playlist_format": "pls"}`), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if settings.Quality() != model.QualityMedium {
		t.Errorf("Quality() = %v, want medium", settings.Quality())
	}
	if settings.ToPlaylistFormat() != audio.FormatPLS {
		t.Errorf("ToPlaylistFormat() = %v, want PLS", settings.ToPlaylistFormat())
	}
	if settings.MaxConcurrentLoads != DefaultSettings().MaxConcurrentLoads {
		t.Errorf("MaxConcurrentLoads = %d, want default", settings.MaxConcurrentLoads)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"preferred_quality": `},
		{"unknown quality", `{"preferred_quality": "lossless"}`},
		{"zero concurrency", `{"max_concurrent_loads": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}

func TestSettings_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	settings := DefaultSettings()
	settings.PreferredQuality = "low"
	settings.ModifyTags = false
	if err := settings.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *settings {
		t.Errorf("Load() = %+v, want %+v", loaded, settings)
	}
}

func TestSettings_ToTagConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.ModifyTags = false
	settings.ClearComments = true

	cfg := settings.ToTagConfig()
	if cfg.TrackTitle != audio.TagDoNotModify || cfg.Artist != audio.TagDoNotModify {
		t.Errorf("text fields should not be modified: %+v", cfg)
	}
	if cfg.Artwork != audio.TagModify {
		t.Errorf("artwork should still be written: %+v", cfg)
	}
	if cfg.Comments != audio.TagEmpty {
		t.Errorf("comments should be cleared: %+v", cfg)
	}
}

func TestSettings_ArtworkTagSize(t *testing.T) {
	settings := DefaultSettings()
	if got := settings.ArtworkTagSize(); got != 1000 {
		t.Errorf("ArtworkTagSize() = %d, want 1000", got)
	}
	settings.CoverArtInTagsResize = false
	if got := settings.ArtworkTagSize(); got != 0 {
		t.Errorf("ArtworkTagSize() = %d, want 0", got)
	}
}
