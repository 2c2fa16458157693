package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/audioitem/internal/library"
	"github.com/handiism/audioitem/internal/model"
)

func TestReadTracks_SingleTrackFromFlags(t *testing.T) {
	tracks, err := readTracks("", library.ManifestEntry{
		Low:   "https://cdn.example.com/a.mp3",
		High:  "/music/a.flac",
		Title: optionalFlag("A"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}

	resolved := tracks[0].HighestQualityAsset()
	if resolved.Quality != model.QualityHigh || !resolved.Asset.IsOffline() {
		t.Errorf("HighestQualityAsset() = %+v", resolved)
	}
	if got := tracks[0].Metadata().Title.OrElse(""); got != "A" {
		t.Errorf("Title = %q, want A", got)
	}
	if tracks[0].Metadata().Artist.IsSet() {
		t.Error("empty artist flag should leave the artist unset")
	}
}

func TestReadTracks_NoAddresses(t *testing.T) {
	if _, err := readTracks("", library.ManifestEntry{}); err == nil {
		t.Error("readTracks should fail without addresses")
	}
}

func TestReadTracks_Manifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	if err := os.WriteFile(path, []byte(`[{"low": "a.mp3"}, {"medium": "b.mp3"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	tracks, err := readTracks(path, library.ManifestEntry{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 2 {
		t.Errorf("got %d tracks, want 2", len(tracks))
	}
}

func TestPlaylistTitle(t *testing.T) {
	tests := []struct {
		manifest, output, want string
	}{
		{"/music/road trip.json", "/tmp/out.m3u", "road trip"},
		{"", "/tmp/favourites.pls", "favourites"},
		{"", "mix", "mix"},
	}

	for _, tt := range tests {
		if got := playlistTitle(tt.manifest, tt.output); got != tt.want {
			t.Errorf("playlistTitle(%q, %q) = %q, want %q", tt.manifest, tt.output, got, tt.want)
		}
	}
}
