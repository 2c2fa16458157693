package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/audioitem/internal/library"
	"github.com/handiism/audioitem/internal/model"
	"go.uber.org/zap"
)

// newLogger returns a development logger when verbose, a production one
// otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// readTracks reads the manifest at path, or builds a single track from entry
// when path is empty.
func readTracks(path string, entry library.ManifestEntry) ([]*model.Track, error) {
	if path != "" {
		return library.ReadManifest(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	track, err := entry.Track(wd)
	if err != nil {
		return nil, err
	}
	return []*model.Track{track}, nil
}

func optionalFlag(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// playlistTitle names the playlist after the manifest, or after the output
// file when there is no manifest.
func playlistTitle(manifest, output string) string {
	name := output
	if manifest != "" {
		name = manifest
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printResult(n int, result library.Result) {
	location := "online"
	if result.Offline {
		location = "offline"
	}

	fmt.Printf("%d. [%s] %s (%s)\n", n, result.Resolved.Quality, result.Resolved.Asset, location)
	if result.Err != nil {
		fmt.Printf("   error: %v\n", result.Err)
	}

	meta := result.Track.Metadata()
	printField("title", meta.Title)
	printField("artist", meta.Artist)
	printField("album", meta.Album)
	if n, ok := meta.TrackNumber.Get(); ok {
		if count, ok := meta.TrackCount.Get(); ok {
			fmt.Printf("   track:   %d/%d\n", n, count)
		} else {
			fmt.Printf("   track:   %d\n", n)
		}
	}
	if img, ok := meta.Artwork.Get(); ok {
		bounds := img.Bounds()
		fmt.Printf("   artwork: %dx%d\n", bounds.Dx(), bounds.Dy())
	}
}

func printField(name string, value model.Optional[string]) {
	if v, ok := value.Get(); ok {
		fmt.Printf("   %-8s %s\n", name+":", v)
	}
}
