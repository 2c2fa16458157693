package library

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/audioitem/internal/audio"
	"github.com/handiism/audioitem/internal/config"
	"github.com/handiism/audioitem/internal/model"
	"go.uber.org/zap"
)

func writeTaggedFile(t *testing.T, dir, name string, build func(tag *id3v2.Tag)) string {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	build(tag)

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	buf.WriteString("fake audio frames")

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// eventRecorder collects progress events from concurrent loads.
type eventRecorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *eventRecorder) record(e ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) count(level ProgressLevel) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Level == level {
			n++
		}
	}
	return n
}

func TestLoader_LoadAll(t *testing.T) {
	dir := t.TempDir()
	artwork := testPNG(t)
	writeTaggedFile(t, dir, "one.mp3", func(tag *id3v2.Tag) {
		tag.SetTitle("tag title")
		tag.SetArtist("tag artist")
		tag.SetAlbum("tag album")
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, "1/2")
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding: id3v2.EncodingUTF8, MimeType: "image/png",
			PictureType: id3v2.PTFrontCover, Description: "Cover", Picture: artwork,
		})
	})
	writeTaggedFile(t, dir, "two.mp3", func(tag *id3v2.Tag) {
		tag.SetTitle("second")
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding: id3v2.EncodingUTF8, MimeType: "image/png",
			PictureType: id3v2.PTFrontCover, Description: "Cover", Picture: []byte("corrupt"),
		})
	})

	manifest := `[
		{"high": "one.mp3", "low": "https://cdn.example.com/one.mp3", "title": "explicit title"},
		{"medium": "two.mp3"},
		{"high": "https://cdn.example.com/three.mp3"},
		{"low": "missing.mp3"}
	]`
	tracks, err := ParseManifest([]byte(manifest), dir)
	if err != nil {
		t.Fatal(err)
	}

	var recorder eventRecorder
	loader := NewLoader(config.DefaultSettings(), zap.NewNop(), recorder.record)

	results, err := loader.LoadAll(context.Background(), tracks)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(tracks) {
		t.Fatalf("got %d results, want %d", len(results), len(tracks))
	}

	// Explicit title wins; the rest comes from the tag.
	meta := tracks[0].Metadata()
	if got := meta.Title.OrElse(""); got != "explicit title" {
		t.Errorf("Title = %q, want explicit title", got)
	}
	if meta.Artist.OrElse("") != "tag artist" || meta.Album.OrElse("") != "tag album" {
		t.Errorf("tag fields not merged: %+v", meta)
	}
	if meta.TrackNumber.OrElse(0) != 1 || meta.TrackCount.OrElse(0) != 2 {
		t.Errorf("track position = %d/%d, want 1/2", meta.TrackNumber.OrElse(0), meta.TrackCount.OrElse(0))
	}
	if !meta.Artwork.IsSet() {
		t.Error("artwork should be decoded")
	}
	if results[0].Resolved.Quality != model.QualityHigh || !results[0].Offline || results[0].FactCount != 6 {
		t.Errorf("result[0] = %+v", results[0])
	}

	// Corrupt artwork is dropped; the title still merges.
	meta = tracks[1].Metadata()
	if meta.Title.OrElse("") != "second" || meta.Artwork.IsSet() {
		t.Errorf("track two metadata = %+v", meta)
	}
	if results[1].Resolved.Quality != model.QualityMedium {
		t.Errorf("high request should fall back to medium, got %v", results[1].Resolved.Quality)
	}

	// Online asset is not read.
	if results[2].Offline || results[2].FactCount != 0 || results[2].Err != nil {
		t.Errorf("result[2] = %+v", results[2])
	}
	if tracks[2].Metadata() != (model.Metadata{}) {
		t.Error("online track should have no metadata")
	}

	// Missing file is reported, not fatal.
	if results[3].Err == nil {
		t.Error("missing file should report an error")
	}
	if recorder.count(LevelError) != 1 {
		t.Errorf("got %d error events, want 1", recorder.count(LevelError))
	}
	if recorder.count(LevelSuccess) != 1 {
		t.Errorf("got %d success events, want 1", recorder.count(LevelSuccess))
	}

	loaded, total := loader.GetProgress()
	if loaded != 4 || total != 4 {
		t.Errorf("GetProgress() = %d/%d, want 4/4", loaded, total)
	}
}

func TestLoader_LoadAllTwiceKeepsFirstValues(t *testing.T) {
	dir := t.TempDir()
	path := writeTaggedFile(t, dir, "song.mp3", func(tag *id3v2.Tag) {
		tag.SetTitle("first")
	})
	tracks, err := ParseManifest([]byte(`[{"low": "song.mp3"}]`), dir)
	if err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(config.DefaultSettings(), nil, nil)
	if _, err := loader.LoadAll(context.Background(), tracks); err != nil {
		t.Fatal(err)
	}

	writeTaggedFile(t, dir, filepath.Base(path), func(tag *id3v2.Tag) {
		tag.SetTitle("second")
	})
	if _, err := loader.LoadAll(context.Background(), tracks); err != nil {
		t.Fatal(err)
	}

	if got := tracks[0].Metadata().Title.OrElse(""); got != "first" {
		t.Errorf("Title = %q, want first", got)
	}
}

func TestLoader_DecodeArtworkDisabled(t *testing.T) {
	dir := t.TempDir()
	writeTaggedFile(t, dir, "song.mp3", func(tag *id3v2.Tag) {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding: id3v2.EncodingUTF8, MimeType: "image/png",
			PictureType: id3v2.PTFrontCover, Description: "Cover", Picture: testPNG(t),
		})
	})
	tracks, _ := ParseManifest([]byte(`[{"low": "song.mp3"}]`), dir)

	settings := config.DefaultSettings()
	settings.DecodeArtwork = false
	if _, err := NewLoader(settings, nil, nil).LoadAll(context.Background(), tracks); err != nil {
		t.Fatal(err)
	}
	if tracks[0].Metadata().Artwork.IsSet() {
		t.Error("artwork should not be decoded when disabled")
	}
}

func TestLoader_LoadAllCancelled(t *testing.T) {
	tracks, _ := ParseManifest([]byte(`[{"low": "/a.mp3"}, {"low": "/b.mp3"}]`), "/")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLoader(config.DefaultSettings(), nil, nil).LoadAll(ctx, tracks); err == nil {
		t.Error("LoadAll should fail on a cancelled context")
	}
}

func TestLoader_WriteTags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(path, []byte("fake audio frames"), 0644); err != nil {
		t.Fatal(err)
	}

	tracks, err := ParseManifest([]byte(`[
		{"low": "song.mp3", "title": "Written", "artist": "Someone", "track_number": 4},
		{"low": "https://cdn.example.com/remote.mp3", "title": "Remote"}
	]`), dir)
	if err != nil {
		t.Fatal(err)
	}
	tracks[0].SetArtwork(image.NewRGBA(image.Rect(0, 0, 2000, 1000)))

	loader := NewLoader(config.DefaultSettings(), nil, nil)
	if err := loader.WriteTags(context.Background(), model.QualityHigh, tracks); err != nil {
		t.Fatal(err)
	}

	facts, err := audio.NewExtractor().ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var fresh model.Metadata
	model.NewMerger(nil).Merge(&fresh, facts)
	if fresh.Title.OrElse("") != "Written" || fresh.Artist.OrElse("") != "Someone" || fresh.TrackNumber.OrElse(0) != 4 {
		t.Errorf("written tags = %+v", fresh)
	}

	var artwork []byte
	for _, f := range facts {
		if f.Key == model.FactArtwork {
			artwork, _ = f.Value.([]byte)
		}
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(artwork))
	if err != nil {
		t.Fatalf("embedded artwork is not an image: %v", err)
	}
	if format != "jpeg" || cfg.Width != 1000 || cfg.Height != 500 {
		t.Errorf("embedded artwork = %s %dx%d, want jpeg 1000x500", format, cfg.Width, cfg.Height)
	}
}

func TestLoader_WritePlaylist(t *testing.T) {
	tracks, err := ParseManifest([]byte(`[
		{"low": "/music/a-low.mp3", "high": "/music/a-high.flac", "title": "A"},
		{"low": "https://cdn.example.com/b.mp3", "title": "B"}
	]`), "/")
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "lists", "favourites")
	loader := NewLoader(config.DefaultSettings(), nil, nil)

	written, err := loader.WritePlaylist(context.Background(), model.QualityHigh, out, "Favourites", tracks)
	if err != nil {
		t.Fatal(err)
	}
	if written != out+".m3u" {
		t.Errorf("written path = %q, want .m3u extension", written)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "/music/a-high.flac\n") {
		t.Errorf("playlist should use the preferred high asset:\n%s", content)
	}
	if !strings.Contains(content, "https://cdn.example.com/b.mp3\n") {
		t.Errorf("playlist should fall back to the low asset:\n%s", content)
	}
}

func TestLoader_WriteAtRequestedQuality(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"song-low.mp3", "song-high.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("fake audio frames"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tracks, err := ParseManifest([]byte(`[{"low": "song-low.mp3", "high": "song-high.mp3", "title": "Tier"}]`), dir)
	if err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(config.DefaultSettings(), nil, nil)
	if err := loader.WriteTags(context.Background(), model.QualityLow, tracks); err != nil {
		t.Fatal(err)
	}

	extractor := audio.NewExtractor()
	lowFacts, err := extractor.ReadFile(filepath.Join(dir, "song-low.mp3"))
	if err != nil {
		t.Fatal(err)
	}
	highFacts, err := extractor.ReadFile(filepath.Join(dir, "song-high.mp3"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lowFacts) != 1 || len(highFacts) != 0 {
		t.Errorf("low facts = %v, high facts = %v; want only the low file tagged", lowFacts, highFacts)
	}

	written, err := loader.WritePlaylist(context.Background(), model.QualityLow, filepath.Join(dir, "list"), "List", tracks)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "song-low.mp3") || strings.Contains(string(data), "song-high.mp3") {
		t.Errorf("playlist should list the low asset only:\n%s", data)
	}
}
