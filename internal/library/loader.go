package library

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/handiism/audioitem/internal/audio"
	"github.com/handiism/audioitem/internal/config"
	ioutils "github.com/handiism/audioitem/internal/io"
	"github.com/handiism/audioitem/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a load progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Result describes what loading did for one track.
type Result struct {
	Track    *model.Track
	Resolved model.ResolvedAsset
	Offline  bool

	// FactCount is the number of facts read from the resource. It is zero
	// when the resource was not read.
	FactCount int

	// Err is set when reading the resource's metadata failed.
	Err error
}

// Loader fills track metadata from the tags of their local resources.
//
// For each track the preferred quality is resolved. Offline file assets are
// read with the ID3 extractor and merged into the track; online assets are
// skipped since nothing is fetched over the network.
type Loader struct {
	settings     *config.Settings
	extractor    *audio.Extractor
	tagger       *audio.Tagger
	imageService *ioutils.ImageService
	logger       *zap.Logger

	total  int32
	loaded int32

	onProgress func(ProgressEvent)
}

// NewLoader creates a new Loader.
//
// A nil logger disables logging. onProgress may be nil; it is called from
// the loading goroutines and must be safe for concurrent use.
func NewLoader(settings *config.Settings, logger *zap.Logger, onProgress func(ProgressEvent)) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	imageService := ioutils.NewImageService()
	imageService.MaxPixels = settings.ArtworkMaxPixels

	return &Loader{
		settings:     settings,
		extractor:    audio.NewExtractor(),
		tagger:       audio.NewTagger(settings.ToTagConfig()),
		imageService: imageService,
		logger:       logger.Named("loader"),
		onProgress:   onProgress,
	}
}

// LoadAll loads metadata for every track, at most MaxConcurrentLoads at a
// time. Results are in the same order as tracks.
//
// Per-track failures are reported in Result.Err and as progress events; the
// returned error is only set when ctx is cancelled.
func (l *Loader) LoadAll(ctx context.Context, tracks []*model.Track) ([]Result, error) {
	atomic.StoreInt32(&l.total, int32(len(tracks)))
	atomic.StoreInt32(&l.loaded, 0)

	results := make([]Result, len(tracks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.settings.MaxConcurrentLoads, 1))

	for i, track := range tracks {
		i, track := i, track
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = l.Load(track)
			atomic.AddInt32(&l.loaded, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	l.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d tracks", len(tracks)), Level: LevelSuccess})
	return results, nil
}

// Load resolves the preferred quality of track and merges the metadata of
// its resource if it is a local file.
func (l *Loader) Load(track *model.Track) Result {
	resolved := track.Asset(l.settings.Quality())
	result := Result{
		Track:    track,
		Resolved: resolved,
		Offline:  resolved.Asset.IsOffline(),
	}

	log := l.logger.With(
		zap.Stringer("quality", resolved.Quality),
		zap.String("address", resolved.Asset.Address()),
	)

	if !result.Offline {
		log.Debug("skipping online asset")
		l.progress(ProgressEvent{Message: fmt.Sprintf("Skipping online asset: %s", resolved.Asset), Level: LevelVerbose})
		return result
	}

	path, ok := resolved.Asset.FilePath()
	if !ok {
		log.Debug("offline asset is not a file")
		l.progress(ProgressEvent{Message: fmt.Sprintf("No readable file for %s", resolved.Asset), Level: LevelVerbose})
		return result
	}

	facts, err := l.extractor.ReadFile(path)
	if err != nil {
		log.Warn("reading tags failed", zap.Error(err))
		l.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", filepath.Base(path), err), Level: LevelError})
		result.Err = err
		return result
	}

	track.ParseMetadata(facts, l.decoder())
	result.FactCount = len(facts)

	log.Debug("merged metadata", zap.Int("facts", len(facts)))
	l.progress(ProgressEvent{Message: fmt.Sprintf("Read %d tags from %s", len(facts), filepath.Base(path)), Level: LevelVerbose})
	return result
}

// decoder returns the artwork decoder, or nil when decoding is disabled.
func (l *Loader) decoder() model.ArtworkDecoder {
	if !l.settings.DecodeArtwork {
		return nil
	}
	return l.imageService
}

// GetProgress returns how many tracks of the last LoadAll are done.
func (l *Loader) GetProgress() (loaded, total int32) {
	return atomic.LoadInt32(&l.loaded), atomic.LoadInt32(&l.total)
}

// WriteTags writes each track's metadata into the file of the asset resolved
// at quality q. Tracks whose asset is not a local file are skipped.
//
// Failures are reported as progress events; the returned error counts them.
func (l *Loader) WriteTags(ctx context.Context, q model.Quality, tracks []*model.Track) error {
	failed := 0
	for _, track := range tracks {
		if err := ctx.Err(); err != nil {
			return err
		}

		resolved := track.Asset(q)
		path, ok := resolved.Asset.FilePath()
		if !ok {
			continue
		}

		meta := track.Metadata()
		var artwork []byte
		if img, ok := meta.Artwork.Get(); ok {
			var err error
			artwork, err = l.imageService.EncodeJPEG(ctx, img, l.settings.ArtworkTagSize())
			if err != nil {
				l.logger.Warn("encoding artwork failed", zap.String("path", path), zap.Error(err))
			}
		}

		if err := l.tagger.SaveTags(path, meta, artwork); err != nil {
			failed++
			l.logger.Warn("writing tags failed", zap.String("path", path), zap.Error(err))
			l.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(path), err), Level: LevelWarning})
			continue
		}
		l.progress(ProgressEvent{Message: fmt.Sprintf("Tagged: %s", filepath.Base(path)), Level: LevelVerbose})
	}

	if failed > 0 {
		return fmt.Errorf("tagging failed for %d of %d tracks", failed, len(tracks))
	}
	return nil
}

// WritePlaylist writes a playlist of tracks resolved at quality q to path,
// adding the configured format's extension when path has none.
func (l *Loader) WritePlaylist(ctx context.Context, q model.Quality, path, title string, tracks []*model.Track) (string, error) {
	if filepath.Ext(path) == "" {
		path += l.settings.ToPlaylistFormat().Extension()
	}

	creator := audio.NewPlaylistCreator(l.settings.ToPlaylistFormat(), l.settings.M3UExtended, q)
	content := creator.CreatePlaylist(title, tracks)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		return "", fmt.Errorf("write playlist: %w", err)
	}

	l.logger.Info("playlist written", zap.String("path", path), zap.Stringer("quality", q), zap.Int("tracks", len(tracks)))
	l.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(path)), Level: LevelSuccess})
	return path, nil
}

func (l *Loader) progress(event ProgressEvent) {
	if l.onProgress != nil {
		l.onProgress(event)
	}
}
