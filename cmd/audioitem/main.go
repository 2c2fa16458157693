package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/audioitem/internal/config"
	"github.com/handiism/audioitem/internal/library"
	"github.com/handiism/audioitem/internal/model"
)

func main() {
	// Command line flags
	var (
		configFlag    = flag.String("config", "", "Path to config file")
		qualityFlag   = flag.String("quality", "", "Requested quality: low, medium or high (overrides config)")
		manifestFlag  = flag.String("manifest", "", "JSON manifest listing tracks")
		lowFlag       = flag.String("low", "", "Low quality address of a single track")
		mediumFlag    = flag.String("medium", "", "Medium quality address of a single track")
		highFlag      = flag.String("high", "", "High quality address of a single track")
		titleFlag     = flag.String("title", "", "Explicit title of a single track")
		artistFlag    = flag.String("artist", "", "Explicit artist of a single track")
		albumFlag     = flag.String("album", "", "Explicit album of a single track")
		playlistFlag  = flag.String("playlist", "", "Write a playlist to this path")
		writeTagsFlag = flag.Bool("write-tags", false, "Write merged metadata back into local files")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	if *manifestFlag == "" && *lowFlag == "" && *mediumFlag == "" && *highFlag == "" {
		fmt.Println("audioitem - Resolve quality tiers and merge embedded metadata")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  audioitem -manifest <file> [options]")
		fmt.Println("  audioitem -low <addr> -medium <addr> -high <addr> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: audioitem-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger, err := newLogger(*verboseFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *qualityFlag != "" {
		q, err := model.ParseQuality(*qualityFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings.PreferredQuality = q.String()
	}

	tracks, err := readTracks(*manifestFlag, library.ManifestEntry{
		Low:    *lowFlag,
		Medium: *mediumFlag,
		High:   *highFlag,
		Title:  optionalFlag(*titleFlag),
		Artist: optionalFlag(*artistFlag),
		Album:  optionalFlag(*albumFlag),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading tracks: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loader := library.NewLoader(settings, logger, func(event library.ProgressEvent) {
		if event.Level == library.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case library.LevelError:
			prefix = "✗ "
		case library.LevelWarning:
			prefix = "! "
		case library.LevelSuccess:
			prefix = "✓ "
		case library.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Println(prefix + event.Message)
	})

	results, err := loader.LoadAll(ctx, tracks)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nCancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error loading tracks: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	for i, result := range results {
		printResult(i+1, result)
	}

	failed := false
	if *writeTagsFlag {
		if err := loader.WriteTags(ctx, settings.Quality(), tracks); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing tags: %v\n", err)
			failed = true
		}
	}

	if *playlistFlag != "" {
		path, err := loader.WritePlaylist(ctx, settings.Quality(), *playlistFlag, playlistTitle(*manifestFlag, *playlistFlag), tracks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing playlist: %v\n", err)
			failed = true
		} else {
			fmt.Printf("Playlist: %s\n", path)
		}
	}

	if failed {
		os.Exit(1)
	}
}
