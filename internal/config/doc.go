// Package config provides configuration management for audioitem.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to quality, playlist and tag configs for other packages
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	// Uses defaults if the file doesn't exist
//
// # Configuration Options
//
// Settings includes options for:
//   - Preferred quality and load concurrency
//   - Artwork decoding limits and resizing for tags
//   - Playlist generation
//   - ID3 tag modification
package config
