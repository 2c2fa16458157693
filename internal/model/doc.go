// Package model defines the core data structures used throughout
// the audioitem application.
//
// # Track
//
// Track represents a playable song with one asset per available quality:
//
//	track, err := model.NewTrack(map[model.Quality]model.Asset{
//	    model.QualityLow:  low,
//	    model.QualityHigh: high,
//	})
//	resolved := track.Asset(model.QualityMedium)
//	fmt.Println(resolved.Quality, resolved.Asset) // low ...
//
// # Quality Fallback
//
// When the requested quality is missing, qualities are tried in a fixed
// order per request:
//
//	high   -> high, medium, low
//	medium -> medium, low, high
//	low    -> low, medium, high
//
// # Offline Assets
//
// IsOffline classifies an address as local (file path, file URL,
// ipod-library URL, loopback host) without touching the network.
//
// # Metadata
//
// Metadata fields are Optional values. Merger applies extracted Facts with
// first-write-wins semantics, so values set by the application are never
// replaced by embedded tags:
//
//	track.SetTitle("My Title")
//	track.ParseMetadata(facts, imageService) // title stays "My Title"
package model
