// Package library builds tracks from manifests and loads their metadata.
//
// # Manifest
//
// A manifest is a JSON array of tracks with one address per quality and
// optional explicit metadata:
//
//	tracks, err := library.ReadManifest("/music/tracks.json")
//
// # Loading
//
// The Loader resolves each track at the preferred quality and, for local
// files, merges the embedded ID3 tags into the track. Explicit values from
// the manifest are never replaced.
//
//	loader := library.NewLoader(settings, logger, func(e library.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	results, err := loader.LoadAll(ctx, tracks)
//
// The loader can also write merged metadata back into files (WriteTags) and
// write a playlist of the resolved assets (WritePlaylist).
package library
