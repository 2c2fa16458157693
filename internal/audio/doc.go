// Package audio reads and writes embedded audio metadata and generates
// playlists.
//
// # Metadata Extraction
//
// The Extractor reads ID3v2 tags and produces ordered model.Facts:
//
//	facts, err := audio.NewExtractor().ReadFile("/music/song.mp3")
//	track.ParseMetadata(facts, imageService)
//
// Track numbers in "N/M" form yield both a track number and a track count.
//
// # ID3 Tagging
//
// Use the Tagger to write a track's metadata back to an MP3 file:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(path, track.Metadata(), jpegArtwork)
//
// # Playlist Generation
//
// Generate playlists of tracks resolved at a quality:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true, model.QualityHigh)
//	content := creator.CreatePlaylist("Favourites", tracks)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
