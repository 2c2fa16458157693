package audio

import (
	"fmt"
	"path"
	"strings"

	"github.com/handiism/audioitem/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// ParsePlaylistFormat maps "m3u", "pls", "wpl" or "zpl" to a format.
// Unknown names map to FormatM3U.
func ParsePlaylistFormat(name string) PlaylistFormat {
	switch strings.ToLower(name) {
	case "pls":
		return FormatPLS
	case "wpl":
		return FormatWPL
	case "zpl":
		return FormatZPL
	default:
		return FormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// PlaylistCreator generates playlists of tracks resolved at one quality.
//
// Each entry points at the asset returned by Track.Asset for the creator's
// quality: a filesystem path for file assets, the address otherwise.
// Entry titles come from track metadata, falling back to the asset's base
// name.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true, model.QualityHigh)
//	content := creator.CreatePlaylist("Road Trip", tracks)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// /music/song.flac
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with title
	quality  model.Quality
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
//   - quality: The quality requested for every track
func NewPlaylistCreator(format PlaylistFormat, extended bool, quality model.Quality) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
		quality:  quality,
	}
}

// playlistEntry is a track prepared for output.
type playlistEntry struct {
	location string
	title    string
	artist   string
	album    string
}

// CreatePlaylist generates playlist content for tracks.
//
// Returns the playlist as a string, ready to be written to a file.
func (p *PlaylistCreator) CreatePlaylist(title string, tracks []*model.Track) string {
	entries := make([]playlistEntry, 0, len(tracks))
	for _, track := range tracks {
		entries = append(entries, p.entry(track))
	}

	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	case FormatWPL:
		return p.createWPL(title, entries)
	case FormatZPL:
		return p.createZPL(title, entries)
	default:
		return p.createM3U(entries)
	}
}

func (p *PlaylistCreator) entry(track *model.Track) playlistEntry {
	asset := track.Asset(p.quality).Asset
	meta := track.Metadata()

	location := asset.Address()
	if filePath, ok := asset.FilePath(); ok {
		location = filePath
	}

	return playlistEntry{
		location: location,
		title:    meta.Title.OrElse(path.Base(asset.Address())),
		artist:   meta.Artist.OrElse(""),
		album:    meta.Album.OrElse(""),
	}
}

// displayName returns "Artist - Title", or the title alone without artist.
func (e playlistEntry) displayName() string {
	if e.artist == "" {
		return e.title
	}
	return e.artist + " - " + e.title
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	/music/song.mp3
func (p *PlaylistCreator) createM3U(entries []playlistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			// Duration is unknown without decoding the audio.
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", e.displayName()))
		}
		sb.WriteString(e.location + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=/music/song.mp3
//	Title1=Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, e.location))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, e.displayName()))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(title string, entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(e.location)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but includes album, artist and title attributes.
func (p *PlaylistCreator) createZPL(title string, entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(title)))
	sb.WriteString("    <meta name=\"Generator\" content=\"audioitem\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\"/>\n",
			escapeXML(e.location),
			escapeXML(e.album),
			escapeXML(e.title),
			escapeXML(e.artist)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
