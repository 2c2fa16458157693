package audio

import (
	"fmt"

	"github.com/bogem/id3v2"
	"github.com/handiism/audioitem/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify writes the track's metadata value, if it has one.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    Artist:      TagModify,      // Write artist from track metadata
//	    Album:       TagModify,
//	    TrackTitle:  TagModify,
//	    TrackNumber: TagModify,      // Writes "N" or "N/M" with the track count
//	    Artwork:     TagModify,
//	    Comments:    TagEmpty,       // Clear any existing comments
//	}
type TagConfig struct {
	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// TrackTitle controls the TIT2 (Title) frame.
	TrackTitle TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// Artwork controls the APIC (Attached picture) frames.
	Artwork TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// All fields are TagModify except comments, which are left untouched.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Artist:      TagModify,
		Album:       TagModify,
		TrackTitle:  TagModify,
		TrackNumber: TagModify,
		Artwork:     TagModify,
		Comments:    TagDoNotModify,
	}
}

// Tagger writes a track's metadata into ID3v2 tags of local files.
//
// With TagModify, only fields that are set in the metadata are written;
// absent fields keep whatever the file already has.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags("/music/song.mp3", track.Metadata(), jpegBytes)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes metadata to the ID3 tag of the file at path.
//
// Parameters:
//   - path: Local file to tag (must exist)
//   - meta: Metadata to write
//   - artwork: JPEG bytes for the front cover (nil to skip artwork)
//
// Returns an error if the file cannot be opened or saved.
func (t *Tagger) SaveTags(path string, meta model.Metadata, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tag %s: %w", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	t.updateStringTags(tag, meta)
	t.updateArtwork(tag, artwork)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tag %s: %w", path, err)
	}
	return nil
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, meta model.Metadata) {
	// Artist (TPE1)
	switch t.config.Artist {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Lead artist/Lead performer/Soloist/Performing group"))
	case TagModify:
		if artist, ok := meta.Artist.Get(); ok {
			tag.SetArtist(artist)
		}
	}

	// Album (TALB)
	switch t.config.Album {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Album/Movie/Show title"))
	case TagModify:
		if album, ok := meta.Album.Get(); ok {
			tag.SetAlbum(album)
		}
	}

	// Track Title (TIT2)
	switch t.config.TrackTitle {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Title"))
	case TagModify:
		if title, ok := meta.Title.Get(); ok {
			tag.SetTitle(title)
		}
	}

	// Track Number (TRCK)
	switch t.config.TrackNumber {
	case TagEmpty:
		tag.DeleteFrames("TRCK")
	case TagModify:
		if number, ok := meta.TrackNumber.Get(); ok {
			value := fmt.Sprintf("%d", number)
			if count, ok := meta.TrackCount.Get(); ok {
				value = fmt.Sprintf("%d/%d", number, count)
			}
			tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, value)
		}
	}

	// Comments (COMM)
	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// updateArtwork replaces cover pictures with the given JPEG artwork.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	switch t.config.Artwork {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Attached picture"))
	case TagModify:
		if artwork == nil {
			return
		}
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}
}
