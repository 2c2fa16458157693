package audio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/audioitem/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Extractor reads embedded ID3v2 metadata and turns it into facts.
//
// The facts are produced in a fixed order: title, artist, album,
// track number, track count, artwork. Values are raw observations; the
// merger decides whether they can be used.
//
// Example:
//
//	facts, err := NewExtractor().ReadFile("/music/song.mp3")
//	if err != nil {
//	    return err
//	}
//	track.ParseMetadata(facts, imageService)
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ReadFile parses the ID3v2 tag of the file at path.
//
// A file without a tag yields no facts and no error.
func (e *Extractor) ReadFile(path string) ([]model.Fact, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open tag %s: %w", path, err)
	}
	defer tag.Close()

	return e.Facts(tag), nil
}

// Read parses an ID3v2 tag from r.
func (e *Extractor) Read(r io.Reader) ([]model.Fact, error) {
	tag, err := id3v2.ParseReader(r, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("parse tag: %w", err)
	}

	return e.Facts(tag), nil
}

// Facts converts the frames of a parsed tag into facts.
func (e *Extractor) Facts(tag *id3v2.Tag) []model.Fact {
	var facts []model.Fact

	textFrames := []struct {
		key model.FactKey
		id  string
	}{
		{model.FactTitle, tag.CommonID("Title")},
		{model.FactArtist, tag.CommonID("Lead artist/Lead performer/Soloist/Performing group")},
		{model.FactAlbum, tag.CommonID("Album/Movie/Show title")},
	}
	for _, f := range textFrames {
		if !hasFrame(tag, f.id) {
			continue
		}
		text := norm.NFC.String(tag.GetTextFrame(f.id).Text)
		facts = append(facts, model.Fact{Key: f.key, Value: text})
	}

	trackID := tag.CommonID("Track number/Position in set")
	if hasFrame(tag, trackID) {
		facts = append(facts, trackNumberFacts(tag.GetTextFrame(trackID).Text)...)
	}

	if pic, ok := frontCover(tag); ok {
		facts = append(facts, model.Fact{Key: model.FactArtwork, Value: pic.Picture})
	}

	return facts
}

// hasFrame reports whether tag holds at least one frame with the given id.
func hasFrame(tag *id3v2.Tag, id string) bool {
	return len(tag.GetFrames(id)) > 0
}

// trackNumberFacts parses a TRCK value, which is "N" or "N/M".
//
// A part that is not a number is passed through as a string so the merger
// can drop it.
func trackNumberFacts(value string) []model.Fact {
	value = strings.TrimSpace(value)
	number, count, hasCount := strings.Cut(value, "/")

	facts := []model.Fact{{Key: model.FactTrackNumber, Value: parseNumber(number)}}
	if hasCount {
		facts = append(facts, model.Fact{Key: model.FactTrackCount, Value: parseNumber(count)})
	}
	return facts
}

func parseNumber(s string) any {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

// frontCover returns the front cover picture, or the first picture if no
// front cover is tagged.
func frontCover(tag *id3v2.Tag) (id3v2.PictureFrame, bool) {
	var first id3v2.PictureFrame
	found := false

	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return pic, true
		}
		if !found {
			first, found = pic, true
		}
	}

	return first, found
}
