package ioutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageService provides image processing operations for artwork.
//
// ImageService is used to:
//   - Decode embedded artwork bytes into images (it implements
//     model.ArtworkDecoder)
//   - Resize images to fit maximum dimensions
//   - Encode images as JPEG for embedding in tags
//
// Example usage:
//
//	svc := NewImageService()
//	track.ParseMetadata(facts, svc)
//
//	img, _ := track.Metadata().Artwork.Get()
//	jpeg, _ := svc.EncodeJPEG(ctx, img, 500)
type ImageService struct {
	// MaxPixels bounds the decoded image area. Artwork above this is
	// rejected before decoding. Zero means no limit.
	MaxPixels int
}

var errNilService = errors.New("nil image service")

// DefaultMaxPixels is the area limit used by NewImageService (8192x8192).
const DefaultMaxPixels = 8192 * 8192

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{MaxPixels: DefaultMaxPixels}
}

// DecodeArtwork decodes raw artwork bytes (JPEG, PNG, GIF, BMP, TIFF or WebP).
//
// Returns an error if the format is unknown, the data is corrupt or the
// image exceeds MaxPixels. A nil service decodes nothing.
func (s *ImageService) DecodeArtwork(data []byte) (image.Image, error) {
	if s == nil {
		return nil, errNilService
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode artwork config: %w", err)
	}
	if s.MaxPixels > 0 && cfg.Width*cfg.Height > s.MaxPixels {
		return nil, fmt.Errorf("artwork %s is %dx%d, exceeds %d pixels", format, cfg.Width, cfg.Height, s.MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode artwork: %w", err)
	}
	return img, nil
}

// Resize scales img to fit within maxWidth x maxHeight.
//
// The aspect ratio is preserved. Images already within bounds are returned
// unchanged. The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 1500x1000 image becomes 1000x666
//	resized := svc.Resize(img, 1000, 1000)
func (s *ImageService) Resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}
	width = max(width, 1)
	height = max(height, 1)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// EncodeJPEG encodes img as JPEG with 90% quality, first shrinking it to fit
// within maxSize x maxSize when maxSize is positive.
//
// Parameters:
//   - ctx: Context for cancellation (checked before encoding)
//   - img: Decoded artwork
//   - maxSize: Maximum width and height in pixels, 0 to keep the original size
func (s *ImageService) EncodeJPEG(ctx context.Context, img image.Image, maxSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if maxSize > 0 {
		img = s.Resize(img, maxSize, maxSize)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
