// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Write data to file, creating parent directories
//	err := ioutils.WriteFile(ctx, "/path/to/file.m3u", []byte("content"))
//
// # Image Processing
//
// The ImageService decodes and re-encodes artwork:
//
//	svc := ioutils.NewImageService()
//
//	// Decode embedded artwork bytes (used as model.ArtworkDecoder)
//	img, err := svc.DecodeArtwork(data)
//
//	// Shrink to fit within 500x500 and encode as JPEG
//	jpeg, err := svc.EncodeJPEG(ctx, img, 500)
package ioutils
