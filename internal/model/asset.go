package model

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Asset is a reference to a playable resource, remote or local.
//
// Asset is a comparable value: two assets are equal when their addresses
// are equal. The zero Asset has no address and is treated as "no asset" by
// NewTrackFromAssets.
type Asset struct {
	address string
}

// NewAsset creates an Asset from an address.
//
// The address can be a URL ("https://host/a.mp3", "file:///music/a.mp3",
// "ipod-library://item/item.mp3?id=1") or an absolute local path, which is
// converted to a file URL.
//
// Returns an error if the address is empty or cannot be parsed.
func NewAsset(address string) (Asset, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Asset{}, fmt.Errorf("empty asset address")
	}

	if isLocalPath(address) {
		return NewFileAsset(address), nil
	}

	if _, err := url.Parse(address); err != nil {
		return Asset{}, fmt.Errorf("invalid asset address %q: %w", address, err)
	}

	return Asset{address: address}, nil
}

// NewFileAsset creates an Asset for a local file path.
func NewFileAsset(path string) Asset {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return Asset{address: u.String()}
}

// Address returns the asset's address.
func (a Asset) Address() string {
	return a.address
}

// IsZero reports whether a is the zero Asset.
func (a Asset) IsZero() bool {
	return a.address == ""
}

// IsOffline reports whether the asset should be considered available when
// the network is down. See IsOffline.
func (a Asset) IsOffline() bool {
	return IsOffline(a.address)
}

// FilePath returns the local filesystem path of a file asset.
// The second return value is false for anything that is not a file URL.
func (a Asset) FilePath() (string, bool) {
	u, err := url.Parse(a.address)
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// String implements fmt.Stringer.
func (a Asset) String() string {
	return a.address
}
