package model

import (
	"net/url"
	"path/filepath"
	"strings"
)

// MediaLibraryScheme is the URL scheme used by on-device media library items.
const MediaLibraryScheme = "ipod-library"

// loopbackHosts are host literals treated as local.
var loopbackHosts = []string{"localhost", "127.0.0.1"}

// IsOffline reports whether a resource at address should be considered
// available without a network round-trip.
//
// An address is offline when it is:
//   - a local file path or a file:// URL
//   - an on-device media library URL (ipod-library://)
//   - a URL whose host is "localhost" or "127.0.0.1"
//
// The classification is purely syntactic. No DNS lookup or connection is made.
//
// Example:
//
//	IsOffline("/home/me/song.mp3")         // true
//	IsOffline("http://127.0.0.1/song.mp3") // true
//	IsOffline("http://google.com")         // false
func IsOffline(address string) bool {
	if isLocalPath(address) {
		return true
	}

	u, err := url.Parse(address)
	if err != nil {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case "file", MediaLibraryScheme:
		return true
	}

	host := u.Hostname()
	for _, loopback := range loopbackHosts {
		if strings.EqualFold(host, loopback) {
			return true
		}
	}

	return false
}

// isLocalPath reports whether address is an absolute path with no URL scheme.
func isLocalPath(address string) bool {
	if strings.Contains(address, "://") {
		return false
	}
	return filepath.IsAbs(address)
}
