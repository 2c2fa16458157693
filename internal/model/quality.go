package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuality is returned when a quality value or name is not one of
// Low, Medium or High.
var ErrInvalidQuality = errors.New("invalid quality")

// Quality differentiates the encoded quality tiers of a track.
//
// Qualities are totally ordered: Low < Medium < High.
type Quality int

const (
	// QualityLow is the lowest quality.
	QualityLow Quality = iota

	// QualityMedium is the quality between lowest and highest.
	QualityMedium

	// QualityHigh is the highest quality.
	QualityHigh
)

// Qualities lists every quality in ascending order.
var Qualities = []Quality{QualityLow, QualityMedium, QualityHigh}

// String returns the lowercase name of the quality.
//
// Returns:
//   - "low" for QualityLow
//   - "medium" for QualityMedium
//   - "high" for QualityHigh
//   - "quality(N)" for anything else
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// Valid reports whether q is one of the three defined qualities.
func (q Quality) Valid() bool {
	return q >= QualityLow && q <= QualityHigh
}

// ParseQuality parses a quality name. Matching is case-insensitive and
// accepts the single-letter forms "l", "m" and "h".
//
// Example:
//
//	q, err := ParseQuality("High") // QualityHigh, nil
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return QualityLow, nil
	case "medium", "m":
		return QualityMedium, nil
	case "high", "h":
		return QualityHigh, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
	}
}

// fallbackOrder holds the order in which qualities are tried for each
// requested quality. Medium falls back to Low before High.
var fallbackOrder = map[Quality][]Quality{
	QualityHigh:   {QualityHigh, QualityMedium, QualityLow},
	QualityMedium: {QualityMedium, QualityLow, QualityHigh},
	QualityLow:    {QualityLow, QualityMedium, QualityHigh},
}

// FallbackOrder returns the qualities tried, in order, when q is requested.
// Unknown qualities use the Low order.
func FallbackOrder(q Quality) []Quality {
	order, ok := fallbackOrder[q]
	if !ok {
		order = fallbackOrder[QualityLow]
	}
	return append([]Quality(nil), order...)
}
