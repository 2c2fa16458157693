package model

import (
	"errors"
	"fmt"
)

// ErrNoAssets is returned when a track is constructed without any asset.
var ErrNoAssets = errors.New("no assets")

// ResolvedAsset is the asset picked for a requested quality.
//
// Quality is the quality actually used, which differs from the requested
// quality when a fallback happened.
type ResolvedAsset struct {
	Quality Quality
	Asset   Asset
}

// QualityMap associates qualities with assets.
//
// A QualityMap always holds at least one asset and cannot be modified after
// construction, so it is safe for concurrent readers. Build one with
// NewQualityMap.
type QualityMap struct {
	assets map[Quality]Asset
}

// NewQualityMap creates a QualityMap from the given assets.
//
// The input map is copied. Zero assets are skipped as if absent.
//
// Returns ErrNoAssets if no asset remains, or ErrInvalidQuality if a key is
// not one of the defined qualities.
func NewQualityMap(assets map[Quality]Asset) (QualityMap, error) {
	m := make(map[Quality]Asset, len(assets))
	for q, asset := range assets {
		if !q.Valid() {
			return QualityMap{}, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
		}
		if asset.IsZero() {
			continue
		}
		m[q] = asset
	}

	if len(m) == 0 {
		return QualityMap{}, ErrNoAssets
	}

	return QualityMap{assets: m}, nil
}

// Resolve returns the asset that best fits the requested quality.
//
// The requested quality is used if present. Otherwise qualities are tried
// in a fixed order:
//   - High:   High, Medium, Low
//   - Medium: Medium, Low, High
//   - Low:    Low, Medium, High
//
// Resolve never fails on a map built with NewQualityMap.
func (m QualityMap) Resolve(requested Quality) ResolvedAsset {
	for _, q := range FallbackOrder(requested) {
		if asset, ok := m.assets[q]; ok {
			return ResolvedAsset{Quality: q, Asset: asset}
		}
	}
	// Only reachable on the zero QualityMap.
	return ResolvedAsset{}
}

// Highest returns the highest quality asset available.
func (m QualityMap) Highest() ResolvedAsset {
	return m.Resolve(QualityHigh)
}

// Medium returns the medium quality asset, falling back to low then high.
func (m QualityMap) Medium() ResolvedAsset {
	return m.Resolve(QualityMedium)
}

// Lowest returns the lowest quality asset available.
func (m QualityMap) Lowest() ResolvedAsset {
	return m.Resolve(QualityLow)
}

// Get returns the asset stored for exactly q, without fallback.
func (m QualityMap) Get(q Quality) (Asset, bool) {
	asset, ok := m.assets[q]
	return asset, ok
}

// Len returns the number of qualities with an asset.
func (m QualityMap) Len() int {
	return len(m.assets)
}

// Qualities returns the qualities present in the map in ascending order.
func (m QualityMap) Qualities() []Quality {
	var qs []Quality
	for _, q := range Qualities {
		if _, ok := m.assets[q]; ok {
			qs = append(qs, q)
		}
	}
	return qs
}
