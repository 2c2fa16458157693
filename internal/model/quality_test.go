package model

import (
	"errors"
	"testing"
)

func TestQuality_String(t *testing.T) {
	tests := []struct {
		quality Quality
		want    string
	}{
		{QualityLow, "low"},
		{QualityMedium, "medium"},
		{QualityHigh, "high"},
		{Quality(7), "quality(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.quality.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		input   string
		want    Quality
		wantErr bool
	}{
		{"low", QualityLow, false},
		{"Medium", QualityMedium, false},
		{" HIGH ", QualityHigh, false},
		{"h", QualityHigh, false},
		{"m", QualityMedium, false},
		{"l", QualityLow, false},
		{"lossless", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuality(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuality) {
					t.Errorf("ParseQuality(%q) error = %v, want ErrInvalidQuality", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuality(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuality(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFallbackOrder(t *testing.T) {
	tests := []struct {
		requested Quality
		want      []Quality
	}{
		{QualityHigh, []Quality{QualityHigh, QualityMedium, QualityLow}},
		{QualityMedium, []Quality{QualityMedium, QualityLow, QualityHigh}},
		{QualityLow, []Quality{QualityLow, QualityMedium, QualityHigh}},
		{Quality(-1), []Quality{QualityLow, QualityMedium, QualityHigh}},
	}

	for _, tt := range tests {
		t.Run(tt.requested.String(), func(t *testing.T) {
			got := FallbackOrder(tt.requested)
			if len(got) != len(tt.want) {
				t.Fatalf("FallbackOrder(%v) = %v, want %v", tt.requested, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FallbackOrder(%v) = %v, want %v", tt.requested, got, tt.want)
					break
				}
			}
		})
	}

	// Callers must not be able to mutate the shared table.
	order := FallbackOrder(QualityHigh)
	order[0] = QualityLow
	if FallbackOrder(QualityHigh)[0] != QualityHigh {
		t.Error("FallbackOrder returned a shared slice")
	}
}
