// Package classify holds the banding and scaling primitives shared by every scorer.
package classify

import (
	"math"

	apperrors "readiness-workers/internal/common/errors"
)

// Band is one entry of an ascending banding table. A value belongs to the
// first band whose UpperBound is >= the value.
type Band struct {
	UpperBound float64 `json:"upperBound" mapstructure:"upper_bound"`
	Label      string  `json:"label" mapstructure:"label"`
}

// Tier is a LOW/MODERATE/HIGH risk classification.
type Tier string

const (
	TierLow      Tier = "LOW"
	TierModerate Tier = "MODERATE"
	TierHigh     Tier = "HIGH"
)

// RiskBands covers 0-100 without gaps: <60 HIGH, 60-74 MODERATE, >=75 LOW.
var riskBands = []Band{
	{UpperBound: 59, Label: string(TierHigh)},
	{UpperBound: 74, Label: string(TierModerate)},
	{UpperBound: 100, Label: string(TierLow)},
}

// Percent linearly maps v onto 0-100 where floor maps to 0 and target to 100.
// Inverted ranges (floor > target) are allowed.
func Percent(v, floor, target float64) (float64, error) {
	if floor == target {
		return 0, apperrors.NewInvalidRangeError("", floor, target)
	}
	return Clamp(100*(v-floor)/(target-floor), 0, 100), nil
}

// Classify returns the label of the first band whose upper bound is >= v,
// or the last label when v exceeds every bound.
func Classify(v float64, bands []Band) (string, error) {
	if len(bands) == 0 {
		return "", apperrors.NewInvalidRangeError("empty band table", 0, 0)
	}
	for _, b := range bands {
		if v <= b.UpperBound {
			return b.Label, nil
		}
	}
	return bands[len(bands)-1].Label, nil
}

// ValidateBands checks that a banding table is non-empty and strictly ascending.
func ValidateBands(context string, bands []Band) error {
	if len(bands) == 0 {
		return apperrors.NewInvalidRangeError(context, 0, 0)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].UpperBound <= bands[i-1].UpperBound {
			return apperrors.NewInvalidRangeError(context, bands[i-1].UpperBound, bands[i].UpperBound)
		}
	}
	return nil
}

// RiskTier classifies a 0-100 composite score.
func RiskTier(score int) Tier {
	label, _ := Classify(float64(score), riskBands)
	return Tier(label)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Floor2 truncates a non-negative v to two decimal places, so that v <= x.x9
// holds exactly when v < x.x9 + 0.01. Float error just below a boundary is
// absorbed.
func Floor2(v float64) float64 {
	return math.Floor(v*100+1e-9) / 100
}
