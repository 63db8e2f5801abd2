package services

import (
	"errors"
	"fmt"

	"grocery-route-service/internal/domain"
)

// ScoreWeights configures the blend between item coverage and travel distance
// when scoring a stop. Weights are explicit configuration passed into the
// search rather than package constants, so callers and tests can vary them.
type ScoreWeights struct {
	Items    float64
	Distance float64
}

// DefaultScoreWeights returns the standard blend: item coverage matters twice
// as much as distance.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Items: 2, Distance: 1}
}

func (w ScoreWeights) Validate() error {
	if w.Items < 0 || w.Distance < 0 {
		return fmt.Errorf("score weights: must be non-negative, got items=%v distance=%v", w.Items, w.Distance)
	}
	if w.Items+w.Distance <= 0 {
		return errors.New("score weights: items and distance must not both be zero")
	}
	return nil
}

// StopScore rates one candidate stop on a [0,1] badness scale: 0 is the best
// possible stop (covers every remaining needed item with zero extra travel),
// 1 the worst (covers nothing relevant, or consumes the entire distance
// budget). A route's total score is the sum of its stop scores, so routes
// rank ascending.
func StopScore(
	itemsAtStore domain.ItemSet,
	itemsStillNeeded domain.ItemSet,
	distanceFromPrev float64,
	maxTotalDistance float64,
	w ScoreWeights,
) float64 {
	fractionMissing := 0.0
	if itemsStillNeeded.Len() > 0 {
		missing := itemsStillNeeded.Without(itemsAtStore)
		fractionMissing = float64(missing.Len()) / float64(itemsStillNeeded.Len())
	}

	normalizedDistance := 0.0
	switch {
	case maxTotalDistance > 0:
		normalizedDistance = distanceFromPrev / maxTotalDistance
	case distanceFromPrev > 0:
		// No budget to normalize against: any travel is maximally bad.
		normalizedDistance = 1
	}
	if normalizedDistance < 0 {
		normalizedDistance = 0
	}
	if normalizedDistance > 1 {
		normalizedDistance = 1
	}

	return (w.Items*fractionMissing + w.Distance*normalizedDistance) / (w.Items + w.Distance)
}
