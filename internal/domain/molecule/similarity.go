package molecule

import (
	"math"
	"strings"

	"github.com/turtacn/rdkit-go/pkg/errors"
)

// SimilarityMetric names a bit-vector similarity measure.
type SimilarityMetric string

const (
	MetricTanimoto SimilarityMetric = "tanimoto"
	MetricDice     SimilarityMetric = "dice"
	MetricCosine   SimilarityMetric = "cosine"
)

// Metrics lists every supported metric.
var Metrics = []SimilarityMetric{MetricTanimoto, MetricDice, MetricCosine}

func (m SimilarityMetric) IsValid() bool {
	switch m {
	case MetricTanimoto, MetricDice, MetricCosine:
		return true
	}
	return false
}

func (m SimilarityMetric) String() string { return string(m) }

// ParseSimilarityMetric is case-insensitive; the empty string is Tanimoto.
func ParseSimilarityMetric(s string) (SimilarityMetric, error) {
	if s == "" {
		return MetricTanimoto, nil
	}
	m := SimilarityMetric(strings.ToLower(s))
	if m.IsValid() {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeValidation, "unsupported similarity metric: "+s)
}

// SimilarityCalculator scores two vectors of equal length in [0, 1].
type SimilarityCalculator interface {
	Calculate(a, b *BitVector) (float64, error)
	Metric() SimilarityMetric
}

// TanimotoCalculator is |A∩B| / |A∪B|.  Two empty vectors score 0.
type TanimotoCalculator struct{}

func (TanimotoCalculator) Calculate(a, b *BitVector) (float64, error) {
	and, or, err := intersect(a, b)
	if err != nil || or == 0 {
		return 0, err
	}
	return float64(and) / float64(or), nil
}

func (TanimotoCalculator) Metric() SimilarityMetric { return MetricTanimoto }

// DiceCalculator is 2|A∩B| / (|A|+|B|).
type DiceCalculator struct{}

func (DiceCalculator) Calculate(a, b *BitVector) (float64, error) {
	and, _, err := intersect(a, b)
	if err != nil {
		return 0, err
	}
	den := a.Count() + b.Count()
	if den == 0 {
		return 0, nil
	}
	return 2 * float64(and) / float64(den), nil
}

func (DiceCalculator) Metric() SimilarityMetric { return MetricDice }

// CosineCalculator is |A∩B| / sqrt(|A||B|).
type CosineCalculator struct{}

func (CosineCalculator) Calculate(a, b *BitVector) (float64, error) {
	and, _, err := intersect(a, b)
	if err != nil {
		return 0, err
	}
	den := math.Sqrt(float64(a.Count()) * float64(b.Count()))
	if den == 0 {
		return 0, nil
	}
	return float64(and) / den, nil
}

func (CosineCalculator) Metric() SimilarityMetric { return MetricCosine }

// NewSimilarityCalculator returns the calculator for metric.
func NewSimilarityCalculator(metric SimilarityMetric) (SimilarityCalculator, error) {
	switch metric {
	case MetricTanimoto:
		return TanimotoCalculator{}, nil
	case MetricDice:
		return DiceCalculator{}, nil
	case MetricCosine:
		return CosineCalculator{}, nil
	}
	return nil, errors.New(errors.ErrCodeValidation, "unsupported similarity metric: "+string(metric))
}

// Tanimoto is shorthand for TanimotoCalculator{}.Calculate.
func Tanimoto(a, b *BitVector) (float64, error) { return TanimotoCalculator{}.Calculate(a, b) }

// Dice is shorthand for DiceCalculator{}.Calculate.
func Dice(a, b *BitVector) (float64, error) { return DiceCalculator{}.Calculate(a, b) }

// Similarity thresholds used by ClassifySimilarity.
const (
	ThresholdIdentical          = 0.99
	ThresholdHighSimilarity     = 0.85
	ThresholdModerateSimilarity = 0.70
	ThresholdLowSimilarity      = 0.50
)

// ClassifySimilarity returns a classification label for a similarity score.
func ClassifySimilarity(score float64) string {
	switch {
	case score >= ThresholdIdentical:
		return "identical"
	case score >= ThresholdHighSimilarity:
		return "high"
	case score >= ThresholdModerateSimilarity:
		return "moderate"
	case score >= ThresholdLowSimilarity:
		return "low"
	}
	return "dissimilar"
}

// ValidateThreshold rejects thresholds outside [0, 1].
func ValidateThreshold(t float64) error {
	if t < 0 || t > 1 || math.IsNaN(t) {
		return errors.Newf(errors.ErrCodeSimilarityThresholdInvalid, "threshold %v must be between 0 and 1", t)
	}
	return nil
}

//Personal.AI order the ending
