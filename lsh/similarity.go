package lsh

import (
	"fmt"
	"math"

	vc "github.com/gasparian/lsh-banding-go/vector"
)

// SimilarityMeasure defines exact similarity over feature vectors
// and its estimation over signatures
type SimilarityMeasure interface {
	Kind() SimilarityKind
	ComputeSimilarity(a, b []float64) (float64, error)
	ApproximateSimilarity(a, b Signature) (float64, error)
}

// JaccardSimilarity works with binary feature vectors and MinHash signatures
type JaccardSimilarity struct{}

// CosineSimilarity works with real feature vectors and random projection signatures
type CosineSimilarity struct{}

var measures = map[SimilarityKind]SimilarityMeasure{
	Jaccard: JaccardSimilarity{},
	Cosine:  CosineSimilarity{},
}

// MeasureFor returns similarity measure of the given kind
func MeasureFor(kind SimilarityKind) (SimilarityMeasure, error) {
	m, ok := measures[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSimilarity, kind)
	}
	return m, nil
}

// Kind returns Jaccard
func (JaccardSimilarity) Kind() SimilarityKind {
	return Jaccard
}

// ComputeSimilarity returns |A∩B| / |A∪B|, 0 for the empty union
func (JaccardSimilarity) ComputeSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0.0, dimensionMismatch(len(b), len(a))
	}
	var inter, union int
	for i := range a {
		if !isBinary(a[i]) || !isBinary(b[i]) {
			return 0.0, fmt.Errorf("%w: position %d", ErrNonBinaryFeature, i)
		}
		if a[i] == 1 || b[i] == 1 {
			union++
			if a[i] == b[i] {
				inter++
			}
		}
	}
	if union == 0 {
		return 0.0, nil
	}
	return float64(inter) / float64(union), nil
}

// ApproximateSimilarity returns fraction of the positions where MinHash signatures agree
func (JaccardSimilarity) ApproximateSimilarity(a, b Signature) (float64, error) {
	sa, okA := a.(MinHashSignature)
	sb, okB := b.(MinHashSignature)
	if !okA || !okB {
		return 0.0, fmt.Errorf("%w: jaccard expects MinHash signatures", ErrSignatureMismatch)
	}
	if len(sa) != len(sb) || len(sa) == 0 {
		return 0.0, fmt.Errorf("%w: lengths %d and %d", ErrSignatureMismatch, len(sa), len(sb))
	}
	agree := 0
	for i := range sa {
		if sa[i] == sb[i] {
			agree++
		}
	}
	return float64(agree) / float64(len(sa)), nil
}

// Kind returns Cosine
func (CosineSimilarity) Kind() SimilarityKind {
	return Cosine
}

// ComputeSimilarity returns dot(a, b) / (|a|*|b|), 0 if any vector has zero norm
func (CosineSimilarity) ComputeSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0.0, dimensionMismatch(len(b), len(a))
	}
	return vc.CosineSim(a, b), nil
}

// ApproximateSimilarity estimates cosine by the share of hyperplanes which separate the vectors
func (CosineSimilarity) ApproximateSimilarity(a, b Signature) (float64, error) {
	sa, okA := a.(BitSignature)
	sb, okB := b.(BitSignature)
	if !okA || !okB {
		return 0.0, fmt.Errorf("%w: cosine expects bit signatures", ErrSignatureMismatch)
	}
	if len(sa) != len(sb) || len(sa) == 0 {
		return 0.0, fmt.Errorf("%w: lengths %d and %d", ErrSignatureMismatch, len(sa), len(sb))
	}
	hamming := 0
	for i := range sa {
		if sa[i] != sb[i] {
			hamming++
		}
	}
	return math.Cos(math.Pi * float64(hamming) / float64(len(sa))), nil
}

func isBinary(v float64) bool {
	return v == 0 || v == 1
}
