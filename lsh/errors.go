package lsh

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch = errors.New("feature vector dimension mismatch")
	ErrInvalidDimension  = errors.New("dimensions number must be a positive integer")
	ErrInvalidBandConfig = errors.New("invalid band configuration")
	ErrUnknownSimilarity = errors.New("unknown similarity measure")
	ErrSignatureMismatch = errors.New("signatures are not comparable")
	ErrNonBinaryFeature  = errors.New("feature vector must contain only 0 and 1")
	ErrMissingSignature  = errors.New("object has no signature")
	ErrNilObject         = errors.New("object must not be nil")
)

func dimensionMismatch(got, want int) error {
	return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, got, want)
}
