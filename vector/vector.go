package vector

import (
	"gonum.org/v1/gonum/blas/blas64"
	"math"
)

const tol = 1e-12

// NewVec creates new blas vector
func NewVec(data []float64) blas64.Vector {
	if data == nil {
		data = make([]float64, 0)
	}
	return blas64.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

// Dot calculates dot product of two vectors of the same size
func Dot(a, b []float64) float64 {
	if len(a) == 0 {
		return 0.0
	}
	return blas64.Dot(NewVec(a), NewVec(b))
}

// Norm returns l2-norm of the vector
func Norm(a []float64) float64 {
	if len(a) == 0 {
		return 0.0
	}
	return blas64.Nrm2(NewVec(a))
}

// CosineSim calculates cosine similarity btw the two given vectors;
// returns 0 when any of them has zero norm
func CosineSim(a, b []float64) float64 {
	normA, normB := Norm(a), Norm(b)
	if normA == 0.0 || normB == 0.0 {
		return 0.0
	}
	return Dot(a, b) / (normA * normB)
}

// IsZeroVector returns true if all vector's elements are close to 0.0
func IsZeroVector(v []float64) bool {
	if len(v) == 0 {
		return true
	}
	return math.Abs(blas64.Asum(NewVec(v))) <= tol
}
