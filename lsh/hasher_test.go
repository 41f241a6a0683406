package lsh

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestMinHasherEmptySet(t *testing.T) {
	t.Parallel()
	hasher, err := NewMinHasher(4, 8, 0)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := hasher.Hash([]float64{0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if sig.Len() != 8 {
		t.Fatalf("Signature length must be 8, got %v", sig.Len())
	}
	for _, v := range sig.(MinHashSignature) {
		if !math.IsInf(v, 1) {
			t.Fatalf("Empty set must hash to +Inf, got %v", v)
		}
	}
	sig, _ = hasher.Hash([]float64{0, 1, 0, 0})
	for _, v := range sig.(MinHashSignature) {
		if math.IsInf(v, 0) {
			t.Fatal("Non-empty set must never hash to Inf")
		}
	}
}

func TestMinHasherDeterministic(t *testing.T) {
	t.Parallel()
	h1, _ := NewMinHasher(6, 16, 0)
	h2, _ := NewMinHasher(6, 16, 0)
	feature := []float64{1, 0, 1, 1, 0, 1}
	s1, _ := h1.Hash(feature)
	s2, _ := h2.Hash(feature)
	jac := JaccardSimilarity{}
	sim, err := jac.ApproximateSimilarity(s1, s2)
	if err != nil {
		t.Fatal(err)
	}
	if sim != 1.0 {
		t.Fatalf("Hashers with the same seeds must agree everywhere, got %v", sim)
	}
	// superset can't have larger minimum
	sub, _ := h1.Hash([]float64{1, 0, 0, 1, 0, 0})
	for i := range s1.(MinHashSignature) {
		if s1.(MinHashSignature)[i] > sub.(MinHashSignature)[i] {
			t.Fatal("Minimum of the superset must not exceed minimum of the subset")
		}
	}
}

func TestMinHasherErrors(t *testing.T) {
	t.Parallel()
	if _, err := NewMinHasher(0, 8, 0); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Expected invalid dimension error, got %v", err)
	}
	hasher, _ := NewMinHasher(3, 4, 0)
	if _, err := hasher.Hash([]float64{1, 0}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected dimension mismatch, got %v", err)
	}
	if _, err := hasher.Hash([]float64{1, 0, 2}); !errors.Is(err, ErrNonBinaryFeature) {
		t.Errorf("Expected non-binary feature error, got %v", err)
	}
}

// meanMinHashError returns mean signed and absolute error of the MinHash estimation
// over random pairs, every pair gets its own hash family
func meanMinHashError(t *testing.T, sigDim, pairs int) (float64, float64) {
	rng := rand.New(rand.NewSource(42))
	jac := JaccardSimilarity{}
	var signed, abs float64
	for i := 0; i < pairs; i++ {
		a := randomBinary(rng, 64, 0.5)
		b := randomBinary(rng, 64, 0.5)
		a[0], b[0] = 1, 1
		hasher, err := NewMinHasher(64, sigDim, uint32(i*sigDim))
		if err != nil {
			t.Fatal(err)
		}
		sa, _ := hasher.Hash(a)
		sb, _ := hasher.Hash(b)
		exact, _ := jac.ComputeSimilarity(a, b)
		approx, err := jac.ApproximateSimilarity(sa, sb)
		if err != nil {
			t.Fatal(err)
		}
		signed += approx - exact
		abs += math.Abs(approx - exact)
	}
	return signed / float64(pairs), abs / float64(pairs)
}

func TestMinHashUnbiased(t *testing.T) {
	t.Parallel()
	bias, absLarge := meanMinHashError(t, 256, 50)
	if math.Abs(bias) > 0.03 {
		t.Errorf("MinHash estimation is biased: mean error %v", bias)
	}
	_, absSmall := meanMinHashError(t, 8, 50)
	if absLarge >= absSmall {
		t.Errorf("Error must shrink with signature length: %v (256) vs %v (8)", absLarge, absSmall)
	}
	t.Log(bias, absLarge, absSmall)
}

func TestRandomProjectionHasher(t *testing.T) {
	t.Parallel()
	hasher, err := NewRandomProjectionHasher(3, 16, 1)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := hasher.Hash([]float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	for _, bit := range sig.(BitSignature) {
		if bit {
			t.Fatal("Zero vector must be on the non-positive side of every plane")
		}
	}
	pos, _ := hasher.Hash([]float64{1, 2, 3})
	neg, _ := hasher.Hash([]float64{-1, -2, -3})
	for i := range pos.(BitSignature) {
		if pos.(BitSignature)[i] == neg.(BitSignature)[i] {
			t.Fatal("Opposite vectors must be on the opposite sides of every plane")
		}
	}
	same, _ := NewRandomProjectionHasher(3, 16, 1)
	again, _ := same.Hash([]float64{1, 2, 3})
	cos := CosineSimilarity{}
	if sim, _ := cos.ApproximateSimilarity(pos, again); sim != 1.0 {
		t.Fatal("Hashers with the same seed must produce the same planes")
	}
	if _, err := hasher.Hash([]float64{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected dimension mismatch, got %v", err)
	}
	if _, err := NewRandomProjectionHasher(3, -1, 1); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Expected invalid dimension error, got %v", err)
	}
}

func meanProjectionError(t *testing.T, sigDim, instances int) (float64, float64) {
	a := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	b := []float64{0.5, math.Sqrt(3) / 2, 0, 0, 0, 0, 0, 0}
	cos := CosineSimilarity{}
	exact, _ := cos.ComputeSimilarity(a, b)
	var sum, abs float64
	for i := 1; i <= instances; i++ {
		hasher, err := NewRandomProjectionHasher(len(a), sigDim, int64(i))
		if err != nil {
			t.Fatal(err)
		}
		sa, _ := hasher.Hash(a)
		sb, _ := hasher.Hash(b)
		approx, err := cos.ApproximateSimilarity(sa, sb)
		if err != nil {
			t.Fatal(err)
		}
		sum += approx
		abs += math.Abs(approx - exact)
	}
	return sum/float64(instances) - exact, abs / float64(instances)
}

func TestRandomProjectionUnbiased(t *testing.T) {
	t.Parallel()
	bias, absLarge := meanProjectionError(t, 512, 30)
	if math.Abs(bias) > 0.05 {
		t.Errorf("Random projection estimation is biased: mean error %v", bias)
	}
	_, absSmall := meanProjectionError(t, 8, 30)
	if absLarge >= absSmall {
		t.Errorf("Error must shrink with signature length: %v (512) vs %v (8)", absLarge, absSmall)
	}
	t.Log(bias, absLarge, absSmall)
}

func TestNewHasher(t *testing.T) {
	t.Parallel()
	h, err := NewHasher(Config{FeatDim: 4, SigDim: 8, Similarity: Jaccard})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := h.(*MinHasher); !ok {
		t.Error("Jaccard must be paired with MinHasher")
	}
	h, err = NewHasher(Config{FeatDim: 4, SigDim: 8, Similarity: Cosine, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := h.(*RandomProjectionHasher); !ok {
		t.Error("Cosine must be paired with RandomProjectionHasher")
	}
	if h.FeatDim() != 4 || h.SigDim() != 8 {
		t.Error("Hasher dimensions differ from the config")
	}
	if _, err = NewHasher(Config{FeatDim: 4, SigDim: 8}); !errors.Is(err, ErrUnknownSimilarity) {
		t.Errorf("Expected unknown similarity error, got %v", err)
	}
}
