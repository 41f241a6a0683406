package lsh

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	vc "github.com/gasparian/lsh-banding-go/vector"
	"github.com/spaolacci/murmur3"
)

type hasherBuilder func(config Config) (Hasher, error)

// hasherBuilders binds every similarity kind to the hasher family estimating it
var hasherBuilders = map[SimilarityKind]hasherBuilder{
	Jaccard: func(config Config) (Hasher, error) {
		h, err := NewMinHasher(config.FeatDim, config.SigDim, uint32(config.Seed))
		if err != nil {
			return nil, err
		}
		return h, nil
	},
	Cosine: func(config Config) (Hasher, error) {
		h, err := NewRandomProjectionHasher(config.FeatDim, config.SigDim, config.Seed)
		if err != nil {
			return nil, err
		}
		return h, nil
	},
}

// NewHasher creates the hasher matching the similarity kind of the config
func NewHasher(config Config) (Hasher, error) {
	build, ok := hasherBuilders[config.Similarity]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSimilarity, config.Similarity)
	}
	return build(config)
}

func checkDims(featDim, sigDim int) error {
	if featDim <= 0 || sigDim <= 0 {
		return fmt.Errorf("%w: featDim=%d, sigDim=%d", ErrInvalidDimension, featDim, sigDim)
	}
	return nil
}

// MinHasher generates signatures for the jaccard similarity measure.
// Hash function k is murmur3 over the decimal position, seeded with baseSeed+k
type MinHasher struct {
	featDim  int
	sigDim   int
	baseSeed uint32
	posKeys  [][]byte
}

// NewMinHasher creates MinHasher; baseSeed 0 gives the seeds 0..sigDim-1
func NewMinHasher(featDim, sigDim int, baseSeed uint32) (*MinHasher, error) {
	if err := checkDims(featDim, sigDim); err != nil {
		return nil, err
	}
	posKeys := make([][]byte, featDim)
	for pos := range posKeys {
		posKeys[pos] = []byte(strconv.Itoa(pos))
	}
	return &MinHasher{
		featDim:  featDim,
		sigDim:   sigDim,
		baseSeed: baseSeed,
		posKeys:  posKeys,
	}, nil
}

// FeatDim returns expected feature vector size
func (h *MinHasher) FeatDim() int {
	return h.featDim
}

// SigDim returns signature length
func (h *MinHasher) SigDim() int {
	return h.sigDim
}

// Hash returns the MinHash signature; every element of the empty set signature is +Inf
func (h *MinHasher) Hash(feature []float64) (Signature, error) {
	if len(feature) != h.featDim {
		return nil, dimensionMismatch(len(feature), h.featDim)
	}
	members := make([]int, 0, len(feature))
	for pos, val := range feature {
		if !isBinary(val) {
			return nil, fmt.Errorf("%w: position %d", ErrNonBinaryFeature, pos)
		}
		if val == 1 {
			members = append(members, pos)
		}
	}
	sig := make(MinHashSignature, h.sigDim)
	for k := range sig {
		sig[k] = h.minHash(members, h.baseSeed+uint32(k))
	}
	return sig, nil
}

func (h *MinHasher) minHash(members []int, seed uint32) float64 {
	lowest := math.Inf(1)
	for _, pos := range members {
		// NOTE: hash values are kept as signed 32-bit integers
		v := float64(int32(murmur3.Sum32WithSeed(h.posKeys[pos], seed)))
		if v < lowest {
			lowest = v
		}
	}
	return lowest
}

// RandomProjectionHasher generates random hyperplanes and
// makes projections of features onto them; used together with cosine similarity
type RandomProjectionHasher struct {
	featDim int
	sigDim  int
	planes  [][]float64
}

// NewRandomProjectionHasher draws sigDim hyperplane normals with standard normal coordinates;
// seed 0 means seeding by current time
func NewRandomProjectionHasher(featDim, sigDim int, seed int64) (*RandomProjectionHasher, error) {
	if err := checkDims(featDim, sigDim); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	planes := make([][]float64, sigDim)
	for i := range planes {
		plane := make([]float64, featDim)
		for j := range plane {
			plane[j] = rng.NormFloat64()
		}
		planes[i] = plane
	}
	return &RandomProjectionHasher{
		featDim: featDim,
		sigDim:  sigDim,
		planes:  planes,
	}, nil
}

// FeatDim returns expected feature vector size
func (h *RandomProjectionHasher) FeatDim() int {
	return h.featDim
}

// SigDim returns number of hyperplanes
func (h *RandomProjectionHasher) SigDim() int {
	return h.sigDim
}

// Hash sets bit i when the feature lies strictly on the positive side of hyperplane i
func (h *RandomProjectionHasher) Hash(feature []float64) (Signature, error) {
	if len(feature) != h.featDim {
		return nil, dimensionMismatch(len(feature), h.featDim)
	}
	sig := make(BitSignature, h.sigDim)
	for i, plane := range h.planes {
		sig[i] = vc.Dot(plane, feature) > 0
	}
	return sig, nil
}
