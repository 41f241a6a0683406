package lsh

import (
	"sync"

	cm "github.com/gasparian/lsh-banding-go/common"
	"github.com/gasparian/lsh-banding-go/store"
)

// DefaultBands is used when Config.Bands is left empty
const DefaultBands = 10

// SimilarityKind selects the similarity measure and the hasher family paired with it
type SimilarityKind int

// Supported similarity measures
const (
	UnknownSimilarity SimilarityKind = iota
	Jaccard
	Cosine
)

// Config holds all needed constants for creating the Index instance
type Config struct {
	FeatDim    int            `yaml:"featDim"`
	SigDim     int            `yaml:"sigDim"`
	Bands      int            `yaml:"bands"`
	Similarity SimilarityKind `yaml:"similarity"`
	// Seed drives the hash family: base seed of the MinHash functions,
	// source of the random hyperplanes (0 means time-based for the latter)
	Seed int64 `yaml:"seed"`
}

// Signature is a compact representation of a feature vector produced by the Hasher.
// The only implementations are MinHashSignature and BitSignature
type Signature interface {
	Len() int
	appendSegment(buf []byte, from, to int) []byte
}

// MinHashSignature holds per hash function minimums; +Inf marks the empty set
type MinHashSignature []float64

// BitSignature holds the sides of the random hyperplanes
type BitSignature []bool

// Object is a single indexed entity; identity is defined by ID only
type Object struct {
	ID        uint64
	Feature   []float64
	Signature Signature
}

// Hasher converts feature vector into the signature of fixed length
type Hasher interface {
	Hash(feature []float64) (Signature, error)
	FeatDim() int
	SigDim() int
}

// BandingHashTable splits signatures into bands and buckets object ids by the band hash
type BandingHashTable struct {
	mx      sync.RWMutex
	sigDim  int
	bands   int
	rows    int
	store   store.Store
	objects map[uint64]*Object
}

// Index binds similarity measure to its hasher and the banding hash table
type Index struct {
	config  Config
	measure SimilarityMeasure
	hasher  Hasher
	table   *BandingHashTable
	logger  *cm.Logger
}
