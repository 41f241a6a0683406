package lsh

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/gasparian/lsh-banding-go/store"
	"github.com/gasparian/lsh-banding-go/store/kv"
)

// NewBandingHashTable creates table with the given number of bands;
// sigDim must be divisible by bands. Uses in-memory store when s is nil
func NewBandingHashTable(sigDim, bands int, s store.Store) (*BandingHashTable, error) {
	if sigDim <= 0 || bands <= 0 {
		return nil, fmt.Errorf("%w: sigDim=%d and bands=%d must be positive", ErrInvalidBandConfig, sigDim, bands)
	}
	if sigDim%bands != 0 {
		return nil, fmt.Errorf("%w: sigDim=%d is not divisible by bands=%d", ErrInvalidBandConfig, sigDim, bands)
	}
	if s == nil {
		s = kv.NewKVStore()
	}
	return &BandingHashTable{
		sigDim:  sigDim,
		bands:   bands,
		rows:    sigDim / bands,
		store:   s,
		objects: make(map[uint64]*Object),
	}, nil
}

// Bands returns number of bands
func (t *BandingHashTable) Bands() int {
	return t.bands
}

// RowsPerBand returns number of signature elements in each band
func (t *BandingHashTable) RowsPerBand() int {
	return t.rows
}

// bandKeys hashes every band segment of the signature.
// The encoding carries the signature variant and all segment elements,
// so keys of equal segments match and keys of different variants never do
func (t *BandingHashTable) bandKeys(sig Signature) ([]uint64, error) {
	if sig == nil {
		return nil, ErrMissingSignature
	}
	if sig.Len() != t.sigDim {
		return nil, fmt.Errorf("%w: signature length %d, table expects %d", ErrSignatureMismatch, sig.Len(), t.sigDim)
	}
	keys := make([]uint64, t.bands)
	buf := make([]byte, 0, 1+t.rows*8)
	for i := range keys {
		buf = sig.appendSegment(buf[:0], i*t.rows, (i+1)*t.rows)
		keys[i] = xxhash.Sum64(buf)
	}
	return keys, nil
}

// Put adds object to the bucket of every band.
// There is no deduplication on insert: putting the same object twice
// leaves two entries in each of its buckets
func (t *BandingHashTable) Put(obj *Object) error {
	if obj == nil {
		return ErrNilObject
	}
	keys, err := t.bandKeys(obj.Signature)
	if err != nil {
		return err
	}

	t.mx.Lock()
	t.objects[obj.ID] = obj
	t.mx.Unlock()

	for band, key := range keys {
		err = t.store.SetHash(band, key, obj.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// Get returns objects which share at least one band with the signature,
// each object at most once
func (t *BandingHashTable) Get(sig Signature) ([]*Object, error) {
	keys, err := t.bandKeys(sig)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]bool)
	ids := make([]uint64, 0)
	for band, key := range keys {
		it, err := t.store.GetHashIterator(band, key)
		if errors.Is(err, store.ErrBucketNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for {
			id, ok := it.Next()
			if !ok {
				break
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}

	t.mx.RLock()
	defer t.mx.RUnlock()
	result := make([]*Object, 0, len(ids))
	for _, id := range ids {
		if obj, ok := t.objects[id]; ok {
			result = append(result, obj)
		}
	}
	return result, nil
}

// Len returns number of distinct objects in the table
func (t *BandingHashTable) Len() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return len(t.objects)
}

// Clear drops all buckets and objects
func (t *BandingHashTable) Clear() error {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.objects = make(map[uint64]*Object)
	return t.store.Clear()
}
