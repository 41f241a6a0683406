package kv

import (
	"errors"
	"sync"

	"github.com/gasparian/lsh-banding-go/store"
	guuid "github.com/google/uuid"
)

var (
	// ErrNegativeBand returned for the negative band index
	ErrNegativeBand = errors.New("band index must be non-negative")
)

// bandShard holds all buckets of a single band under its own lock,
// so writers to different bands never block each other
type bandShard struct {
	mx      sync.RWMutex
	buckets map[uint64]map[string]uint64
}

// KVStore is an in-memory Store implementation
type KVStore struct {
	mx     sync.RWMutex
	shards map[int]*bandShard
}

// NewKVStore creates empty in-memory store
func NewKVStore() *KVStore {
	return &KVStore{
		shards: make(map[int]*bandShard),
	}
}

// KeysIterator walks over the snapshot of the bucket
type KeysIterator struct {
	ids []uint64
	pos int
}

// Next returns the next object id, false when iterator is exhausted
func (it *KeysIterator) Next() (uint64, bool) {
	if it.pos >= len(it.ids) {
		return 0, false
	}
	id := it.ids[it.pos]
	it.pos++
	return id, true
}

func (s *KVStore) getShard(band int, create bool) *bandShard {
	s.mx.RLock()
	shard, ok := s.shards[band]
	s.mx.RUnlock()
	if ok || !create {
		return shard
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	if shard, ok = s.shards[band]; ok {
		return shard
	}
	shard = &bandShard{buckets: make(map[uint64]map[string]uint64)}
	s.shards[band] = shard
	return shard
}

// SetHash appends object id to the bucket; every call creates a new entry,
// so putting the same id twice leaves two entries in the bucket
func (s *KVStore) SetHash(band int, key uint64, objID uint64) error {
	if band < 0 {
		return ErrNegativeBand
	}
	shard := s.getShard(band, true)
	shard.mx.Lock()
	defer shard.mx.Unlock()
	bucket, ok := shard.buckets[key]
	if !ok {
		bucket = make(map[string]uint64)
		shard.buckets[key] = bucket
	}
	uid := guuid.NewString()
	bucket[uid] = objID
	return nil
}

// GetHashIterator returns iterator over the copy of bucket content
func (s *KVStore) GetHashIterator(band int, key uint64) (store.Iterator, error) {
	if band < 0 {
		return nil, ErrNegativeBand
	}
	shard := s.getShard(band, false)
	if shard == nil {
		return nil, store.ErrBucketNotFound
	}
	shard.mx.RLock()
	defer shard.mx.RUnlock()
	bucket, ok := shard.buckets[key]
	if !ok {
		return nil, store.ErrBucketNotFound
	}
	ids := make([]uint64, 0, len(bucket))
	for _, id := range bucket {
		ids = append(ids, id)
	}
	return &KeysIterator{ids: ids}, nil
}

// Size returns total number of entries over all bands
func (s *KVStore) Size() int {
	s.mx.RLock()
	defer s.mx.RUnlock()
	size := 0
	for _, shard := range s.shards {
		shard.mx.RLock()
		for _, bucket := range shard.buckets {
			size += len(bucket)
		}
		shard.mx.RUnlock()
	}
	return size
}

// Clear drops all the buckets
func (s *KVStore) Clear() error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.shards = make(map[int]*bandShard)
	return nil
}
