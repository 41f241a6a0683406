package store

import "errors"

// ErrBucketNotFound returned by GetHashIterator when nothing has been put to the bucket yet
var ErrBucketNotFound = errors.New("bucket not found")

// Iterator consists from only one method which returns id of the next object
type Iterator interface {
	Next() (uint64, bool)
}

// Store holds the band buckets of the search index.
// Objects themselves are kept by the caller, buckets hold only
// their ids to not duplicate feature vectors and signatures
type Store interface {
	SetHash(band int, key uint64, objID uint64) error
	GetHashIterator(band int, key uint64) (Iterator, error)
	Clear() error
}
