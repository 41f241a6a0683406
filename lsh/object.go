package lsh

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"
)

// Len returns number of hash functions
func (s MinHashSignature) Len() int {
	return len(s)
}

func (s MinHashSignature) appendSegment(buf []byte, from, to int) []byte {
	buf = append(buf, 'm')
	for _, v := range s[from:to] {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}

// Len returns number of hyperplanes
func (s BitSignature) Len() int {
	return len(s)
}

func (s BitSignature) appendSegment(buf []byte, from, to int) []byte {
	buf = append(buf, 'b')
	for _, v := range s[from:to] {
		if v {
			buf = append(buf, 1)
			continue
		}
		buf = append(buf, 0)
	}
	return buf
}

// NewObject creates object with the caller-provided id;
// feature vector is copied, so later changes of the input do not leak into the index
func NewObject(id uint64, feature []float64) *Object {
	feat := make([]float64, len(feature))
	copy(feat, feature)
	return &Object{
		ID:      id,
		Feature: feat,
	}
}

// Equal compares objects by id only
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.ID == other.ID
}

func (o *Object) String() string {
	return fmt.Sprintf("<%d %v>", o.ID, o.Feature)
}

// IDSequence hands out monotonic object ids, safe for concurrent use
type IDSequence struct {
	last atomic.Uint64
}

// NewIDSequence creates sequence which continues after the given id
func NewIDSequence(last uint64) *IDSequence {
	seq := &IDSequence{}
	seq.last.Store(last)
	return seq
}

// Next returns the next id
func (s *IDSequence) Next() uint64 {
	return s.last.Add(1)
}

// NewObject creates object with the next id of the sequence
func (s *IDSequence) NewObject(feature []float64) *Object {
	return NewObject(s.Next(), feature)
}
