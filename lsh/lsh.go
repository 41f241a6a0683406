package lsh

import (
	"runtime"

	cm "github.com/gasparian/lsh-banding-go/common"
	"github.com/gasparian/lsh-banding-go/store"
	"golang.org/x/sync/errgroup"
)

// New creates the index: picks the hasher matching the similarity measure
// and the banding hash table on top of the store.
// Nil store means in-memory store, nil logger means stderr logger
func New(config Config, s store.Store, logger *cm.Logger) (*Index, error) {
	if logger == nil {
		logger = cm.GetNewLogger()
	}
	if config.Bands == 0 {
		logger.Warn.Printf("Bands number is not set, using default value: %v", DefaultBands)
	}
	config = config.WithDefaults()
	err := config.Validate()
	if err != nil {
		logger.Err.Println("Creating LSH index: " + err.Error())
		return nil, err
	}
	measure, err := MeasureFor(config.Similarity)
	if err != nil {
		return nil, err
	}
	hasher, err := NewHasher(config)
	if err != nil {
		return nil, err
	}
	table, err := NewBandingHashTable(config.SigDim, config.Bands, s)
	if err != nil {
		return nil, err
	}
	logger.Info.Printf(
		"LSH index created: similarity=%v featDim=%v sigDim=%v bands=%v rows=%v",
		config.Similarity, config.FeatDim, config.SigDim, table.Bands(), table.RowsPerBand(),
	)
	return &Index{
		config:  config,
		measure: measure,
		hasher:  hasher,
		table:   table,
		logger:  logger,
	}, nil
}

// Config returns the config the index has been built with
func (idx *Index) Config() Config {
	return idx.config
}

// Measure returns similarity measure, useful for re-ranking of the candidates
func (idx *Index) Measure() SimilarityMeasure {
	return idx.measure
}

// Len returns number of distinct indexed objects
func (idx *Index) Len() int {
	return idx.table.Len()
}

// GenerateSignature sets (or overwrites) the object signature
func (idx *Index) GenerateSignature(obj *Object) error {
	if obj == nil {
		return ErrNilObject
	}
	sig, err := idx.hasher.Hash(obj.Feature)
	if err != nil {
		return err
	}
	obj.Signature = sig
	return nil
}

// Index generates signature of the object and puts it to the banding hash table.
// Indexing the same object twice stores duplicate bucket entries,
// Retrieve still returns it once
func (idx *Index) Index(obj *Object) error {
	err := idx.GenerateSignature(obj)
	if err != nil {
		return err
	}
	return idx.table.Put(obj)
}

// IndexBatch hashes objects concurrently and puts them to the table;
// nothing is inserted if any of the objects can't be hashed
func (idx *Index) IndexBatch(objs []*Object) error {
	sigs := make([]Signature, len(objs))
	g := errgroup.Group{}
	g.SetLimit(runtime.NumCPU())
	for i := range objs {
		i := i
		g.Go(func() error {
			if objs[i] == nil {
				return ErrNilObject
			}
			sig, err := idx.hasher.Hash(objs[i].Feature)
			if err != nil {
				return err
			}
			sigs[i] = sig
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		idx.logger.Err.Println("Batch indexing: " + err.Error())
		return err
	}
	for i, obj := range objs {
		obj.Signature = sigs[i]
		if err := idx.table.Put(obj); err != nil {
			idx.logger.Err.Println("Batch indexing: " + err.Error())
			return err
		}
	}
	return nil
}

// Retrieve returns candidates sharing at least one band with the query object.
// The query doesn't need to be indexed; candidates are not ranked
func (idx *Index) Retrieve(obj *Object) ([]*Object, error) {
	err := idx.GenerateSignature(obj)
	if err != nil {
		return nil, err
	}
	return idx.table.Get(obj.Signature)
}

// Clear drops all indexed objects
func (idx *Index) Clear() error {
	return idx.table.Clear()
}
