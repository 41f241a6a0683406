package annbench

import (
	"errors"
	"io"
	"sort"
	"time"

	"github.com/cheggaaa/pb/v3"
	cm "github.com/gasparian/lsh-banding-go/common"
	"github.com/gasparian/lsh-banding-go/lsh"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyDataset returned when there is nothing to index or query
	ErrEmptyDataset = errors.New("dataset must contain train and test vectors")
	// ErrNoGroundTruth returned when test queries have no known neighbors
	ErrNoGroundTruth = errors.New("number of neighbors lists must match the test set size")
)

// Dataset holds vectors to index, queries and
// sorted indices of the true nearest train vectors for every query
type Dataset struct {
	Train     [][]float64
	Test      [][]float64
	Neighbors [][]int
}

// Config holds evaluation params
type Config struct {
	BatchSize int
	Quiet     bool
}

// Report holds averaged quality and timing of the index
type Report struct {
	Precision     float64
	Recall        float64
	AvgCandidates float64
	IndexTime     time.Duration
	AvgQueryTime  time.Duration
}

// PrecisionRecall returns ratio of relevant predictions over all predictions
// and over all true relevant items; both arrays MUST BE SORTED
func PrecisionRecall(prediction, groundTruth []int) (float64, float64) {
	valid := 0
	for _, val := range prediction {
		idx := sort.SearchInts(groundTruth, val)
		if idx < len(groundTruth) && groundTruth[idx] == val {
			valid++
		}
	}
	precision, recall := 0.0, 0.0
	if len(prediction) > 0 {
		precision = float64(valid) / float64(len(prediction))
	}
	if len(groundTruth) > 0 {
		recall = float64(valid) / float64(len(groundTruth))
	}
	return precision, recall
}

// BruteForceNeighbors returns sorted indices of k train vectors most similar to the query
func BruteForceNeighbors(measure lsh.SimilarityMeasure, train [][]float64, query []float64, k int) ([]int, error) {
	sims := make([]float64, len(train))
	order := make([]int, len(train))
	for i, vec := range train {
		sim, err := measure.ComputeSimilarity(vec, query)
		if err != nil {
			return nil, err
		}
		sims[i] = sim
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sims[order[i]] > sims[order[j]]
	})
	if k > len(order) {
		k = len(order)
	}
	closest := append([]int(nil), order[:k]...)
	sort.Ints(closest)
	return closest, nil
}

// ComputeNeighbors fills the ground truth with exact k nearest neighbors of each test vector
func (ds *Dataset) ComputeNeighbors(measure lsh.SimilarityMeasure, k int) error {
	neighbors := make([][]int, len(ds.Test))
	for i, query := range ds.Test {
		closest, err := BruteForceNeighbors(measure, ds.Train, query, k)
		if err != nil {
			return err
		}
		neighbors[i] = closest
	}
	ds.Neighbors = neighbors
	return nil
}

func newBar(total int, quiet bool) *pb.ProgressBar {
	bar := pb.New(total)
	if quiet {
		bar.SetWriter(io.Discard)
	}
	return bar.Start()
}

// Evaluate populates the index with the train set (object id = row number),
// queries it with every test vector and measures candidates against the ground truth
func Evaluate(idx *lsh.Index, ds Dataset, config Config, logger *cm.Logger) (Report, error) {
	if len(ds.Train) == 0 || len(ds.Test) == 0 {
		return Report{}, ErrEmptyDataset
	}
	if len(ds.Neighbors) != len(ds.Test) {
		return Report{}, ErrNoGroundTruth
	}
	if config.BatchSize <= 0 {
		config.BatchSize = len(ds.Train)
	}

	logger.Info.Printf("Populating index with %v vectors...", len(ds.Train))
	start := time.Now()
	bar := newBar(len(ds.Train), config.Quiet)
	for from := 0; from < len(ds.Train); from += config.BatchSize {
		to := from + config.BatchSize
		if to > len(ds.Train) {
			to = len(ds.Train)
		}
		batch := make([]*lsh.Object, 0, to-from)
		for i := from; i < to; i++ {
			batch = append(batch, lsh.NewObject(uint64(i), ds.Train[i]))
		}
		if err := idx.IndexBatch(batch); err != nil {
			bar.Finish()
			return Report{}, err
		}
		bar.Add(len(batch))
	}
	bar.Finish()
	report := Report{IndexTime: time.Since(start)}
	logger.Info.Printf("Index populated in %v", report.IndexTime)

	logger.Info.Printf("Making predictions for %v queries...", len(ds.Test))
	precisions := make([]float64, len(ds.Test))
	recalls := make([]float64, len(ds.Test))
	candidates := make([]float64, len(ds.Test))
	var queryTime time.Duration
	bar = newBar(len(ds.Test), config.Quiet)
	for i, query := range ds.Test {
		start = time.Now()
		closest, err := idx.Retrieve(lsh.NewObject(uint64(len(ds.Train)+i), query))
		if err != nil {
			bar.Finish()
			return Report{}, err
		}
		queryTime += time.Since(start)
		prediction := make([]int, len(closest))
		for j, obj := range closest {
			prediction[j] = int(obj.ID)
		}
		sort.Ints(prediction)
		precisions[i], recalls[i] = PrecisionRecall(prediction, ds.Neighbors[i])
		candidates[i] = float64(len(prediction))
		bar.Increment()
	}
	bar.Finish()

	report.Precision = stat.Mean(precisions, nil)
	report.Recall = stat.Mean(recalls, nil)
	report.AvgCandidates = stat.Mean(candidates, nil)
	report.AvgQueryTime = queryTime / time.Duration(len(ds.Test))
	logger.Info.Printf(
		"Done! Precision: %v Recall: %v Avg. candidates: %v Avg. query time: %v",
		report.Precision, report.Recall, report.AvgCandidates, report.AvgQueryTime,
	)
	return report, nil
}
