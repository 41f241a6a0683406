//go:build hdf5
// +build hdf5

package annbench

import (
	"fmt"
	"sort"

	"gonum.org/v1/hdf5"
)

// Objects inside the ann-benchmarks hdf5:
// train
// test
// distances
// neighbors

// GetVectorsFromHDF5 reads the whole dataset as a flat slice and returns its row width
func GetVectorsFromHDF5(table *hdf5.File, datasetName string, vecs interface{}) (int, error) {
	dataset, err := table.OpenDataset(datasetName)
	if err != nil {
		return 0, err
	}
	defer dataset.Close()

	fileSpace := dataset.Space()
	numTicks := fileSpace.SimpleExtentNPoints()
	dims, _, err := fileSpace.SimpleExtentDims()
	if err != nil {
		return 0, err
	}
	if len(dims) != 2 {
		return 0, fmt.Errorf("dataset %s must be a matrix, got %v dims", datasetName, len(dims))
	}

	switch vecs := vecs.(type) {
	case *[]float32:
		*vecs = make([]float32, numTicks)
	case *[]int32:
		*vecs = make([]int32, numTicks)
	default:
		return 0, fmt.Errorf("unsupported target type %T", vecs)
	}

	err = dataset.Read(vecs)
	if err != nil {
		return 0, err
	}
	return int(dims[1]), nil
}

// LoadHDF5 reads train/test vectors and sorted ground truth neighbors
func LoadHDF5(path string) (Dataset, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()

	var ds Dataset
	flat := []float32{}
	width, err := GetVectorsFromHDF5(f, "train", &flat)
	if err != nil {
		return Dataset{}, err
	}
	ds.Train = SplitRows(flat, width)

	width, err = GetVectorsFromHDF5(f, "test", &flat)
	if err != nil {
		return Dataset{}, err
	}
	ds.Test = SplitRows(flat, width)

	neighbors := []int32{}
	width, err = GetVectorsFromHDF5(f, "neighbors", &neighbors)
	if err != nil {
		return Dataset{}, err
	}
	ds.Neighbors = make([][]int, len(neighbors)/width)
	for i := range ds.Neighbors {
		arr := ConvertToInt(neighbors[i*width : (i+1)*width])
		sort.Ints(arr)
		ds.Neighbors[i] = arr
	}
	return ds, nil
}
