package annbench

import (
	"math/rand"
)

// SyntheticCosine generates gaussian train vectors and queries
// made of randomly picked train vectors with gaussian noise added
func SyntheticCosine(n, queries, dim int, noise float64, seed int64) Dataset {
	rng := rand.New(rand.NewSource(seed))
	train := make([][]float64, n)
	for i := range train {
		vec := make([]float64, dim)
		for j := range vec {
			vec[j] = rng.NormFloat64()
		}
		train[i] = vec
	}
	test := make([][]float64, queries)
	for i := range test {
		src := train[rng.Intn(n)]
		vec := make([]float64, dim)
		for j := range vec {
			vec[j] = src[j] + noise*rng.NormFloat64()
		}
		test[i] = vec
	}
	return Dataset{Train: train, Test: test}
}

// SyntheticJaccard generates random binary train vectors and queries
// made of randomly picked train vectors with every bit flipped with the given probability
func SyntheticJaccard(n, queries, dim int, density, flip float64, seed int64) Dataset {
	rng := rand.New(rand.NewSource(seed))
	train := make([][]float64, n)
	for i := range train {
		vec := make([]float64, dim)
		for j := range vec {
			if rng.Float64() < density {
				vec[j] = 1
			}
		}
		train[i] = vec
	}
	test := make([][]float64, queries)
	for i := range test {
		src := train[rng.Intn(n)]
		vec := make([]float64, dim)
		for j := range vec {
			vec[j] = src[j]
			if rng.Float64() < flip {
				vec[j] = 1 - vec[j]
			}
		}
		test[i] = vec
	}
	return Dataset{Train: train, Test: test}
}

// ConvertTo64 __
func ConvertTo64(ar []float32) []float64 {
	newar := make([]float64, len(ar))
	for i, v := range ar {
		newar[i] = float64(v)
	}
	return newar
}

// ConvertToInt __
func ConvertToInt(ar []int32) []int {
	newar := make([]int, len(ar))
	for i, v := range ar {
		newar[i] = int(v)
	}
	return newar
}

// SplitRows cuts flat row-major data into rows of the given width
func SplitRows(flat []float32, width int) [][]float64 {
	if width <= 0 {
		return nil
	}
	rows := make([][]float64, len(flat)/width)
	for i := range rows {
		rows[i] = ConvertTo64(flat[i*width : (i+1)*width])
	}
	return rows
}
