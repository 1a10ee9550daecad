package data

import (
	"math"
	"math/rand"
)

// Linear generates n samples of y = a*x + b with Gaussian noise, x drawn
// uniformly from [-1, 1]. The classic linear regression teaching dataset.
func Linear(a, b float32, n int, noise float64, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	inputs := make([][]float32, n)
	targets := make([][]float32, n)
	for i := 0; i < n; i++ {
		x := float32(rng.Float64()*2 - 1)
		y := a*x + b + float32(rng.NormFloat64()*noise)
		inputs[i] = []float32{x}
		targets[i] = []float32{y}
	}

	ds, err := New(inputs, targets)
	if err != nil {
		panic(err) // construction above cannot produce an invalid dataset
	}
	return ds
}

// Sine generates n samples of y = sin(x) with Gaussian noise, x drawn
// uniformly from [-π, π]. A small nonlinearity for the feed-forward demo.
func Sine(n int, noise float64, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	inputs := make([][]float32, n)
	targets := make([][]float32, n)
	for i := 0; i < n; i++ {
		x := rng.Float64()*2*math.Pi - math.Pi
		y := math.Sin(x) + rng.NormFloat64()*noise
		inputs[i] = []float32{float32(x)}
		targets[i] = []float32{float32(y)}
	}

	ds, err := New(inputs, targets)
	if err != nil {
		panic(err)
	}
	return ds
}
