// Copyright 2026 Stride ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides in-memory datasets, synthetic generators and the
// batch loader feeding the trainer.
//
// Example:
//
//	ds := data.Linear(2, 3, 100, 0.1, 42)
//	train, valid, err := ds.Split(0.2)
//	loader, err := data.NewLoader(train, data.LoaderConfig{BatchSize: 16, Shuffle: true}, backend)
package data

import (
	"github.com/stride-ml/stride/internal/data"
	"github.com/stride-ml/stride/internal/tensor"
)

// Dataset is an ordered, immutable sequence of (input, target) pairs.
type Dataset = data.Dataset

// Batch is one group of samples materialized as backend tensors.
type Batch[B tensor.Backend] = data.Batch[B]

// LoaderConfig holds the batching knobs: batch size, shuffling, drop-last
// and the shuffle seed.
type LoaderConfig = data.LoaderConfig

// Loader iterates a dataset in batches of backend tensors.
type Loader[B tensor.Backend] = data.Loader[B]

// New creates a dataset from parallel input/target slices.
func New(inputs, targets [][]float32) (*Dataset, error) {
	return data.New(inputs, targets)
}

// Linear generates n samples of y = a*x + b with Gaussian noise.
func Linear(a, b float32, n int, noise float64, seed int64) *Dataset {
	return data.Linear(a, b, n, noise, seed)
}

// Sine generates n samples of y = sin(x) with Gaussian noise.
func Sine(n int, noise float64, seed int64) *Dataset {
	return data.Sine(n, noise, seed)
}

// NewLoader creates a loader over ds.
func NewLoader[B tensor.Backend](ds *Dataset, cfg LoaderConfig, backend B) (*Loader[B], error) {
	return data.NewLoader(ds, cfg, backend)
}
