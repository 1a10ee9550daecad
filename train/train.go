// Copyright 2026 Stride ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the training loop: TrainEpoch, Validate and the
// Fit driver tying them together.
//
// Example:
//
//	trainer := train.New(model, nn.NewMSE[B](), opt, backend, train.Config{})
//	hist, err := trainer.Fit(ctx, trainLoader, validLoader, 50)
package train

import (
	"github.com/stride-ml/stride/internal/autodiff"
	"github.com/stride-ml/stride/internal/nn"
	"github.com/stride-ml/stride/internal/optim"
	"github.com/stride-ml/stride/internal/train"
)

// Trainer bundles a model, a loss, an optimizer and an autodiff backend
// into one training loop.
type Trainer[B autodiff.BackwardCapable] = train.Trainer[B]

// Config holds the loop-level knobs. The zero value is usable.
type Config = train.Config

// History collects per-epoch statistics of one Fit run.
type History = train.History

// EpochStats holds the reported losses of one epoch.
type EpochStats = train.EpochStats

// DimensionError reports a shape mismatch between model output and targets.
type DimensionError = train.DimensionError

// DivergenceError reports a NaN or Inf loss when halting is configured.
type DivergenceError = train.DivergenceError

// ErrNoBatches is returned when a loader yields no batches.
var ErrNoBatches = train.ErrNoBatches

// New creates a trainer.
func New[B autodiff.BackwardCapable](model nn.Module[B], loss nn.Loss[B], opt optim.Optimizer, backend B, cfg Config) *Trainer[B] {
	return train.New(model, loss, opt, backend, cfg)
}
