// Copyright 2026 Stride ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// The autodiff backend wraps any compute backend and records every tensor
// operation on a gradient tape. A backward pass walks the tape in reverse
// and returns gradients keyed by *tensor.RawTensor.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	loss := model.Forward(x) // ... -> scalar
//	grads := autodiff.Backward(loss, backend)
package autodiff

import (
	"github.com/stride-ml/stride/internal/autodiff"
	"github.com/stride-ml/stride/internal/tensor"
)

// Backend decorates an inner backend with gradient tape recording.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// Tape records operations during the forward pass and drives the backward
// pass.
type Tape = autodiff.Tape

// BackwardCapable is the interface for backends that can run a backward
// pass. Backend implements it.
type BackwardCapable = autodiff.BackwardCapable

// New creates an autodiff backend wrapping inner.
func New[B tensor.Backend](inner B) *Backend[B] {
	return autodiff.New(inner)
}

// Backward computes gradients of t with respect to every tensor on the
// backend's tape. The output gradient is seeded with ones.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}
