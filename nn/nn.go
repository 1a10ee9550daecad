// Copyright 2026 Stride ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks: layers, activations,
// losses and the Module interface they all share.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	rng := rand.New(rand.NewSource(42))
//	model := nn.NewSequential[*autodiff.Backend[*cpu.Backend]](
//	    nn.NewLinear(1, 16, backend, rng),
//	    nn.NewReLU[*autodiff.Backend[*cpu.Backend]](),
//	    nn.NewLinear(16, 1, backend, rng),
//	)
package nn

import (
	"math/rand"

	"github.com/stride-ml/stride/internal/nn"
	"github.com/stride-ml/stride/internal/tensor"
)

// Module is the interface all layers and models implement.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a trainable tensor with an optional gradient.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// Linear is a fully connected layer: y = x@Wᵀ + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// Sequential chains modules, feeding each output into the next module.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// ReLU applies max(0, x) element-wise.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// Sigmoid applies 1/(1+e^-x) element-wise.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// Tanh applies tanh(x) element-wise.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// Loss maps (predictions, targets) to a scalar loss tensor.
type Loss[B tensor.Backend] = nn.Loss[B]

// MSE is the mean squared error loss.
type MSE[B tensor.Backend] = nn.MSE[B]

// NewParameter creates a named parameter wrapping t.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// NewLinear creates a fully connected layer with Xavier-initialized weights
// drawn from rng and zero bias.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, rng *rand.Rand) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend, rng)
}

// NewSequential creates a sequential container of modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// NewSigmoid creates a sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// NewTanh creates a tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// NewMSE creates a mean squared error loss.
func NewMSE[B tensor.Backend]() *MSE[B] {
	return nn.NewMSE[B]()
}

// Xavier returns a tensor initialized with Glorot uniform values for the
// given fan-in and fan-out.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, rng, backend)
}
