// Package nn implements the neural network building blocks used by the
// Stride trainer:
//   - Module interface: base interface for all components
//   - Parameter: trainable tensors with gradient bookkeeping
//   - Linear: fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - MSE: mean squared error loss
//   - Sequential: container for stacking layers
//
// Design follows PyTorch's nn.Module, adapted for Go generics.
package nn

import (
	"github.com/stride-ml/stride/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose into architectures:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(1, 16, backend, rng),
//	    nn.NewTanh[B](),
//	    nn.NewLinear(16, 1, backend, rng),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// Inputs are [batch_size, in_features] for layers that care about shape.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module, nested
	// modules included. Modules without trainable state return nil.
	Parameters() []*Parameter[B]
}
