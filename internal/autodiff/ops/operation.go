// Package ops defines the differentiable operations recorded on the autodiff tape.
//
// Each operation stores the raw tensors of its forward pass and knows how to
// turn the gradient of its output into gradients of its inputs:
//   - AddOp/SubOp: gradient flows through unchanged (negated for the subtrahend)
//   - MulOp: d(a*b)/da = b, d(a*b)/db = a
//   - DivOp: d(a/b)/da = 1/b, d(a/b)/db = -a/b²
//   - MatMulOp: d(A@B)/dA = grad@Bᵀ, d(A@B)/dB = Aᵀ@grad
//   - ReLUOp/SigmoidOp/TanhOp: element-wise activation derivatives
//   - SumOp/MeanOp: the scalar gradient spreads back over the input
//
// Operations whose forward pass broadcast their inputs reduce the output
// gradient back to each input's shape.
package ops

import "github.com/stride-ml/stride/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// It records its inputs and output during the forward pass and computes input
// gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for the inputs given the output gradient.
	// The returned slice is parallel to Inputs().
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors of this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
