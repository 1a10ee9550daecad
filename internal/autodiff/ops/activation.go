package ops

import (
	"fmt"

	"github.com/stride-ml/stride/internal/tensor"
)

// ReLUOp represents the rectified linear unit: output = max(0, x).
type ReLUOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(x, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward gates the output gradient: d(ReLU(x))/dx = 1 where x > 0, else 0.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	grad := newGradLike(x)

	switch x.DType() {
	case tensor.Float32:
		in, g, out := x.AsFloat32(), outputGrad.AsFloat32(), grad.AsFloat32()
		for i, v := range in {
			if v > 0 {
				out[i] = g[i]
			}
		}
	case tensor.Float64:
		in, g, out := x.AsFloat64(), outputGrad.AsFloat64(), grad.AsFloat64()
		for i, v := range in {
			if v > 0 {
				out[i] = g[i]
			}
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor [x].
func (op *ReLUOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the activated tensor.
func (op *ReLUOp) Output() *tensor.RawTensor { return op.output }

// SigmoidOp represents the sigmoid activation: output = 1/(1+exp(-x)).
type SigmoidOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(x, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward uses the stored output: dσ/dx = σ(x) * (1 - σ(x)).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := newGradLike(op.inputs[0])

	switch op.output.DType() {
	case tensor.Float32:
		s, g, out := op.output.AsFloat32(), outputGrad.AsFloat32(), grad.AsFloat32()
		for i, v := range s {
			out[i] = g[i] * v * (1 - v)
		}
	case tensor.Float64:
		s, g, out := op.output.AsFloat64(), outputGrad.AsFloat64(), grad.AsFloat64()
		for i, v := range s {
			out[i] = g[i] * v * (1 - v)
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor [x].
func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the activated tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor { return op.output }

// TanhOp represents the hyperbolic tangent activation.
type TanhOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(x, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward uses the stored output: d(tanh(x))/dx = 1 - tanh²(x).
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := newGradLike(op.inputs[0])

	switch op.output.DType() {
	case tensor.Float32:
		th, g, out := op.output.AsFloat32(), outputGrad.AsFloat32(), grad.AsFloat32()
		for i, v := range th {
			out[i] = g[i] * (1 - v*v)
		}
	case tensor.Float64:
		th, g, out := op.output.AsFloat64(), outputGrad.AsFloat64(), grad.AsFloat64()
		for i, v := range th {
			out[i] = g[i] * (1 - v*v)
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor [x].
func (op *TanhOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the activated tensor.
func (op *TanhOp) Output() *tensor.RawTensor { return op.output }

func newGradLike(x *tensor.RawTensor) *tensor.RawTensor {
	grad, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("ops: failed to allocate gradient: %v", err))
	}
	return grad
}
