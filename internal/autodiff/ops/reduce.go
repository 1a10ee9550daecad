package ops

import "github.com/stride-ml/stride/internal/tensor"

// SumOp represents a full reduction: output = Σ x (shape {1}).
type SumOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward spreads the scalar output gradient over every input element.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	return []*tensor.RawTensor{
		fullLike(x.Shape(), x.DType(), x.Device(), scalarValue(outputGrad)),
	}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the scalar sum.
func (op *SumOp) Output() *tensor.RawTensor { return op.output }

// MeanOp represents a full mean reduction: output = Σ x / N (shape {1}).
type MeanOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(x, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward spreads the scalar output gradient scaled by 1/N.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	n := float64(x.NumElements())
	return []*tensor.RawTensor{
		fullLike(x.Shape(), x.DType(), x.Device(), scalarValue(outputGrad)/n),
	}
}

// Inputs returns the input tensor [x].
func (op *MeanOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the scalar mean.
func (op *MeanOp) Output() *tensor.RawTensor { return op.output }
