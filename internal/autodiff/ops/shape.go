package ops

import "github.com/stride-ml/stride/internal/tensor"

// TransposeOp represents a 2-D transpose: output = tᵀ.
//
// Transpose must be recorded even though it is conceptually a view: the
// backend returns a new tensor, and without this op gradients computed for
// the transposed tensor would never reach the original parameter.
type TransposeOp struct {
	inputs []*tensor.RawTensor // [t]
	output *tensor.RawTensor
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(t, output *tensor.RawTensor) *TransposeOp {
	return &TransposeOp{inputs: []*tensor.RawTensor{t}, output: output}
}

// Backward transposes the output gradient back.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Transpose(outputGrad)}
}

// Inputs returns the input tensor [t].
func (op *TransposeOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the transposed tensor.
func (op *TransposeOp) Output() *tensor.RawTensor { return op.output }

// ReshapeOp represents a reshape: output = t viewed under a new shape.
// Recorded for the same reason as TransposeOp.
type ReshapeOp struct {
	inputs []*tensor.RawTensor // [t]
	output *tensor.RawTensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(t, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{inputs: []*tensor.RawTensor{t}, output: output}
}

// Backward reshapes the output gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.inputs[0].Shape())}
}

// Inputs returns the input tensor [t].
func (op *ReshapeOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the reshaped tensor.
func (op *ReshapeOp) Output() *tensor.RawTensor { return op.output }

// MulScalarOp represents scalar multiplication: output = t * scalar.
type MulScalarOp struct {
	inputs []*tensor.RawTensor // [t]
	output *tensor.RawTensor
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(t, output *tensor.RawTensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{inputs: []*tensor.RawTensor{t}, output: output, scalar: scalar}
}

// Backward scales the output gradient by the same scalar.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// Inputs returns the input tensor [t].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the scaled tensor.
func (op *MulScalarOp) Output() *tensor.RawTensor { return op.output }

// AddScalarOp represents scalar addition: output = t + scalar.
type AddScalarOp struct {
	inputs []*tensor.RawTensor // [t]
	output *tensor.RawTensor
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(t, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{inputs: []*tensor.RawTensor{t}, output: output}
}

// Backward passes the output gradient through unchanged.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}

// Inputs returns the input tensor [t].
func (op *AddScalarOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the shifted tensor.
func (op *AddScalarOp) Output() *tensor.RawTensor { return op.output }
