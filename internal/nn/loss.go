package nn

import (
	"fmt"

	"github.com/stride-ml/stride/internal/tensor"
)

// Loss is a function from (predictions, targets) to a scalar loss tensor.
type Loss[B tensor.Backend] interface {
	// Forward computes the scalar loss (shape {1}) for a batch.
	// Predictions and targets must have identical shapes.
	Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// MSE computes mean squared error: mean((predictions - targets)²).
//
// The computation runs through tensor operations, so when the backend is the
// autodiff decorator the whole loss is on the tape and gradients flow back
// to the model parameters.
type MSE[B tensor.Backend] struct{}

// NewMSE creates a new mean squared error loss.
func NewMSE[B tensor.Backend]() *MSE[B] {
	return &MSE[B]{}
}

// Forward computes mean((predictions - targets)²) as a shape-{1} tensor.
// Panics if the shapes differ; the trainer validates shapes up front and
// reports a DimensionError instead.
func (m *MSE[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("MSE: predictions shape %v does not match targets shape %v",
			predictions.Shape(), targets.Shape()))
	}

	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}
