package train

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/stride-ml/stride/internal/tensor"
)

// ErrNoBatches is returned when a loader yields no batches: the mean loss
// over zero batches is undefined, so the loop refuses to report one.
var ErrNoBatches = errors.New("train: loader produced no batches")

func errEpochs(n int) error {
	return errors.Errorf("train: epochs must be > 0, got %d", n)
}

// DimensionError reports a shape mismatch between the model output and the
// batch targets. Training stops immediately; there is nothing to recover.
type DimensionError struct {
	Output tensor.Shape
	Target tensor.Shape
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("train: model output shape %v does not match target shape %v", e.Output, e.Target)
}

// DivergenceError reports that the loss became NaN or Inf. It is returned
// from the loop only when Config.HaltOnDivergence is set; otherwise the
// divergence is logged and training continues.
type DivergenceError struct {
	Epoch int
	Batch int
	Loss  float64
}

// Error implements the error interface.
func (e *DivergenceError) Error() string {
	return fmt.Sprintf("train: loss diverged to %v at epoch %d, batch %d", e.Loss, e.Epoch, e.Batch)
}
