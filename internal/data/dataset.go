// Package data provides in-memory datasets, synthetic dataset generators and
// the batch loader feeding the trainer.
package data

import (
	"github.com/pkg/errors"
)

// Dataset is an ordered, immutable sequence of (input, target) pairs.
// All samples share one input width and one target width.
type Dataset struct {
	inputs  [][]float32
	targets [][]float32
	inDim   int
	outDim  int
}

// New creates a dataset from parallel input/target slices.
// The slices are retained, not copied; callers must not mutate them after.
func New(inputs, targets [][]float32) (*Dataset, error) {
	if len(inputs) != len(targets) {
		return nil, errors.Errorf("data: %d inputs but %d targets", len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return nil, errors.New("data: dataset must not be empty")
	}

	inDim, outDim := len(inputs[0]), len(targets[0])
	if inDim == 0 || outDim == 0 {
		return nil, errors.New("data: samples must not be empty")
	}
	for i := range inputs {
		if len(inputs[i]) != inDim {
			return nil, errors.Errorf("data: input %d has width %d, want %d", i, len(inputs[i]), inDim)
		}
		if len(targets[i]) != outDim {
			return nil, errors.Errorf("data: target %d has width %d, want %d", i, len(targets[i]), outDim)
		}
	}

	return &Dataset{inputs: inputs, targets: targets, inDim: inDim, outDim: outDim}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.inputs)
}

// InDim returns the input feature width.
func (d *Dataset) InDim() int {
	return d.inDim
}

// OutDim returns the target width.
func (d *Dataset) OutDim() int {
	return d.outDim
}

// Sample returns the (input, target) pair at index i.
// The returned slices alias the dataset; treat them as read-only.
func (d *Dataset) Sample(i int) (input, target []float32) {
	return d.inputs[i], d.targets[i]
}

// Split partitions the dataset into a training set and a validation set,
// with validFraction of the samples (rounded down) going to validation.
// The split preserves order: the tail becomes the validation set.
func (d *Dataset) Split(validFraction float64) (train, valid *Dataset, err error) {
	if validFraction <= 0 || validFraction >= 1 {
		return nil, nil, errors.Errorf("data: valid fraction must be in (0, 1), got %g", validFraction)
	}

	splitIdx := d.Len() - int(float64(d.Len())*validFraction)
	if splitIdx == 0 || splitIdx == d.Len() {
		return nil, nil, errors.Errorf("data: split fraction %g leaves an empty side for %d samples", validFraction, d.Len())
	}

	train = &Dataset{
		inputs: d.inputs[:splitIdx], targets: d.targets[:splitIdx],
		inDim: d.inDim, outDim: d.outDim,
	}
	valid = &Dataset{
		inputs: d.inputs[splitIdx:], targets: d.targets[splitIdx:],
		inDim: d.inDim, outDim: d.outDim,
	}
	return train, valid, nil
}
