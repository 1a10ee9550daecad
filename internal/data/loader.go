package data

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/stride-ml/stride/internal/tensor"
)

// Batch is one fixed-size group of samples materialized as backend tensors,
// ready for a single gradient update.
type Batch[B tensor.Backend] struct {
	Inputs  *tensor.Tensor[float32, B] // [size, in_features]
	Targets *tensor.Tensor[float32, B] // [size, out_features]
	Size    int
}

// LoaderConfig holds the batching knobs.
type LoaderConfig struct {
	BatchSize int
	// Shuffle reshuffles the sample order on every Reset. Leave false for
	// validation loaders so the pass order is reproducible.
	Shuffle bool
	// DropLast discards the final partial batch when the dataset size is
	// not a multiple of BatchSize. The default keeps it, so every sample
	// is seen each epoch.
	DropLast bool
	// Seed drives the shuffle order. Same seed, same order sequence.
	Seed int64
}

// Loader iterates a dataset in batches of backend tensors.
//
// Usage:
//
//	loader.Reset()
//	for batch, ok := loader.Next(); ok; batch, ok = loader.Next() {
//	    ...
//	}
type Loader[B tensor.Backend] struct {
	ds      *Dataset
	cfg     LoaderConfig
	backend B
	rng     *rand.Rand
	order   []int
	pos     int
}

// NewLoader creates a loader over ds.
func NewLoader[B tensor.Backend](ds *Dataset, cfg LoaderConfig, backend B) (*Loader[B], error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.New("data: loader needs a non-empty dataset")
	}
	if cfg.BatchSize <= 0 {
		return nil, errors.Errorf("data: batch size must be > 0, got %d", cfg.BatchSize)
	}

	order := make([]int, ds.Len())
	for i := range order {
		order[i] = i
	}

	l := &Loader[B]{
		ds:      ds,
		cfg:     cfg,
		backend: backend,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		order:   order,
	}
	if cfg.Shuffle {
		l.shuffle()
	}
	return l, nil
}

// NumBatches returns the number of batches per epoch:
// ceil(N/B) when the partial batch is kept, floor(N/B) with DropLast.
func (l *Loader[B]) NumBatches() int {
	n, b := l.ds.Len(), l.cfg.BatchSize
	if l.cfg.DropLast {
		return n / b
	}
	return (n + b - 1) / b
}

// NumSamples returns the dataset size.
func (l *Loader[B]) NumSamples() int {
	return l.ds.Len()
}

// Reset rewinds the loader and, if configured, reshuffles the sample order.
func (l *Loader[B]) Reset() {
	l.pos = 0
	if l.cfg.Shuffle {
		l.shuffle()
	}
}

func (l *Loader[B]) shuffle() {
	l.rng.Shuffle(len(l.order), func(i, j int) {
		l.order[i], l.order[j] = l.order[j], l.order[i]
	})
}

// Next returns the next batch, or ok=false when the epoch is exhausted.
func (l *Loader[B]) Next() (*Batch[B], bool) {
	remaining := l.ds.Len() - l.pos
	if remaining <= 0 {
		return nil, false
	}

	size := l.cfg.BatchSize
	if remaining < size {
		if l.cfg.DropLast {
			return nil, false
		}
		size = remaining
	}

	batch := l.materialize(l.order[l.pos : l.pos+size])
	l.pos += size
	return batch, true
}

// materialize copies the selected samples into fresh backend tensors.
func (l *Loader[B]) materialize(indices []int) *Batch[B] {
	size := len(indices)
	inputs := tensor.Zeros[float32](tensor.Shape{size, l.ds.InDim()}, l.backend)
	targets := tensor.Zeros[float32](tensor.Shape{size, l.ds.OutDim()}, l.backend)

	inData := inputs.Data()
	tgtData := targets.Data()
	for row, idx := range indices {
		in, tgt := l.ds.Sample(idx)
		copy(inData[row*l.ds.InDim():(row+1)*l.ds.InDim()], in)
		copy(tgtData[row*l.ds.OutDim():(row+1)*l.ds.OutDim()], tgt)
	}

	return &Batch[B]{Inputs: inputs, Targets: targets, Size: size}
}
