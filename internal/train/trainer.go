// Package train implements the training loop: per-epoch gradient descent
// over batches, read-only validation, and the Fit driver tying them together.
package train

import (
	"context"
	"math"

	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/stride-ml/stride/internal/autodiff"
	"github.com/stride-ml/stride/internal/data"
	"github.com/stride-ml/stride/internal/nn"
	"github.com/stride-ml/stride/internal/optim"
)

// Config holds the loop-level knobs. The zero value is usable.
type Config struct {
	// HaltOnDivergence stops training with a *DivergenceError when the loss
	// becomes NaN or Inf. When false, the divergence is logged as a warning
	// and training continues.
	HaltOnDivergence bool

	// LogEvery logs epoch stats every N epochs. 0 means every epoch,
	// negative disables epoch logging.
	LogEvery int

	// Progress renders a progress bar over epochs during Fit.
	Progress bool
}

// Trainer bundles a model, a loss, an optimizer and an autodiff backend
// into one training loop.
//
// The trainer owns the tape protocol: it clears the tape before every batch,
// records only the forward pass, and stops recording during validation.
// Callers never touch the tape directly.
type Trainer[B autodiff.BackwardCapable] struct {
	model   nn.Module[B]
	loss    nn.Loss[B]
	opt     optim.Optimizer
	backend B
	cfg     Config

	epoch int // 1-based, incremented by TrainEpoch
}

// New creates a trainer. The backend must be the same autodiff backend the
// model parameters were created with, otherwise the backward pass cannot
// reach them.
func New[B autodiff.BackwardCapable](model nn.Module[B], loss nn.Loss[B], opt optim.Optimizer, backend B, cfg Config) *Trainer[B] {
	return &Trainer[B]{model: model, loss: loss, opt: opt, backend: backend, cfg: cfg}
}

// Model returns the model being trained.
func (t *Trainer[B]) Model() nn.Module[B] { return t.model }

// Optimizer returns the optimizer.
func (t *Trainer[B]) Optimizer() optim.Optimizer { return t.opt }

// TrainEpoch runs one pass over the loader, updating the model parameters
// after every batch, and returns the mean batch loss.
//
// Per batch: clear tape, record forward pass, check output shape, compute
// loss, backward, optimizer step, zero gradients. The tape is left empty,
// so repeated epochs never accumulate stale operations.
func (t *Trainer[B]) TrainEpoch(loader *data.Loader[B]) (float64, error) {
	t.epoch++
	tape := t.backend.GetTape()

	loader.Reset()
	total := 0.0
	batches := 0
	for {
		batch, ok := loader.Next()
		if !ok {
			break
		}

		tape.Clear()
		tape.StartRecording()
		output := t.model.Forward(batch.Inputs)
		if !output.Shape().Equal(batch.Targets.Shape()) {
			tape.StopRecording()
			tape.Clear()
			return 0, &DimensionError{Output: output.Shape().Clone(), Target: batch.Targets.Shape().Clone()}
		}
		loss := t.loss.Forward(output, batch.Targets)
		tape.StopRecording()

		lossVal := float64(loss.Item())
		if math.IsNaN(lossVal) || math.IsInf(lossVal, 0) {
			if t.cfg.HaltOnDivergence {
				tape.Clear()
				return 0, &DivergenceError{Epoch: t.epoch, Batch: batches, Loss: lossVal}
			}
			klog.Warningf("loss diverged to %v at epoch %d, batch %d; continuing", lossVal, t.epoch, batches)
		}

		grads := autodiff.Backward(loss, t.backend)
		t.opt.Step(grads)
		t.opt.ZeroGrad()
		tape.Clear()

		total += lossVal
		batches++
	}

	if batches == 0 {
		return 0, ErrNoBatches
	}
	return total / float64(batches), nil
}

// Validate runs one read-only pass over the loader and returns the mean
// batch loss. No gradients are recorded and no parameter changes: calling
// Validate twice on the same loader yields the same value.
func (t *Trainer[B]) Validate(loader *data.Loader[B]) (float64, error) {
	tape := t.backend.GetTape()
	wasRecording := tape.IsRecording()
	tape.StopRecording()
	defer func() {
		if wasRecording {
			tape.StartRecording()
		}
	}()

	loader.Reset()
	total := 0.0
	batches := 0
	for {
		batch, ok := loader.Next()
		if !ok {
			break
		}

		output := t.model.Forward(batch.Inputs)
		if !output.Shape().Equal(batch.Targets.Shape()) {
			return 0, &DimensionError{Output: output.Shape().Clone(), Target: batch.Targets.Shape().Clone()}
		}
		loss := t.loss.Forward(output, batch.Targets)
		total += float64(loss.Item())
		batches++
	}

	if batches == 0 {
		return 0, ErrNoBatches
	}
	return total / float64(batches), nil
}

// Fit trains for the given number of epochs, validating after each one, and
// returns the collected history. validLoader may be nil to skip validation,
// in which case the recorded validation losses are NaN.
//
// Cancellation is checked between epochs; a cancelled context returns the
// history collected so far together with ctx.Err().
func (t *Trainer[B]) Fit(ctx context.Context, trainLoader, validLoader *data.Loader[B], epochs int) (*History, error) {
	if epochs <= 0 {
		return nil, errEpochs(epochs)
	}

	hist := newHistory()
	klog.V(1).Infof("run %s: fit for %d epochs, %d train batches, lr=%g",
		hist.RunID, epochs, trainLoader.NumBatches(), t.opt.LR())

	var bar *progressbar.ProgressBar
	if t.cfg.Progress {
		bar = progressbar.NewOptions(epochs,
			progressbar.OptionSetDescription("training"),
			progressbar.OptionShowCount(),
		)
	}

	for epoch := 1; epoch <= epochs; epoch++ {
		select {
		case <-ctx.Done():
			return hist, ctx.Err()
		default:
		}

		trainLoss, err := t.TrainEpoch(trainLoader)
		if err != nil {
			return hist, err
		}

		validLoss := math.NaN()
		if validLoader != nil {
			validLoss, err = t.Validate(validLoader)
			if err != nil {
				return hist, err
			}
		}

		hist.record(epoch, trainLoss, validLoss)
		if t.cfg.LogEvery >= 0 && (t.cfg.LogEvery == 0 || epoch%t.cfg.LogEvery == 0 || epoch == epochs) {
			if math.IsNaN(validLoss) {
				klog.Infof("epoch %d/%d: train_loss=%.6f", epoch, epochs, trainLoss)
			} else {
				klog.Infof("epoch %d/%d: train_loss=%.6f valid_loss=%.6f", epoch, epochs, trainLoss, validLoss)
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return hist, nil
}
