package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/stride-ml/stride/internal/autodiff"
	"github.com/stride-ml/stride/internal/backend/cpu"
	"github.com/stride-ml/stride/internal/config"
	"github.com/stride-ml/stride/internal/data"
	"github.com/stride-ml/stride/internal/nn"
	"github.com/stride-ml/stride/internal/optim"
	"github.com/stride-ml/stride/internal/train"
)

// backendT is the one backend composition the CLI uses.
type backendT = *autodiff.Backend[*cpu.Backend]

// run wires a full experiment from the config and trains it.
func run(ctx context.Context, cfg *config.Config) error {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(cfg.Seed))

	ds := buildDataset(cfg)
	var trainSet, validSet *data.Dataset
	if cfg.Data.ValidFraction > 0 {
		var err error
		trainSet, validSet, err = ds.Split(cfg.Data.ValidFraction)
		if err != nil {
			return err
		}
	} else {
		trainSet = ds
	}

	trainLoader, err := data.NewLoader(trainSet, data.LoaderConfig{
		BatchSize: cfg.Loader.BatchSize,
		Shuffle:   cfg.Loader.Shuffle,
		DropLast:  cfg.Loader.DropLast,
		Seed:      cfg.Seed,
	}, backend)
	if err != nil {
		return err
	}

	var validLoader *data.Loader[backendT]
	if validSet != nil {
		validLoader, err = data.NewLoader(validSet, data.LoaderConfig{
			BatchSize: cfg.Loader.BatchSize,
		}, backend)
		if err != nil {
			return err
		}
	}

	model := buildModel(cfg, ds.InDim(), ds.OutDim(), backend, rng)
	opt, err := buildOptimizer(cfg, model, backend)
	if err != nil {
		return err
	}

	trainer := train.New[backendT](model, nn.NewMSE[backendT](), opt, backend, train.Config{
		HaltOnDivergence: cfg.Train.HaltOnDivergence,
		LogEvery:         cfg.Train.LogEvery,
		Progress:         cfg.Train.Progress,
	})

	fmt.Printf("dataset: %s, %s samples (%s train / %s valid), batch size %d\n",
		cfg.Data.Kind,
		humanize.Comma(int64(ds.Len())),
		humanize.Comma(int64(trainSet.Len())),
		humanize.Comma(int64(ds.Len()-trainSet.Len())),
		cfg.Loader.BatchSize)
	fmt.Printf("model: %s, optimizer: %s (lr=%g), epochs: %d\n",
		describeModel(cfg), cfg.Optim.Algorithm, cfg.Optim.LR, cfg.Train.Epochs)

	start := time.Now()
	hist, err := trainer.Fit(ctx, trainLoader, validLoader, cfg.Train.Epochs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	final := hist.Final()
	fmt.Printf("\nrun %s finished in %s\n", hist.RunID, elapsed.Round(time.Millisecond))
	if math.IsNaN(final.ValidLoss) {
		fmt.Printf("final loss: train=%.6f\n", final.TrainLoss)
	} else {
		fmt.Printf("final loss: train=%.6f valid=%.6f\n", final.TrainLoss, final.ValidLoss)
		best := hist.BestValid()
		fmt.Printf("best epoch: %d (valid=%.6f)\n", best.Epoch, best.ValidLoss)
	}

	if lin, ok := model.(*nn.Linear[backendT]); ok {
		fmt.Printf("learned: y = %.3f*x + %.3f (target y = %g*x + %g)\n",
			lin.Weight().Tensor().Item(), lin.Bias().Tensor().Item(),
			cfg.Data.Slope, cfg.Data.Intercept)
	}
	return nil
}

func buildDataset(cfg *config.Config) *data.Dataset {
	switch cfg.Data.Kind {
	case "sine":
		return data.Sine(cfg.Data.Samples, cfg.Data.Noise, cfg.Seed)
	default:
		return data.Linear(cfg.Data.Slope, cfg.Data.Intercept, cfg.Data.Samples, cfg.Data.Noise, cfg.Seed)
	}
}

// buildModel returns a plain linear layer when no hidden widths are
// configured, otherwise a feed-forward net with the configured activation.
func buildModel(cfg *config.Config, inDim, outDim int, backend backendT, rng *rand.Rand) nn.Module[backendT] {
	if len(cfg.Model.Hidden) == 0 {
		return nn.NewLinear(inDim, outDim, backend, rng)
	}

	seq := nn.NewSequential[backendT]()
	in := inDim
	for _, width := range cfg.Model.Hidden {
		seq.Add(nn.NewLinear(in, width, backend, rng))
		seq.Add(buildActivation(cfg.Model.Activation))
		in = width
	}
	seq.Add(nn.NewLinear(in, outDim, backend, rng))
	return seq
}

func buildActivation(name string) nn.Module[backendT] {
	switch name {
	case "sigmoid":
		return nn.NewSigmoid[backendT]()
	case "tanh":
		return nn.NewTanh[backendT]()
	default:
		return nn.NewReLU[backendT]()
	}
}

func buildOptimizer(cfg *config.Config, model nn.Module[backendT], backend backendT) (optim.Optimizer, error) {
	switch cfg.Optim.Algorithm {
	case "sgd":
		return optim.NewSGD(model.Parameters(), optim.SGDConfig{
			LR:       cfg.Optim.LR,
			Momentum: cfg.Optim.Momentum,
		}, backend), nil
	case "adam":
		return optim.NewAdam(model.Parameters(), optim.AdamConfig{
			LR: cfg.Optim.LR,
		}, backend), nil
	default:
		return nil, errors.Errorf("unknown optimizer %q", cfg.Optim.Algorithm)
	}
}

func describeModel(cfg *config.Config) string {
	if len(cfg.Model.Hidden) == 0 {
		return "linear"
	}
	return fmt.Sprintf("mlp %v (%s)", cfg.Model.Hidden, cfg.Model.Activation)
}
