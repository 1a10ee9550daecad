// Package config defines the experiment configuration: dataset, model,
// optimizer and loop settings, loaded from YAML with CLI overrides on top.
package config

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full experiment configuration.
type Config struct {
	// Seed drives dataset generation, shuffling and weight initialization.
	Seed int64 `yaml:"seed"`

	Data   DataConfig   `yaml:"data"`
	Loader LoaderConfig `yaml:"loader"`
	Model  ModelConfig  `yaml:"model"`
	Optim  OptimConfig  `yaml:"optim"`
	Train  TrainConfig  `yaml:"train"`
}

// DataConfig selects and parameterizes the synthetic dataset.
type DataConfig struct {
	// Kind is "linear" (y = slope*x + intercept) or "sine" (y = sin(x)).
	Kind          string  `yaml:"kind"`
	Samples       int     `yaml:"samples"`
	Noise         float64 `yaml:"noise"`
	Slope         float32 `yaml:"slope"`
	Intercept     float32 `yaml:"intercept"`
	ValidFraction float64 `yaml:"valid_fraction"`
}

// LoaderConfig parameterizes batching.
type LoaderConfig struct {
	BatchSize int  `yaml:"batch_size"`
	Shuffle   bool `yaml:"shuffle"`
	// DropLast discards the final partial batch. Off by default so every
	// sample is seen each epoch.
	DropLast bool `yaml:"drop_last"`
}

// ModelConfig describes the network. An empty Hidden list means a plain
// linear model; otherwise a feed-forward net with the given hidden widths.
type ModelConfig struct {
	Hidden     []int  `yaml:"hidden"`
	Activation string `yaml:"activation"` // relu, sigmoid or tanh
}

// OptimConfig selects and parameterizes the optimizer.
type OptimConfig struct {
	Algorithm string  `yaml:"algorithm"` // sgd or adam
	LR        float32 `yaml:"lr"`
	Momentum  float32 `yaml:"momentum"` // sgd only
}

// TrainConfig holds the loop settings.
type TrainConfig struct {
	Epochs           int  `yaml:"epochs"`
	HaltOnDivergence bool `yaml:"halt_on_divergence"`
	LogEvery         int  `yaml:"log_every"`
	Progress         bool `yaml:"progress"`
}

// Default returns a configuration that trains a linear regression on the
// y = 2x + 3 dataset. Every field can be overridden from YAML or flags.
func Default() *Config {
	return &Config{
		Seed: 42,
		Data: DataConfig{
			Kind:          "linear",
			Samples:       100,
			Noise:         0.1,
			Slope:         2,
			Intercept:     3,
			ValidFraction: 0.2,
		},
		Loader: LoaderConfig{
			BatchSize: 16,
			Shuffle:   true,
		},
		Model: ModelConfig{
			Activation: "relu",
		},
		Optim: OptimConfig{
			Algorithm: "sgd",
			LR:        0.1,
		},
		Train: TrainConfig{
			Epochs:   50,
			LogEvery: 10,
		},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are an error, so
// typos in config files surface immediately.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency. Call after applying overrides.
func (c *Config) Validate() error {
	switch c.Data.Kind {
	case "linear", "sine":
	default:
		return errors.Errorf("config: unknown dataset kind %q (want linear or sine)", c.Data.Kind)
	}
	if c.Data.Samples <= 0 {
		return errors.Errorf("config: samples must be > 0, got %d", c.Data.Samples)
	}
	if c.Data.Noise < 0 {
		return errors.Errorf("config: noise must be >= 0, got %g", c.Data.Noise)
	}
	if c.Data.ValidFraction < 0 || c.Data.ValidFraction >= 1 {
		return errors.Errorf("config: valid fraction must be in [0, 1), got %g", c.Data.ValidFraction)
	}
	if c.Loader.BatchSize <= 0 {
		return errors.Errorf("config: batch size must be > 0, got %d", c.Loader.BatchSize)
	}
	for i, h := range c.Model.Hidden {
		if h <= 0 {
			return errors.Errorf("config: hidden layer %d has width %d, must be > 0", i, h)
		}
	}
	switch c.Model.Activation {
	case "relu", "sigmoid", "tanh":
	default:
		return errors.Errorf("config: unknown activation %q (want relu, sigmoid or tanh)", c.Model.Activation)
	}
	switch c.Optim.Algorithm {
	case "sgd", "adam":
	default:
		return errors.Errorf("config: unknown optimizer %q (want sgd or adam)", c.Optim.Algorithm)
	}
	if c.Optim.LR <= 0 {
		return errors.Errorf("config: learning rate must be > 0, got %g", c.Optim.LR)
	}
	if c.Optim.Momentum < 0 || c.Optim.Momentum >= 1 {
		return errors.Errorf("config: momentum must be in [0, 1), got %g", c.Optim.Momentum)
	}
	if c.Train.Epochs <= 0 {
		return errors.Errorf("config: epochs must be > 0, got %d", c.Train.Epochs)
	}
	return nil
}
