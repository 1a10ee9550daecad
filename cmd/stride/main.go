// Package main provides the Stride CLI: runs the bundled regression
// experiments from a YAML config with flag overrides.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/stride-ml/stride/internal/config"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Stride %s\n", version)
	case "linreg":
		runExperiment("linreg", os.Args[2:])
	case "mlp":
		runExperiment("mlp", os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "stride: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Stride - a small training loop for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  linreg     Train a linear regression on the y = 2x + 3 dataset")
	fmt.Println("  mlp        Train a feed-forward net on the y = sin(x) dataset")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("Run 'stride <command> -h' for command flags.")
}

// runExperiment parses flags, loads the config and hands off to run.
func runExperiment(kind string, args []string) {
	fs := flag.NewFlagSet(kind, flag.ExitOnError)
	klog.InitFlags(fs)

	configPath := fs.String("config", "", "YAML config file (defaults used when empty)")
	epochs := fs.Int("epochs", 0, "Override number of epochs")
	batchSize := fs.Int("batch", 0, "Override batch size")
	lr := fs.Float64("lr", 0, "Override learning rate")
	samples := fs.Int("samples", 0, "Override dataset size")
	seed := fs.Int64("seed", -1, "Override random seed")
	progress := fs.Bool("progress", true, "Render a progress bar")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg, err := loadConfig(kind, *configPath)
	if err != nil {
		klog.Errorf("%v", err)
		os.Exit(1)
	}

	o := &config.Overrides{Progress: progress}
	if *epochs > 0 {
		o.Epochs = epochs
	}
	if *batchSize > 0 {
		o.BatchSize = batchSize
	}
	if *lr > 0 {
		o.LR = lr
	}
	if *samples > 0 {
		o.Samples = samples
	}
	if *seed >= 0 {
		o.Seed = seed
	}
	o.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		klog.Errorf("%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		klog.Errorf("run failed: %v", err)
		os.Exit(1)
	}
}

// loadConfig returns the config file when given, otherwise the built-in
// defaults for the experiment kind.
func loadConfig(kind, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	cfg := config.Default()
	if kind == "mlp" {
		cfg.Data.Kind = "sine"
		cfg.Data.Samples = 500
		cfg.Model.Hidden = []int{16, 16}
		cfg.Model.Activation = "tanh"
		cfg.Optim.Algorithm = "adam"
		cfg.Optim.LR = 0.01
		cfg.Train.Epochs = 200
		cfg.Train.LogEvery = 20
	}
	return cfg, nil
}
