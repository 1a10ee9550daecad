package config

// Overrides carries command-line overrides. Nil fields leave the loaded
// configuration untouched.
type Overrides struct {
	Seed      *int64
	Epochs    *int
	BatchSize *int
	LR        *float64
	Samples   *int
	Progress  *bool
}

// Apply copies the set overrides onto c. Validate c again afterwards.
func (o *Overrides) Apply(c *Config) {
	if o == nil {
		return
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.Epochs != nil {
		c.Train.Epochs = *o.Epochs
	}
	if o.BatchSize != nil {
		c.Loader.BatchSize = *o.BatchSize
	}
	if o.LR != nil {
		c.Optim.LR = float32(*o.LR)
	}
	if o.Samples != nil {
		c.Data.Samples = *o.Samples
	}
	if o.Progress != nil {
		c.Train.Progress = *o.Progress
	}
}
