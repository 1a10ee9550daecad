package train

import (
	"math"

	"github.com/google/uuid"
)

// EpochStats holds the reported losses of one epoch.
type EpochStats struct {
	Epoch     int     // 1-based
	TrainLoss float64 // mean training loss across batches
	ValidLoss float64 // mean validation loss; NaN when no validation loader
}

// History collects per-epoch statistics of one Fit run.
type History struct {
	// RunID identifies this fit run in logs and reports.
	RunID  string
	Epochs []EpochStats
}

func newHistory() *History {
	return &History{RunID: uuid.NewString()}
}

func (h *History) record(epoch int, trainLoss, validLoss float64) {
	h.Epochs = append(h.Epochs, EpochStats{Epoch: epoch, TrainLoss: trainLoss, ValidLoss: validLoss})
}

// Len returns the number of completed epochs.
func (h *History) Len() int {
	return len(h.Epochs)
}

// Final returns the stats of the last completed epoch.
// Panics when no epoch completed.
func (h *History) Final() EpochStats {
	return h.Epochs[len(h.Epochs)-1]
}

// BestValid returns the epoch with the lowest validation loss.
// Falls back to the lowest training loss when validation was not run.
func (h *History) BestValid() EpochStats {
	best := h.Epochs[0]
	for _, e := range h.Epochs[1:] {
		if pickLoss(e) < pickLoss(best) {
			best = e
		}
	}
	return best
}

func pickLoss(e EpochStats) float64 {
	if !math.IsNaN(e.ValidLoss) {
		return e.ValidLoss
	}
	return e.TrainLoss
}
