package autodiff_test

import (
	"testing"

	"github.com/stride-ml/stride/internal/autodiff"
	"github.com/stride-ml/stride/internal/backend/cpu"
	"github.com/stride-ml/stride/internal/tensor"
)

func TestTapeRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	a := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2})
	b := rawFromSlice(t, []float32{3, 4}, tensor.Shape{2})

	// Not recording: operations run but the tape stays empty.
	backend.Add(a, b)
	if tape.NumOps() != 0 {
		t.Errorf("NumOps() = %d before StartRecording, want 0", tape.NumOps())
	}

	tape.StartRecording()
	backend.Add(a, b)
	backend.Mul(a, b)
	if tape.NumOps() != 2 {
		t.Errorf("NumOps() = %d, want 2", tape.NumOps())
	}

	tape.StopRecording()
	backend.Add(a, b)
	if tape.NumOps() != 2 {
		t.Errorf("NumOps() = %d after StopRecording, want 2", tape.NumOps())
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("NumOps() = %d after Clear, want 0", tape.NumOps())
	}
}

func TestTapeClearKeepsRecordingState(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	tape.StartRecording()
	tape.Clear()
	if !tape.IsRecording() {
		t.Error("Clear must not change the recording state")
	}
}

func TestBackwardAccumulatesSharedInput(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	x := rawFromSlice(t, []float32{3}, tensor.Shape{1})

	// y = x*x + x: dy/dx = 2x + 1 = 7 at x = 3.
	tape.Clear()
	tape.StartRecording()
	sq := backend.Mul(x, x)
	y := backend.Add(sq, x)
	tape.StopRecording()

	result := tensor.New[float32](y, backend)
	grads := autodiff.Backward(result, backend)

	got := grads[x].AsFloat32()[0]
	if got != 7 {
		t.Errorf("dy/dx = %v, want 7", got)
	}
}

func TestBackwardEmptyTapePanics(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := rawFromSlice(t, []float32{1}, tensor.Shape{1})
	result := tensor.New[float32](x, backend)

	defer func() {
		if recover() == nil {
			t.Error("Backward with an empty tape should panic")
		}
	}()
	autodiff.Backward(result, backend)
}

func TestBackwardDoesNotRecordGradientOps(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	a := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2})
	b := rawFromSlice(t, []float32{3, 4}, tensor.Shape{2})

	tape.Clear()
	tape.StartRecording()
	y := backend.Mul(a, b)
	numOps := tape.NumOps()

	result := tensor.New[float32](y, backend)
	autodiff.Backward(result, backend)

	if tape.NumOps() != numOps {
		t.Errorf("NumOps() = %d after Backward, want %d (gradient math must stay off the tape)",
			tape.NumOps(), numOps)
	}
}
