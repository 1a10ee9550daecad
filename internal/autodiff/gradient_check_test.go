package autodiff_test

import (
	"math"
	"testing"

	"github.com/stride-ml/stride/internal/autodiff"
	"github.com/stride-ml/stride/internal/backend/cpu"
	"github.com/stride-ml/stride/internal/tensor"
)

// forwardFn computes a result tensor from the inputs using the backend.
type forwardFn func(b *autodiff.Backend[*cpu.Backend], inputs []*tensor.RawTensor) *tensor.RawTensor

func rawFromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func sumAll(raw *tensor.RawTensor) float64 {
	var s float64
	for _, v := range raw.AsFloat32() {
		s += float64(v)
	}
	return s
}

// checkGradients compares autodiff gradients against central finite
// differences of sum(forward(inputs)). Backward seeds the output gradient
// with ones, so the analytic gradients are exactly d sum(out) / d input.
func checkGradients(t *testing.T, name string, forward forwardFn, inputs []*tensor.RawTensor) {
	t.Helper()

	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.Clear()
	tape.StartRecording()
	out := forward(backend, inputs)
	tape.StopRecording()

	result := tensor.New[float32](out, backend)
	grads := autodiff.Backward(result, backend)

	const epsilon = 1e-3
	const tolerance = 2e-2

	quiet := autodiff.New(cpu.New()) // recording off: finite differences only
	for i, input := range inputs {
		grad := grads[input]
		if grad == nil {
			t.Fatalf("%s: no gradient for input %d", name, i)
		}
		gradData := grad.AsFloat32()
		data := input.AsFloat32()

		for j := range data {
			orig := data[j]

			data[j] = orig + epsilon
			plus := sumAll(forward(quiet, inputs))
			data[j] = orig - epsilon
			minus := sumAll(forward(quiet, inputs))
			data[j] = orig

			numerical := (plus - minus) / (2 * epsilon)
			if math.Abs(float64(gradData[j])-numerical) > tolerance {
				t.Errorf("%s: input %d element %d: autodiff grad %v, numerical %v",
					name, i, j, gradData[j], numerical)
			}
		}
	}
}

func TestGradientAdd(t *testing.T) {
	checkGradients(t, "add",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Add(in[0], in[1])
		},
		[]*tensor.RawTensor{
			rawFromSlice(t, []float32{1, -2, 3, 0.5}, tensor.Shape{2, 2}),
			rawFromSlice(t, []float32{0.1, 0.2, -0.3, 2}, tensor.Shape{2, 2}),
		})
}

func TestGradientSub(t *testing.T) {
	checkGradients(t, "sub",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Sub(in[0], in[1])
		},
		[]*tensor.RawTensor{
			rawFromSlice(t, []float32{1, 2, 3}, tensor.Shape{3}),
			rawFromSlice(t, []float32{0.5, -1, 2}, tensor.Shape{3}),
		})
}

func TestGradientMul(t *testing.T) {
	checkGradients(t, "mul",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Mul(in[0], in[1])
		},
		[]*tensor.RawTensor{
			rawFromSlice(t, []float32{1, -2, 3, 0.5}, tensor.Shape{2, 2}),
			rawFromSlice(t, []float32{2, 0.5, -1, 3}, tensor.Shape{2, 2}),
		})
}

func TestGradientDiv(t *testing.T) {
	checkGradients(t, "div",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Div(in[0], in[1])
		},
		[]*tensor.RawTensor{
			rawFromSlice(t, []float32{1, -2, 3}, tensor.Shape{3}),
			rawFromSlice(t, []float32{2, 4, -2}, tensor.Shape{3}),
		})
}

func TestGradientMatMul(t *testing.T) {
	checkGradients(t, "matmul",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.MatMul(in[0], in[1])
		},
		[]*tensor.RawTensor{
			rawFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}),
			rawFromSlice(t, []float32{0.5, -1, 2, 0.1, -0.2, 1.5}, tensor.Shape{3, 2}),
		})
}

func TestGradientBroadcastAdd(t *testing.T) {
	// [2, 2] + [1, 2]: the row gradient sums over the broadcast dimension.
	checkGradients(t, "broadcast add",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Add(in[0], in[1])
		},
		[]*tensor.RawTensor{
			rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2}),
			rawFromSlice(t, []float32{10, 20}, tensor.Shape{1, 2}),
		})
}

func TestGradientActivations(t *testing.T) {
	// Inputs avoid 0 where ReLU is not differentiable.
	input := []float32{-2, -0.5, 0.5, 2}

	checkGradients(t, "relu",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.ReLU(in[0])
		},
		[]*tensor.RawTensor{rawFromSlice(t, input, tensor.Shape{4})})

	checkGradients(t, "sigmoid",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Sigmoid(in[0])
		},
		[]*tensor.RawTensor{rawFromSlice(t, input, tensor.Shape{4})})

	checkGradients(t, "tanh",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Tanh(in[0])
		},
		[]*tensor.RawTensor{rawFromSlice(t, input, tensor.Shape{4})})
}

func TestGradientReductions(t *testing.T) {
	checkGradients(t, "sum",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Sum(in[0])
		},
		[]*tensor.RawTensor{rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})})

	checkGradients(t, "mean",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			return b.Mean(in[0])
		},
		[]*tensor.RawTensor{rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})})
}

func TestGradientComposite(t *testing.T) {
	// mean((x*w - y)²): the gradient path of a full regression step.
	checkGradients(t, "composite mse",
		func(b *autodiff.Backend[*cpu.Backend], in []*tensor.RawTensor) *tensor.RawTensor {
			pred := b.Mul(in[0], in[1])
			diff := b.Sub(pred, in[2])
			return b.Mean(b.Mul(diff, diff))
		},
		[]*tensor.RawTensor{
			rawFromSlice(t, []float32{1, 2, 3}, tensor.Shape{3}),
			rawFromSlice(t, []float32{0.5, 0.5, 0.5}, tensor.Shape{3}),
			rawFromSlice(t, []float32{2, 2, 2}, tensor.Shape{3}),
		})
}
