package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stride-ml/stride/internal/backend/cpu"
	"github.com/stride-ml/stride/internal/tensor"
)

type Backend = *cpu.Backend

func newRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestLinearForward(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear[Backend](2, 1, backend, newRng())

	// Fix the parameters so the output is exact: y = 2*x0 + 3*x1 + 0.5.
	w := layer.Weight().Tensor()
	w.Set(2, 0, 0)
	w.Set(3, 0, 1)
	layer.Bias().Tensor().Set(0.5, 0)

	input, err := tensor.FromSlice([]float32{1, 1, 2, -1}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	out := layer.Forward(input)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 1}))
	assert.InDelta(t, 5.5, out.At(0, 0), 1e-6) // 2*1 + 3*1 + 0.5
	assert.InDelta(t, 1.5, out.At(1, 0), 1e-6) // 2*2 - 3*1 + 0.5
}

func TestLinearInputWidthPanics(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear[Backend](3, 1, backend, newRng())

	input, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	assert.Panics(t, func() { layer.Forward(input) })
}

func TestLinearNon2DPanics(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear[Backend](2, 1, backend, newRng())

	input, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	assert.Panics(t, func() { layer.Forward(input) })
}

func TestLinearParameters(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear[Backend](4, 3, backend, newRng())

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.True(t, params[0].Tensor().Shape().Equal(tensor.Shape{3, 4}))
	assert.True(t, params[1].Tensor().Shape().Equal(tensor.Shape{3}))

	// Bias starts at zero.
	for _, v := range params[1].Tensor().Data() {
		assert.Zero(t, v)
	}
}

func TestXavierBounds(t *testing.T) {
	backend := cpu.New()
	fanIn, fanOut := 8, 4

	w := Xavier[Backend](fanIn, fanOut, tensor.Shape{fanOut, fanIn}, newRng(), backend)
	limit := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))

	nonzero := 0
	for _, v := range w.Data() {
		assert.LessOrEqual(t, v, limit)
		assert.GreaterOrEqual(t, v, -limit)
		if v != 0 {
			nonzero++
		}
	}
	assert.NotZero(t, nonzero, "initialization should not be all zeros")
}

func TestSequentialForward(t *testing.T) {
	backend := cpu.New()

	// Two layers with fixed weights: y = (x * 2) * 3 = 6x.
	l1 := NewLinear[Backend](1, 1, backend, newRng())
	l1.Weight().Tensor().Set(2, 0, 0)
	l2 := NewLinear[Backend](1, 1, backend, newRng())
	l2.Weight().Tensor().Set(3, 0, 0)

	model := NewSequential[Backend](l1, l2)
	require.Equal(t, 2, model.Len())
	require.Len(t, model.Parameters(), 4)

	input, err := tensor.FromSlice([]float32{1.5}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)

	out := model.Forward(input)
	assert.InDelta(t, 9.0, out.Item(), 1e-6)
}

func TestActivationsForward(t *testing.T) {
	backend := cpu.New()
	input, err := tensor.FromSlice([]float32{-1, 0, 2}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	relu := NewReLU[Backend]().Forward(input)
	assert.Equal(t, []float32{0, 0, 2}, relu.Data())

	tanh := NewTanh[Backend]().Forward(input)
	assert.InDelta(t, math.Tanh(-1), tanh.At(0), 1e-6)

	sig := NewSigmoid[Backend]().Forward(input)
	assert.InDelta(t, 0.5, sig.At(1), 1e-6)

	assert.Empty(t, NewReLU[Backend]().Parameters())
}

func TestMSE(t *testing.T) {
	backend := cpu.New()

	pred, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4, 1}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]float32{1, 2, 3, 6}, tensor.Shape{4, 1}, backend)
	require.NoError(t, err)

	loss := NewMSE[Backend]().Forward(pred, target)
	require.True(t, loss.Shape().Equal(tensor.Shape{1}))
	assert.InDelta(t, 1.0, loss.Item(), 1e-6) // (0+0+0+4)/4
}

func TestMSEShapeMismatchPanics(t *testing.T) {
	backend := cpu.New()

	pred, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	assert.Panics(t, func() { NewMSE[Backend]().Forward(pred, target) })
}

func TestParameterZeroGrad(t *testing.T) {
	backend := cpu.New()
	p := NewParameter("w", tensor.Zeros[float32](tensor.Shape{2}, backend))

	require.Nil(t, p.Grad())
	p.SetGrad(tensor.Ones[float32](tensor.Shape{2}, backend))
	require.NotNil(t, p.Grad())

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}
