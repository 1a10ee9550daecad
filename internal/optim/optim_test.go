package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stride-ml/stride/internal/backend/cpu"
	"github.com/stride-ml/stride/internal/nn"
	"github.com/stride-ml/stride/internal/tensor"
)

type Backend = *cpu.Backend

func newParam(t *testing.T, backend Backend, values []float32) *nn.Parameter[Backend] {
	t.Helper()
	tens, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	require.NoError(t, err)
	return nn.NewParameter("p", tens)
}

func gradsFor(t *testing.T, backend Backend, param *nn.Parameter[Backend], values []float32) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	grad, err := tensor.NewRaw(tensor.Shape{len(values)}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(grad.AsFloat32(), values)
	return map[*tensor.RawTensor]*tensor.RawTensor{param.Tensor().Raw(): grad}
}

func TestSGDStep(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, []float32{1, 2, 3})
	opt := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{LR: 0.1}, backend)

	opt.Step(gradsFor(t, backend, param, []float32{1, -1, 0.5}))

	data := param.Tensor().Data()
	assert.InDelta(t, 0.9, data[0], 1e-6)
	assert.InDelta(t, 2.1, data[1], 1e-6)
	assert.InDelta(t, 2.95, data[2], 1e-6)

	// Step also exposes the gradient on the parameter for introspection.
	require.NotNil(t, param.Grad())
	opt.ZeroGrad()
	assert.Nil(t, param.Grad())
}

func TestSGDMomentum(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, []float32{0})
	opt := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{LR: 1, Momentum: 0.9}, backend)

	// v1 = 1, p = -1; v2 = 0.9 + 1 = 1.9, p = -2.9.
	opt.Step(gradsFor(t, backend, param, []float32{1}))
	assert.InDelta(t, -1.0, param.Tensor().Data()[0], 1e-6)

	opt.Step(gradsFor(t, backend, param, []float32{1}))
	assert.InDelta(t, -2.9, param.Tensor().Data()[0], 1e-6)
}

func TestSGDDefaultLR(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, []float32{0})
	opt := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{}, backend)
	assert.InDelta(t, 0.01, opt.LR(), 1e-9)
}

func TestSGDZeroLRLeavesParamsUnchanged(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, []float32{1, 2, 3})
	opt := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{LR: 0.1}, backend)
	opt.SetLR(0)

	opt.Step(gradsFor(t, backend, param, []float32{5, -5, 5}))
	assert.Equal(t, []float32{1, 2, 3}, param.Tensor().Data())
}

func TestSGDSkipsParamsWithoutGradient(t *testing.T) {
	backend := cpu.New()
	withGrad := newParam(t, backend, []float32{1})
	without := newParam(t, backend, []float32{1})
	opt := NewSGD([]*nn.Parameter[Backend]{withGrad, without}, SGDConfig{LR: 1}, backend)

	opt.Step(gradsFor(t, backend, withGrad, []float32{1}))
	assert.InDelta(t, 0.0, withGrad.Tensor().Data()[0], 1e-6)
	assert.InDelta(t, 1.0, without.Tensor().Data()[0], 1e-6)
	assert.Nil(t, without.Grad())
}

func TestAdamStep(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, []float32{1, 1})
	opt := NewAdam([]*nn.Parameter[Backend]{param}, AdamConfig{LR: 0.1}, backend)

	// After bias correction the first step is lr * g / (|g| + eps),
	// so each element moves by almost exactly lr against the gradient sign.
	opt.Step(gradsFor(t, backend, param, []float32{0.5, -2}))

	data := param.Tensor().Data()
	assert.InDelta(t, 0.9, data[0], 1e-4)
	assert.InDelta(t, 1.1, data[1], 1e-4)
}

func TestAdamDefaults(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, []float32{0})
	opt := NewAdam([]*nn.Parameter[Backend]{param}, AdamConfig{}, backend)
	assert.InDelta(t, 0.001, opt.LR(), 1e-9)
}

func TestAdamConvergesOnQuadratic(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, []float32{5})
	opt := NewAdam([]*nn.Parameter[Backend]{param}, AdamConfig{LR: 0.2}, backend)

	// Minimize f(x) = x² by hand-feeding df/dx = 2x.
	for i := 0; i < 200; i++ {
		x := param.Tensor().Data()[0]
		opt.Step(gradsFor(t, backend, param, []float32{2 * x}))
		opt.ZeroGrad()
	}
	assert.InDelta(t, 0.0, param.Tensor().Data()[0], 0.05)
}

func TestSetLR(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, []float32{0})

	opt := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{LR: 0.5}, backend)
	opt.SetLR(0.25)
	assert.InDelta(t, 0.25, opt.LR(), 1e-9)
}
