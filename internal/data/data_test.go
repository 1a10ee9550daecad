package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stride-ml/stride/internal/backend/cpu"
)

type Backend = *cpu.Backend

func makeDataset(t *testing.T, n int) *Dataset {
	t.Helper()
	inputs := make([][]float32, n)
	targets := make([][]float32, n)
	for i := range inputs {
		inputs[i] = []float32{float32(i)}
		targets[i] = []float32{float32(i * 10)}
	}
	ds, err := New(inputs, targets)
	require.NoError(t, err)
	return ds
}

func TestNewValidation(t *testing.T) {
	_, err := New([][]float32{{1}}, [][]float32{{1}, {2}})
	assert.Error(t, err, "mismatched lengths")

	_, err = New(nil, nil)
	assert.Error(t, err, "empty dataset")

	_, err = New([][]float32{{1}, {2, 3}}, [][]float32{{1}, {2}})
	assert.Error(t, err, "ragged input widths")

	ds, err := New([][]float32{{1, 2}, {3, 4}}, [][]float32{{1}, {2}})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 2, ds.InDim())
	assert.Equal(t, 1, ds.OutDim())
}

func TestSplit(t *testing.T) {
	ds := makeDataset(t, 10)

	train, valid, err := ds.Split(0.2)
	require.NoError(t, err)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, valid.Len())

	// Order-preserving: validation is the tail.
	in, _ := valid.Sample(0)
	assert.Equal(t, float32(8), in[0])

	_, _, err = ds.Split(0)
	assert.Error(t, err)
	_, _, err = ds.Split(1)
	assert.Error(t, err)
}

func TestLinearGenerator(t *testing.T) {
	ds := Linear(2, 3, 100, 0, 7) // no noise: exact y = 2x + 3
	require.Equal(t, 100, ds.Len())

	for i := 0; i < ds.Len(); i++ {
		in, tgt := ds.Sample(i)
		assert.GreaterOrEqual(t, in[0], float32(-1))
		assert.LessOrEqual(t, in[0], float32(1))
		assert.InDelta(t, 2*in[0]+3, tgt[0], 1e-6)
	}
}

func TestLinearGeneratorDeterministic(t *testing.T) {
	a := Linear(2, 3, 10, 0.1, 42)
	b := Linear(2, 3, 10, 0.1, 42)
	for i := 0; i < a.Len(); i++ {
		inA, tgtA := a.Sample(i)
		inB, tgtB := b.Sample(i)
		assert.Equal(t, inA[0], inB[0])
		assert.Equal(t, tgtA[0], tgtB[0])
	}
}

func TestSineGenerator(t *testing.T) {
	ds := Sine(50, 0, 7)
	for i := 0; i < ds.Len(); i++ {
		in, tgt := ds.Sample(i)
		assert.GreaterOrEqual(t, float64(in[0]), -math.Pi)
		assert.LessOrEqual(t, float64(in[0]), math.Pi)
		assert.InDelta(t, math.Sin(float64(in[0])), float64(tgt[0]), 1e-6)
	}
}

func TestLoaderBatchCounts(t *testing.T) {
	backend := cpu.New()
	ds := makeDataset(t, 10)

	tests := []struct {
		batchSize int
		dropLast  bool
		want      int
	}{
		{3, false, 4}, // ceil(10/3)
		{3, true, 3},  // floor(10/3)
		{5, false, 2},
		{5, true, 2},
		{10, false, 1},
		{16, false, 1},
		{16, true, 0},
	}

	for _, tt := range tests {
		loader, err := NewLoader(ds, LoaderConfig{BatchSize: tt.batchSize, DropLast: tt.dropLast}, backend)
		require.NoError(t, err)
		assert.Equal(t, tt.want, loader.NumBatches(),
			"batch size %d dropLast %v", tt.batchSize, tt.dropLast)

		// The iterator agrees with the arithmetic.
		loader.Reset()
		got := 0
		for _, ok := loader.Next(); ok; _, ok = loader.Next() {
			got++
		}
		assert.Equal(t, tt.want, got, "iterated batches for size %d dropLast %v", tt.batchSize, tt.dropLast)
	}
}

func TestLoaderPartialBatchSize(t *testing.T) {
	backend := cpu.New()
	ds := makeDataset(t, 10)

	loader, err := NewLoader(ds, LoaderConfig{BatchSize: 4}, backend)
	require.NoError(t, err)

	sizes := []int{}
	for batch, ok := loader.Next(); ok; batch, ok = loader.Next() {
		sizes = append(sizes, batch.Size)
	}
	assert.Equal(t, []int{4, 4, 2}, sizes)
}

func TestLoaderBatchContents(t *testing.T) {
	backend := cpu.New()
	ds := makeDataset(t, 4)

	loader, err := NewLoader(ds, LoaderConfig{BatchSize: 2}, backend)
	require.NoError(t, err)

	batch, ok := loader.Next()
	require.True(t, ok)
	require.True(t, batch.Inputs.Shape().Equal([]int{2, 1}))
	require.True(t, batch.Targets.Shape().Equal([]int{2, 1}))
	assert.Equal(t, []float32{0, 1}, batch.Inputs.Data())
	assert.Equal(t, []float32{0, 10}, batch.Targets.Data())
}

func TestLoaderShuffleDeterministic(t *testing.T) {
	backend := cpu.New()
	ds := makeDataset(t, 20)

	first := collectOrder(t, backend, ds, 99)
	second := collectOrder(t, backend, ds, 99)
	assert.Equal(t, first, second, "same seed must give the same order")

	other := collectOrder(t, backend, ds, 100)
	assert.NotEqual(t, first, other, "different seeds should give different orders")
}

func collectOrder(t *testing.T, backend Backend, ds *Dataset, seed int64) []float32 {
	t.Helper()
	loader, err := NewLoader(ds, LoaderConfig{BatchSize: 4, Shuffle: true, Seed: seed}, backend)
	require.NoError(t, err)

	var order []float32
	for batch, ok := loader.Next(); ok; batch, ok = loader.Next() {
		order = append(order, batch.Inputs.Data()...)
	}
	return order
}

func TestLoaderResetReshuffles(t *testing.T) {
	backend := cpu.New()
	ds := makeDataset(t, 20)

	loader, err := NewLoader(ds, LoaderConfig{BatchSize: 20, Shuffle: true, Seed: 1}, backend)
	require.NoError(t, err)

	first, ok := loader.Next()
	require.True(t, ok)
	epoch1 := append([]float32(nil), first.Inputs.Data()...)

	loader.Reset()
	second, ok := loader.Next()
	require.True(t, ok)
	assert.NotEqual(t, epoch1, second.Inputs.Data(), "Reset should reshuffle")
}

func TestLoaderNoShufflePreservesOrder(t *testing.T) {
	backend := cpu.New()
	ds := makeDataset(t, 6)

	loader, err := NewLoader(ds, LoaderConfig{BatchSize: 6}, backend)
	require.NoError(t, err)

	for epoch := 0; epoch < 2; epoch++ {
		loader.Reset()
		batch, ok := loader.Next()
		require.True(t, ok)
		assert.Equal(t, []float32{0, 1, 2, 3, 4, 5}, batch.Inputs.Data())
	}
}

func TestLoaderConfigValidation(t *testing.T) {
	backend := cpu.New()
	ds := makeDataset(t, 4)

	_, err := NewLoader(ds, LoaderConfig{BatchSize: 0}, backend)
	assert.Error(t, err)

	_, err = NewLoader[Backend](nil, LoaderConfig{BatchSize: 1}, backend)
	assert.Error(t, err)
}
