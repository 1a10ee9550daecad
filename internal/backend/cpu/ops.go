package cpu

import (
	"fmt"

	"github.com/stride-ml/stride/internal/tensor"
)

func mustNewRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("cpu: failed to allocate result tensor: %v", err))
	}
	return raw
}

// binary dispatches an element-wise binary operation over the two supported
// dtypes, with broadcasting.
func (c *Backend) binary(
	name string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := mustNewRaw(outShape, a.DType(), c.device)
	switch a.DType() {
	case tensor.Float32:
		if needsBroadcast {
			broadcastBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), outShape, a.Shape(), b.Shape(), f32)
		} else {
			plainBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), f32)
		}
	case tensor.Float64:
		if needsBroadcast {
			broadcastBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), outShape, a.Shape(), b.Shape(), f64)
		} else {
			plainBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), f64)
		}
	}
	return result
}

// unary dispatches an element-wise unary operation over the two supported dtypes.
func (c *Backend) unary(
	x *tensor.RawTensor,
	f32 func(v float32) float32,
	f64 func(v float64) float64,
) *tensor.RawTensor {
	result := mustNewRaw(x.Shape(), x.DType(), c.device)
	switch x.DType() {
	case tensor.Float32:
		in, out := x.AsFloat32(), result.AsFloat32()
		for i, v := range in {
			out[i] = f32(v)
		}
	case tensor.Float64:
		in, out := x.AsFloat64(), result.AsFloat64()
		for i, v := range in {
			out[i] = f64(v)
		}
	}
	return result
}

func plainBinary[T tensor.DType](result, a, b []T, op func(x, y T) T) {
	for i := range result {
		result[i] = op(a[i], b[i])
	}
}

// broadcastBinary evaluates op over the broadcast of a and b into outShape.
// Each output coordinate maps to an input element with size-1 dimensions
// pinned at index 0.
func broadcastBinary[T tensor.DType](result, a, b []T, outShape, aShape, bShape tensor.Shape, op func(x, y T) T) {
	outStrides := outShape.ComputeStrides()
	aIdx := newBroadcastIndexer(outShape, aShape)
	bIdx := newBroadcastIndexer(outShape, bShape)

	for i := range result {
		coords := unravel(i, outStrides)
		result[i] = op(a[aIdx.flat(coords)], b[bIdx.flat(coords)])
	}
}

// broadcastIndexer maps output coordinates to a flat index of an input shape
// broadcast against that output.
type broadcastIndexer struct {
	strides []int // aligned to the output rank; 0 for broadcast dimensions
}

func newBroadcastIndexer(outShape, inShape tensor.Shape) broadcastIndexer {
	inStrides := inShape.ComputeStrides()
	strides := make([]int, len(outShape))
	offset := len(outShape) - len(inShape)
	for i := range outShape {
		if i < offset {
			continue // missing leading dimension, stride 0
		}
		if inShape[i-offset] == 1 && outShape[i] > 1 {
			continue // broadcast dimension, stride 0
		}
		strides[i] = inStrides[i-offset]
	}
	return broadcastIndexer{strides: strides}
}

func (bi broadcastIndexer) flat(coords []int) int {
	idx := 0
	for i, c := range coords {
		idx += c * bi.strides[i]
	}
	return idx
}

func unravel(flat int, strides []int) []int {
	coords := make([]int, len(strides))
	for i, s := range strides {
		coords[i] = flat / s
		flat %= s
	}
	return coords
}

func transposeData[T tensor.DType](result, in []T, rows, cols int) {
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			result[c*rows+r] = in[r*cols+c]
		}
	}
}

func sumData[T tensor.DType](data []T) T {
	var sum T
	for _, v := range data {
		sum += v
	}
	return sum
}
