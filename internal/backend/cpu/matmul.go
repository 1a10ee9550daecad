package cpu

import (
	"fmt"

	"github.com/stride-ml/stride/internal/tensor"
)

// MatMul performs 2-D matrix multiplication: [M, K] @ [K, N] -> [M, N].
func (c *Backend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2-D tensors, got %v and %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: inner dimensions mismatch: %v @ %v", aShape, bShape))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	result := mustNewRaw(tensor.Shape{m, n}, a.DType(), c.device)

	switch a.DType() {
	case tensor.Float32:
		matmulData(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulData(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	}
	return result
}

// matmulData is a cache-friendly ikj loop: the inner loop walks both the
// output row and the b row contiguously.
func matmulData[T tensor.DType](result, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		rowOut := result[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			rowB := b[p*n : (p+1)*n]
			for j, bv := range rowB {
				rowOut[j] += av * bv
			}
		}
	}
}
