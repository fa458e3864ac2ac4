package SEM2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func near(a, b, tol float64) bool {
	if math.Abs(b) > 1 {
		return math.Abs(a-b) < tol*math.Abs(b)
	}
	return math.Abs(a-b) < tol
}

func TestGLLKnownValues(t *testing.T) {
	// 3 point rule: -1, 0, 1 with weights 1/3, 4/3, 1/3
	q, err := NewGLL(3)
	require.NoError(t, err)
	assert.True(t, near(q.R.AtVec(0), -1, 1.e-12))
	assert.True(t, near(q.R.AtVec(1), 0, 1.e-12))
	assert.True(t, near(q.R.AtVec(2), 1, 1.e-12))
	assert.True(t, near(q.W.AtVec(0), 1./3., 1.e-12))
	assert.True(t, near(q.W.AtVec(1), 4./3., 1.e-12))
	assert.True(t, near(q.W.AtVec(2), 1./3., 1.e-12))

	// 4 point rule: +-1, +-1/sqrt(5) with weights 1/6, 5/6
	q, err = NewGLL(4)
	require.NoError(t, err)
	assert.True(t, near(q.R.AtVec(1), -1./math.Sqrt(5), 1.e-10))
	assert.True(t, near(q.W.AtVec(0), 1./6., 1.e-10))
	assert.True(t, near(q.W.AtVec(1), 5./6., 1.e-10))

	// 5 point rule: 0, +-sqrt(3/7), +-1 with weights 32/45, 49/90, 1/10
	q, err = NewGLL(5)
	require.NoError(t, err)
	assert.True(t, near(q.R.AtVec(1), -math.Sqrt(3./7.), 1.e-10))
	assert.True(t, near(q.R.AtVec(2), 0, 1.e-10))
	assert.True(t, near(q.W.AtVec(0), 0.1, 1.e-10))
	assert.True(t, near(q.W.AtVec(1), 49./90., 1.e-10))
	assert.True(t, near(q.W.AtVec(2), 32./45., 1.e-10))
}

func TestGLLWeightsSum(t *testing.T) {
	// weights integrate the constant 1 over [-1,1]
	for _, ngll := range []int{2, 3, 4, 5, 7} {
		q, err := NewGLL(ngll)
		require.NoError(t, err)
		assert.True(t, near(q.W.Sum(), 2, 1.e-12), "ngll = %d", ngll)
	}
}

func TestDerivativeMatrix(t *testing.T) {
	for _, ngll := range []int{3, 4, 5, 7} {
		q, err := NewGLL(ngll)
		require.NoError(t, err)
		for i := 0; i < ngll; i++ {
			// derivative of a constant vanishes
			var rowSum float64
			// derivative of the coordinate itself is one
			var linSum float64
			for j := 0; j < ngll; j++ {
				rowSum += q.Hprime.At(i, j)
				linSum += q.Hprime.At(i, j) * q.R.AtVec(j)
			}
			assert.True(t, near(rowSum, 0, 1.e-10), "ngll = %d row %d", ngll, i)
			assert.True(t, near(linSum, 1, 1.e-10), "ngll = %d row %d", ngll, i)
		}
	}
}

func TestGaussWeights(t *testing.T) {
	for N := 0; N < 6; N++ {
		_, W := JacobiGQ(0, 0, N)
		assert.True(t, near(W.Sum(), 2, 1.e-12), "N = %d", N)
	}
}

func TestQuadratureValidation(t *testing.T) {
	_, err := NewGLL(1)
	assert.Error(t, err)
	_, err = NewQuadrature(5, 1)
	assert.Error(t, err)
}
