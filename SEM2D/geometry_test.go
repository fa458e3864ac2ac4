package SEM2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a deliberately non-rectangular but valid 9 node element
func distortedQuad9() (cx, cz []float64) {
	cx = []float64{0, 2.1, 2.4, -0.2, 1.0, 2.3, 1.2, -0.15, 1.1}
	cz = []float64{0, 0.2, 1.9, 2.2, 0.05, 1.0, 2.1, 1.15, 1.05}
	return
}

func TestShapeFunctionPartitionOfUnity(t *testing.T) {
	for _, ngnod := range []int{4, 9} {
		for _, pt := range [][2]float64{{0, 0}, {-1, -1}, {0.3, -0.7}, {0.9, 0.9}} {
			shape := ShapeFunctions(pt[0], pt[1], ngnod)
			dxi, dgamma := ShapeDerivatives(pt[0], pt[1], ngnod)
			var s, sxi, sgm float64
			for a := 0; a < ngnod; a++ {
				s += shape[a]
				sxi += dxi[a]
				sgm += dgamma[a]
			}
			assert.True(t, near(s, 1, 1.e-12))
			assert.True(t, near(sxi, 0, 1.e-12))
			assert.True(t, near(sgm, 0, 1.e-12))
		}
	}
}

func TestShapeFunctionNodalProperty(t *testing.T) {
	// shape function a equals one at control node a, zero at the others
	nodes := [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {0, -1}, {1, 0}, {0, 1}, {-1, 0}, {0, 0}}
	for a, pt := range nodes {
		shape := ShapeFunctions(pt[0], pt[1], 9)
		for b := 0; b < 9; b++ {
			want := 0.
			if a == b {
				want = 1.
			}
			assert.True(t, near(shape[b], want, 1.e-12), "node %d shape %d", a, b)
		}
	}
}

func TestDualEntryPointsAgree(t *testing.T) {
	var (
		cx, cz = distortedQuad9()
		points = [][2]float64{{-0.77, 0.31}, {0, 0}, {0.9, -0.9}, {0.654, 0.654}}
	)
	for _, pt := range points {
		xi, gamma := pt[0], pt[1]
		x1, z1 := Locate(cx, cz, xi, gamma)
		shape := ShapeFunctions(xi, gamma, 9)
		x2, z2 := LocateShape(cx, cz, shape)
		assert.True(t, near(x1, x2, 1.e-14))
		assert.True(t, near(z1, z2, 1.e-14))

		a1, b1, c1, d1 := PartialDerivatives(cx, cz, xi, gamma)
		dxi, dgamma := ShapeDerivatives(xi, gamma, 9)
		a2, b2, c2, d2 := PartialDerivativesShape(cx, cz, dxi, dgamma)
		assert.True(t, near(a1, a2, 1.e-14))
		assert.True(t, near(b1, b2, 1.e-14))
		assert.True(t, near(c1, c2, 1.e-14))
		assert.True(t, near(d1, d2, 1.e-14))
	}
}

func TestAffineElementJacobian(t *testing.T) {
	// a rectangular w x h element has constant Jacobian w*h/4
	var (
		w, h = 2.5, 0.8
	)
	for _, ngnod := range []int{4, 9} {
		m, err := NewStructuredMesh(1, 1, w, h, 5, ngnod)
		require.NoError(t, err)
		quad, err := NewQuadrature(5, 5)
		require.NoError(t, err)
		gf, err := NewGeometricFactors(m, quad)
		require.NoError(t, err)
		for p := 0; p < 25; p++ {
			assert.True(t, near(gf.Jdet[0][p], w*h/4, 1.e-12), "ngnod %d point %d", ngnod, p)
		}
	}
}

func TestFoldedElementFailsConstruction(t *testing.T) {
	m, err := NewStructuredMesh(1, 1, 1, 1, 4, 4)
	require.NoError(t, err)
	// swap two corners to fold the element over itself
	m.CoorgX[0][0], m.CoorgX[0][1] = m.CoorgX[0][1], m.CoorgX[0][0]
	m.CoorgZ[0][0], m.CoorgZ[0][1] = m.CoorgZ[0][1], m.CoorgZ[0][0]
	quad, err := NewQuadrature(4, 4)
	require.NoError(t, err)
	gf, err := NewGeometricFactors(m, quad)
	assert.Error(t, err)
	assert.Nil(t, gf)
	assert.Contains(t, err.Error(), "Jacobian")
}

func TestDistortedElementJacobianPositive(t *testing.T) {
	m, err := NewStructuredMesh(3, 3, 1, 1, 5, 9)
	require.NoError(t, err)
	m.MapNodes(gentleShear)
	quad, err := NewQuadrature(5, 5)
	require.NoError(t, err)
	gf, err := NewGeometricFactors(m, quad)
	require.NoError(t, err)
	for k := 0; k < m.NSpec; k++ {
		for p := 0; p < 25; p++ {
			assert.Greater(t, gf.Jdet[k][p], 0.)
		}
	}
}

func TestMeshValidation(t *testing.T) {
	// out of range index mapping is a terminal construction error
	coorgX := [][]float64{{0, 1, 1, 0}}
	coorgZ := [][]float64{{0, 0, 1, 1}}
	iglob := [][]int{{0, 1, 2, 99}}
	_, err := NewMesh(4, 4, 2, 2, coorgX, coorgZ, iglob)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "global index")

	// unsupported control node count
	_, err = NewMesh(4, 5, 2, 2, coorgX, coorgZ, [][]int{{0, 1, 2, 3}})
	assert.Error(t, err)
}
