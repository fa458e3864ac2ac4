package SEM2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsLifecycle(t *testing.T) {
	f := NewFields(10)
	f.AccelX[3] = 1.5
	f.AccelZ[7] = -2.5
	f.DisplX[3] = 0.5
	f.ResetAcceleration()
	for i := 0; i < f.NGlob; i++ {
		assert.Zero(t, f.AccelX[i])
		assert.Zero(t, f.AccelZ[i])
	}
	// displacement survives the acceleration reset
	assert.Equal(t, 0.5, f.DisplX[3])

	ux, _, _, _, ax, _ := f.Sample(3)
	assert.Equal(t, 0.5, ux)
	assert.Zero(t, ax)
}

func TestReceivers(t *testing.T) {
	f := NewFields(6)
	r, err := NewReceivers([]int{1, 4}, 3, f.NGlob)
	require.NoError(t, err)
	for step := 0; step < 3; step++ {
		f.DisplX[1] = float64(step)
		f.DisplZ[4] = -float64(step)
		r.Record(f)
	}
	assert.Equal(t, 2., r.SeisX.At(2, 0))
	assert.Equal(t, -2., r.SeisZ.At(2, 1))

	_, err = NewReceivers([]int{99}, 3, f.NGlob)
	assert.Error(t, err)
}

func TestScratchStaging(t *testing.T) {
	m, err := NewStructuredMesh(2, 2, 1, 1, 3, 4)
	require.NoError(t, err)
	f := NewFields(m.NGlob)
	for i := range f.DisplX {
		f.DisplX[i] = float64(i)
	}
	s := NewElementScratch(3, 3, 4)
	for k := 0; k < m.NSpec; k++ {
		s.Load(m, f, k)
		assert.Equal(t, k, s.K)
		for p, ig := range m.Iglob[k] {
			assert.Equal(t, float64(ig), s.FieldX[p])
			assert.Equal(t, ig, s.Iglob[p])
		}
		assert.Equal(t, m.CoorgX[k], s.CoorgX)
	}
}
