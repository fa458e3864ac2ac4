package SEM2D

import "math/rand"

// mild nonlinear distortion keeping every element Jacobian positive on
// the unit square meshes used in tests
func gentleShear(x, z float64) (float64, float64) {
	return x + 0.15*z + 0.05*x*z, z + 0.1*x
}

// setLinearField fills the displacement arrays with ux = ax*x + bx*z + cx
// and uz = az*x + bz*z + cz, evaluated at the physical location of
// every quadrature point.
func setLinearField(m *Mesh, quad *Quadrature, f *Fields, ax, bx, cx, az, bz, cz float64) {
	for k := 0; k < m.NSpec; k++ {
		for iz := 0; iz < m.NGLLZ; iz++ {
			for ix := 0; ix < m.NGLLX; ix++ {
				x, z := Locate(m.CoorgX[k], m.CoorgZ[k], quad.X.R.AtVec(ix), quad.Z.R.AtVec(iz))
				ig := m.Iglob[k][iz*m.NGLLX+ix]
				f.DisplX[ig] = ax*x + bx*z + cx
				f.DisplZ[ig] = az*x + bz*z + cz
			}
		}
	}
}

func setRandomField(f *Fields, rng *rand.Rand) {
	for i := 0; i < f.NGlob; i++ {
		f.DisplX[i] = rng.Float64()*2 - 1
		f.DisplZ[i] = rng.Float64()*2 - 1
	}
}

func randomIntegrands(s *ElementScratch, rng *rand.Rand) {
	for p := range s.SI1 {
		s.SI1[p] = rng.Float64()*2 - 1
		s.SI2[p] = rng.Float64()*2 - 1
		s.SI3[p] = rng.Float64()*2 - 1
		s.SI4[p] = rng.Float64()*2 - 1
	}
}
