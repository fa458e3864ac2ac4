package SEM2D

// The weak-form force at quadrature point (iz,ix) combines two tensor
// contractions over the weight-scaled derivative matrices: one along
// xi of integrands 1 (x component) and 2 (z component), one along
// gamma of integrands 3 and 4, each partial result scaled by the
// opposing dimension's quadrature weight. The sum is subtracted from
// the global acceleration at the point's global index. Multiple
// elements may target the same index; the final value is invariant to
// element processing order up to floating-point summation rounding.

func (kn *genericKernel) AddContributions(s *ElementScratch, f *Fields, atomicAdd bool) {
	var (
		ngllx = s.NGLLX
		ngllz = s.NGLLZ
		wx    = kn.quad.X.W.Data()
		wz    = kn.quad.Z.W.Data()
		hwx   = kn.quad.X.Hprimew.Data() // hwx[l*ngllx+i] = w_l * l'_i(xi_l)
		hwz   = kn.quad.Z.Hprimew.Data()
	)
	for iz := 0; iz < ngllz; iz++ {
		for ix := 0; ix < ngllx; ix++ {
			p := iz*ngllx + ix
			var tx1, tz1 float64
			for l := 0; l < ngllx; l++ {
				h := hwx[l*ngllx+ix]
				tx1 += s.SI1[iz*ngllx+l] * h
				tz1 += s.SI2[iz*ngllx+l] * h
			}
			var tx2, tz2 float64
			for l := 0; l < ngllz; l++ {
				h := hwz[l*ngllz+iz]
				tx2 += s.SI3[l*ngllx+ix] * h
				tz2 += s.SI4[l*ngllx+ix] * h
			}
			sumx := wz[iz]*tx1 + wx[ix]*tx2
			sumz := wz[iz]*tz1 + wx[ix]*tz2
			ig := s.Iglob[p]
			if atomicAdd {
				AtomicAddFloat64(&f.AccelX[ig], -sumx)
				AtomicAddFloat64(&f.AccelZ[ig], -sumz)
			} else {
				f.AccelX[ig] -= sumx
				f.AccelZ[ig] -= sumz
			}
		}
	}
}
