package SEM2D

import "fmt"

// ElementKernel computes the spatial derivatives of the staged field
// at every quadrature point of one element, and folds stress
// integrands back into the global acceleration field. Two
// implementations exist behind this contract: a generic one where the
// quadrature point count is a runtime value, and a specialized one
// with the count fixed at build time. Both must produce numerically
// equivalent output for the same inputs; that equivalence is a tested
// contract, not an incidental detail.
type ElementKernel interface {
	// ComputeGradients writes the four physical derivatives into the
	// scratch (DuxDx..DuzDz) from the staged field values, the shared
	// derivative matrices and element k's cached geometric factors.
	ComputeGradients(s *ElementScratch, gf *GeometricFactors, k int)
	// AddContributions consumes the scratch stress integrands and
	// scatter-adds the weak-form force into the global acceleration
	// arrays through the staged index mapping. With atomicAdd set the
	// scatter-add is safe against concurrent writers to the same
	// global index; otherwise the caller must guarantee no two
	// concurrent elements share an index.
	AddContributions(s *ElementScratch, f *Fields, atomicAdd bool)
}

// NewElementKernel selects the fastest kernel available for the given
// quadrature: the build-time specialized path when the point count
// matches NGLLStatic in both dimensions, else the generic path.
func NewElementKernel(quad *Quadrature) (kn ElementKernel) {
	if quad.X.NGLL == NGLLStatic && quad.Z.NGLL == NGLLStatic {
		var err error
		if kn, err = NewStaticKernel(quad); err == nil {
			return
		}
	}
	kn = NewGenericKernel(quad)
	return
}

// genericKernel is the runtime-sized implementation.
type genericKernel struct {
	quad *Quadrature
}

func NewGenericKernel(quad *Quadrature) ElementKernel {
	return &genericKernel{quad: quad}
}

func (kn *genericKernel) ComputeGradients(s *ElementScratch, gf *GeometricFactors, k int) {
	var (
		ngllx = s.NGLLX
		ngllz = s.NGLLZ
		hpx   = kn.quad.X.Hprime.Data() // hpx[i*ngllx+l] = l'_l(xi_i)
		hpz   = kn.quad.Z.Hprime.Data()
		xix, xiz = gf.Xix[k], gf.Xiz[k]
		gmx, gmz = gf.Gammax[k], gf.Gammaz[k]
	)
	if ngllx != kn.quad.X.NGLL || ngllz != kn.quad.Z.NGLL {
		panic(fmt.Errorf("scratch %dx%d does not match quadrature %dx%d",
			ngllx, ngllz, kn.quad.X.NGLL, kn.quad.Z.NGLL))
	}
	for iz := 0; iz < ngllz; iz++ {
		rowX := s.FieldX[iz*ngllx : (iz+1)*ngllx]
		rowZ := s.FieldZ[iz*ngllx : (iz+1)*ngllx]
		for ix := 0; ix < ngllx; ix++ {
			p := iz*ngllx + ix
			// reference-space derivatives by tensor contraction along
			// each axis
			var duxdxi, duzdxi float64
			for l := 0; l < ngllx; l++ {
				h := hpx[ix*ngllx+l]
				duxdxi += rowX[l] * h
				duzdxi += rowZ[l] * h
			}
			var duxdgm, duzdgm float64
			for l := 0; l < ngllz; l++ {
				h := hpz[iz*ngllz+l]
				duxdgm += s.FieldX[l*ngllx+ix] * h
				duzdgm += s.FieldZ[l*ngllx+ix] * h
			}
			// chain rule to physical derivatives
			s.DuxDx[p] = duxdxi*xix[p] + duxdgm*gmx[p]
			s.DuxDz[p] = duxdxi*xiz[p] + duxdgm*gmz[p]
			s.DuzDx[p] = duzdxi*xix[p] + duzdgm*gmx[p]
			s.DuzDz[p] = duzdxi*xiz[p] + duzdgm*gmz[p]
		}
	}
}
