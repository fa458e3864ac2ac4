package SEM2D

import "fmt"

// NGLLStatic is the quadrature point count the specialized kernel is
// built for. 5 points per dimension (4th order) is the standard
// production configuration; fixing the count lets the compiler use
// constant loop bounds and fixed-size arrays, which is roughly an
// order of magnitude faster than the runtime-sized path.
const NGLLStatic = 5

// staticKernel is the build-time specialized implementation of
// ElementKernel for NGLLStatic x NGLLStatic elements. The derivative
// and weight tables are copied into fixed-size arrays at construction.
type staticKernel struct {
	hpx, hpz [NGLLStatic * NGLLStatic]float64
	hwx, hwz [NGLLStatic * NGLLStatic]float64
	wx, wz   [NGLLStatic]float64
}

// NewStaticKernel validates the size contract up front; a mismatched
// quadrature is a configuration defect reported at construction, not
// mid-computation.
func NewStaticKernel(quad *Quadrature) (kn ElementKernel, err error) {
	if quad.X.NGLL != NGLLStatic || quad.Z.NGLL != NGLLStatic {
		err = fmt.Errorf("specialized kernel requires %dx%d quadrature, have %dx%d",
			NGLLStatic, NGLLStatic, quad.X.NGLL, quad.Z.NGLL)
		return
	}
	k := &staticKernel{}
	copy(k.hpx[:], quad.X.Hprime.Data())
	copy(k.hpz[:], quad.Z.Hprime.Data())
	copy(k.hwx[:], quad.X.Hprimew.Data())
	copy(k.hwz[:], quad.Z.Hprimew.Data())
	copy(k.wx[:], quad.X.W.Data())
	copy(k.wz[:], quad.Z.W.Data())
	kn = k
	return
}

func (kn *staticKernel) ComputeGradients(s *ElementScratch, gf *GeometricFactors, k int) {
	var (
		fieldX, fieldZ [NGLLStatic * NGLLStatic]float64
		xix, xiz       = gf.Xix[k], gf.Xiz[k]
		gmx, gmz       = gf.Gammax[k], gf.Gammaz[k]
	)
	copy(fieldX[:], s.FieldX)
	copy(fieldZ[:], s.FieldZ)
	for iz := 0; iz < NGLLStatic; iz++ {
		for ix := 0; ix < NGLLStatic; ix++ {
			p := iz*NGLLStatic + ix
			var duxdxi, duzdxi, duxdgm, duzdgm float64
			for l := 0; l < NGLLStatic; l++ {
				hx := kn.hpx[ix*NGLLStatic+l]
				duxdxi += fieldX[iz*NGLLStatic+l] * hx
				duzdxi += fieldZ[iz*NGLLStatic+l] * hx
				hz := kn.hpz[iz*NGLLStatic+l]
				duxdgm += fieldX[l*NGLLStatic+ix] * hz
				duzdgm += fieldZ[l*NGLLStatic+ix] * hz
			}
			s.DuxDx[p] = duxdxi*xix[p] + duxdgm*gmx[p]
			s.DuxDz[p] = duxdxi*xiz[p] + duxdgm*gmz[p]
			s.DuzDx[p] = duzdxi*xix[p] + duzdgm*gmx[p]
			s.DuzDz[p] = duzdxi*xiz[p] + duzdgm*gmz[p]
		}
	}
}

func (kn *staticKernel) AddContributions(s *ElementScratch, f *Fields, atomicAdd bool) {
	var (
		si1, si2, si3, si4 [NGLLStatic * NGLLStatic]float64
	)
	copy(si1[:], s.SI1)
	copy(si2[:], s.SI2)
	copy(si3[:], s.SI3)
	copy(si4[:], s.SI4)
	for iz := 0; iz < NGLLStatic; iz++ {
		for ix := 0; ix < NGLLStatic; ix++ {
			p := iz*NGLLStatic + ix
			var tx1, tz1, tx2, tz2 float64
			for l := 0; l < NGLLStatic; l++ {
				hx := kn.hwx[l*NGLLStatic+ix]
				tx1 += si1[iz*NGLLStatic+l] * hx
				tz1 += si2[iz*NGLLStatic+l] * hx
				hz := kn.hwz[l*NGLLStatic+iz]
				tx2 += si3[l*NGLLStatic+ix] * hz
				tz2 += si4[l*NGLLStatic+ix] * hz
			}
			sumx := kn.wz[iz]*tx1 + kn.wx[ix]*tx2
			sumz := kn.wz[iz]*tz1 + kn.wx[ix]*tz2
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
