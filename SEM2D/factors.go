package SEM2D

import "fmt"

// GeometricFactors caches, per element and quadrature point, the
// mapping derivatives, their inverses and the Jacobian determinant.
// Built once at mesh setup from the geometry and quadrature tables,
// read-only during the compute phase.
type GeometricFactors struct {
	NSpec        int
	NGLLX, NGLLZ int
	Xxi, Xgamma  [][]float64 // dx/dxi, dx/dgamma
	Zxi, Zgamma  [][]float64 // dz/dxi, dz/dgamma
	Xix, Xiz     [][]float64 // dxi/dx, dxi/dz
	Gammax       [][]float64 // dgamma/dx
	Gammaz       [][]float64 // dgamma/dz
	Jdet         [][]float64
}

// NewGeometricFactors evaluates the mapping at every quadrature point
// of every element. A non-positive Jacobian determinant anywhere
// indicates a degenerate or folded element and fails the whole
// construction; no clamping or recovery is attempted.
func NewGeometricFactors(m *Mesh, quad *Quadrature) (gf *GeometricFactors, err error) {
	var (
		ngllx = quad.X.NGLL
		ngllz = quad.Z.NGLL
		npts  = ngllx * ngllz
	)
	if ngllx != m.NGLLX || ngllz != m.NGLLZ {
		err = fmt.Errorf("quadrature %dx%d does not match mesh index mapping %dx%d",
			ngllx, ngllz, m.NGLLX, m.NGLLZ)
		return
	}
	gf = &GeometricFactors{
		NSpec:  m.NSpec,
		NGLLX:  ngllx,
		NGLLZ:  ngllz,
		Xxi:    allocTable(m.NSpec, npts),
		Xgamma: allocTable(m.NSpec, npts),
		Zxi:    allocTable(m.NSpec, npts),
		Zgamma: allocTable(m.NSpec, npts),
		Xix:    allocTable(m.NSpec, npts),
		Xiz:    allocTable(m.NSpec, npts),
		Gammax: allocTable(m.NSpec, npts),
		Gammaz: allocTable(m.NSpec, npts),
		Jdet:   allocTable(m.NSpec, npts),
	}

	// The shape derivative matrices depend only on the quadrature
	// point, so evaluate them once and reuse the precomputed entry
	// point across all elements.
	dshapeXi := make([][]float64, npts)
	dshapeGm := make([][]float64, npts)
	for iz := 0; iz < ngllz; iz++ {
		for ix := 0; ix < ngllx; ix++ {
			p := iz*ngllx + ix
			dshapeXi[p], dshapeGm[p] = ShapeDerivatives(quad.X.R.AtVec(ix), quad.Z.R.AtVec(iz), m.NGnod)
		}
	}

	for k := 0; k < m.NSpec; k++ {
		for p := 0; p < npts; p++ {
			xxi, xgamma, zxi, zgamma := PartialDerivativesShape(m.CoorgX[k], m.CoorgZ[k], dshapeXi[p], dshapeGm[p])
			det := Jacobian(xxi, zxi, xgamma, zgamma)
			if det <= 0 {
				err = fmt.Errorf("non-positive Jacobian determinant %g in element %d at quadrature point (%d,%d): degenerate or folded geometry",
					det, k, p%ngllx, p/ngllx)
				gf = nil
				return
			}
			gf.Xxi[k][p] = xxi
			gf.Xgamma[k][p] = xgamma
			gf.Zxi[k][p] = zxi
			gf.Zgamma[k][p] = zgamma
			gf.Xix[k][p] = zgamma / det
			gf.Xiz[k][p] = -xgamma / det
			gf.Gammax[k][p] = -zxi / det
			gf.Gammaz[k][p] = xxi / det
			gf.Jdet[k][p] = det
		}
	}
	return
}

func allocTable(nspec, npts int) (t [][]float64) {
	t = make([][]float64, nspec)
	backing := make([]float64, nspec*npts)
	for k := range t {
		t[k] = backing[k*npts : (k+1)*npts : (k+1)*npts]
	}
	return
}
