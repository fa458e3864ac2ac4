package SEM2D

import "fmt"

// Shape functions for the element geometry mapping. Control nodes
// follow the standard 2D quad ordering: corners
// (-1,-1),(1,-1),(1,1),(-1,1), then for the 9 node element the edge
// midpoints (0,-1),(1,0),(0,1),(-1,0) and the center (0,0).

// quadratic 1D basis at nodes -1, 0, 1
func quad1D(t float64) (lm, l0, lp float64) {
	lm = 0.5 * t * (t - 1)
	l0 = 1 - t*t
	lp = 0.5 * t * (t + 1)
	return
}

func quad1DDeriv(t float64) (lm, l0, lp float64) {
	lm = t - 0.5
	l0 = -2 * t
	lp = t + 0.5
	return
}

// ShapeFunctions evaluates the ngnod geometry shape functions at a
// reference point. ngnod must be 4 or 9; anything else is a
// configuration defect and panics.
func ShapeFunctions(xi, gamma float64, ngnod int) (shape []float64) {
	shape = make([]float64, ngnod)
	switch ngnod {
	case 4:
		shape[0] = 0.25 * (1 - xi) * (1 - gamma)
		shape[1] = 0.25 * (1 + xi) * (1 - gamma)
		shape[2] = 0.25 * (1 + xi) * (1 + gamma)
		shape[3] = 0.25 * (1 - xi) * (1 + gamma)
	case 9:
		xm, x0, xp := quad1D(xi)
		gm, g0, gp := quad1D(gamma)
		shape[0] = xm * gm
		shape[1] = xp * gm
		shape[2] = xp * gp
		shape[3] = xm * gp
		shape[4] = x0 * gm
		shape[5] = xp * g0
		shape[6] = x0 * gp
		shape[7] = xm * g0
		shape[8] = x0 * g0
	default:
		panic(fmt.Errorf("unsupported control node count %d, must be 4 or 9", ngnod))
	}
	return
}

// ShapeDerivatives evaluates the partial derivatives of the shape
// functions with respect to (xi, gamma) at a reference point.
func ShapeDerivatives(xi, gamma float64, ngnod int) (dxi, dgamma []float64) {
	dxi = make([]float64, ngnod)
	dgamma = make([]float64, ngnod)
	switch ngnod {
	case 4:
		dxi[0] = -0.25 * (1 - gamma)
		dxi[1] = 0.25 * (1 - gamma)
		dxi[2] = 0.25 * (1 + gamma)
		dxi[3] = -0.25 * (1 + gamma)
		dgamma[0] = -0.25 * (1 - xi)
		dgamma[1] = -0.25 * (1 + xi)
		dgamma[2] = 0.25 * (1 + xi)
		dgamma[3] = 0.25 * (1 - xi)
	case 9:
		xm, x0, xp := quad1D(xi)
		gm, g0, gp := quad1D(gamma)
		dxm, dx0, dxp := quad1DDeriv(xi)
		dgm, dg0, dgp := quad1DDeriv(gamma)
		dxi[0], dgamma[0] = dxm*gm, xm*dgm
		dxi[1], dgamma[1] = dxp*gm, xp*dgm
		dxi[2], dgamma[2] = dxp*gp, xp*dgp
		dxi[3], dgamma[3] = dxm*gp, xm*dgp
		dxi[4], dgamma[4] = dx0*gm, x0*dgm
		dxi[5], dgamma[5] = dxp*g0, xp*dg0
		dxi[6], dgamma[6] = dx0*gp, x0*dgp
		dxi[7], dgamma[7] = dxm*g0, xm*dg0
		dxi[8], dgamma[8] = dx0*g0, x0*dg0
	default:
		panic(fmt.Errorf("unsupported control node count %d, must be 4 or 9", ngnod))
	}
	return
}

// Locate maps a reference point (xi, gamma) to physical coordinates
// by interpolation through the element control nodes.
func Locate(coorgX, coorgZ []float64, xi, gamma float64) (x, z float64) {
	shape := ShapeFunctions(xi, gamma, len(coorgX))
	x, z = LocateShape(coorgX, coorgZ, shape)
	return
}

// LocateShape is the precomputed-shape-function entry point of Locate,
// used when (xi, gamma) is a quadrature point evaluated repeatedly
// across the mesh.
func LocateShape(coorgX, coorgZ, shape []float64) (x, z float64) {
	if len(shape) != len(coorgX) || len(coorgX) != len(coorgZ) {
		panic(fmt.Errorf("shape function length %d does not match control node count %d",
			len(shape), len(coorgX)))
	}
	for a, s := range shape {
		x += s * coorgX[a]
		z += s * coorgZ[a]
	}
	return
}

// PartialDerivatives computes the mapping derivatives
// (dx/dxi, dx/dgamma, dz/dxi, dz/dgamma) at a reference point.
func PartialDerivatives(coorgX, coorgZ []float64, xi, gamma float64) (xxi, xgamma, zxi, zgamma float64) {
	dxi, dgamma := ShapeDerivatives(xi, gamma, len(coorgX))
	xxi, xgamma, zxi, zgamma = PartialDerivativesShape(coorgX, coorgZ, dxi, dgamma)
	return
}

// PartialDerivativesShape is the precomputed-derivative entry point of
// PartialDerivatives.
func PartialDerivativesShape(coorgX, coorgZ, dxi, dgamma []float64) (xxi, xgamma, zxi, zgamma float64) {
	if len(dxi) != len(coorgX) || len(coorgX) != len(coorgZ) {
		panic(fmt.Errorf("shape derivative length %d does not match control node count %d",
			len(dxi), len(coorgX)))
	}
	for a := range coorgX {
		xxi += dxi[a] * coorgX[a]
		xgamma += dgamma[a] * coorgX[a]
		zxi += dxi[a] * coorgZ[a]
		zgamma += dgamma[a] * coorgZ[a]
	}
	return
}

// Jacobian computes the determinant of the mapping at a point. A valid
// element has a strictly positive determinant everywhere; callers
// treat a non-positive value as a terminal geometry fault.
func Jacobian(xxi, zxi, xgamma, zgamma float64) (det float64) {
	det = xxi*zgamma - xgamma*zxi
	return
}
