package SEM2D

import (
	"fmt"
	"math"

	"github.com/icui/gosem2d/utils"
	"gonum.org/v1/gonum/mat"
)

// GLL holds the 1D Gauss-Lobatto-Legendre quadrature table for one
// dimension: point locations R on [-1,1], weights W, the Lagrange
// derivative matrix Hprime(i,j) = l'_j(R_i), and the weight-scaled
// matrix Hprimew(i,j) = W(i)*Hprime(i,j) used by the weak-form
// accumulation. Immutable after construction, shared by all elements.
type GLL struct {
	NGLL    int
	R, W    utils.Vector
	Hprime  utils.Matrix
	Hprimew utils.Matrix
}

func NewGLL(ngll int) (q *GLL, err error) {
	var (
		N = ngll - 1
	)
	if ngll < 2 {
		err = fmt.Errorf("need at least 2 quadrature points per dimension, have %d", ngll)
		return
	}
	q = &GLL{NGLL: ngll}
	q.R = JacobiGL(0, 0, N)
	q.W = LobattoWeights(q.R)
	V := Vandermonde1D(N, q.R)
	Vinv, err := V.Inverse()
	if err != nil {
		err = fmt.Errorf("quadrature Vandermonde inversion failed: %s", err.Error())
		return
	}
	Vr := GradVandermonde1D(q.R, N)
	q.Hprime = Vr.Mul(Vinv)
	q.Hprimew = q.Hprime.Copy()
	for j := 0; j < ngll; j++ {
		for i := 0; i < ngll; i++ {
			q.Hprimew.Set(i, j, q.W.AtVec(i)*q.Hprime.At(i, j))
		}
	}
	return
}

// Quadrature pairs the per-dimension tables. The X and Z tables are
// allowed to differ in principle; the specialized kernels require
// X.NGLL == Z.NGLL.
type Quadrature struct {
	X, Z *GLL
}

func NewQuadrature(ngllx, ngllz int) (quad *Quadrature, err error) {
	var (
		qx, qz *GLL
	)
	if qx, err = NewGLL(ngllx); err != nil {
		return
	}
	if ngllz == ngllx {
		qz = qx
	} else if qz, err = NewGLL(ngllz); err != nil {
		return
	}
	quad = &Quadrature{X: qx, Z: qz}
	return
}

// JacobiGQ computes the N+1 point Gauss quadrature points and weights
// for the Jacobi polynomial of type (alpha,beta) via the eigenvalues
// of the symmetric tridiagonal recurrence matrix.
func JacobiGQ(alpha, beta float64, N int) (X, W utils.Vector) {
	var (
		x, w       []float64
		fac        float64
		h1, d0, d1 []float64
	)
	if N == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w = []float64{2.}
		return utils.NewVector(len(x), x), utils.NewVector(len(w), w)
	}

	h1 = make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	d0 = make([]float64, N+1)
	fac = -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}
	// Handle division by zero
	eps := 1.e-16
	if alpha+beta < 10*eps {
		d0[0] = 0.
	}

	var ip1 float64
	d1 = make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 = float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	JJ := newSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	ok := eig.Factorize(JJ, true)
	if !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(x)
	X = utils.NewVector(N+1, x)

	VVr := mat.NewDense(len(x), len(x), nil)
	eig.VectorsTo(VVr)
	W = utils.NewVector(len(x), VVr.RawRowView(0))
	wd := W.Data()
	g0 := gamma0(alpha, beta)
	for i := range wd {
		wd[i] = wd[i] * wd[i] * g0
	}
	return
}

// JacobiGL computes the N+1 Gauss-Lobatto points of the (alpha,beta)
// Jacobi polynomial, endpoints included.
func JacobiGL(alpha, beta float64, N int) (X utils.Vector) {
	var (
		x = make([]float64, N+1)
	)
	if N == 1 {
		x[0], x[1] = -1, 1
		X = utils.NewVector(N+1, x)
		return
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	x[0] = -1
	x[N] = 1
	copy(x[1:N], xint.Data())
	X = utils.NewVector(N+1, x)
	return
}

// LobattoWeights computes the GLL weights 2/(N*(N+1)*P_N(x_i)^2) for
// the Legendre polynomial of degree N = len(R)-1.
func LobattoWeights(R utils.Vector) (W utils.Vector) {
	var (
		ngll = R.Len()
		N    = ngll - 1
		fN   = float64(N)
		w    = make([]float64, ngll)
	)
	for i := 0; i < ngll; i++ {
		p := legendreP(R.AtVec(i), N)
		w[i] = 2. / (fN * (fN + 1) * p * p)
	}
	W = utils.NewVector(ngll, w)
	return
}

// legendreP evaluates the (unnormalized) Legendre polynomial by the
// three-term recurrence.
func legendreP(x float64, N int) (p float64) {
	var (
		pm1, pm2 = x, 1.
	)
	switch N {
	case 0:
		return 1
	case 1:
		return x
	}
	for n := 1; n < N; n++ {
		fn := float64(n)
		p = ((2*fn+1)*x*pm1 - fn*pm2) / (fn + 1)
		pm2, pm1 = pm1, p
	}
	return
}

func Vandermonde1D(N int, R utils.Vector) (V utils.Matrix) {
	V = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j < N+1; j++ {
		V.SetCol(j, JacobiP(R, 0, 0, j))
	}
	return
}

func GradVandermonde1D(R utils.Vector, N int) (Vr utils.Matrix) {
	Vr = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j < N+1; j++ {
		Vr.SetCol(j, GradJacobiP(R, 0, 0, j))
	}
	return
}

// JacobiP evaluates the orthonormalized Jacobi polynomial of order N
// at the points in r.
func JacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = r.Len()
	)
	rg := 1. / math.Sqrt(gamma0(alpha, beta))
	if N == 0 {
		p = utils.ConstArray(rg, Nc)
		return
	}
	Np1 := N + 1
	pl := make([]float64, Np1*Nc)
	for i := 0; i < Nc; i++ {
		pl[i] = rg
	}

	iter := Nc // Increment to next row
	ab := alpha + beta
	rg1 := 1. / math.Sqrt(gamma1(alpha, beta))
	for i := 0; i < Nc; i++ {
		pl[i+iter] = rg1 * ((ab+2.0)*r.AtVec(i)/2.0 + (alpha-beta)/2.0)
	}

	if N == 1 {
		p = pl[iter : iter+Nc]
		return
	}

	a1 := alpha + 1.
	b1 := beta + 1.
	ab1 := ab + 1.
	aold := 2.0 * math.Sqrt(a1*b1/(ab+3.0)) / (ab + 2.0)
	PL := mat.NewDense(Np1, Nc, pl)
	var xrow []float64
	for i := 0; i < N-1; i++ {
		ip1 := float64(i + 1)
		ip2 := ip1 + 1
		h1 := 2.0*ip1 + ab
		anew := 2.0 / (h1 + 2.0) * math.Sqrt(ip2*(ip1+ab1)*(ip1+a1)*(ip1+b1)/(h1+1.0)/(h1+3.0))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2.0)
		xi := PL.RawRowView(i)
		xip1 := PL.RawRowView(i + 1)
		xrow = make([]float64, len(xi))
		for j := range xi {
			xrow[j] = (-aold*xi[j] + (r.AtVec(j)-bnew)*xip1[j]) / anew
		}
		PL.SetRow(i+2, xrow)
		aold = anew
	}
	p = PL.RawRowView(N)
	return
}

func GradJacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		p = make([]float64, r.Len())
		return
	}
	p = JacobiP(r, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1))
	for i, val := range p {
		p[i] = val * fac
	}
	return
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Pow(2, ab1) / ab1 * math.Gamma(a1) * math.Gamma(b1) / math.Gamma(ab1)
}

func gamma1(alpha, beta float64) float64 {
	ab := alpha + beta
	a1 := alpha + 1.
	b1 := beta + 1.
	return a1 * b1 * gamma0(alpha, beta) / (ab + 3.0)
}

func newSymTriDiagonal(d0, d1 []float64) (JJ *mat.SymDense) {
	var (
		n = len(d0)
	)
	JJ = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		JJ.SetSym(i, i, d0[i])
		if i < n-1 {
			JJ.SetSym(i, i+1, d1[i])
		}
	}
	return
}
