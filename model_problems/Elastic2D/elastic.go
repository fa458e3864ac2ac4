package Elastic2D

import (
	"fmt"
	"runtime"

	"github.com/icui/gosem2d/SEM2D"
)

// StressModel is the external material/constitutive collaborator. Each
// step it turns the gradients the kernels computed into the four
// stress integrands, writing SI1..SI4 of the scratch for every
// quadrature point of the staged element:
//
//	SI1 = J*(sigma_xx*xix + sigma_xz*xiz)
//	SI2 = J*(sigma_xz*xix + sigma_zz*xiz)
//	SI3 = J*(sigma_xx*gammax + sigma_xz*gammaz)
//	SI4 = J*(sigma_xz*gammax + sigma_zz*gammaz)
type StressModel interface {
	ComputeStressIntegrands(s *SEM2D.ElementScratch, gf *SEM2D.GeometricFactors, k int)
}

// AccumulationMode selects how concurrent scatter-adds into shared
// global indices are reconciled.
type AccumulationMode int

const (
	// Colored schedules elements in DOF-disjoint batches; writes
	// within a batch are lock-free by construction.
	Colored AccumulationMode = iota
	// Atomic runs all elements concurrently with CAS adds.
	Atomic
)

func (m AccumulationMode) Print() string {
	if m == Atomic {
		return "atomic"
	}
	return "colored"
}

// Elastic2D drives the per-element force computation over a 2D
// spectral element mesh: one independent work group per element,
// staged local data, cached geometric factors, gradient and
// accumulation kernels, and an external stress model between them.
type Elastic2D struct {
	Mesh           *SEM2D.Mesh
	Quad           *SEM2D.Quadrature
	Factors        *SEM2D.GeometricFactors
	Fields         *SEM2D.Fields
	Kernel         SEM2D.ElementKernel
	Model          StressModel
	Mode           AccumulationMode
	Colors         [][]int
	ParallelDegree int
	scratch        []*SEM2D.ElementScratch
}

func NewElastic2D(m *SEM2D.Mesh, model StressModel, mode AccumulationMode,
	procLimit int, verbose bool) (c *Elastic2D, err error) {
	c = &Elastic2D{
		Mesh:  m,
		Model: model,
		Mode:  mode,
	}
	if c.Quad, err = SEM2D.NewQuadrature(m.NGLLX, m.NGLLZ); err != nil {
		return
	}
	if c.Factors, err = SEM2D.NewGeometricFactors(m, c.Quad); err != nil {
		return
	}
	c.Fields = SEM2D.NewFields(m.NGlob)
	c.Kernel = SEM2D.NewElementKernel(c.Quad)
	if mode == Colored {
		c.Colors = SEM2D.ColorElements(m)
	}
	c.SetParallelDegree(procLimit)
	c.scratch = make([]*SEM2D.ElementScratch, c.ParallelDegree)
	for np := range c.scratch {
		c.scratch[np] = SEM2D.NewElementScratch(m.NGLLX, m.NGLLZ, m.NGnod)
	}
	if verbose {
		c.PrintInitialization()
	}
	return
}

func (c *Elastic2D) SetParallelDegree(procLimit int) {
	if procLimit > 0 {
		c.ParallelDegree = procLimit
	} else {
		c.ParallelDegree = runtime.NumCPU()
	}
	if c.ParallelDegree > c.Mesh.NSpec {
		c.ParallelDegree = c.Mesh.NSpec
	}
}

func (c *Elastic2D) PrintInitialization() {
	fmt.Printf("Elastic Wave Propagation in 2 Dimensions\n")
	fmt.Printf("Using %d go routines in parallel, %s accumulation\n",
		c.ParallelDegree, c.Mode.Print())
	fmt.Printf("Num Elements K = %d, Quadrature Points = %dx%d, Global DOFs = %d\n",
		c.Mesh.NSpec, c.Mesh.NGLLX, c.Mesh.NGLLZ, c.Mesh.NGlob)
	if c.Mode == Colored {
		fmt.Printf("Element coloring uses %d batches\n", len(c.Colors))
	}
}

// UpdateAcceleration is the per-step entry point for an external time
// integrator: zero the acceleration, then accumulate every element's
// force contribution. Time integration itself lives outside this
// core.
func (c *Elastic2D) UpdateAcceleration() {
	c.Fields.ResetAcceleration()
	c.ComputeForces()
}

// IdentityStressModel treats the displacement gradient tensor itself
// as the (symmetrized) stress tensor. It carries no material
// constants; it exists to exercise the full kernel chain in tests and
// demos.
type IdentityStressModel struct{}

func (IdentityStressModel) ComputeStressIntegrands(s *SEM2D.ElementScratch, gf *SEM2D.GeometricFactors, k int) {
	var (
		xix, xiz = gf.Xix[k], gf.Xiz[k]
		gmx, gmz = gf.Gammax[k], gf.Gammaz[k]
		jdet     = gf.Jdet[k]
	)
	for p := range s.SI1 {
		sxx := s.DuxDx[p]
		szz := s.DuzDz[p]
		sxz := 0.5 * (s.DuxDz[p] + s.DuzDx[p])
		s.SI1[p] = jdet[p] * (sxx*xix[p] + sxz*xiz[p])
		s.SI2[p] = jdet[p] * (sxz*xix[p] + szz*xiz[p])
		s.SI3[p] = jdet[p] * (sxx*gmx[p] + sxz*gmz[p])
		s.SI4[p] = jdet[p] * (sxz*gmx[p] + szz*gmz[p])
	}
}

// ZeroStressModel produces identically zero integrands; the resulting
// acceleration update must be exactly zero.
type ZeroStressModel struct{}

func (ZeroStressModel) ComputeStressIntegrands(s *SEM2D.ElementScratch, gf *SEM2D.GeometricFactors, k int) {
	for p := range s.SI1 {
		s.SI1[p] = 0
		s.SI2[p] = 0
		s.SI3[p] = 0
		s.SI4[p] = 0
	}
}
