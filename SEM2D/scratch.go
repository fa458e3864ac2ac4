package SEM2D

// ElementScratch is the per-work-group staging area for one element's
// computation: the staged subset of the global field, the element's
// index mapping and control node coordinates, and the kernel outputs.
// One scratch belongs to exactly one work group; it is reset by the
// next Load, never reallocated, never shared across elements and never
// retained across time steps.
type ElementScratch struct {
	NGLLX, NGLLZ int
	K            int // element currently staged
	FieldX       []float64
	FieldZ       []float64
	Iglob        []int
	CoorgX       []float64
	CoorgZ       []float64
	// gradient kernel outputs, per quadrature point
	DuxDx, DuxDz []float64
	DuzDx, DuzDz []float64
	// stress integrands, produced by the material collaborator and
	// consumed immediately by the accumulation kernel
	SI1, SI2, SI3, SI4 []float64
}

func NewElementScratch(ngllx, ngllz, ngnod int) (s *ElementScratch) {
	var (
		npts = ngllx * ngllz
	)
	s = &ElementScratch{
		NGLLX:  ngllx,
		NGLLZ:  ngllz,
		K:      -1,
		FieldX: make([]float64, npts),
		FieldZ: make([]float64, npts),
		Iglob:  make([]int, npts),
		CoorgX: make([]float64, ngnod),
		CoorgZ: make([]float64, ngnod),
		DuxDx:  make([]float64, npts),
		DuxDz:  make([]float64, npts),
		DuzDx:  make([]float64, npts),
		DuzDz:  make([]float64, npts),
		SI1:    make([]float64, npts),
		SI2:    make([]float64, npts),
		SI3:    make([]float64, npts),
		SI4:    make([]float64, npts),
	}
	return
}

// Load stages element k's displacement samples, index mapping and
// control node coordinates out of the shared global arrays into local
// storage. All staging completes before the gradient kernel reads any
// neighboring quadrature point value.
func (s *ElementScratch) Load(m *Mesh, f *Fields, k int) {
	var (
		iglob = m.Iglob[k]
	)
	s.K = k
	for p, ig := range iglob {
		s.FieldX[p] = f.DisplX[ig]
		s.FieldZ[p] = f.DisplZ[ig]
		s.Iglob[p] = ig
	}
	copy(s.CoorgX, m.CoorgX[k])
	copy(s.CoorgZ, m.CoorgZ[k])
}
