package SEM2D

import "fmt"

// Mesh holds the per-element tables the compute core consumes: control
// node coordinates for the geometry mapping and the global index
// mapping for every local quadrature point. The tables are produced by
// an external mesh/database construction step and are immutable here.
//
// Local quadrature points are flattened as iz*NGLLX + ix.
type Mesh struct {
	NSpec        int // Total number of spectral elements
	NGlob        int // Total number of global degrees of freedom
	NGnod        int // Control nodes per element, fixed mesh-wide
	NGLLX, NGLLZ int
	CoorgX       [][]float64 // [NSpec][NGnod]
	CoorgZ       [][]float64
	Iglob        [][]int // [NSpec][NGLLZ*NGLLX]
}

// NewMesh validates the supplied tables and assembles the mesh. Any
// inconsistency is a terminal construction error: no partial mesh is
// usable.
func NewMesh(nglob, ngnod, ngllx, ngllz int, coorgX, coorgZ [][]float64, iglob [][]int) (m *Mesh, err error) {
	var (
		nspec = len(iglob)
		npts  = ngllx * ngllz
	)
	if nspec == 0 || nglob <= 0 {
		err = fmt.Errorf("mesh must have elements and global points, have nspec = %d, nglob = %d",
			nspec, nglob)
		return
	}
	if ngnod != 4 && ngnod != 9 {
		err = fmt.Errorf("control nodes per element must be 4 or 9, have %d", ngnod)
		return
	}
	if ngllx < 2 || ngllz < 2 {
		err = fmt.Errorf("need at least 2 quadrature points per dimension, have %d x %d", ngllx, ngllz)
		return
	}
	if len(coorgX) != nspec || len(coorgZ) != nspec {
		err = fmt.Errorf("control node tables cover %d,%d elements, expected %d",
			len(coorgX), len(coorgZ), nspec)
		return
	}
	for k := 0; k < nspec; k++ {
		if len(coorgX[k]) != ngnod || len(coorgZ[k]) != ngnod {
			err = fmt.Errorf("element %d has %d,%d control nodes, expected %d",
				k, len(coorgX[k]), len(coorgZ[k]), ngnod)
			return
		}
		if len(iglob[k]) != npts {
			err = fmt.Errorf("element %d index map has %d entries, expected %d",
				k, len(iglob[k]), npts)
			return
		}
		for p, ig := range iglob[k] {
			if ig < 0 || ig >= nglob {
				err = fmt.Errorf("element %d point %d maps to global index %d, valid range [0,%d)",
					k, p, ig, nglob)
				return
			}
		}
	}
	m = &Mesh{
		NSpec:  nspec,
		NGlob:  nglob,
		NGnod:  ngnod,
		NGLLX:  ngllx,
		NGLLZ:  ngllz,
		CoorgX: coorgX,
		CoorgZ: coorgZ,
		Iglob:  iglob,
	}
	return
}

// NewStructuredMesh builds a rectangular nex x nez element mesh on
// [0,sizeX] x [0,sizeZ] with correctly shared edge and corner degrees
// of freedom. It stands in for the external database collaborator in
// tests and demos.
func NewStructuredMesh(nex, nez int, sizeX, sizeZ float64, ngll, ngnod int) (m *Mesh, err error) {
	if nex < 1 || nez < 1 {
		err = fmt.Errorf("need at least one element per dimension, have %d x %d", nex, nez)
		return
	}
	var (
		nspec  = nex * nez
		nxg    = nex*(ngll-1) + 1 // global GLL grid dimensions
		nzg    = nez*(ngll-1) + 1
		nglob  = nxg * nzg
		dx     = sizeX / float64(nex)
		dz     = sizeZ / float64(nez)
		coorgX = make([][]float64, nspec)
		coorgZ = make([][]float64, nspec)
		iglob  = make([][]int, nspec)
	)
	for ez := 0; ez < nez; ez++ {
		for ex := 0; ex < nex; ex++ {
			k := ez*nex + ex
			x0, z0 := float64(ex)*dx, float64(ez)*dz
			coorgX[k], coorgZ[k] = controlNodes(x0, z0, dx, dz, ngnod)
			iglob[k] = make([]int, ngll*ngll)
			for iz := 0; iz < ngll; iz++ {
				for ix := 0; ix < ngll; ix++ {
					gx := ex*(ngll-1) + ix
					gz := ez*(ngll-1) + iz
					iglob[k][iz*ngll+ix] = gz*nxg + gx
				}
			}
		}
	}
	m, err = NewMesh(nglob, ngnod, ngll, ngll, coorgX, coorgZ, iglob)
	return
}

func controlNodes(x0, z0, dx, dz float64, ngnod int) (cx, cz []float64) {
	switch ngnod {
	case 4:
		cx = []float64{x0, x0 + dx, x0 + dx, x0}
		cz = []float64{z0, z0, z0 + dz, z0 + dz}
	case 9:
		xm := x0 + 0.5*dx
		zm := z0 + 0.5*dz
		cx = []float64{x0, x0 + dx, x0 + dx, x0, xm, x0 + dx, xm, x0, xm}
		cz = []float64{z0, z0, z0 + dz, z0 + dz, z0, zm, z0 + dz, zm, zm}
	default:
		panic(fmt.Errorf("unsupported control node count %d, must be 4 or 9", ngnod))
	}
	return
}

// MapNodes applies a coordinate transform to every control node. Used
// to build distorted but valid meshes; the geometric factor
// construction rejects the result if any element folds.
func (m *Mesh) MapNodes(f func(x, z float64) (float64, float64)) {
	for k := 0; k < m.NSpec; k++ {
		for a := 0; a < m.NGnod; a++ {
			m.CoorgX[k][a], m.CoorgZ[k][a] = f(m.CoorgX[k][a], m.CoorgZ[k][a])
		}
	}
}
