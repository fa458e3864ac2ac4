package SEM2D

import (
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/icui/gosem2d/utils"
)

// Fields holds the global wavefield arrays, one flat slice per
// component, indexed by global degree-of-freedom id. Allocated once
// per simulation; the accumulation kernel mutates acceleration, the
// external time integrator mutates displacement and velocity.
type Fields struct {
	NGlob          int
	DisplX, DisplZ []float64
	VelocX, VelocZ []float64
	AccelX, AccelZ []float64
}

func NewFields(nglob int) (f *Fields) {
	f = &Fields{
		NGlob:  nglob,
		DisplX: make([]float64, nglob),
		DisplZ: make([]float64, nglob),
		VelocX: make([]float64, nglob),
		VelocZ: make([]float64, nglob),
		AccelX: make([]float64, nglob),
		AccelZ: make([]float64, nglob),
	}
	return
}

// ResetAcceleration zeros the acceleration arrays at an integration
// boundary before the next force accumulation sweep.
func (f *Fields) ResetAcceleration() {
	for i := range f.AccelX {
		f.AccelX[i] = 0
		f.AccelZ[i] = 0
	}
}

// AtomicAddFloat64 adds v to addr with a compare-and-swap loop, safe
// against concurrent adders to the same global index.
func AtomicAddFloat64(addr *float64, v float64) {
	bits := (*uint64)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint64(bits)
		new := math.Float64bits(math.Float64frombits(old) + v)
		if atomic.CompareAndSwapUint64(bits, old, new) {
			return
		}
	}
}

// Sample returns the field values at one global index, for the
// external output component that records node locations over time.
func (f *Fields) Sample(iglob int) (ux, uz, vx, vz, ax, az float64) {
	ux, uz = f.DisplX[iglob], f.DisplZ[iglob]
	vx, vz = f.VelocX[iglob], f.VelocZ[iglob]
	ax, az = f.AccelX[iglob], f.AccelZ[iglob]
	return
}

// Receivers records displacement time series at a fixed set of global
// indices, one row per recorded step, columns (x,z) per receiver.
type Receivers struct {
	Iglob  []int
	NSteps int
	SeisX  utils.Matrix
	SeisZ  utils.Matrix
	row    int
}

func NewReceivers(iglob []int, nsteps, nglob int) (r *Receivers, err error) {
	for i, ig := range iglob {
		if ig < 0 || ig >= nglob {
			err = fmt.Errorf("receiver %d at global index %d, valid range [0,%d)", i, ig, nglob)
			return
		}
	}
	r = &Receivers{
		Iglob:  iglob,
		NSteps: nsteps,
		SeisX:  utils.NewMatrix(nsteps, len(iglob)),
		SeisZ:  utils.NewMatrix(nsteps, len(iglob)),
	}
	return
}

// Record samples every receiver location from the current fields.
func (r *Receivers) Record(f *Fields) {
	if r.row >= r.NSteps {
		panic(fmt.Errorf("receiver recording overflow: %d steps allocated", r.NSteps))
	}
	for j, ig := range r.Iglob {
		r.SeisX.Set(r.row, j, f.DisplX[ig])
		r.SeisZ.Set(r.row, j, f.DisplZ[ig])
	}
	r.row++
}
