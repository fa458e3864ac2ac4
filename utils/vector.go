package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vector wraps gonum's VecDense the same way Matrix wraps Dense.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (V Vector) {
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v",
				n, len(dataO[0]))
			panic(err)
		}
		V = Vector{mat.NewVecDense(n, dataO[0])}
	} else {
		V = Vector{mat.NewVecDense(n, make([]float64, n))}
	}
	return
}

func (v Vector) Len() int            { return v.V.Len() }
func (v Vector) AtVec(i int) float64 { return v.V.AtVec(i) }
func (v Vector) Data() []float64     { return v.V.RawVector().Data }

func (v Vector) Set(val float64) Vector {
	var (
		data = v.Data()
	)
	for i := range data {
		data[i] = val
	}
	return v
}

func (v Vector) Scale(a float64) Vector {
	var (
		data = v.Data()
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) Copy() (R Vector) {
	var (
		data = make([]float64, v.Len())
	)
	copy(data, v.Data())
	R = NewVector(v.Len(), data)
	return
}

func (v Vector) Sum() (s float64) {
	for _, val := range v.Data() {
		s += val
	}
	return
}

func ConstArray(val float64, n int) (data []float64) {
	data = make([]float64, n)
	for i := range data {
		data[i] = val
	}
	return
}
