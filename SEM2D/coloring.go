package SEM2D

import "github.com/james-bowman/sparse"

// ColorElements partitions the elements into color batches such that
// no two elements of the same color share a global degree of freedom.
// Elements of one color can then scatter-add concurrently without
// atomics or locks; batches execute in sequence.
//
// Adjacency comes from the element-to-DOF incidence matrix: the
// product A*A^T has a nonzero off-diagonal entry exactly where two
// elements share at least one global index.
func ColorElements(m *Mesh) (colors [][]int) {
	var (
		nspec = m.NSpec
	)
	incidence := sparse.NewDOK(nspec, m.NGlob)
	for k, row := range m.Iglob {
		for _, ig := range row {
			incidence.Set(k, ig, 1)
		}
	}
	A := incidence.ToCSR()
	adj := sparse.NewCSR(nspec, nspec, nil, nil, nil)
	adj.Mul(A, A.T())

	neighbors := make([][]int, nspec)
	adj.DoNonZero(func(i, j int, v float64) {
		if i != j {
			neighbors[i] = append(neighbors[i], j)
		}
	})

	// greedy first-fit coloring in element order
	colorOf := make([]int, nspec)
	for k := range colorOf {
		colorOf[k] = -1
	}
	var ncolors int
	for k := 0; k < nspec; k++ {
		taken := make([]bool, ncolors+1)
		for _, j := range neighbors[k] {
			if c := colorOf[j]; c >= 0 {
				taken[c] = true
			}
		}
		c := 0
		for c < len(taken) && taken[c] {
			c++
		}
		colorOf[k] = c
		if c+1 > ncolors {
			ncolors = c + 1
		}
	}

	colors = make([][]int, ncolors)
	for k, c := range colorOf {
		colors[c] = append(colors[c], k)
	}
	return
}
