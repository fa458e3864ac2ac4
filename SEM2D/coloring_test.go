package SEM2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColoringDisjointDOFs(t *testing.T) {
	m, err := NewStructuredMesh(4, 3, 1, 1, 4, 4)
	require.NoError(t, err)
	colors := ColorElements(m)

	// every element appears exactly once
	seen := make([]int, m.NSpec)
	for _, batch := range colors {
		for _, k := range batch {
			seen[k]++
		}
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "element %d", k)
	}

	// no two elements of one color share a global index
	for c, batch := range colors {
		owner := make(map[int]int)
		for _, k := range batch {
			for _, ig := range m.Iglob[k] {
				if prev, exists := owner[ig]; exists {
					assert.Fail(t, "shared DOF inside one color",
						"color %d: elements %d and %d both map DOF %d", c, prev, k, ig)
				}
				owner[ig] = k
			}
		}
	}

	// neighbors in a structured quad mesh force at least 4 colors
	assert.GreaterOrEqual(t, len(colors), 4)
}

func TestColoringSingleElement(t *testing.T) {
	m, err := NewStructuredMesh(1, 1, 1, 1, 3, 4)
	require.NoError(t, err)
	colors := ColorElements(m)
	assert.Len(t, colors, 1)
	assert.Equal(t, []int{0}, colors[0])
}
