package Elastic2D

import (
	"sync"

	"github.com/icui/gosem2d/SEM2D"
	"github.com/icui/gosem2d/utils"
)

// ComputeForces runs one staging -> gradient -> material ->
// accumulation sweep over every element, accumulating into the global
// acceleration arrays. Work groups (one per element) execute
// concurrently across goroutine partitions; inside a work group the
// phases run in program order, which provides the staging and
// gradient barriers the later phases depend on.
func (c *Elastic2D) ComputeForces() {
	switch c.Mode {
	case Atomic:
		c.sweepAtomic()
	default:
		c.sweepColored()
	}
}

// sweepColored processes the DOF-disjoint color batches in sequence.
// Elements within one batch never alias a global index, so their
// scatter-adds are plain writes; the WaitGroup barrier between
// batches orders writes from elements that do share indices.
func (c *Elastic2D) sweepColored() {
	var (
		wg = sync.WaitGroup{}
	)
	for _, batch := range c.Colors {
		pm := utils.NewPartitionMap(c.ParallelDegree, len(batch))
		for np := 0; np < pm.ParallelDegree; np++ {
			wg.Add(1)
			go func(np int) {
				defer wg.Done()
				var (
					s          = c.scratch[np]
					kmin, kmax = pm.GetBucketRange(np)
				)
				for i := kmin; i < kmax; i++ {
					c.processElement(s, batch[i], false)
				}
			}(np)
		}
		wg.Wait()
	}
}

// sweepAtomic processes all elements in one concurrent pass; aliased
// scatter-adds are reconciled by CAS accumulation.
func (c *Elastic2D) sweepAtomic() {
	var (
		wg = sync.WaitGroup{}
		pm = utils.NewPartitionMap(c.ParallelDegree, c.Mesh.NSpec)
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				s          = c.scratch[np]
				kmin, kmax = pm.GetBucketRange(np)
			)
			for k := kmin; k < kmax; k++ {
				c.processElement(s, k, true)
			}
		}(np)
	}
	wg.Wait()
}

func (c *Elastic2D) processElement(s *SEM2D.ElementScratch, k int, atomicAdd bool) {
	s.Load(c.Mesh, c.Fields, k)
	c.Kernel.ComputeGradients(s, c.Factors, k)
	c.Model.ComputeStressIntegrands(s, c.Factors, k)
	c.Kernel.AddContributions(s, c.Fields, atomicAdd)
}
