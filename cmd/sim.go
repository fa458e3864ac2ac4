/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/icui/gosem2d/InputParameters"
	"github.com/icui/gosem2d/SEM2D"
	"github.com/icui/gosem2d/model_problems/Elastic2D"
)

type SimModel struct {
	ICFile    string
	Profile   bool
	ProcLimit int
}

// SimCmd represents the sim command
var SimCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the force computation sweep over a structured spectral element mesh",
	Long: `
Builds a structured 2D spectral element mesh, stages each element into
local scratch, computes field gradients and accumulates the weak form
force contributions into the global acceleration field, repeatedly, in
parallel across elements.

gosem2d sim -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		sm := &SimModel{}
		sm.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		sm.Profile, _ = cmd.Flags().GetBool("profile")
		sm.ProcLimit, _ = cmd.Flags().GetInt("procLimit")
		ip := processSimInput(sm)
		RunSim(sm, ip)
	},
}

func processSimInput(sm *SimModel) (ip *InputParameters.InputParameters2D) {
	ip = &InputParameters.InputParameters2D{}
	if len(sm.ICFile) == 0 {
		exampleFile := `
########################################
Title: "Test Case"
NGLL: 5
NGnod: 9
NElemX: 40
NElemZ: 40
SizeX: 1.
SizeZ: 1.
NSteps: 100
Accumulation: colored # Can be "atomic"
########################################
`
		fmt.Printf("no input file given, using defaults; example file (-I, --inputConditionsFile):%s\n", exampleFile)
		if err := ip.Parse([]byte("{}")); err != nil {
			panic(err)
		}
		return
	}
	data, err := os.ReadFile(sm.ICFile)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err = ip.Parse(data); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func init() {
	rootCmd.AddCommand(SimCmd)
	SimCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- NGLL\n\t- NElemX/NElemZ")
	SimCmd.Flags().BoolP("profile", "p", false, "write a CPU profile for the run")
	SimCmd.Flags().IntP("procLimit", "n", 0, "limit the number of parallel goroutines, 0 uses all CPUs")
}

func RunSim(sm *SimModel, ip *InputParameters.InputParameters2D) {
	if sm.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	ip.Print()

	mesh, err := SEM2D.NewStructuredMesh(ip.NElemX, ip.NElemZ, ip.SizeX, ip.SizeZ, ip.NGLL, ip.NGnod)
	if err != nil {
		fmt.Printf("mesh construction failed: %s\n", err.Error())
		os.Exit(1)
	}
	mode := Elastic2D.Colored
	if ip.Accumulation == "atomic" {
		mode = Elastic2D.Atomic
	}
	procLimit := ip.ProcLimit
	if sm.ProcLimit > 0 {
		procLimit = sm.ProcLimit
	}
	c, err := Elastic2D.NewElastic2D(mesh, Elastic2D.IdentityStressModel{}, mode, procLimit, true)
	if err != nil {
		fmt.Printf("solver construction failed: %s\n", err.Error())
		os.Exit(1)
	}

	initPulse(mesh, c)

	var rcv *SEM2D.Receivers
	if len(ip.Receivers) != 0 {
		if rcv, err = SEM2D.NewReceivers(ip.Receivers, ip.NSteps, mesh.NGlob); err != nil {
			fmt.Printf("receiver setup failed: %s\n", err.Error())
			os.Exit(1)
		}
	}

	elapsed := time.Duration(0)
	for step := 0; step < ip.NSteps; step++ {
		start := time.Now()
		c.UpdateAcceleration()
		elapsed += time.Since(start)
		if rcv != nil {
			rcv.Record(c.Fields)
		}
	}
	rate := float64(ip.NSteps) * float64(mesh.NSpec) / elapsed.Seconds()
	fmt.Printf("%d sweeps over %d elements in %v, %8.0f elements/sec\n",
		ip.NSteps, mesh.NSpec, elapsed, rate)
}

// initPulse seeds the displacement field with a Gaussian centered in
// the domain so the kernels have nonzero work to do.
func initPulse(m *SEM2D.Mesh, c *Elastic2D.Elastic2D) {
	var (
		quad = c.Quad
		xc   = 0.5
		zc   = 0.5
	)
	// physical extent from the control nodes
	var xmax, zmax float64
	for k := 0; k < m.NSpec; k++ {
		for a := 0; a < m.NGnod; a++ {
			xmax = math.Max(xmax, m.CoorgX[k][a])
			zmax = math.Max(zmax, m.CoorgZ[k][a])
		}
	}
	xc *= xmax
	zc *= zmax
	sigma := 0.05 * math.Max(xmax, zmax)

	for k := 0; k < m.NSpec; k++ {
		for iz := 0; iz < m.NGLLZ; iz++ {
			for ix := 0; ix < m.NGLLX; ix++ {
				x, z := SEM2D.Locate(m.CoorgX[k], m.CoorgZ[k], quad.X.R.AtVec(ix), quad.Z.R.AtVec(iz))
				r2 := (x-xc)*(x-xc) + (z-zc)*(z-zc)
				ig := m.Iglob[k][iz*m.NGLLX+ix]
				c.Fields.DisplX[ig] = math.Exp(-r2 / (2 * sigma * sigma))
				c.Fields.DisplZ[ig] = 0
			}
		}
	}
}
