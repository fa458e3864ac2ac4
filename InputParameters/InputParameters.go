package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title        string  `yaml:"Title"`
	NGLL         int     `yaml:"NGLL"`         // quadrature points per dimension
	NGnod        int     `yaml:"NGnod"`        // control nodes per element, 4 or 9
	NElemX       int     `yaml:"NElemX"`       // elements in X
	NElemZ       int     `yaml:"NElemZ"`       // elements in Z
	SizeX        float64 `yaml:"SizeX"`        // domain extent in X
	SizeZ        float64 `yaml:"SizeZ"`        // domain extent in Z
	NSteps       int     `yaml:"NSteps"`       // force sweeps to run
	ProcLimit    int     `yaml:"ProcLimit"`    // goroutine cap, 0 = NumCPU
	Accumulation string  `yaml:"Accumulation"` // "colored" or "atomic"
	Receivers    []int   `yaml:"Receivers"`    // global indices to record
}

func (ip *InputParameters2D) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.setDefaults()
}

func (ip *InputParameters2D) setDefaults() error {
	if ip.NGLL == 0 {
		ip.NGLL = 5
	}
	if ip.NGnod == 0 {
		ip.NGnod = 9
	}
	if ip.NElemX == 0 {
		ip.NElemX = 40
	}
	if ip.NElemZ == 0 {
		ip.NElemZ = 40
	}
	if ip.SizeX == 0 {
		ip.SizeX = 1.0
	}
	if ip.SizeZ == 0 {
		ip.SizeZ = 1.0
	}
	if ip.NSteps == 0 {
		ip.NSteps = 100
	}
	if ip.Accumulation == "" {
		ip.Accumulation = "colored"
	}
	if ip.Accumulation != "colored" && ip.Accumulation != "atomic" {
		return fmt.Errorf("unknown Accumulation mode %q, must be colored or atomic", ip.Accumulation)
	}
	return nil
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= NGLL\n", ip.NGLL)
	fmt.Printf("[%d]\t\t\t= NGnod\n", ip.NGnod)
	fmt.Printf("[%d x %d]\t\t= Elements\n", ip.NElemX, ip.NElemZ)
	fmt.Printf("%8.5f x %8.5f\t= Domain size\n", ip.SizeX, ip.SizeZ)
	fmt.Printf("[%d]\t\t\t= NSteps\n", ip.NSteps)
	fmt.Printf("[%s]\t\t= Accumulation\n", ip.Accumulation)
	if len(ip.Receivers) != 0 {
		fmt.Printf("%v\t\t= Receivers\n", ip.Receivers)
	}
}
