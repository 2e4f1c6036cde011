// Package config loads and saves simulation scenarios: the box, the atoms
// with their charges and polarizabilities, the Lennard-Jones coefficients
// and the induced-dipole solver settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/geom"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/pairwise"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/polar"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

const (
	DefaultCutLJ     = 10.0
	DefaultCutCoul   = 10.0
	DefaultEwaldG    = 0.30
	DefaultQQr2e     = 332.06371
	DefaultPrecision = 1e-11
	DefaultMaxIter   = 50
	DefaultGamma     = 1.03
	DefaultDampParam = 2.1304
)

type Config struct {
	Box     [3]float64   `yaml:"box"`
	QQr2e   float64      `yaml:"qqr2e"`
	CutLJ   float64      `yaml:"cut_lj"`
	CutCoul float64      `yaml:"cut_coul"`
	EwaldG  float64      `yaml:"ewald_g"`
	Atoms   []AtomConfig `yaml:"atoms"`
	Pairs   []PairConfig `yaml:"pair_coeffs"`
	Solver  SolverConfig `yaml:"solver"`
}

type AtomConfig struct {
	Pos      [3]float64 `yaml:"pos"`
	Charge   float64    `yaml:"charge"`
	Type     int        `yaml:"type"`
	Molecule int        `yaml:"molecule"`
	Alpha    float64    `yaml:"alpha"`
}

type PairConfig struct {
	I       int     `yaml:"i"`
	J       int     `yaml:"j"`
	Epsilon float64 `yaml:"epsilon"`
	Sigma   float64 `yaml:"sigma"`
	CutLJ   float64 `yaml:"cut_lj,omitempty"`
}

type SolverConfig struct {
	Damping       string  `yaml:"damping"`
	DampParam     float64 `yaml:"damp_param"`
	Precision     float64 `yaml:"precision"`
	MaxIterations int     `yaml:"max_iterations"`
	Termination   string  `yaml:"termination"`
	Ordering      string  `yaml:"ordering"`
	Gamma         float64 `yaml:"gamma"`
	ZeroOrder     bool    `yaml:"zero_order"`
	WarmStart     bool    `yaml:"warm_start"`
}

func DefaultConfig() *Config {
	return &Config{
		QQr2e:   DefaultQQr2e,
		CutLJ:   DefaultCutLJ,
		CutCoul: DefaultCutCoul,
		EwaldG:  DefaultEwaldG,
		Solver: SolverConfig{
			Damping:       "none",
			DampParam:     DefaultDampParam,
			Precision:     DefaultPrecision,
			MaxIterations: DefaultMaxIter,
			Termination:   "precision",
			Ordering:      "gauss_seidel_ranked",
			Gamma:         DefaultGamma,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SolverSettings maps the textual solver section onto the solver
// configuration.
func (c *Config) SolverSettings() (polar.Config, error) {
	pc := polar.DefaultConfig()
	pc.CutCoul = c.CutCoul
	pc.DampParam = c.Solver.DampParam
	pc.Precision = c.Solver.Precision
	pc.MaxIterations = c.Solver.MaxIterations
	pc.Gamma = c.Solver.Gamma
	pc.ZeroOrder = c.Solver.ZeroOrder
	pc.WarmStart = c.Solver.WarmStart

	switch c.Solver.Damping {
	case "", "none":
		pc.Damping = polar.DampingNone
	case "exponential":
		pc.Damping = polar.DampingExponential
	default:
		return pc, fmt.Errorf("config: unknown damping mode %q", c.Solver.Damping)
	}
	switch c.Solver.Termination {
	case "", "precision":
		pc.Termination = polar.TerminatePrecision
	case "fixed_iterations":
		pc.Termination = polar.TerminateFixedIterations
	default:
		return pc, fmt.Errorf("config: unknown termination mode %q", c.Solver.Termination)
	}
	switch c.Solver.Ordering {
	case "natural":
		pc.Ordering = polar.OrderingNatural
	case "gauss_seidel":
		pc.Ordering = polar.OrderingGaussSeidel
	case "", "gauss_seidel_ranked":
		pc.Ordering = polar.OrderingGaussSeidelRanked
	default:
		return pc, fmt.Errorf("config: unknown ordering mode %q", c.Solver.Ordering)
	}
	return pc, pc.Validate()
}

// BuildState materializes the atoms into a simulation state.
func (c *Config) BuildState() *system.State {
	st := system.New(len(c.Atoms), 0)
	st.Box = geom.Box{L: geom.Vec3(c.Box)}
	st.QQr2e = c.QQr2e
	for i, a := range c.Atoms {
		st.Pos[i] = geom.Vec3(a.Pos)
		st.Charge[i] = a.Charge
		st.Type[i] = a.Type
		st.Molecule[i] = a.Molecule
		st.Polarizability[i] = a.Alpha
	}
	return st
}

// NTypes returns one past the highest atom type referenced.
func (c *Config) NTypes() int {
	n := 0
	for _, a := range c.Atoms {
		if a.Type+1 > n {
			n = a.Type + 1
		}
	}
	for _, p := range c.Pairs {
		if p.I+1 > n {
			n = p.I + 1
		}
		if p.J+1 > n {
			n = p.J + 1
		}
	}
	return n
}

// BuildTable builds the Lennard-Jones coefficient table from the pair
// entries. Entries without a cutoff inherit the global one.
func (c *Config) BuildTable() (*pairwise.LJTable, error) {
	n := c.NTypes()
	if n == 0 {
		return nil, fmt.Errorf("config: no atoms or pair coefficients")
	}
	table := pairwise.NewLJTable(n)
	for _, p := range c.Pairs {
		cut := p.CutLJ
		if cut == 0 {
			cut = c.CutLJ
		}
		if err := table.SetCoeff(p.I, p.J, p.Epsilon, p.Sigma, cut); err != nil {
			return nil, err
		}
	}
	if err := table.Setup(); err != nil {
		return nil, err
	}
	return table, nil
}

// BuildEwald returns the real-space Coulomb kernel for this scenario.
func (c *Config) BuildEwald() pairwise.Ewald {
	return pairwise.Ewald{G: c.EwaldG, CutCoul: c.CutCoul}
}
