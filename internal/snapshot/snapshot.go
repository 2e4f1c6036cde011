// Package snapshot persists the pair-style configuration across restarts:
// every solver configuration scalar plus the per-type-pair Lennard-Jones
// coefficients. Field and dipole values are never persisted; they are
// recomputed on the first evaluation after a restore.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/pairwise"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/polar"
)

// PairCoeff is one explicitly-set type-pair entry.
type PairCoeff struct {
	I       int     `json:"i"`
	J       int     `json:"j"`
	Epsilon float64 `json:"epsilon"`
	Sigma   float64 `json:"sigma"`
	CutLJ   float64 `json:"cut_lj"`
}

// Snapshot is the restart payload. JSON numbers round-trip float64 exactly,
// so a restored run reproduces bit-identical results.
type Snapshot struct {
	CutLJGlobal float64 `json:"cut_lj_global"`
	CutCoul     float64 `json:"cut_coul"`
	OffsetFlag  bool    `json:"offset_flag"`

	MaxIterations int     `json:"max_iterations"`
	Damping       int     `json:"damping"`
	DampParam     float64 `json:"damp_param"`
	ZeroOrder     bool    `json:"zero_order"`
	Precision     float64 `json:"precision"`
	Termination   int     `json:"termination"`
	Ordering      int     `json:"ordering"`
	Gamma         float64 `json:"gamma"`
	WarmStart     bool    `json:"warm_start"`

	NTypes int         `json:"ntypes"`
	Coeffs []PairCoeff `json:"coeffs"`
}

// Capture collects the restartable scalars from a solver config and LJ
// table.
func Capture(cfg polar.Config, cutLJGlobal float64, table *pairwise.LJTable) Snapshot {
	snap := Snapshot{
		CutLJGlobal:   cutLJGlobal,
		CutCoul:       cfg.CutCoul,
		MaxIterations: cfg.MaxIterations,
		Damping:       int(cfg.Damping),
		DampParam:     cfg.DampParam,
		ZeroOrder:     cfg.ZeroOrder,
		Precision:     cfg.Precision,
		Termination:   int(cfg.Termination),
		Ordering:      int(cfg.Ordering),
		Gamma:         cfg.Gamma,
		WarmStart:     cfg.WarmStart,
	}
	if table != nil {
		snap.NTypes = table.NTypes
		snap.OffsetFlag = table.OffsetFlag
		for i := 0; i < table.NTypes; i++ {
			for j := i; j < table.NTypes; j++ {
				snap.Coeffs = append(snap.Coeffs, PairCoeff{
					I: i, J: j,
					Epsilon: table.Epsilon[i][j],
					Sigma:   table.Sigma[i][j],
					CutLJ:   table.CutLJ[i][j],
				})
			}
		}
	}
	return snap
}

// Config rebuilds the solver configuration from the snapshot.
func (s Snapshot) Config() polar.Config {
	return polar.Config{
		CutCoul:       s.CutCoul,
		Damping:       polar.DampingMode(s.Damping),
		DampParam:     s.DampParam,
		Precision:     s.Precision,
		MaxIterations: s.MaxIterations,
		Termination:   polar.TerminationMode(s.Termination),
		Ordering:      polar.OrderingMode(s.Ordering),
		Gamma:         s.Gamma,
		ZeroOrder:     s.ZeroOrder,
		WarmStart:     s.WarmStart,
	}
}

// Table rebuilds and sets up the LJ coefficient table.
func (s Snapshot) Table() (*pairwise.LJTable, error) {
	if s.NTypes == 0 {
		return nil, nil
	}
	table := pairwise.NewLJTable(s.NTypes)
	table.OffsetFlag = s.OffsetFlag
	for _, c := range s.Coeffs {
		if err := table.SetCoeff(c.I, c.J, c.Epsilon, c.Sigma, c.CutLJ); err != nil {
			return nil, err
		}
	}
	if err := table.Setup(); err != nil {
		return nil, err
	}
	return table, nil
}

// Save writes the snapshot to path.
func Save(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a snapshot from path.
func Load(path string) (Snapshot, error) {
	var snap Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}
