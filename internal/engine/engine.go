// Package engine orchestrates one full force evaluation: the pairwise
// Lennard-Jones plus screened-Coulomb loop, followed by the induced-dipole
// solve and the polarization force pass.
package engine

import (
	"fmt"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/exchange"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/neighbor"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/pairwise"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/polar"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// Result collects the tallies of one evaluation.
type Result struct {
	Pair  pairwise.Energies
	Polar polar.EnergyBreakdown
	Solve polar.Result
}

// Total returns the potential energy including the polarization terms.
func (r Result) Total() float64 {
	return r.Pair.VdW + r.Pair.Coul + r.Polar.Total()
}

// Engine evaluates forces and energies for a state. It owns the solver
// scratch space, so one engine serves repeated evaluations of a moving
// system.
type Engine struct {
	table  *pairwise.LJTable
	ewald  pairwise.Ewald
	solver *polar.Solver
	exch   exchange.Exchanger
	sink   polar.DiagnosticsSink
}

// New assembles an engine. A nil exchanger means a single partition with no
// ghosts; a nil sink discards diagnostics.
func New(table *pairwise.LJTable, ew pairwise.Ewald, cfg polar.Config, exch exchange.Exchanger, sink polar.DiagnosticsSink) (*Engine, error) {
	solver, err := polar.NewSolver(cfg)
	if err != nil {
		return nil, err
	}
	if exch == nil {
		exch = &exchange.Local{}
	}
	if sink == nil {
		sink = polar.NopSink{}
	}
	return &Engine{table: table, ewald: ew, solver: solver, exch: exch, sink: sink}, nil
}

// Solver exposes the induced-dipole solver, mainly for warm-start control.
func (e *Engine) Solver() *polar.Solver { return e.solver }

func (e *Engine) cutoff() float64 {
	cut := e.ewald.CutCoul
	for i := 0; i < e.table.NTypes; i++ {
		for j := i; j < e.table.NTypes; j++ {
			if e.table.CutLJ[i][j] > cut {
				cut = e.table.CutLJ[i][j]
			}
		}
	}
	return cut
}

// Evaluate runs one force evaluation on st. Forces are cleared and
// reaccumulated; dipoles are left in place for a warm-started follow-up.
func (e *Engine) Evaluate(st *system.State) (Result, error) {
	var res Result
	if err := st.Validate(); err != nil {
		return res, err
	}

	st.ClearForces()

	nl := neighbor.Build(st, e.cutoff())
	res.Pair = pairwise.Compute(st, nl, e.table, e.ewald)

	cfg := e.solver.Config()
	polar.ComputeStaticField(st, cfg.CutCoul)
	if err := e.exch.Forward(st); err != nil {
		return res, err
	}
	e.exch.Barrier()

	e.solver.Prepare(st)
	e.solver.Seed(st)
	res.Solve = e.solver.Solve(st)

	if err := e.writeDiagnostics(st); err != nil {
		return res, err
	}

	res.Polar = polar.ComputeForces(st, cfg)
	return res, nil
}

func (e *Engine) writeDiagnostics(st *system.State) error {
	if err := e.sink.WriteTensor(e.solver.Tensor()); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := e.sink.WriteStaticField(st); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := e.sink.WriteDipoles(st); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}
