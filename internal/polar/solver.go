package polar

import (
	"gonum.org/v1/gonum/floats"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/geom"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// Status is the terminal state of one solve.
type Status int

const (
	// StatusConverged covers both the precision threshold being met and a
	// fixed-iteration run completing its budget.
	StatusConverged Status = iota
	// StatusDiverged means the precision threshold was never met; dipoles
	// were reset to the linear estimate alpha*E.
	StatusDiverged
	// StatusSkipped means zero-order mode returned the seed untouched.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusDiverged:
		return "diverged"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// Result reports one solve. Warning carries ErrDiverged on the fallback
// path; it is informational, the dipoles are still usable.
type Result struct {
	Iterations int
	Status     Status
	Warning    error

	// Residuals holds the mean squared dipole change per sweep.
	Residuals []float64
}

// Solver iterates induced dipoles to self-consistency against the
// dipole-field tensor and the static field. Scratch buffers persist across
// evaluations and grow with the atom count.
type Solver struct {
	cfg    Config
	tensor *Tensor

	order  []int
	metric []float64

	efInduced []geom.Vec3
	muNew     []geom.Vec3
	muOld     []geom.Vec3
	diff      []float64
}

// NewSolver validates the configuration and returns a solver.
func NewSolver(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{cfg: cfg, tensor: NewTensor(0)}, nil
}

// Config returns the immutable configuration the solver runs with.
func (s *Solver) Config() Config { return s.cfg }

// Tensor exposes the most recently built interaction tensor, for
// diagnostics.
func (s *Solver) Tensor() *Tensor { return s.tensor }

func (s *Solver) grow(n int) {
	if cap(s.order) < n {
		s.order = make([]int, n)
		s.metric = make([]float64, n)
		s.efInduced = make([]geom.Vec3, n)
		s.muNew = make([]geom.Vec3, n)
		s.muOld = make([]geom.Vec3, n)
		s.diff = make([]float64, 3*n)
	}
	s.order = s.order[:n]
	s.metric = s.metric[:n]
	s.efInduced = s.efInduced[:n]
	s.muNew = s.muNew[:n]
	s.muOld = s.muOld[:n]
	s.diff = s.diff[:3*n]
}

// Prepare rebuilds the tensor and, in ranked mode, the sweep visitation
// order from current positions and polarizabilities. The ranked metric sees
// ghost replicas, so the caller must have refreshed them (and synchronized
// partitions) first. Prepare runs once per force evaluation, not per sweep.
func (s *Solver) Prepare(st *system.State) {
	n := st.NLocal
	s.grow(n)
	s.tensor.Build(st, s.cfg)

	for i := range s.order {
		s.order[i] = i
	}
	if s.cfg.Ordering == OrderingGaussSeidelRanked {
		s.metric = RankMetrics(st, s.metric)
		RankOrder(s.order, s.metric)
	}
}

// Seed sets every owned dipole to the preconditioned linear estimate
// alpha*E*gamma, unless warm start retains the previous values.
func (s *Solver) Seed(st *system.State) {
	if s.cfg.WarmStart {
		return
	}
	for i := 0; i < st.NLocal; i++ {
		st.Dipole[i] = st.StaticField[i].Scale(st.Polarizability[i] * s.cfg.Gamma)
	}
}

// Solve runs the self-consistent iteration over owned atoms. Prepare and
// Seed must have run for the current positions.
func (s *Solver) Solve(st *system.State) Result {
	if s.cfg.ZeroOrder {
		return Result{Iterations: 0, Status: StatusSkipped}
	}

	n := st.NLocal
	gaussSeidel := s.cfg.Ordering == OrderingGaussSeidel || s.cfg.Ordering == OrderingGaussSeidelRanked
	fixed := s.cfg.Termination == TerminateFixedIterations
	mu := st.Dipole

	var residuals []float64

	for sweep := 1; ; sweep++ {
		if fixed && sweep > s.cfg.MaxIterations {
			// the seed already counted as the first iteration
			return Result{Iterations: s.cfg.MaxIterations, Status: StatusConverged, Residuals: residuals}
		}

		for i := 0; i < n; i++ {
			s.muOld[i] = mu[i]
			s.efInduced[i] = geom.Vec3{}
		}

		// contract the dipoles with the field tensor
		for _, idx := range s.order {
			for j := 0; j < n; j++ {
				if idx == j {
					continue
				}
				for p := 0; p < 3; p++ {
					var acc float64
					for q := 0; q < 3; q++ {
						acc += s.tensor.M.At(3*idx+p, 3*j+q) * mu[j][q]
					}
					s.efInduced[idx][p] -= acc
				}
			}
			s.muNew[idx] = st.StaticField[idx].Add(s.efInduced[idx]).Scale(st.Polarizability[idx])
			if gaussSeidel {
				mu[idx] = s.muNew[idx]
			}
		}

		change := s.meanSquaredChange(n)
		residuals = append(residuals, change)

		if fixed && sweep == s.cfg.MaxIterations {
			// budget spent; the terminal sweep is not committed
			return Result{Iterations: sweep, Status: StatusConverged, Residuals: residuals}
		}

		for i := 0; i < n; i++ {
			mu[i] = s.muNew[i]
		}

		if !fixed {
			if change <= s.cfg.Precision*s.cfg.Precision {
				return Result{Iterations: sweep, Status: StatusConverged, Residuals: residuals}
			}
			if sweep > s.cfg.MaxIterations {
				// fall back to the plain linear estimate
				for i := 0; i < n; i++ {
					mu[i] = st.StaticField[i].Scale(st.Polarizability[i])
				}
				return Result{Iterations: sweep, Status: StatusDiverged, Warning: ErrDiverged, Residuals: residuals}
			}
		}
	}
}

func (s *Solver) meanSquaredChange(n int) float64 {
	if n == 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		for p := 0; p < 3; p++ {
			s.diff[3*i+p] = s.muNew[i][p] - s.muOld[i][p]
		}
	}
	return floats.Dot(s.diff, s.diff) / float64(3*n)
}
