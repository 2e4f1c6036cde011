package polar

import (
	"math"
	"testing"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/geom"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// solveTwoAtom runs the full pipeline on the reference pair with a single
// fixed iteration, leaving dipoles at alpha*E_static.
func solveTwoAtom(t *testing.T) (Config, *system.State) {
	t.Helper()
	st := twoAtomState()
	cfg := DefaultConfig()
	cfg.CutCoul = 4
	cfg.Gamma = 1
	cfg.Termination = TerminateFixedIterations
	cfg.MaxIterations = 1
	cfg.Ordering = OrderingNatural

	s := newSolver(t, cfg)
	ComputeStaticField(st, cfg.CutCoul)
	s.Prepare(st)
	s.Seed(st)
	s.Solve(st)
	return cfg, st
}

func TestForcesTwoAtomClosedForm(t *testing.T) {
	cfg, st := solveTwoAtom(t)

	u := ComputeForces(st, cfg)

	// closed-form pieces for mu = alpha*E along x at separation 3
	e := st.StaticField[0][0]
	muX := e // alpha = 1

	wantSelf := muX * muX // two atoms, each 0.5*mu^2
	wantField := -2.0 * muX * e
	wantDD := muX * muX * (1.0/27.0 - 3.0*9.0/243.0)

	if math.Abs(u.Self-wantSelf) > 1e-15 {
		t.Errorf("self energy: got %v, want %v", u.Self, wantSelf)
	}
	if math.Abs(u.Field-wantField) > 1e-15 {
		t.Errorf("field energy: got %v, want %v", u.Field, wantField)
	}
	if math.Abs(u.DipoleDipole-wantDD) > 1e-15 {
		t.Errorf("dipole-dipole energy: got %v, want %v", u.DipoleDipole, wantDD)
	}
	if math.Abs(u.Total()-(wantSelf+wantField+wantDD)) > 1e-15 {
		t.Errorf("total mismatch")
	}

	// analytic dipole-charge gradient plus point-dipole force along the axis
	wantFx := 4.0*muX/27.0 + 2.0*muX*muX/27.0
	if math.Abs(st.Force[0][0]-wantFx) > 1e-14 {
		t.Errorf("force x: got %v, want %v", st.Force[0][0], wantFx)
	}
	if st.Force[0].Add(st.Force[1]).Norm() > 1e-15 {
		t.Errorf("forces not antisymmetric: %v vs %v", st.Force[0], st.Force[1])
	}
}

func TestForcesZeroAlphaNoContribution(t *testing.T) {
	st := twoAtomState()
	st.Polarizability[0] = 0
	st.Polarizability[1] = 0

	cfg := DefaultConfig()
	cfg.CutCoul = 4
	ComputeStaticField(st, cfg.CutCoul)
	// dipoles stay zero with zero alpha
	u := ComputeForces(st, cfg)

	if u.Total() != 0 {
		t.Errorf("energy %v for non-polarizable pair", u.Total())
	}
	if !st.Force[0].IsZero() || !st.Force[1].IsZero() {
		t.Errorf("forces %v %v for non-polarizable pair", st.Force[0], st.Force[1])
	}
}

func TestForcesDampedDipoleDipoleWeakerAtShortRange(t *testing.T) {
	run := func(mode DampingMode) float64 {
		st := twoAtomState()
		st.Pos[1] = geom.Vec3{0.8, 0, 0}
		st.Dipole[0] = geom.Vec3{0.1, 0, 0}
		st.Dipole[1] = geom.Vec3{0.1, 0, 0}

		cfg := DefaultConfig()
		cfg.CutCoul = 4
		cfg.Damping = mode
		st.Charge[0], st.Charge[1] = 0, 0 // isolate the dipole-dipole term
		u := ComputeForces(st, cfg)
		return math.Abs(u.DipoleDipole)
	}

	undamped := run(DampingNone)
	damped := run(DampingExponential)
	if damped >= undamped {
		t.Errorf("damping should attenuate: damped %v, undamped %v", damped, undamped)
	}
	if damped == 0 {
		t.Error("damped interaction should not vanish entirely")
	}
}

func TestForcesSymmetricForRandomSystem(t *testing.T) {
	st := randState(6, 7)
	cfg := DefaultConfig()
	cfg.CutCoul = 8

	s := newSolver(t, cfg)
	ComputeStaticField(st, cfg.CutCoul)
	s.Prepare(st)
	s.Seed(st)
	s.Solve(st)
	ComputeForces(st, cfg)

	var sum geom.Vec3
	for i := 0; i < st.NLocal; i++ {
		sum = sum.Add(st.Force[i])
	}
	if sum.Norm() > 1e-10 {
		t.Errorf("net polarization force %v", sum)
	}
}
