package pairwise

import (
	"math"
	"testing"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/geom"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/neighbor"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

func TestLJTableMixing(t *testing.T) {
	tab := NewLJTable(2)
	if err := tab.SetCoeff(0, 0, 1.0, 1.0, 2.5); err != nil {
		t.Fatal(err)
	}
	if err := tab.SetCoeff(1, 1, 4.0, 2.0, 3.5); err != nil {
		t.Fatal(err)
	}
	if err := tab.Setup(); err != nil {
		t.Fatal(err)
	}

	if got := tab.Epsilon[0][1]; math.Abs(got-2.0) > 1e-14 {
		t.Errorf("mixed epsilon: got %v, want 2", got)
	}
	if got := tab.Sigma[0][1]; math.Abs(got-1.5) > 1e-14 {
		t.Errorf("mixed sigma: got %v, want 1.5", got)
	}
	if tab.Epsilon[1][0] != tab.Epsilon[0][1] || tab.CutLJ[1][0] != tab.CutLJ[0][1] {
		t.Error("table not symmetric")
	}
}

func TestLJTableSetupRequiresDiagonal(t *testing.T) {
	tab := NewLJTable(2)
	if err := tab.SetCoeff(0, 0, 1, 1, 2.5); err != nil {
		t.Fatal(err)
	}
	if err := tab.Setup(); err == nil {
		t.Error("expected error for unset diagonal type")
	}
}

func TestLJMinimumForceZero(t *testing.T) {
	// at r = 2^(1/6) sigma the LJ force vanishes
	tab := NewLJTable(1)
	tab.SetCoeff(0, 0, 1.0, 1.0, 10.0)
	if err := tab.Setup(); err != nil {
		t.Fatal(err)
	}

	st := system.New(2, 0)
	rmin := math.Pow(2.0, 1.0/6.0)
	st.Pos[1] = geom.Vec3{rmin, 0, 0}

	nl := neighbor.Build(st, 10.0)
	tally := Compute(st, nl, tab, Ewald{G: 0.3, CutCoul: 0}) // charges are zero anyway

	if math.Abs(st.Force[0][0]) > 1e-12 {
		t.Errorf("force at LJ minimum: %v", st.Force[0][0])
	}
	if math.Abs(tally.VdW-(-1.0)) > 1e-12 {
		t.Errorf("well depth: got %v, want -1", tally.VdW)
	}
}

func TestErfcApproxMatchesMathErfc(t *testing.T) {
	ew := Ewald{G: 0.5, CutCoul: 10}
	for _, r := range []float64{0.5, 1.0, 2.0, 4.0} {
		got, _ := ew.erfcApprox(r)
		want := math.Erfc(ew.G * r)
		if math.Abs(got-want) > 2e-7 {
			t.Errorf("erfc(%v): got %v, want %v", ew.G*r, got, want)
		}
	}
}

func TestNewtonThirdLaw(t *testing.T) {
	tab := NewLJTable(1)
	tab.SetCoeff(0, 0, 1.0, 1.0, 5.0)
	if err := tab.Setup(); err != nil {
		t.Fatal(err)
	}

	st := system.New(3, 0)
	st.Pos[0] = geom.Vec3{0, 0, 0}
	st.Pos[1] = geom.Vec3{1.2, 0.3, 0}
	st.Pos[2] = geom.Vec3{0.4, 1.1, 0.7}
	st.Charge[0], st.Charge[1], st.Charge[2] = 1, -1, 0.5

	nl := neighbor.Build(st, 5.0)
	Compute(st, nl, tab, Ewald{G: 0.4, CutCoul: 5.0})

	var sum geom.Vec3
	for i := 0; i < 3; i++ {
		sum = sum.Add(st.Force[i])
	}
	for k := 0; k < 3; k++ {
		if math.Abs(sum[k]) > 1e-12 {
			t.Errorf("net force component %d: %v", k, sum[k])
		}
	}
}

func TestSingleMatchesComputeEnergy(t *testing.T) {
	tab := NewLJTable(1)
	tab.SetCoeff(0, 0, 0.7, 1.1, 6.0)
	if err := tab.Setup(); err != nil {
		t.Fatal(err)
	}

	st := system.New(2, 0)
	st.Pos[1] = geom.Vec3{1.7, 0, 0}
	st.Charge[0], st.Charge[1] = 1, -1

	ew := Ewald{G: 0.4, CutCoul: 6.0}
	nl := neighbor.Build(st, 6.0)
	tally := Compute(st, nl, tab, ew)

	eng, _ := Single(st, tab, ew, 0, 1, 1.7*1.7)
	if math.Abs(eng-(tally.VdW+tally.Coul)) > 1e-12 {
		t.Errorf("single energy %v != tally %v", eng, tally.VdW+tally.Coul)
	}
}
