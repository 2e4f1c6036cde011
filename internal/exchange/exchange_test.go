package exchange

import (
	"testing"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/geom"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

func TestLocalForwardCopiesPayload(t *testing.T) {
	st := system.New(2, 2)
	st.Polarizability[0] = 0.5
	st.Polarizability[1] = 1.5
	st.StaticField[0] = geom.Vec3{1, 2, 3}
	st.Dipole[1] = geom.Vec3{-1, 0, 1}

	ex := &Local{Ghosts: []int{1, 0}}
	if err := ex.Forward(st); err != nil {
		t.Fatal(err)
	}

	if st.Polarizability[2] != 1.5 || st.Polarizability[3] != 0.5 {
		t.Error("polarizability not forwarded")
	}
	if st.Dipole[2] != (geom.Vec3{-1, 0, 1}) {
		t.Errorf("dipole not forwarded: %v", st.Dipole[2])
	}
	if st.StaticField[3] != (geom.Vec3{1, 2, 3}) {
		t.Errorf("static field not forwarded: %v", st.StaticField[3])
	}
}

func TestLocalForwardValidatesMapping(t *testing.T) {
	st := system.New(1, 1)
	ex := &Local{Ghosts: []int{5}}
	if err := ex.Forward(st); err == nil {
		t.Error("expected error for out-of-range owner")
	}

	ex = &Local{Ghosts: nil}
	if err := ex.Forward(st); err == nil {
		t.Error("expected error for mapping/slot count mismatch")
	}
}
