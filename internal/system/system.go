// Package system holds the per-atom simulation state shared by the pairwise
// and polarization components. Buffers are contiguous, slot-indexed arenas
// covering owned atoms first, then ghost replicas.
package system

import (
	"errors"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/geom"
)

var ErrNoPolarizability = errors.New("system: per-atom polarizability not allocated")

// State is the engine-owned simulation state. The first NLocal slots of every
// buffer are atoms owned by this partition; the next NGhost slots are cached
// replicas refreshed by an exchange primitive.
type State struct {
	Box geom.Box

	// QQr2e converts charge*charge/distance to energy units.
	QQr2e float64

	NLocal int
	NGhost int

	Pos            []geom.Vec3
	Charge         []float64
	Type           []int
	Molecule       []int
	Polarizability []float64

	// StaticField and Dipole are recomputed every force evaluation; Dipole
	// survives between evaluations only when the solver warm-starts.
	StaticField []geom.Vec3
	Dipole      []geom.Vec3

	Force []geom.Vec3

	cap int
}

// New returns a State sized for nlocal owned atoms and nghost replicas.
func New(nlocal, nghost int) *State {
	s := &State{QQr2e: 1.0}
	s.Grow(nlocal, nghost)
	return s
}

// NTotal returns owned plus ghost atom count.
func (s *State) NTotal() int { return s.NLocal + s.NGhost }

// Grow resizes the arenas for the given atom counts, reallocating with
// amortized doubling when capacity is exceeded. Existing slots are preserved.
func (s *State) Grow(nlocal, nghost int) {
	n := nlocal + nghost
	if n > s.cap {
		newCap := s.cap * 2
		if newCap < n {
			newCap = n
		}
		s.Pos = growVec(s.Pos, newCap)
		s.Charge = growF64(s.Charge, newCap)
		s.Type = growInt(s.Type, newCap)
		s.Molecule = growInt(s.Molecule, newCap)
		s.Polarizability = growF64(s.Polarizability, newCap)
		s.StaticField = growVec(s.StaticField, newCap)
		s.Dipole = growVec(s.Dipole, newCap)
		s.Force = growVec(s.Force, newCap)
		s.cap = newCap
	}
	s.NLocal = nlocal
	s.NGhost = nghost
}

// Validate checks that the state carries everything the polarization
// components require.
func (s *State) Validate() error {
	if s.Polarizability == nil {
		return ErrNoPolarizability
	}
	return nil
}

// ClearForces zeroes the force accumulators for all atoms.
func (s *State) ClearForces() {
	for i := range s.Force[:s.NTotal()] {
		s.Force[i] = geom.Vec3{}
	}
}

// ClearStaticField zeroes the static field accumulators for owned atoms.
func (s *State) ClearStaticField() {
	for i := 0; i < s.NLocal; i++ {
		s.StaticField[i] = geom.Vec3{}
	}
}

func growVec(b []geom.Vec3, n int) []geom.Vec3 {
	nb := make([]geom.Vec3, n)
	copy(nb, b)
	return nb
}

func growF64(b []float64, n int) []float64 {
	nb := make([]float64, n)
	copy(nb, b)
	return nb
}

func growInt(b []int, n int) []int {
	nb := make([]int, n)
	copy(nb, b)
	return nb
}
