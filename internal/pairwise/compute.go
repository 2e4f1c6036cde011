// Package pairwise implements the cutoff Lennard-Jones plus real-space Ewald
// Coulomb pair loop the polarization subsystem sits on top of.
package pairwise

import (
	"math"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/neighbor"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// Energies is the pairwise energy tally for one evaluation.
type Energies struct {
	VdW  float64
	Coul float64
}

// Compute runs the LJ + screened-Coulomb loop over the neighbor list,
// accumulating forces symmetrically and returning the energy tally.
func Compute(st *system.State, nl *neighbor.List, table *LJTable, ew Ewald) Energies {
	var tally Energies
	cutCoulSq := ew.cutCoulSq()

	for _, pr := range nl.Pairs {
		i, j := pr.I, pr.J
		itype, jtype := st.Type[i], st.Type[j]

		d := st.Box.MinimumImage(st.Pos[i], st.Pos[j])
		rsq := d.Norm2()
		if rsq >= table.cutLJSq[itype][jtype] && rsq >= cutCoulSq {
			continue
		}
		r2inv := 1.0 / rsq

		var forcecoul, ecoul float64
		if rsq < cutCoulSq {
			r := d.Norm()
			forcecoul, ecoul = ew.ForceEnergy(st.Charge[i], st.Charge[j], r, st.QQr2e)
		}

		var forcelj, evdwl float64
		if rsq < table.cutLJSq[itype][jtype] {
			r6inv := r2inv * r2inv * r2inv
			forcelj = r6inv * (table.lj1[itype][jtype]*r6inv - table.lj2[itype][jtype])
			evdwl = r6inv*(table.lj3[itype][jtype]*r6inv-table.lj4[itype][jtype]) - table.offset[itype][jtype]
		}

		fpair := (forcecoul + forcelj) * r2inv
		f := d.Scale(fpair)
		st.Force[i] = st.Force[i].Add(f)
		st.Force[j] = st.Force[j].Sub(f)

		tally.VdW += evdwl
		tally.Coul += ecoul
	}
	return tally
}

// Single evaluates one pair in isolation, returning the combined energy and
// writing the force prefactor (force = fforce * displacement) to fforce.
func Single(st *system.State, table *LJTable, ew Ewald, i, j int, rsq float64) (eng, fforce float64) {
	itype, jtype := st.Type[i], st.Type[j]
	r2inv := 1.0 / rsq

	var forcecoul, ecoul float64
	if rsq < ew.cutCoulSq() {
		forcecoul, ecoul = ew.ForceEnergy(st.Charge[i], st.Charge[j], math.Sqrt(rsq), st.QQr2e)
	}

	var forcelj, evdwl float64
	if rsq < table.cutLJSq[itype][jtype] {
		r6inv := r2inv * r2inv * r2inv
		forcelj = r6inv * (table.lj1[itype][jtype]*r6inv - table.lj2[itype][jtype])
		evdwl = r6inv*(table.lj3[itype][jtype]*r6inv-table.lj4[itype][jtype]) - table.offset[itype][jtype]
	}

	return evdwl + ecoul, (forcecoul + forcelj) * r2inv
}
