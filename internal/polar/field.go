package polar

import (
	"math"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// excluded reports whether the pair (i,j) is removed by the intramolecular
// rule: both atoms share the same nonzero molecule id. Molecule id 0 is never
// excluded.
func excluded(st *system.State, i, j int) bool {
	return st.Molecule[i] == st.Molecule[j] && st.Molecule[i] != 0
}

// ComputeStaticField accumulates the Wolf shifted-force electric field at
// every owned atom from all other owned charges inside the Coulomb cutoff,
// then scales into the Gaussian-like field unit the dipole algebra works in.
// Contributions are applied to both atoms of a pair.
func ComputeStaticField(st *system.State, cutCoul float64) {
	st.ClearStaticField()

	cutsq := cutCoul * cutCoul
	fShift := -1.0 / cutsq

	for i := 0; i < st.NLocal; i++ {
		for j := i + 1; j < st.NLocal; j++ {
			d := st.Box.MinimumImage(st.Pos[i], st.Pos[j])
			rsq := d.Norm2()
			if rsq > cutsq || excluded(st, i, j) {
				continue
			}
			r := math.Sqrt(rsq)

			// Wolf kernel, no damping
			dvdrr := 1.0/rsq + fShift
			efTemp := dvdrr / r

			st.StaticField[i] = st.StaticField[i].Add(d.Scale(efTemp * st.Charge[j]))
			st.StaticField[j] = st.StaticField[j].Sub(d.Scale(efTemp * st.Charge[i]))
		}
	}

	// charges and fields are more convenient in gaussian-like units
	conv := math.Sqrt(st.QQr2e)
	for i := 0; i < st.NLocal; i++ {
		st.StaticField[i] = st.StaticField[i].Scale(conv)
	}
}
