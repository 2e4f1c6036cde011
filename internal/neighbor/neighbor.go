// Package neighbor builds half pair lists for the cutoff pairwise loop. The
// surrounding engine normally supplies these; the builder here is the naive
// all-pairs construction used by the CLI and tests.
package neighbor

import (
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// Pair is an unordered atom pair; I is always an owned atom.
type Pair struct {
	I, J int
}

// List holds every pair within the skin-free cutoff, each pair once.
type List struct {
	Pairs  []Pair
	Cutoff float64
}

// Build scans owned atoms against owned+ghost atoms with minimum-image
// displacements and collects pairs inside cutoff. Owned-owned pairs appear
// once with I < J.
func Build(st *system.State, cutoff float64) *List {
	nl := &List{Cutoff: cutoff}
	cutsq := cutoff * cutoff
	ntotal := st.NTotal()
	for i := 0; i < st.NLocal; i++ {
		for j := i + 1; j < ntotal; j++ {
			d := st.Box.MinimumImage(st.Pos[i], st.Pos[j])
			if d.Norm2() <= cutsq {
				nl.Pairs = append(nl.Pairs, Pair{I: i, J: j})
			}
		}
	}
	return nl
}
