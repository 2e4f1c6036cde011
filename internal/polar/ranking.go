package polar

import (
	"math"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// RankMetrics scores each owned atom by how strongly its dipole couples to
// close neighbors: the sum of alpha_i*alpha_j over atoms within 1.5x the
// smallest polarizable cross-molecule separation. Ghost replicas count as
// neighbors, so ghost positions and polarizabilities must be current.
func RankMetrics(st *system.State, metric []float64) []float64 {
	ntotal := st.NTotal()
	if cap(metric) < st.NLocal {
		metric = make([]float64, st.NLocal)
	}
	metric = metric[:st.NLocal]
	for i := range metric {
		metric[i] = 0
	}

	rmin := math.Inf(1)
	for i := 0; i < st.NLocal; i++ {
		for j := 0; j < ntotal; j++ {
			if i == j {
				continue
			}
			if st.Polarizability[i] <= 0 || st.Polarizability[j] <= 0 || excluded(st, i, j) {
				continue
			}
			r := st.Box.MinimumImage(st.Pos[i], st.Pos[j]).Norm()
			if r < rmin {
				rmin = r
			}
		}
	}

	for i := 0; i < st.NLocal; i++ {
		for j := 0; j < ntotal; j++ {
			if i == j || excluded(st, i, j) {
				continue
			}
			r := st.Box.MinimumImage(st.Pos[i], st.Pos[j]).Norm()
			if r < 1.5*rmin {
				metric[i] += st.Polarizability[i] * st.Polarizability[j]
			}
		}
	}
	return metric
}

// RankOrder sorts atom indices by descending metric with a stable
// early-exit bubble pass; ties keep their original relative order.
func RankOrder(order []int, metric []float64) {
	n := len(order)
	for i := range order {
		order[i] = i
	}
	for i := 0; i < n; i++ {
		sorted := true
		for j := 0; j < n-1; j++ {
			if metric[order[j]] < metric[order[j+1]] {
				sorted = false
				order[j], order[j+1] = order[j+1], order[j]
			}
		}
		if sorted {
			break
		}
	}
}
