package pairwise

import (
	"fmt"
	"math"
)

// LJTable holds per-type-pair Lennard-Jones coefficients. Types are 0-based.
type LJTable struct {
	NTypes int

	Epsilon [][]float64
	Sigma   [][]float64
	CutLJ   [][]float64

	set [][]bool

	// derived by Setup
	lj1, lj2, lj3, lj4 [][]float64
	offset             [][]float64
	cutLJSq            [][]float64

	OffsetFlag bool
}

// NewLJTable allocates a coefficient table for n atom types.
func NewLJTable(n int) *LJTable {
	t := &LJTable{NTypes: n}
	alloc := func() [][]float64 {
		m := make([][]float64, n)
		for i := range m {
			m[i] = make([]float64, n)
		}
		return m
	}
	t.Epsilon = alloc()
	t.Sigma = alloc()
	t.CutLJ = alloc()
	t.lj1 = alloc()
	t.lj2 = alloc()
	t.lj3 = alloc()
	t.lj4 = alloc()
	t.offset = alloc()
	t.cutLJSq = alloc()
	t.set = make([][]bool, n)
	for i := range t.set {
		t.set[i] = make([]bool, n)
	}
	return t
}

// SetCoeff assigns epsilon/sigma/cutoff for the type pair (i,j).
func (t *LJTable) SetCoeff(i, j int, eps, sigma, cut float64) error {
	if i < 0 || j < 0 || i >= t.NTypes || j >= t.NTypes {
		return fmt.Errorf("pairwise: type pair (%d,%d) out of range [0,%d)", i, j, t.NTypes)
	}
	if i > j {
		i, j = j, i
	}
	t.Epsilon[i][j] = eps
	t.Sigma[i][j] = sigma
	t.CutLJ[i][j] = cut
	t.set[i][j] = true
	return nil
}

// Setup fills unset cross pairs by Lorentz-Berthelot mixing and computes the
// derived force and energy prefactors. Diagonal pairs must have been set.
func (t *LJTable) Setup() error {
	for i := 0; i < t.NTypes; i++ {
		if !t.set[i][i] {
			return fmt.Errorf("pairwise: coefficients for type %d not set", i)
		}
	}
	for i := 0; i < t.NTypes; i++ {
		for j := i; j < t.NTypes; j++ {
			if !t.set[i][j] {
				t.Epsilon[i][j] = mixEnergy(t.Epsilon[i][i], t.Epsilon[j][j])
				t.Sigma[i][j] = mixDistance(t.Sigma[i][i], t.Sigma[j][j])
				t.CutLJ[i][j] = mixDistance(t.CutLJ[i][i], t.CutLJ[j][j])
				t.set[i][j] = true
			}
			eps, sig, cut := t.Epsilon[i][j], t.Sigma[i][j], t.CutLJ[i][j]
			sig6 := math.Pow(sig, 6)
			sig12 := sig6 * sig6
			t.lj1[i][j] = 48.0 * eps * sig12
			t.lj2[i][j] = 24.0 * eps * sig6
			t.lj3[i][j] = 4.0 * eps * sig12
			t.lj4[i][j] = 4.0 * eps * sig6
			t.cutLJSq[i][j] = cut * cut
			if t.OffsetFlag && cut > 0 {
				ratio := sig / cut
				t.offset[i][j] = 4.0 * eps * (math.Pow(ratio, 12) - math.Pow(ratio, 6))
			} else {
				t.offset[i][j] = 0.0
			}
			t.mirror(i, j)
		}
	}
	return nil
}

func (t *LJTable) mirror(i, j int) {
	t.Epsilon[j][i] = t.Epsilon[i][j]
	t.Sigma[j][i] = t.Sigma[i][j]
	t.CutLJ[j][i] = t.CutLJ[i][j]
	t.lj1[j][i] = t.lj1[i][j]
	t.lj2[j][i] = t.lj2[i][j]
	t.lj3[j][i] = t.lj3[i][j]
	t.lj4[j][i] = t.lj4[i][j]
	t.offset[j][i] = t.offset[i][j]
	t.cutLJSq[j][i] = t.cutLJSq[i][j]
	t.set[j][i] = t.set[i][j]
}

func mixEnergy(e1, e2 float64) float64 {
	return math.Sqrt(e1 * e2)
}

func mixDistance(s1, s2 float64) float64 {
	return 0.5 * (s1 + s2)
}
