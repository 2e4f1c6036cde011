package polar

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// Tensor is the dense 3N x 3N dipole-field interaction matrix over locally
// owned atoms. Diagonal blocks carry 1/alpha (or a huge sentinel for
// non-polarizable atoms, which decouples them); off-diagonal blocks are the
// damped point-dipole tensor, mirrored across the diagonal.
//
// Every local pair enters the tensor regardless of the Coulomb cutoff used
// in the pair loop. That asymmetry is historical and affects results, so it
// is kept as-is.
type Tensor struct {
	N int
	M *mat.Dense
}

// NewTensor allocates a tensor for n owned atoms.
func NewTensor(n int) *Tensor {
	return &Tensor{N: n, M: mat.NewDense(3*n, 3*n, nil)}
}

// Resize reallocates the backing matrix when the owned-atom count changes.
func (t *Tensor) Resize(n int) {
	if n != t.N {
		t.N = n
		t.M = mat.NewDense(3*n, 3*n, nil)
	}
}

// Block returns the 3x3 submatrix coupling atoms i and j.
func (t *Tensor) Block(i, j int) mat.Matrix {
	return t.M.Slice(3*i, 3*i+3, 3*j, 3*j+3)
}

// dampingTerms evaluates the Thole-style exponential attenuation factors for
// separation r. With damping off both factors are exactly 1, reducing the
// block to the bare point-dipole tensor.
func dampingTerms(cfg Config, r, rsq float64) (d1, d2 float64) {
	if cfg.Damping != DampingExponential {
		return 1.0, 1.0
	}
	a := cfg.DampParam
	e := math.Exp(-a * r)
	d1 = 1.0 - e*(0.5*a*a*rsq+a*r+1.0)
	d2 = 1.0 - e*(a*a*a*rsq*r/6.0+0.5*a*a*rsq+a*r+1.0)
	return d1, d2
}

// Build rebuilds the tensor from current positions and polarizabilities.
func (t *Tensor) Build(st *system.State, cfg Config) {
	n := st.NLocal
	t.Resize(n)
	t.M.Zero()

	for i := 0; i < n; i++ {
		inv := math.MaxFloat64
		if st.Polarizability[i] != 0.0 {
			inv = 1.0 / st.Polarizability[i]
		}
		for p := 0; p < 3; p++ {
			t.M.Set(3*i+p, 3*i+p, inv)
		}
	}

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			d := st.Box.MinimumImage(st.Pos[i], st.Pos[j])
			rsq := d.Norm2()
			r := math.Sqrt(rsq)

			var r3, r5 float64
			if r == 0.0 {
				// coincident pair, decouple via the sentinel
				r3, r5 = math.MaxFloat64, math.MaxFloat64
			} else {
				r3 = 1.0 / (r * r * r)
				r5 = 1.0 / (r * r * r * r * r)
			}

			d1, d2 := dampingTerms(cfg, r, rsq)

			for p := 0; p < 3; p++ {
				for q := 0; q < 3; q++ {
					v := -3.0 * d[p] * d[q] * d2 * r5
					if p == q {
						v += d1 * r3
					}
					t.M.Set(3*i+p, 3*j+q, v)
					t.M.Set(3*j+p, 3*i+q, v)
				}
			}
		}
	}
}
