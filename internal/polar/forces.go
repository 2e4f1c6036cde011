package polar

import (
	"math"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/geom"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// EnergyBreakdown splits the extensive polarization energy into its three
// contributions.
type EnergyBreakdown struct {
	Self         float64
	Field        float64
	DipoleDipole float64
}

// Total returns the polarization energy folded into the potential energy.
func (e EnergyBreakdown) Total() float64 {
	return e.Self + e.Field + e.DipoleDipole
}

// ComputeForces evaluates forces and energy generated by the converged
// dipoles over every owned pair. Dipole-charge terms follow the gradient of
// the Wolf kernel inside the Coulomb cutoff with the intramolecular
// exclusion; dipole-dipole terms span all pairs, consistent with the tensor.
// Forces accumulate in place with symmetric updates.
func ComputeForces(st *system.State, cfg Config) EnergyBreakdown {
	var u EnergyBreakdown

	cutsq := cfg.CutCoul * cfg.CutCoul
	fShift := -1.0 / cutsq
	conv := math.Sqrt(st.QQr2e)
	a := cfg.DampParam
	mu := st.Dipole

	for i := 0; i < st.NLocal; i++ {
		if st.Polarizability[i] != 0.0 {
			u.Self += 0.5 * mu[i].Norm2() / st.Polarizability[i]
		}

		for j := i + 1; j < st.NLocal; j++ {
			d := st.Box.MinimumImage(st.Pos[i], st.Pos[j])
			xsq, ysq, zsq := d[0]*d[0], d[1]*d[1], d[2]*d[2]
			rsq := xsq + ysq + zsq

			r2inv := 1.0 / rsq
			rinv := math.Sqrt(r2inv)
			r := 1.0 / rinv
			r3inv := r2inv * rinv

			var fc geom.Vec3

			if rsq < cutsq && !excluded(st, i, j) {
				dvdrr := 1.0/rsq + fShift
				efTemp := dvdrr * rinv * conv

				// dipole on i, charge on j
				if st.Polarizability[i] != 0.0 && st.Charge[j] != 0.0 {
					cf := st.Charge[j] * conv * r3inv
					fc = fc.Add(wolfGradient(mu[i], d, xsq, ysq, zsq, r2inv, fShift).Scale(cf))
					u.Field -= mu[i].Dot(d.Scale(efTemp * st.Charge[j]))
				}

				// dipole on j, charge on i
				if st.Polarizability[j] != 0.0 && st.Charge[i] != 0.0 {
					cf := st.Charge[i] * conv * r3inv
					fc = fc.Sub(wolfGradient(mu[j], d, xsq, ysq, zsq, r2inv, fShift).Scale(cf))
					u.Field += mu[j].Dot(d.Scale(efTemp * st.Charge[i]))
				}
			}

			// dipole-dipole, no cutoff, consistent with the tensor
			if st.Polarizability[i] != 0.0 && st.Polarizability[j] != 0.0 {
				r5inv := r3inv * r2inv
				r7inv := r5inv * r2inv

				pdotp := mu[i].Dot(mu[j])
				pidotr := mu[i].Dot(d)
				pjdotr := mu[j].Dot(d)

				if cfg.Damping == DampingExponential {
					t1 := math.Exp(-a * r)
					t2 := 1.0 + a*r + 0.5*a*a*r*r
					t3 := t2 + a*a*a*r*r*r/6.0

					pre1 := 3.0*r5inv*pdotp*(1.0-t1*t2) - 15.0*r7inv*pidotr*pjdotr*(1.0-t1*t3)
					pre2 := 3.0 * r5inv * pjdotr * (1.0 - t1*t3)
					pre3 := 3.0 * r5inv * pidotr * (1.0 - t1*t3)
					pre4 := -pdotp * r3inv * (-t1*(a*rinv+a*a) + t1*a*t2*rinv)
					pre5 := 3.0 * pidotr * pjdotr * r5inv *
						(-t1*(a*rinv+a*a+0.5*r*a*a*a) + t1*a*t3*rinv)

					fc = fc.Add(d.Scale(pre1 + pre4 + pre5)).
						Add(mu[i].Scale(pre2)).
						Add(mu[j].Scale(pre3))

					u.DipoleDipole += r3inv*pdotp*(1.0-t1*t2) - 3.0*r5inv*pidotr*pjdotr*(1.0-t1*t3)
				} else {
					pre1 := 3.0*r5inv*pdotp - 15.0*r7inv*pidotr*pjdotr
					pre2 := 3.0 * r5inv * pjdotr
					pre3 := 3.0 * r5inv * pidotr

					fc = fc.Add(d.Scale(pre1)).
						Add(mu[i].Scale(pre2)).
						Add(mu[j].Scale(pre3))

					u.DipoleDipole += r3inv*pdotp - 3.0*r5inv*pidotr*pjdotr
				}
			}

			st.Force[i] = st.Force[i].Add(fc)
			st.Force[j] = st.Force[j].Sub(fc)
		}
	}
	return u
}

// wolfGradient applies the shifted-force field-gradient tensor to a dipole.
// The result still needs the charge/r^3 prefactor.
func wolfGradient(m, d geom.Vec3, xsq, ysq, zsq, r2inv, fShift float64) geom.Vec3 {
	return geom.Vec3{
		m[0]*((-2.0*xsq+ysq+zsq)*r2inv+fShift*(ysq+zsq)) +
			m[1]*(-3.0*d[0]*d[1]*r2inv-fShift*d[0]*d[1]) +
			m[2]*(-3.0*d[0]*d[2]*r2inv-fShift*d[0]*d[2]),
		m[0]*(-3.0*d[0]*d[1]*r2inv-fShift*d[0]*d[1]) +
			m[1]*((-2.0*ysq+xsq+zsq)*r2inv+fShift*(xsq+zsq)) +
			m[2]*(-3.0*d[1]*d[2]*r2inv-fShift*d[1]*d[2]),
		m[0]*(-3.0*d[0]*d[2]*r2inv-fShift*d[0]*d[2]) +
			m[1]*(-3.0*d[1]*d[2]*r2inv-fShift*d[1]*d[2]) +
			m[2]*((-2.0*zsq+xsq+ysq)*r2inv+fShift*(xsq+ysq)),
	}
}
