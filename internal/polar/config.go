// Package polar implements the induced-dipole subsystem: the Wolf static
// field, the dipole-field interaction tensor, the self-consistent dipole
// solver and the polarization force/energy evaluation.
package polar

import (
	"errors"
	"fmt"
)

// Domain errors. Setup-time misconfiguration is fatal; divergence is a
// recoverable warning carried in the solver result.
var (
	ErrBadConfig = errors.New("polar: invalid solver configuration")
	ErrDiverged  = errors.New("polar: iteration exceeded max_iterations, dipoles reset to alpha*E")
)

// DampingMode selects the short-range attenuation of the dipole-dipole
// tensor.
type DampingMode int

const (
	DampingNone DampingMode = iota
	DampingExponential
)

func (m DampingMode) String() string {
	switch m {
	case DampingNone:
		return "none"
	case DampingExponential:
		return "exponential"
	}
	return fmt.Sprintf("DampingMode(%d)", int(m))
}

// OrderingMode selects the sweep visitation strategy. Gauss-Seidel variants
// reuse freshly updated dipoles within a sweep; Natural is a Jacobi sweep
// committed only at the end.
type OrderingMode int

const (
	OrderingNatural OrderingMode = iota
	OrderingGaussSeidel
	OrderingGaussSeidelRanked
)

func (m OrderingMode) String() string {
	switch m {
	case OrderingNatural:
		return "natural"
	case OrderingGaussSeidel:
		return "gauss_seidel"
	case OrderingGaussSeidelRanked:
		return "gauss_seidel_ranked"
	}
	return fmt.Sprintf("OrderingMode(%d)", int(m))
}

// TerminationMode selects how a solve ends.
type TerminationMode int

const (
	TerminatePrecision TerminationMode = iota
	TerminateFixedIterations
)

func (m TerminationMode) String() string {
	switch m {
	case TerminatePrecision:
		return "precision"
	case TerminateFixedIterations:
		return "fixed_iterations"
	}
	return fmt.Sprintf("TerminationMode(%d)", int(m))
}

// Config is the immutable solver configuration.
type Config struct {
	CutCoul float64

	Damping   DampingMode
	DampParam float64

	Precision     float64
	MaxIterations int
	Termination   TerminationMode
	Ordering      OrderingMode

	// Gamma preconditions the initial linear estimate alpha*E.
	Gamma float64

	// ZeroOrder skips iteration and returns the seeded estimate.
	ZeroOrder bool

	// WarmStart keeps the previous evaluation's converged dipoles as seed.
	WarmStart bool
}

// DefaultConfig mirrors the historical pair-style defaults.
func DefaultConfig() Config {
	return Config{
		Damping:       DampingNone,
		DampParam:     2.1304,
		Precision:     0.00000000001,
		MaxIterations: 50,
		Termination:   TerminatePrecision,
		Ordering:      OrderingGaussSeidelRanked,
		Gamma:         1.03,
	}
}

// Validate reports fatal configuration errors. Zero-order skips the sweep
// entirely, so combining it with a Gauss-Seidel ordering is contradictory.
func (c Config) Validate() error {
	if c.CutCoul <= 0 {
		return fmt.Errorf("%w: coulomb cutoff must be positive, got %v", ErrBadConfig, c.CutCoul)
	}
	if c.Termination == TerminatePrecision && c.Precision <= 0 {
		return fmt.Errorf("%w: precision must be positive, got %v", ErrBadConfig, c.Precision)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations must be non-negative, got %d", ErrBadConfig, c.MaxIterations)
	}
	if c.Damping == DampingExponential && c.DampParam <= 0 {
		return fmt.Errorf("%w: damping parameter must be positive, got %v", ErrBadConfig, c.DampParam)
	}
	if c.ZeroOrder && c.Ordering != OrderingNatural {
		return fmt.Errorf("%w: zero-order does not work with %s ordering", ErrBadConfig, c.Ordering)
	}
	if c.Gamma == 0 {
		return fmt.Errorf("%w: gamma must be non-zero", ErrBadConfig)
	}
	return nil
}
