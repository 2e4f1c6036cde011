// Package exchange refreshes ghost-atom replicas with the seven per-atom
// scalars the polarization subsystem needs: polarizability, the static field
// vector and the induced dipole vector. The surrounding engine supplies the
// transport between partitions; Local is the single-partition implementation.
package exchange

import (
	"fmt"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// Exchanger propagates owned-atom polarization state to cached remote
// copies. Forward must complete before the ranking metric reads ghost
// positions and polarizabilities; Barrier is the collective synchronization
// point guaranteeing every partition is current.
type Exchanger interface {
	Forward(st *system.State) error
	Barrier()
}

// Local serves a single partition: every ghost slot mirrors an owned atom
// on the same process. Ghosts holds, per ghost slot, the owned slot it
// replicates.
type Local struct {
	Ghosts []int
}

// Forward copies the 7-scalar payload from owned slots into ghost slots.
func (l *Local) Forward(st *system.State) error {
	if len(l.Ghosts) != st.NGhost {
		return fmt.Errorf("exchange: %d ghost mappings for %d ghost slots", len(l.Ghosts), st.NGhost)
	}
	for g, owner := range l.Ghosts {
		if owner < 0 || owner >= st.NLocal {
			return fmt.Errorf("exchange: ghost %d maps to invalid owner %d", g, owner)
		}
		dst := st.NLocal + g
		st.Polarizability[dst] = st.Polarizability[owner]
		st.StaticField[dst] = st.StaticField[owner]
		st.Dipole[dst] = st.Dipole[owner]
	}
	return nil
}

// Barrier is a no-op: a single partition is always synchronized.
func (l *Local) Barrier() {}
