package polar

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/geom"
	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/system"
)

// DiagnosticsSink receives intermediate solver state. Implementations are
// supplied explicitly by the caller; nothing is dumped by default.
type DiagnosticsSink interface {
	WriteTensor(t *Tensor) error
	WriteStaticField(st *system.State) error
	WriteDipoles(st *system.State) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) WriteTensor(*Tensor) error            { return nil }
func (NopSink) WriteStaticField(*system.State) error { return nil }
func (NopSink) WriteDipoles(*system.State) error     { return nil }

// CSVSink writes one CSV file per call into a directory.
type CSVSink struct {
	Dir string
}

func (s CSVSink) WriteTensor(t *Tensor) error {
	return s.writeCSV("tensor.csv", func(w *csv.Writer) error {
		rows, cols := t.M.Dims()
		rec := make([]string, cols)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				rec[j] = strconv.FormatFloat(t.M.At(i, j), 'g', -1, 64)
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s CSVSink) WriteStaticField(st *system.State) error {
	return s.writeVecs("e_static.csv", st.StaticField[:st.NLocal])
}

func (s CSVSink) WriteDipoles(st *system.State) error {
	return s.writeVecs("mu.csv", st.Dipole[:st.NLocal])
}

func (s CSVSink) writeVecs(name string, vs []geom.Vec3) error {
	return s.writeCSV(name, func(w *csv.Writer) error {
		for _, v := range vs {
			rec := []string{
				strconv.FormatFloat(v[0], 'g', -1, 64),
				strconv.FormatFloat(v[1], 'g', -1, 64),
				strconv.FormatFloat(v[2], 'g', -1, 64),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s CSVSink) writeCSV(name string, fill func(*csv.Writer) error) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return fmt.Errorf("polar: diagnostics: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
