package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chiquibitrian/lammps-induced-dipole-polarization-pair-style/internal/polar"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CutCoul <= 0 {
		t.Error("coulomb cutoff should be positive")
	}
	if cfg.QQr2e <= 0 {
		t.Error("qqr2e should be positive")
	}
	pc, err := cfg.SolverSettings()
	if err != nil {
		t.Fatalf("default solver settings invalid: %v", err)
	}
	if pc.Ordering != polar.OrderingGaussSeidelRanked {
		t.Errorf("expected ranked ordering, got %s", pc.Ordering)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	src := `atoms:
  - pos: [0, 0, 0]
    charge: 1.0
    alpha: 0.5
  - pos: [3, 0, 0]
    charge: -1.0
    alpha: 0.5
pair_coeffs:
  - {i: 0, j: 0, epsilon: 0.2, sigma: 3.0}
solver:
  ordering: natural
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CutCoul != DefaultCutCoul {
		t.Errorf("expected default cut_coul %v, got %v", DefaultCutCoul, cfg.CutCoul)
	}
	if len(cfg.Atoms) != 2 {
		t.Fatalf("expected 2 atoms, got %d", len(cfg.Atoms))
	}
	pc, err := cfg.SolverSettings()
	if err != nil {
		t.Fatal(err)
	}
	if pc.Ordering != polar.OrderingNatural {
		t.Errorf("expected natural ordering, got %s", pc.Ordering)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	cfg := GetPreset("ion_pair")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Atoms) != len(cfg.Atoms) {
		t.Fatalf("expected %d atoms, got %d", len(cfg.Atoms), len(got.Atoms))
	}
	if got.Atoms[1].Charge != -1.0 || got.Atoms[1].Alpha != cfg.Atoms[1].Alpha {
		t.Errorf("atom 1 = %+v, want %+v", got.Atoms[1], cfg.Atoms[1])
	}
}

func TestSolverSettingsRejectsUnknownModes(t *testing.T) {
	for _, tc := range []struct {
		name string
		mut  func(*Config)
	}{
		{"damping", func(c *Config) { c.Solver.Damping = "cubic" }},
		{"termination", func(c *Config) { c.Solver.Termination = "never" }},
		{"ordering", func(c *Config) { c.Solver.Ordering = "random" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mut(cfg)
			if _, err := cfg.SolverSettings(); err == nil {
				t.Error("expected error for unknown mode")
			}
		})
	}
}

func TestBuildState(t *testing.T) {
	cfg := GetPreset("ion_pair")
	st := cfg.BuildState()
	if st.NLocal != 2 {
		t.Fatalf("expected 2 owned atoms, got %d", st.NLocal)
	}
	if st.Pos[1][0] != 3.0 {
		t.Errorf("expected atom 1 at x=3, got %v", st.Pos[1][0])
	}
	if st.QQr2e != DefaultQQr2e {
		t.Errorf("expected qqr2e %v, got %v", DefaultQQr2e, st.QQr2e)
	}
}

func TestBuildTable(t *testing.T) {
	cfg := GetPreset("ion_pair")
	table, err := cfg.BuildTable()
	if err != nil {
		t.Fatal(err)
	}
	if table.NTypes != 2 {
		t.Fatalf("expected 2 types, got %d", table.NTypes)
	}
	if table.CutLJ[0][1] != DefaultCutLJ {
		t.Errorf("expected mixed cutoff %v, got %v", DefaultCutLJ, table.CutLJ[0][1])
	}
}

func TestBuildTableEmpty(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := cfg.BuildTable(); err == nil {
		t.Error("expected error for empty scenario")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if len(ListPresets()) == 0 {
		t.Error("expected preset names")
	}
}
