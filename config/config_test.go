package config

import (
	"os"
	"path/filepath"
	"testing"

	"nqs/hilbert"
)

func heisenberg1d() *Config {
	totalSz := 0.0
	return &Config{
		Hilbert:     Hilbert{Name: "Spin", S: 0.5, TotalSz: &totalSz},
		Graph:       Graph{Name: "Hypercube", L: 20, Dimension: 1, Pbc: true},
		Hamiltonian: &Hamiltonian{Name: "Heisenberg"},
		Machine:     &Machine{Name: "JastrowSymm", SigmaRand: 0.01},
		Sampler:     &Sampler{Name: "MetropolisHamiltonian"},
		Optimizer:   &Optimizer{Name: "Sgd", LearningRate: 0.01},
		GroundState: &GroundState{Method: "Sr", Nsamples: 4e3, NiterOpt: 200, Diagshift: 0.01, OutputFile: "test"},
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer os.RemoveAll(dir)

	cfg := heisenberg1d()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("%+v", err)
	}
	fpath := filepath.Join(dir, "heisenberg1d.json")
	if err := cfg.WriteFile(fpath); err != nil {
		t.Fatalf("%+v", err)
	}

	got, err := ReadFile(fpath)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if got.Hilbert.Name != "Spin" || got.Hilbert.S != 0.5 {
		t.Fatalf("%#v", got.Hilbert)
	}
	if got.Hilbert.TotalSz == nil || *got.Hilbert.TotalSz != 0 {
		t.Fatalf("%#v", got.Hilbert)
	}
	if got.Graph.Name != "Hypercube" || got.Graph.L != 20 || got.Graph.Dimension != 1 || !got.Graph.Pbc {
		t.Fatalf("%#v", got.Graph)
	}
	if *got.GroundState != *cfg.GroundState {
		t.Fatalf("%#v, expected %#v", got.GroundState, cfg.GroundState)
	}
}

func TestBuildHilbert(t *testing.T) {
	t.Parallel()
	cfg := heisenberg1d()
	sp, err := cfg.BuildHilbert()
	if err != nil {
		t.Fatalf("%+v", err)
	}

	spin, ok := sp.(*hilbert.Spin)
	if !ok {
		t.Fatalf("%#v", sp)
	}
	if spin.Size() != 20 {
		t.Fatalf("%d, expected %d", spin.Size(), 20)
	}
	if spin.LocalSize() != 2 {
		t.Fatalf("%d, expected %d", spin.LocalSize(), 2)
	}
	if totalSz, ok := spin.TotalSz(); !ok || totalSz != 0 {
		t.Fatalf("%f %v", totalSz, ok)
	}
}

func TestBuildKinds(t *testing.T) {
	t.Parallel()
	nBosons := 11
	tests := []struct {
		name      string
		cfg       Config
		size      int
		localSize int
	}{
		{
			name: "boson with total number",
			cfg: Config{
				Hilbert: Hilbert{Name: "Boson", NMax: 5, NBosons: &nBosons},
				Graph:   Graph{Name: "Hypercube", L: 21, Dimension: 1},
			},
			size:      21,
			localSize: 6,
		},
		{
			name: "qubit",
			cfg: Config{
				Hilbert: Hilbert{Name: "Qubit"},
				Graph:   Graph{Name: "Hypercube", L: 32, Dimension: 1},
			},
			size:      32,
			localSize: 2,
		},
		{
			name: "custom on custom graph",
			cfg: Config{
				Hilbert: Hilbert{Name: "Custom", LocalStates: []float64{-1232, 132, 0}},
				Graph:   Graph{Name: "Custom", Size: 5, Edges: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}}},
			},
			size:      5,
			localSize: 3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			sp, err := test.cfg.BuildHilbert()
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if sp.Size() != test.size {
				t.Fatalf("%d, expected %d", sp.Size(), test.size)
			}
			if sp.LocalSize() != test.localSize {
				t.Fatalf("%d, expected %d", sp.LocalSize(), test.localSize)
			}
		})
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "unknown hilbert",
			cfg: Config{
				Hilbert: Hilbert{Name: "Fermion"},
				Graph:   Graph{Name: "Hypercube", L: 4, Dimension: 1},
			},
		},
		{
			name: "unknown graph",
			cfg: Config{
				Hilbert: Hilbert{Name: "Qubit"},
				Graph:   Graph{Name: "Triangular", L: 4},
			},
		},
		{
			name: "bad spin",
			cfg: Config{
				Hilbert: Hilbert{Name: "Spin", S: 0.7},
				Graph:   Graph{Name: "Hypercube", L: 4, Dimension: 1},
			},
		},
		{
			name: "bad lattice",
			cfg: Config{
				Hilbert: Hilbert{Name: "Qubit"},
				Graph:   Graph{Name: "Hypercube", L: 0, Dimension: 1},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if err := test.cfg.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
