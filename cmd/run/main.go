// Command run generates a run configuration and a supervised training dataset.
//
// It writes the Heisenberg 1d configuration file, enumerates a qubit chain
// into a samples file, and fills a target store with the amplitudes of the
// uniform superposition over that space.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"nqs/config"
	"nqs/data"
	"nqs/graph"
	"nqs/hilbert"
)

const (
	fnameConfig  = "heisenberg1d.json"
	fnameSamples = "ising1d_train_samples.txt"
	fnameTargets = "targets.db"
)

var (
	runDir  = flag.String("d", filepath.Join("runs", "nqs"), "run directory")
	trainL  = flag.Int("l", 10, "training chain length")
	totalSz = flag.Float64("sz", 0, "total Sz of the configured hilbert space")
)

func heisenberg1d() *config.Config {
	return &config.Config{
		Hilbert:     config.Hilbert{Name: "Spin", S: 0.5, TotalSz: totalSz},
		Graph:       config.Graph{Name: "Hypercube", L: 20, Dimension: 1, Pbc: true},
		Hamiltonian: &config.Hamiltonian{Name: "Heisenberg"},
		// A two-body Jastrow factor with translation symmetry.
		Machine:   &config.Machine{Name: "JastrowSymm", SigmaRand: 0.01},
		Sampler:   &config.Sampler{Name: "MetropolisHamiltonian"},
		Optimizer: &config.Optimizer{Name: "Sgd", LearningRate: 0.01},
		// Stochastic reconfiguration.
		GroundState: &config.GroundState{
			Method:     "Sr",
			Nsamples:   4e3,
			NiterOpt:   200,
			Diagshift:  0.01,
			OutputFile: "test",
		},
	}
}

func writeConfig(dir string) error {
	cfg := heisenberg1d()
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "")
	}

	fpath := filepath.Join(dir, fnameConfig)
	if err := cfg.WriteFile(fpath); err != nil {
		return errors.Wrap(err, "")
	}

	sp, err := cfg.BuildHilbert()
	if err != nil {
		return errors.Wrap(err, "")
	}
	log.Printf("%s: %d sites, %d local states", fpath, sp.Size(), sp.LocalSize())
	return nil
}

func writeTrainData(dir string) error {
	g, err := graph.Hypercube(*trainL, 1, false)
	if err != nil {
		return errors.Wrap(err, "")
	}
	sp, err := hilbert.NewQubit(g.Size())
	if err != nil {
		return errors.Wrap(err, "")
	}
	in, err := hilbert.NewIndex(sp)
	if err != nil {
		return errors.Wrap(err, "")
	}

	samplesPath := filepath.Join(dir, fnameSamples)
	if err := data.WriteSamples(samplesPath, in); err != nil {
		return errors.Wrap(err, "")
	}
	log.Printf("%s: %d states", samplesPath, in.NStates())

	// Targets of the uniform superposition.
	store, err := data.NewStore(filepath.Join(dir, fnameTargets))
	if err != nil {
		return errors.Wrap(err, "")
	}
	amplitude := complex(float32(1/math.Sqrt(float64(in.NStates()))), 0)
	for k := 0; k < in.NStates(); k++ {
		if err1 := store.Put(k, amplitude); err1 != nil && err == nil {
			err = errors.Wrap(err1, fmt.Sprintf("%d", k))
			break
		}
	}
	if err1 := store.Close(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}
	return err
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	if err := os.MkdirAll(*runDir, os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}

	if err := writeConfig(*runDir); err != nil {
		return errors.Wrap(err, "")
	}
	if err := writeTrainData(*runDir); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
