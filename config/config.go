// Package config reads and writes run configuration files.
//
// The file format is a single JSON object with one section per concern:
// Hilbert, Graph, Hamiltonian, Machine, Sampler, Optimizer and GroundState.
// Only the Hilbert and Graph sections are materialized into objects here;
// the remaining sections configure external solvers and are carried verbatim.
package config

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/pkg/errors"

	"nqs/graph"
	"nqs/hilbert"
)

type Config struct {
	Hilbert     Hilbert      `json:"Hilbert"`
	Graph       Graph        `json:"Graph"`
	Hamiltonian *Hamiltonian `json:"Hamiltonian,omitempty"`
	Machine     *Machine     `json:"Machine,omitempty"`
	Sampler     *Sampler     `json:"Sampler,omitempty"`
	Optimizer   *Optimizer   `json:"Optimizer,omitempty"`
	GroundState *GroundState `json:"GroundState,omitempty"`
}

type Hilbert struct {
	Name string `json:"Name"`

	// Spin.
	S       float64  `json:"S,omitempty"`
	TotalSz *float64 `json:"TotalSz,omitempty"`

	// Boson.
	NMax    int  `json:"Nmax,omitempty"`
	NBosons *int `json:"Nbosons,omitempty"`

	// Custom.
	LocalStates []float64 `json:"LocalStates,omitempty"`
}

type Graph struct {
	Name string `json:"Name"`

	// Hypercube.
	L         int  `json:"L,omitempty"`
	Dimension int  `json:"Dimension,omitempty"`
	Pbc       bool `json:"Pbc,omitempty"`

	// Custom.
	Size  int      `json:"Size,omitempty"`
	Edges [][2]int `json:"Edges,omitempty"`
}

type Hamiltonian struct {
	Name string `json:"Name"`
}

type Machine struct {
	Name      string  `json:"Name"`
	SigmaRand float64 `json:"SigmaRand,omitempty"`
}

type Sampler struct {
	Name string `json:"Name"`
}

type Optimizer struct {
	Name         string  `json:"Name"`
	LearningRate float64 `json:"LearningRate,omitempty"`
}

type GroundState struct {
	Method       string  `json:"Method"`
	Nsamples     float64 `json:"Nsamples,omitempty"`
	NiterOpt     int     `json:"NiterOpt,omitempty"`
	Diagshift    float64 `json:"Diagshift,omitempty"`
	UseIterative bool    `json:"UseIterative"`
	OutputFile   string  `json:"OutputFile,omitempty"`
}

var (
	hilbertNames = []string{"Spin", "Qubit", "Boson", "Custom"}
	graphNames   = []string{"Hypercube", "Custom"}
)

// Validate checks that the Hilbert and Graph sections name known kinds
// with sensible parameters.
func (c *Config) Validate() error {
	if !slices.Contains(hilbertNames, c.Hilbert.Name) {
		return errors.Errorf("unknown hilbert %q", c.Hilbert.Name)
	}
	if !slices.Contains(graphNames, c.Graph.Name) {
		return errors.Errorf("unknown graph %q", c.Graph.Name)
	}
	if _, err := c.BuildHilbert(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// BuildGraph materializes the Graph section.
func (c *Config) BuildGraph() (*graph.Graph, error) {
	switch c.Graph.Name {
	case "Hypercube":
		g, err := graph.Hypercube(c.Graph.L, c.Graph.Dimension, c.Graph.Pbc)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		return g, nil
	case "Custom":
		edges := make([]graph.Edge, 0, len(c.Graph.Edges))
		for _, e := range c.Graph.Edges {
			edges = append(edges, graph.Edge(e))
		}
		g, err := graph.Custom(c.Graph.Size, edges)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		return g, nil
	default:
		return nil, errors.Errorf("unknown graph %q", c.Graph.Name)
	}
}

// BuildHilbert materializes the Hilbert section on the configured graph.
func (c *Config) BuildHilbert() (hilbert.Space, error) {
	g, err := c.BuildGraph()
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	size := g.Size()

	switch c.Hilbert.Name {
	case "Spin":
		if c.Hilbert.TotalSz != nil {
			sp, err := hilbert.NewSpinTotalSz(size, c.Hilbert.S, *c.Hilbert.TotalSz)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			return sp, nil
		}
		sp, err := hilbert.NewSpin(size, c.Hilbert.S)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		return sp, nil
	case "Qubit":
		sp, err := hilbert.NewQubit(size)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		return sp, nil
	case "Boson":
		if c.Hilbert.NBosons != nil {
			sp, err := hilbert.NewBosonTotalNumber(size, c.Hilbert.NMax, *c.Hilbert.NBosons)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			return sp, nil
		}
		sp, err := hilbert.NewBoson(size, c.Hilbert.NMax)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		return sp, nil
	case "Custom":
		sp, err := hilbert.NewCustom(size, c.Hilbert.LocalStates)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		return sp, nil
	default:
		return nil, errors.Errorf("unknown hilbert %q", c.Hilbert.Name)
	}
}

// WriteFile writes c as JSON.
func (c *Config) WriteFile(path string) error {
	b, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// ReadFile parses a JSON configuration file.
func ReadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	c := &Config{}
	if err := json.Unmarshal(b, c); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return c, nil
}
