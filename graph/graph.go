// Package graph provides the lattices on which Hilbert spaces are defined.
package graph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Edge is an undirected edge between two sites, with Edge[0] <= Edge[1].
type Edge [2]int

type Graph struct {
	n     int
	edges []Edge
}

// Hypercube creates a hypercube lattice of the given side length and dimension.
// Sites are numbered in row-major order of their coordinates.
func Hypercube(length, ndim int, pbc bool) (*Graph, error) {
	if length < 1 {
		return nil, errors.Errorf("length %d", length)
	}
	if ndim < 1 {
		return nil, errors.Errorf("dimension %d", ndim)
	}
	if pbc && length <= 2 {
		return nil, errors.Errorf("length %d too small for periodic boundaries", length)
	}

	n := 1
	for range ndim {
		n *= length
	}

	g := &Graph{n: n, edges: make([]Edge, 0, n*ndim)}
	coord := make([]int, ndim)
	for site := 0; site < n; site++ {
		// stride is the distance between neighbors along dimension d.
		stride := n / length
		for d := range ndim {
			switch {
			case coord[d]+1 < length:
				g.edges = append(g.edges, makeEdge(site, site+stride))
			case pbc:
				g.edges = append(g.edges, makeEdge(site, site-(length-1)*stride))
			}
			stride /= length
		}

		// Advance to the next coordinate.
		for d := ndim - 1; d >= 0; d-- {
			coord[d]++
			if coord[d] < length {
				break
			}
			coord[d] = 0
		}
	}
	slices.SortFunc(g.edges, compareEdges)

	return g, nil
}

// Custom creates a graph of n sites from an explicit edge list.
func Custom(n int, edges []Edge) (*Graph, error) {
	if n < 1 {
		return nil, errors.Errorf("%d sites", n)
	}

	g := &Graph{n: n, edges: make([]Edge, 0, len(edges))}
	for _, e := range edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return nil, errors.Errorf("edge %v outside %d sites", e, n)
		}
		if e[0] == e[1] {
			return nil, errors.Errorf("self edge %v", e)
		}
		g.edges = append(g.edges, makeEdge(e[0], e[1]))
	}

	slices.SortFunc(g.edges, compareEdges)
	if dup, ok := duplicate(g.edges); ok {
		return nil, errors.Errorf("duplicate edge %v", dup)
	}

	return g, nil
}

// Size returns the number of sites.
func (g *Graph) Size() int { return g.n }

// Edges returns the edges sorted in increasing order.
func (g *Graph) Edges() []Edge { return g.edges }

// AdjacencyList returns for every site its sorted list of neighbors.
func (g *Graph) AdjacencyList() [][]int {
	adj := make([][]int, g.n)
	for _, e := range g.edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	for _, nbrs := range adj {
		slices.Sort(nbrs)
	}
	return adj
}

func (g *Graph) String() string {
	return fmt.Sprintf("graph{%d sites, %d edges}", g.n, len(g.edges))
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a[0], b[0]); c != 0 {
		return c
	}
	return cmp.Compare(a[1], b[1])
}

func makeEdge(i, j int) Edge {
	if i < j {
		return Edge{i, j}
	}
	return Edge{j, i}
}

func duplicate(edges []Edge) (Edge, bool) {
	for i := 1; i < len(edges); i++ {
		if edges[i] == edges[i-1] {
			return edges[i], true
		}
	}
	return Edge{}, false
}
