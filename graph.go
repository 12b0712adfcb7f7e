// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"github.com/pkg/errors"
)

// EdgeID identifies an edge. IDs increase monotonically over the lifetime of a
// graph and are never reused.
//
type EdgeID uint64

// An Edge is a wire between two ports. For standard edges, From is the source
// endpoint.
//
type Edge struct {
	ID   EdgeID `json:"-"`
	From Port   `json:"from"`
	To   Port   `json:"to"`
}

// Joins returns true if e connects a and b, in any direction.
//
func (e Edge) Joins(a, b Port) bool {
	return e.From == a && e.To == b || e.From == b && e.To == a
}

// Other returns the endpoint of e opposite to p.
//
func (e Edge) Other(p Port) Port {
	if e.From == p {
		return e.To
	}
	return e.From
}

func (e Edge) String() string {
	return e.From.String() + " -> " + e.To.String()
}

// Graph is the set of connections between ports. Edges are kept in insertion
// order and indexed by endpoint.
//
// A Graph is not safe for concurrent use.
//
type Graph struct {
	edges []Edge
	adj   map[Port][]EdgeID
	next  EdgeID
}

// NewGraph returns an empty graph.
//
func NewGraph() *Graph {
	return &Graph{adj: make(map[Port][]EdgeID)}
}

// Add adds an edge between from and to.
//
// Adding an edge between a port and itself fails with ErrSelfConnection, and
// adding an edge that already exists in either direction fails with
// ErrAlreadyExists. A sink to source edge is stored as source to sink.
//
func (g *Graph) Add(from, to Port) (Edge, error) {
	if from == to {
		return Edge{}, errors.Wrap(ErrSelfConnection, from.String())
	}
	if _, ok := g.find(from, to); ok {
		return Edge{}, errors.Wrapf(ErrAlreadyExists, "%v - %v", from, to)
	}
	if Classify(from, to) == Standard && from.Role() == Sink {
		from, to = to, from
	}
	g.next++
	e := Edge{ID: g.next, From: from, To: to}
	g.edges = append(g.edges, e)
	g.adj[from] = append(g.adj[from], e.ID)
	g.adj[to] = append(g.adj[to], e.ID)
	return e, nil
}

func (g *Graph) find(a, b Port) (int, bool) {
	for _, id := range g.adj[a] {
		i := g.index(id)
		if g.edges[i].Joins(a, b) {
			return i, true
		}
	}
	return -1, false
}

func (g *Graph) index(id EdgeID) int {
	// edges are sorted by id
	lo, hi := 0, len(g.edges)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if g.edges[m].ID < id {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}

// Remove removes the edge between a and b, in any direction, and returns it.
// It returns false if no such edge exists, in which case the graph is left
// untouched.
//
func (g *Graph) Remove(a, b Port) (Edge, bool) {
	i, ok := g.find(a, b)
	if !ok {
		return Edge{}, false
	}
	e := g.edges[i]
	g.edges = append(g.edges[:i], g.edges[i+1:]...)
	g.unlink(e.From, e.ID)
	g.unlink(e.To, e.ID)
	return e, true
}

func (g *Graph) unlink(p Port, id EdgeID) {
	ids := g.adj[p]
	for i, x := range ids {
		if x == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(g.adj, p)
		return
	}
	g.adj[p] = ids
}

// Has returns true if an edge joins a and b.
//
func (g *Graph) Has(a, b Port) bool {
	_, ok := g.find(a, b)
	return ok
}

// EdgesOf returns the edges incident to p, in insertion order.
//
func (g *Graph) EdgesOf(p Port) []Edge {
	ids := g.adj[p]
	if len(ids) == 0 {
		return nil
	}
	r := make([]Edge, len(ids))
	for i, id := range ids {
		r[i] = g.edges[g.index(id)]
	}
	return r
}

// Neighbors returns the ports connected to p, in edge insertion order.
//
func (g *Graph) Neighbors(p Port) []Port {
	es := g.EdgesOf(p)
	if es == nil {
		return nil
	}
	r := make([]Port, len(es))
	for i, e := range es {
		r[i] = e.Other(p)
	}
	return r
}

// Degree returns the number of edges incident to p.
//
func (g *Graph) Degree(p Port) int { return len(g.adj[p]) }

// Tied returns true if inputs a and b of gate id are bridged together.
//
func (g *Graph) Tied(id int, a, b string) bool {
	return g.Has(GateIn(id, a), GateIn(id, b))
}

// Edges returns a copy of all edges in insertion order.
//
func (g *Graph) Edges() []Edge {
	return append(make([]Edge, 0, len(g.edges)), g.edges...)
}

// Len returns the number of edges.
//
func (g *Graph) Len() int { return len(g.edges) }

// Clear removes all edges. Edge IDs keep increasing.
//
func (g *Graph) Clear() {
	g.edges = nil
	g.adj = make(map[Port][]EdgeID)
}

// Replace replaces the content of g with the given edges, in order. On error,
// g is left untouched.
//
func (g *Graph) Replace(edges []Edge) error {
	ng := &Graph{adj: make(map[Port][]EdgeID), next: g.next}
	for _, e := range edges {
		if _, err := ng.Add(e.From, e.To); err != nil {
			return err
		}
	}
	*g = *ng
	return nil
}
