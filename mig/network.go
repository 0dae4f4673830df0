package mig

import (
	"fmt"
	"sort"
)

// Network is a read-only view of an MIG: every node by id, its primary
// outputs in declaration order, and which nodes are leaves.
type Network interface {
	// Node returns the node stored under id. Panics if id is unknown, the
	// same way an out-of-range slice index would.
	Node(id Id) Node
	// Leaves returns every leaf node id (constants and inputs).
	Leaves() []Id
	// Outputs returns the primary outputs, in declaration order.
	Outputs() []Signal
	// IsLeaf reports whether id names a leaf node.
	IsLeaf(id Id) bool
}

// NetworkWithBackwardEdges additionally exposes, for every node, the ids
// of the nodes that consume it — the backward-edge index the compiler
// needs to know a node's fan-out and to find its consumers when
// retiring it.
type NetworkWithBackwardEdges interface {
	Network
	// NodeOutputs returns the ids of nodes that directly consume id as an
	// input signal.
	NodeOutputs(id Id) []Id
}

// Graph is a concrete, validated, immutable implementation of
// NetworkWithBackwardEdges built once from a flat node map and an output
// list. Backward edges are computed eagerly at construction so later
// lookups are O(1).
type Graph struct {
	nodes     map[Id]Node
	outputs   []Signal
	leaves    []Id
	consumers map[Id][]Id
}

// NewGraph validates nodes and outputs and builds the backward-edge
// index. It returns an error (rather than panicking) for a Maj node
// referencing an unknown id, or an output referencing an unknown id.
// It does not detect cycles: a graph whose nodes depend on themselves is
// accepted here and only fails later, in compiler.Compile or
// extractor.Evaluate.
func NewGraph(nodes map[Id]Node, outputs []Signal) (*Graph, error) {
	for id, node := range nodes {
		for _, s := range Inputs(node) {
			if _, ok := nodes[s.Node]; !ok {
				return nil, fmt.Errorf("mig: node %d references unknown node %d", id, s.Node)
			}
		}
	}
	for i, s := range outputs {
		if _, ok := nodes[s.Node]; !ok {
			return nil, fmt.Errorf("mig: output %d references unknown node %d", i, s.Node)
		}
	}

	consumers := make(map[Id][]Id, len(nodes))
	var leaves []Id
	// Deterministic iteration order keeps the backward-edge index (and
	// hence compiled output) independent of Go's randomized map order.
	ids := make([]Id, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		node := nodes[id]
		if IsLeaf(node) {
			leaves = append(leaves, id)
			continue
		}
		for _, s := range Inputs(node) {
			consumers[s.Node] = append(consumers[s.Node], id)
		}
	}

	return &Graph{nodes: nodes, outputs: outputs, leaves: leaves, consumers: consumers}, nil
}

func (g *Graph) Node(id Id) Node {
	node, ok := g.nodes[id]
	if !ok {
		panic(fmt.Sprintf("mig: unknown node %d", id))
	}
	return node
}

func (g *Graph) Leaves() []Id { return g.leaves }

func (g *Graph) Outputs() []Signal { return g.outputs }

func (g *Graph) IsLeaf(id Id) bool { return IsLeaf(g.Node(id)) }

func (g *Graph) NodeOutputs(id Id) []Id { return g.consumers[id] }
