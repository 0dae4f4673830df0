package mig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallGraph(t *testing.T) *Graph {
	t.Helper()
	nodes := map[Id]Node{
		0: Input{K: 0},
		1: Input{K: 1},
		2: Input{K: 2},
		3: Maj{A: NewSignal(0), B: NewSignal(1), C: NewSignal(2)},
		4: Maj{A: NewSignal(3), B: NewSignal(0), C: NewSignal(1)},
	}
	g, err := NewGraph(nodes, []Signal{NewSignal(3), NewSignal(4).Invert()})
	require.NoError(t, err)
	return g
}

func TestNewGraphRejectsUnknownNodeReference(t *testing.T) {
	nodes := map[Id]Node{
		0: Input{K: 0},
		1: Maj{A: NewSignal(0), B: NewSignal(99), C: NewSignal(0)},
	}
	_, err := NewGraph(nodes, []Signal{NewSignal(1)})
	assert.Error(t, err)
}

func TestNewGraphRejectsUnknownOutputReference(t *testing.T) {
	nodes := map[Id]Node{0: Input{K: 0}}
	_, err := NewGraph(nodes, []Signal{NewSignal(42)})
	assert.Error(t, err)
}

func TestGraphLeavesAndIsLeaf(t *testing.T) {
	g := smallGraph(t)
	assert.ElementsMatch(t, []Id{0, 1, 2}, g.Leaves())
	assert.True(t, g.IsLeaf(0))
	assert.False(t, g.IsLeaf(3))
	assert.False(t, g.IsLeaf(4))
}

func TestGraphNodeOutputsIsBackwardEdges(t *testing.T) {
	g := smallGraph(t)
	// 0 feeds both Maj nodes; 2 feeds only the first.
	assert.ElementsMatch(t, []Id{3, 4}, g.NodeOutputs(0))
	assert.ElementsMatch(t, []Id{3}, g.NodeOutputs(2))
	assert.Empty(t, g.NodeOutputs(4))
}

func TestGraphOutputsPreserveDeclarationOrder(t *testing.T) {
	g := smallGraph(t)
	assert.Equal(t, []Signal{NewSignal(3), NewSignal(4).Invert()}, g.Outputs())
}

func TestGraphNodePanicsOnUnknownId(t *testing.T) {
	g := smallGraph(t)
	assert.Panics(t, func() { g.Node(999) })
}
