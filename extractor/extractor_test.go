package extractor

import (
	"testing"

	"github.com/prada-pim/prada/cost"
	"github.com/prada-pim/prada/mig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateMemoizesSharedChild(t *testing.T) {
	nodes := map[mig.Id]mig.Node{
		0: mig.Input{K: 0},
		1: mig.Input{K: 1},
		2: mig.Input{K: 2},
		3: mig.Maj{A: mig.NewSignal(0), B: mig.NewSignal(1), C: mig.NewSignal(2)},
		4: mig.Maj{A: mig.NewSignal(3), B: mig.NewSignal(0), C: mig.NewSignal(1)},
	}
	g, err := mig.NewGraph(nodes, []mig.Signal{mig.NewSignal(3), mig.NewSignal(4)})
	require.NoError(t, err)

	visits := make(map[mig.Id]int)
	costFn := func(id mig.Id, node mig.Node, children cost.ChildCost) (cost.Cost, bool) {
		visits[id]++
		return cost.OfNode(id, node, children)
	}

	costs, err := Evaluate(g, costFn)
	require.NoError(t, err)
	assert.Len(t, costs, 5)
	for id, n := range visits {
		assert.Equalf(t, 1, n, "node %d visited %d times, want 1", id, n)
	}
	assert.Equal(t, cost.Cost{Runtime: 49, Energy: 150}, costs[3])
	assert.Equal(t, cost.Cost{Runtime: 98, Energy: 300}, costs[4])
}

func TestEvaluateRejectsSelfCycle(t *testing.T) {
	nodes := map[mig.Id]mig.Node{
		0: mig.Input{K: 0},
		1: mig.Input{K: 1},
	}
	// Node 2 cites itself as an operand. NewGraph only checks for unknown
	// ids, so it accepts this graph; Evaluate then finds node 2 still on
	// its walk stack when it visits node 2's first operand.
	nodes[2] = mig.Maj{A: mig.NewSignal(2), B: mig.NewSignal(0), C: mig.NewSignal(1)}
	g, err := mig.NewGraph(nodes, []mig.Signal{mig.NewSignal(2)})
	require.NoError(t, err)

	_, err = Evaluate(g, cost.OfNode)
	assert.ErrorIs(t, err, ErrCycle)
}
