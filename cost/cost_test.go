package cost

import (
	"testing"

	"github.com/prada-pim/prada/mig"
	"github.com/stretchr/testify/assert"
)

func TestCostOrdering(t *testing.T) {
	assert.True(t, Cost{Runtime: 1, Energy: 100}.Less(Cost{Runtime: 2, Energy: 0}))
	assert.True(t, Cost{Runtime: 2, Energy: 1}.Less(Cost{Runtime: 2, Energy: 2}))
	assert.False(t, Cost{Runtime: 2, Energy: 2}.Less(Cost{Runtime: 2, Energy: 2}))
	assert.False(t, Cost{Runtime: 3, Energy: 0}.Less(Cost{Runtime: 2, Energy: 100}))
}

func TestCostAddIdentity(t *testing.T) {
	c := Cost{Runtime: 7, Energy: 9}
	assert.Equal(t, c, c.Add(Zero()))
	assert.Equal(t, Cost{Runtime: 14, Energy: 18}, c.Add(c))
}

func TestOpCostTable(t *testing.T) {
	assert.Equal(t, Zero(), OpCostOf(mig.False{}))
	assert.Equal(t, Zero(), OpCostOf(mig.Input{K: 0}))
	assert.Equal(t, Cost{Runtime: 49, Energy: 150}, OpCostOf(mig.Maj{}))
}

func TestOfNodeSumsChildren(t *testing.T) {
	a, b, c := mig.Id(0), mig.Id(1), mig.Id(2)
	node := mig.Maj{A: mig.NewSignal(a), B: mig.NewSignal(b), C: mig.NewSignal(c)}
	children := func(id mig.Id) (Cost, bool) { return Zero(), true }

	got, ok := OfNode(mig.Id(3), node, children)
	assert.True(t, ok)
	assert.Equal(t, Cost{Runtime: 49, Energy: 150}, got)
}

func TestOfNodeChargesInvertedEdges(t *testing.T) {
	a, b, c := mig.Id(0), mig.Id(1), mig.Id(2)
	node := mig.Maj{A: mig.NewSignal(a).Invert(), B: mig.NewSignal(b), C: mig.NewSignal(c)}
	children := func(id mig.Id) (Cost, bool) { return Zero(), true }

	got, ok := OfNode(mig.Id(3), node, children)
	assert.True(t, ok)
	assert.Equal(t, Cost{Runtime: 49 + 35, Energy: 150 + 100}, got)
}

func TestOfNodeSelfCycleHasNoCost(t *testing.T) {
	self := mig.Id(5)
	node := mig.Maj{A: mig.NewSignal(self), B: mig.NewSignal(1), C: mig.NewSignal(2)}
	children := func(id mig.Id) (Cost, bool) { return Zero(), true }

	_, ok := OfNode(self, node, children)
	assert.False(t, ok)
}
