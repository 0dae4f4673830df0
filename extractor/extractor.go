// Package extractor is a minimal stand-in for the e-graph extraction
// pass spec.md places out of scope: given an already-built DAG and a
// cost function, it computes the cost of every reachable node bottom-up,
// memoizing as it goes, the way a real extractor would memoize per
// e-class.
package extractor

import (
	"errors"
	"fmt"

	"github.com/prada-pim/prada/cost"
	"github.com/prada-pim/prada/mig"
)

// ErrCycle is returned when evaluating n's outputs visits a node that is
// still on the current walk's stack: a structural cycle the cost model
// itself cannot and does not detect (cost.OfNode only rejects a node
// citing itself directly). It is also returned when costFn reports no
// cost for a node.
var ErrCycle = errors.New("extractor: cycle detected")

// Evaluate walks every node reachable from n.Outputs(), computing
// costFn for each one exactly once and caching the result by id. The
// returned map holds an entry for every node actually visited.
func Evaluate(n mig.Network, costFn cost.CostFunc) (map[mig.Id]cost.Cost, error) {
	memo := make(map[mig.Id]cost.Cost)
	onStack := make(map[mig.Id]bool)

	var walk func(id mig.Id) error
	walk = func(id mig.Id) error {
		if _, done := memo[id]; done {
			return nil
		}
		if onStack[id] {
			return fmt.Errorf("%w: node %d", ErrCycle, id)
		}
		onStack[id] = true
		defer delete(onStack, id)

		node := n.Node(id)
		for _, sig := range mig.Inputs(node) {
			if err := walk(sig.Node); err != nil {
				return err
			}
		}

		children := func(childID mig.Id) (cost.Cost, bool) {
			c, ok := memo[childID]
			return c, ok
		}
		c, ok := costFn(id, node, children)
		if !ok {
			return fmt.Errorf("%w: node %d", ErrCycle, id)
		}
		memo[id] = c
		return nil
	}

	for _, sig := range n.Outputs() {
		if err := walk(sig.Node); err != nil {
			return nil, err
		}
	}
	return memo, nil
}
