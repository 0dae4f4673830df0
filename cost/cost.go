// Package cost implements the two-field cost model the extractor uses to
// choose, among equivalent MIG subgraphs, the one whose compiled program
// is cheapest.
package cost

import "github.com/prada-pim/prada/mig"

// Cost is a nonnegative (runtime, energy) pair. Ordering is lexicographic
// by (Runtime, Energy); addition is componentwise; the identity of
// addition is Zero().
type Cost struct {
	Runtime uint64 // ns
	Energy  uint64 // mJ/Kop
}

// Zero is the additive identity.
func Zero() Cost { return Cost{} }

// Add returns the componentwise sum of c and other.
func (c Cost) Add(other Cost) Cost {
	return Cost{Runtime: c.Runtime + other.Runtime, Energy: c.Energy + other.Energy}
}

// Less reports whether c sorts before other: lexicographically by
// (Runtime, Energy).
func (c Cost) Less(other Cost) bool {
	if c.Runtime != other.Runtime {
		return c.Runtime < other.Runtime
	}
	return c.Energy < other.Energy
}

// opCost is the per-node cost charged independent of its children, given
// to the extractor. Leaves cost nothing; a Maj gate costs one TRA; the
// implicit Not riding an edge costs one N.
var (
	leafOpCost = Zero()
	majOpCost  = Cost{Runtime: 49, Energy: 150}
	notOpCost  = Cost{Runtime: 35, Energy: 100}
)

// OpCostOf returns the per-node opcost of node, excluding its children.
func OpCostOf(node mig.Node) Cost {
	switch node.(type) {
	case mig.False, mig.Input:
		return leafOpCost
	case mig.Maj:
		return majOpCost
	default:
		return Zero()
	}
}

// CostFunc computes the cost of one node given a way to look up its
// children's already-computed costs. This is the shape the (external,
// black-box) e-graph extractor invokes per e-node, per spec.md §9.
type CostFunc func(id mig.Id, node mig.Node, children ChildCost) (Cost, bool)

// ChildCost looks up the already-computed cost of a child node. It must
// be idempotent and memoizing (spec.md §9): callers are expected to
// cache results keyed by mig.Id. The bool return is false when no cost
// is available for the child; OfNode then reports no cost for the
// parent as well.
type ChildCost func(id mig.Id) (Cost, bool)

// OfNode computes the cost of node given its children's costs: the
// node's own opcost plus the sum of its children's costs, plus one Not
// opcost per inverted input edge (inversion rides the edge, not the
// node, so it is charged here rather than in OpCostOf).
//
// OfNode returns (_, false) — "no cost available" — if node refers to
// its own e-class; the caller (normally the extractor) must then reject
// this candidate without treating it as a hard failure. Any other cycle
// is the extractor's responsibility to prevent by choosing an acyclic
// extraction; OfNode itself does not detect those.
func OfNode(selfID mig.Id, node mig.Node, children ChildCost) (Cost, bool) {
	for _, s := range mig.Inputs(node) {
		if s.Node == selfID {
			return Cost{}, false // SelfCycle
		}
	}

	total := OpCostOf(node)
	for _, s := range mig.Inputs(node) {
		c, ok := children(s.Node)
		if !ok {
			return Cost{}, false
		}
		total = total.Add(c)
		if s.Inverted {
			total = total.Add(notOpCost)
		}
	}
	return total, true
}
