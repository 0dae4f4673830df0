package compiler

import (
	"sort"

	"github.com/prada-pim/prada/arch"
	"github.com/prada-pim/prada/mig"
	"github.com/prada-pim/prada/program"
)

// ConstantValue names what, if anything, a row is permanently wired to.
// The reference subarray of TRA needs a known-polarity bit to compare
// against, which is why the compiler always seeds one row each with 0
// and 1 regardless of whether the network ever references them.
type ConstantValue int

const (
	NoConstant ConstantValue = iota
	ConstantZero
	ConstantOne
)

// RowState is the per-row bookkeeping record the compiler keeps for
// every row it has allocated (i.e. every row in dramState).
type RowState struct {
	Signal    mig.Signal
	HasSignal bool
	Constant  ConstantValue
}

// Settings are the compile-time options spec.md §6 lists. Rewrite and
// PrintProgram are honored by the caller (cmd/pradac), not by Compile
// itself — they govern the e-graph rewriter and the final print step,
// both explicitly out of the core's scope (spec.md §1). Verbose gates
// this package's own phase logging via glog.
type Settings struct {
	Rewrite      bool
	Verbose      bool
	PrintProgram bool
}

// state is the row-allocator's mutable bookkeeping for one compilation
// call (spec.md §3's CompilationState).
type state struct {
	arch    *arch.Architecture
	network mig.NetworkWithBackwardEdges
	builder *program.Builder
	home    arch.SubarrayId

	dramState   map[arch.RowAddress]RowState
	valueStates map[mig.Signal]arch.RowAddress
	freeRows    []arch.RowAddress // stack; pop() yields the smallest free local row first

	candidates map[mig.Id]mig.Node
	// outputCount[id] is the number of output positions naming id. A node
	// can be named by more than one output, and leftoverUseCount must
	// charge for every one of them or a row gets freed before its last
	// output position is serviced.
	outputCount map[mig.Id]int
	useCount    map[mig.Id]int

	outputRows []arch.RowAddress // reserved sinks, indexed by output position
	filled     []bool            // whether outputRows[k] has received its final value
}

func newState(a *arch.Architecture, network mig.NetworkWithBackwardEdges) (*state, error) {
	outputs := network.Outputs()
	numOutputs := uint64(len(outputs))
	if numOutputs > a.RowsPerSubarray() {
		return nil, ErrOutOfRows
	}

	s := &state{
		arch:        a,
		network:     network,
		builder:     program.NewBuilder(a),
		home:        0,
		dramState:   make(map[arch.RowAddress]RowState),
		valueStates: make(map[mig.Signal]arch.RowAddress),
		candidates:  make(map[mig.Id]mig.Node),
		outputCount: make(map[mig.Id]int),
		useCount:    make(map[mig.Id]int),
		outputRows:  make([]arch.RowAddress, numOutputs),
		filled:      make([]bool, numOutputs),
	}

	// Reserved output sinks: rows 0..(numOutputs-1) of the home subarray,
	// disjoint from the allocator pool for the lifetime of the compile.
	for k := uint64(0); k < numOutputs; k++ {
		s.outputRows[k] = a.PackAddress(s.home, k)
	}
	for _, sig := range outputs {
		s.outputCount[sig.Node]++
	}

	// Remaining pool, smallest local row first.
	for local := a.RowsPerSubarray() - 1; local >= numOutputs; local-- {
		s.freeRows = append(s.freeRows, a.PackAddress(s.home, local))
		if local == 0 {
			break
		}
	}

	if err := s.initLeaves(); err != nil {
		return nil, err
	}
	s.initCandidates()
	return s, nil
}

func (s *state) popFreeRow() (arch.RowAddress, error) {
	if len(s.freeRows) == 0 {
		return 0, ErrOutOfRows
	}
	n := len(s.freeRows) - 1
	row := s.freeRows[n]
	s.freeRows = s.freeRows[:n]
	return row, nil
}

func (s *state) pushFreeRow(row arch.RowAddress) {
	s.freeRows = append(s.freeRows, row)
}

// bind records that row now holds sig as its live value.
func (s *state) bind(sig mig.Signal, row arch.RowAddress, constant ConstantValue) {
	s.valueStates[sig] = row
	s.dramState[row] = RowState{Signal: sig, HasSignal: true, Constant: constant}
}

func (s *state) initLeaves() error {
	constZero, err := s.popFreeRow()
	if err != nil {
		return err
	}
	constOne, err := s.popFreeRow()
	if err != nil {
		return err
	}
	s.dramState[constZero] = RowState{Constant: ConstantZero}
	s.dramState[constOne] = RowState{Constant: ConstantOne}

	// Deterministic order: the compiled program must not depend on map
	// iteration order.
	leaves := append([]mig.Id(nil), s.network.Leaves()...)
	sort.Slice(leaves, func(i, j int) bool { return leaves[i] < leaves[j] })

	for _, id := range leaves {
		switch s.network.Node(id).(type) {
		case mig.False:
			s.bind(mig.Signal{Node: id, Inverted: false}, constZero, ConstantZero)
			s.bind(mig.Signal{Node: id, Inverted: true}, constOne, ConstantOne)
		case mig.Input:
			// Only the non-inverted polarity is materialized up front;
			// the complement is derived on demand the first time some
			// consumer actually needs it (spec.md §4.4 step 2's "future
			// pass" discipline, adopted here as the default).
			rowF, err := s.popFreeRow()
			if err != nil {
				return err
			}
			s.bind(mig.Signal{Node: id, Inverted: false}, rowF, NoConstant)
		default:
			return ErrInvalidGraph
		}
	}
	return nil
}

func (s *state) initCandidates() {
	for _, leaf := range s.network.Leaves() {
		for _, candidateID := range s.network.NodeOutputs(leaf) {
			if _, already := s.candidates[candidateID]; already {
				continue
			}
			node := s.network.Node(candidateID)
			if s.allInputsAreLeaves(node) {
				s.candidates[candidateID] = node
			}
		}
	}
}

func (s *state) allInputsAreLeaves(node mig.Node) bool {
	for _, sig := range mig.Inputs(node) {
		if !s.network.IsLeaf(sig.Node) {
			return false
		}
	}
	return true
}

// leftoverUseCount returns the remaining number of consumers of id,
// computing fanOut(id) + the number of output positions naming id, on
// first inspection (spec.md §3).
func (s *state) leftoverUseCount(id mig.Id) int {
	if n, ok := s.useCount[id]; ok {
		return n
	}
	n := len(s.network.NodeOutputs(id)) + s.outputCount[id]
	s.useCount[id] = n
	return n
}

// release decrements id's leftover use count by one and, if it reaches
// zero, frees every row still recorded for either polarity of id.
func (s *state) release(id mig.Id) {
	n := s.leftoverUseCount(id) - 1
	if n < 0 {
		n = 0
	}
	s.useCount[id] = n
	if n > 0 {
		return
	}
	for _, pol := range [2]bool{false, true} {
		sig := mig.Signal{Node: id, Inverted: pol}
		row, ok := s.valueStates[sig]
		if !ok {
			continue
		}
		delete(s.valueStates, sig)
		if rs, present := s.dramState[row]; present && rs.HasSignal && rs.Signal == sig {
			delete(s.dramState, row)
			s.pushFreeRow(row)
		}
	}
}
