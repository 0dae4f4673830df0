// Package compiler implements the row allocator: it walks an MIG
// bottom-up in ready order, assigns every signal to a concrete DRAM row,
// and emits the instruction stream that realizes it on a
// Processing-Using-DRAM substrate.
package compiler

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/prada-pim/prada/arch"
	"github.com/prada-pim/prada/mig"
	"github.com/prada-pim/prada/program"
	"github.com/prada-pim/prada/stats"
)

// Compile lowers network into a straight-line Program of DRAM row
// operations for the given architecture. It is a pure function of its
// inputs: no state survives across calls, and two calls with the same
// arguments produce bit-identical programs.
func Compile(a *arch.Architecture, network mig.NetworkWithBackwardEdges, settings Settings) (*program.Program, *stats.Statistics, error) {
	start := time.Now()

	s, err := newState(a, network)
	if err != nil {
		return nil, nil, err
	}

	// Outputs that are wired directly to a leaf never become a Maj
	// candidate; place them before the main loop.
	for k, sig := range network.Outputs() {
		if network.IsLeaf(sig.Node) {
			if err := s.serviceOutput(k, sig); err != nil {
				return nil, nil, err
			}
		}
	}

	for len(s.candidates) > 0 {
		id, node := s.selectCandidate()
		if err := s.computeMaj(id, node); err != nil {
			return nil, nil, err
		}
		if s.outputCount[id] > 0 {
			if err := s.materializeOutputs(id); err != nil {
				return nil, nil, err
			}
		}
	}

	for k, ok := range s.filled {
		if !ok {
			return nil, nil, fmt.Errorf("%w: output %d was never placed", ErrInvalidGraph, k)
		}
	}

	p := s.builder.Build()
	st := &stats.Statistics{
		InstructionCount: uint64(len(p.Instructions)),
		CompilerTime:     time.Since(start),
	}
	if settings.Verbose {
		glog.Infof("compiler: emitted %d instructions in %s (runtime=%dns energy=%d)",
			len(p.Instructions), st.CompilerTime, p.Runtime, p.Energy)
	}
	return p, st, nil
}

// selectCandidate picks the candidate minimizing (notPresent, fanOut,
// !isOutput), ties broken by ascending NodeId (spec.md §4.4-a). notPresent
// should always be zero by construction; it is recomputed here as a
// correctness guard rather than assumed.
func (s *state) selectCandidate() (mig.Id, mig.Node) {
	var bestID mig.Id
	var bestNode mig.Node
	var bestKey [3]int
	first := true

	for id, node := range s.candidates {
		notPresent := 0
		for _, sig := range mig.Inputs(node) {
			if _, ok := s.valueStates[sig]; !ok {
				notPresent++
			}
		}
		fanOut := len(s.network.NodeOutputs(id))
		notOutput := 0
		if s.outputCount[id] == 0 {
			notOutput = 1
		}
		key := [3]int{notPresent, fanOut, notOutput}

		if first || less(key, bestKey) || (key == bestKey && id < bestID) {
			bestID, bestNode, bestKey, first = id, node, key, false
		}
	}
	return bestID, bestNode
}

func less(a, b [3]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// computeMaj emits the TRA for a ready Maj candidate, preserves any
// input whose producer is still needed afterwards, designates the
// result's home row, frees the two spent rows, retires inputs whose use
// count has run out, and expands the candidate set (spec.md §4.4 b/c/e/f).
func (s *state) computeMaj(id mig.Id, node mig.Node) error {
	delete(s.candidates, id)

	maj, ok := node.(mig.Maj)
	if !ok {
		return fmt.Errorf("%w: candidate %d is not a Maj node", ErrInvalidGraph, id)
	}
	signals := [3]mig.Signal{maj.A, maj.B, maj.C}

	rows, err := s.resolveRows(signals)
	if err != nil {
		return err
	}

	// (b) Preserve inputs that are still needed after this use: a fresh
	// copy becomes the new canonical home, since the original row is
	// about to be destructively overwritten by the TRA below.
	for i, sig := range signals {
		if s.leftoverUseCount(sig.Node) > 1 {
			fresh, err := s.popFreeRow()
			if err != nil {
				return err
			}
			s.builder.EmitRowCopy(rows[i], fresh)
			s.bind(sig, fresh, NoConstant)
		}
	}

	// (c) MAJ emission: all three rows hold MAJ(a,b,c) afterwards;
	// designate rows[0] as the result's home and free the other two.
	s.builder.EmitTRA(rows[0], rows[1], rows[2])
	result := mig.Signal{Node: id, Inverted: false}
	s.bind(result, rows[0], NoConstant)
	for _, row := range [2]arch.RowAddress{rows[1], rows[2]} {
		if row == rows[0] {
			continue
		}
		delete(s.dramState, row)
		s.pushFreeRow(row)
	}

	// (e) Retirement of the operands this MAJ just consumed.
	for _, sig := range signals {
		s.release(sig.Node)
	}

	// (f) Candidate expansion.
	for _, parentID := range s.network.NodeOutputs(id) {
		if _, already := s.candidates[parentID]; already {
			continue
		}
		parent := s.network.Node(parentID)
		ready := true
		for _, sig := range mig.Inputs(parent) {
			if _, ok := s.valueStates[sig]; !ok {
				ready = false
				break
			}
		}
		if ready {
			s.candidates[parentID] = parent
		}
	}
	return nil
}

func (s *state) resolveRows(signals [3]mig.Signal) ([3]arch.RowAddress, error) {
	var rows [3]arch.RowAddress
	for i, sig := range signals {
		row, err := s.materializeSignal(sig)
		if err != nil {
			return rows, err
		}
		rows[i] = row
	}
	return rows, nil
}

// materializeSignal returns a row holding sig's value, deriving it from
// its opposite polarity via a copy-then-N if sig itself was never
// computed directly. This is the one place the compiler turns an
// inversion bit into an actual N instruction, whether sig is consumed
// by another gate or placed straight into an output (spec.md §4.4-d and
// the Signal model of spec.md §2).
func (s *state) materializeSignal(sig mig.Signal) (arch.RowAddress, error) {
	if row, ok := s.valueStates[sig]; ok {
		return row, nil
	}
	orig, ok := s.valueStates[sig.Invert()]
	if !ok {
		return 0, fmt.Errorf("%w: %+v", ErrMissingSignal, sig)
	}
	backup, err := s.popFreeRow()
	if err != nil {
		return 0, err
	}
	s.builder.EmitRowCopy(orig, backup)
	s.builder.EmitNot(backup)
	// The backup row now holds sig directly; register it so a later
	// consumer of this exact polarity reuses it instead of re-deriving it.
	s.bind(sig, backup, NoConstant)
	return backup, nil
}

// materializeOutputs places id's value into every output row that
// declares it (spec.md §4.4-d), then retires the "is a primary output"
// use of id.
func (s *state) materializeOutputs(id mig.Id) error {
	for k, sig := range s.network.Outputs() {
		if sig.Node != id || s.filled[k] {
			continue
		}
		if err := s.serviceOutput(k, sig); err != nil {
			return err
		}
	}
	return nil
}

// serviceOutput places sig into output position k's reserved sink row
// and retires k's use of sig.Node. Used both for outputs wired directly
// to a leaf (before the main loop) and for outputs produced by a Maj
// (from materializeOutputs, once its producer has been computed).
func (s *state) serviceOutput(k int, sig mig.Signal) error {
	row, err := s.materializeSignal(sig)
	if err != nil {
		return err
	}
	s.builder.EmitRowCopy(row, s.outputRows[k])
	s.filled[k] = true
	s.release(sig.Node)
	return nil
}
