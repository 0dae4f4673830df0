package program

import (
	"fmt"

	"github.com/prada-pim/prada/arch"
)

// Opcode identifies which of the three DRAM row-level primitives an
// Instruction performs.
type Opcode int

const (
	// OpRowCopy copies one row into another via a consecutive
	// Activate-Activate-Precharge (AAP) sequence.
	OpRowCopy Opcode = iota
	// OpTRA computes MAJ(a, b, c) destructively across three rows of the
	// same subarray via Triple-Row Activation.
	OpTRA
	// OpNot inverts a row in place.
	OpNot
)

// opCost is the reference latency/energy of one opcode. Exposed as a
// table, not baked into switch statements, so it can be retuned without
// touching the allocator.
var opCost = [...]struct {
	latency uint64
	energy  uint64
}{
	OpRowCopy: {latency: 100, energy: 50},
	OpTRA:     {latency: 49, energy: 150},
	OpNot:     {latency: 35, energy: 100},
}

// Latency returns the reference latency, in nanoseconds, of op.
func (op Opcode) Latency() uint64 { return opCost[op].latency }

// Energy returns the reference energy, in arbitrary units, of op.
func (op Opcode) Energy() uint64 { return opCost[op].energy }

func (op Opcode) String() string {
	switch op {
	case OpRowCopy:
		return "AAPRowCopy"
	case OpTRA:
		return "AAPTRA"
	case OpNot:
		return "N"
	default:
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
}

// Instruction is one emitted row-level operation. Not every field is
// meaningful for every opcode: OpRowCopy uses Src/Dst, OpTRA uses
// A/B/C, OpNot uses A only.
type Instruction struct {
	Op       Opcode
	Src, Dst arch.RowAddress
	A, B, C  arch.RowAddress
}

// RowCopy builds a dst <- src instruction.
func RowCopy(src, dst arch.RowAddress) Instruction {
	return Instruction{Op: OpRowCopy, Src: src, Dst: dst}
}

// TRA builds an a, b, c <- MAJ(a, b, c) instruction. All three addresses
// are destructively overwritten with the majority result.
func TRA(a, b, c arch.RowAddress) Instruction {
	return Instruction{Op: OpTRA, A: a, B: b, C: c}
}

// Not builds an r <- !r instruction.
func Not(r arch.RowAddress) Instruction {
	return Instruction{Op: OpNot, A: r}
}

// formatAddr renders a RowAddress as "subarray.local", the text format
// spec.md §6 fixes for the program listing.
func formatAddr(a *arch.Architecture, addr arch.RowAddress) string {
	return fmt.Sprintf("%d.%d", a.SubarrayOf(addr), a.LocalOf(addr))
}

// text renders i against a, using the grammar:
// AAPRowCopy s1.l1 s2.l2 / AAPTRA s.l1 s.l2 s.l3 / N s.l
func (i Instruction) text(a *arch.Architecture) string {
	switch i.Op {
	case OpRowCopy:
		return fmt.Sprintf("%s %s %s", i.Op, formatAddr(a, i.Src), formatAddr(a, i.Dst))
	case OpTRA:
		return fmt.Sprintf("%s %s %s %s", i.Op, formatAddr(a, i.A), formatAddr(a, i.B), formatAddr(a, i.C))
	case OpNot:
		return fmt.Sprintf("%s %s", i.Op, formatAddr(a, i.A))
	default:
		return fmt.Sprintf("<invalid instruction %v>", i)
	}
}

// UsedAddresses returns every row address i reads or writes.
func (i Instruction) UsedAddresses() []arch.RowAddress {
	switch i.Op {
	case OpRowCopy:
		return []arch.RowAddress{i.Src, i.Dst}
	case OpTRA:
		return []arch.RowAddress{i.A, i.B, i.C}
	case OpNot:
		return []arch.RowAddress{i.A}
	default:
		return nil
	}
}
