package program

import (
	"strings"

	"github.com/golang/glog"
	"github.com/prada-pim/prada/arch"
)

// Program is an ordered, straight-line list of DRAM row-level
// instructions together with their accumulated cost estimates.
type Program struct {
	Architecture *arch.Architecture
	Instructions []Instruction
	Runtime      uint64 // summed latency, ns
	Energy       uint64 // summed energy, a.u.
}

// String renders the program one instruction per line, matching spec.md
// §6's exact grammar.
func (p *Program) String() string {
	var b strings.Builder
	for _, instr := range p.Instructions {
		b.WriteString(instr.text(p.Architecture))
		b.WriteByte('\n')
	}
	return b.String()
}

// Builder accumulates instructions for one Architecture, asserting the
// partner-subarray invariants at the single point every instruction is
// appended. Violating one of these invariants is a programmer error in
// the allocator, per spec.md §4.2 — it is reported via glog.Fatalf
// rather than a returned error, the same way the teacher's bus treats an
// impossible memory access as fatal rather than recoverable.
type Builder struct {
	arch    *arch.Architecture
	program Program
}

// NewBuilder creates a Builder that emits instructions for a.
func NewBuilder(a *arch.Architecture) *Builder {
	return &Builder{arch: a, program: Program{Architecture: a}}
}

// EmitRowCopy appends a ROWCOPY(src, dst) instruction. src and dst must
// share a subarray or be in partner subarrays.
func (b *Builder) EmitRowCopy(src, dst arch.RowAddress) {
	if !b.arch.SameOrPartner(src, dst) {
		glog.Fatalf("program: ROWCOPY(%d, %d) crosses non-partner subarrays", src, dst)
	}
	b.emit(RowCopy(src, dst))
}

// EmitTRA appends a TRA(a, b, c) instruction. All three addresses must
// share a subarray.
func (b *Builder) EmitTRA(a, bAddr, c arch.RowAddress) {
	sa, sb, sc := b.arch.SubarrayOf(a), b.arch.SubarrayOf(bAddr), b.arch.SubarrayOf(c)
	if sa != sb || sb != sc {
		glog.Fatalf("program: TRA(%d, %d, %d) is not within one subarray", a, bAddr, c)
	}
	b.emit(TRA(a, bAddr, c))
}

// EmitNot appends an N(r) instruction.
func (b *Builder) EmitNot(r arch.RowAddress) {
	b.emit(Not(r))
}

func (b *Builder) emit(instr Instruction) {
	b.program.Instructions = append(b.program.Instructions, instr)
	b.program.Runtime += instr.Op.Latency()
	b.program.Energy += instr.Op.Energy()
}

// Build returns the accumulated Program. The Builder remains usable
// afterwards; the returned Program is a value copy of the state so far.
func (b *Builder) Build() *Program {
	out := b.program
	out.Instructions = append([]Instruction(nil), b.program.Instructions...)
	return &out
}

// Len returns the number of instructions emitted so far.
func (b *Builder) Len() int { return len(b.program.Instructions) }
