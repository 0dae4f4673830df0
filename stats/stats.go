// Package stats collects the counters and timings a single end-to-end
// run of cmd/pradac reports: how big the optional e-graph rewrite grew,
// how long each stage took, and how many instructions the compiler
// emitted (spec.md §4.7).
package stats

import (
	"fmt"
	"time"
)

// Statistics is populated piecemeal by the stages of a run:
// compiler.Compile fills InstructionCount and CompilerTime, and
// cmd/pradac fills ExtractorTime when --rewrite makes it run
// extractor.Evaluate. No stage in this repository fills the EGraph*
// fields or RunnerTime; they stay zero.
type Statistics struct {
	EGraphClasses uint64
	EGraphNodes   uint64
	EGraphSize    uint64

	InstructionCount uint64

	RunnerTime    time.Duration
	ExtractorTime time.Duration
	CompilerTime  time.Duration
}

// String renders a one-line summary suitable for --verbose logging.
func (s Statistics) String() string {
	return fmt.Sprintf(
		"instructions=%d egraph(classes=%d nodes=%d size=%d) time(runner=%s extractor=%s compiler=%s)",
		s.InstructionCount, s.EGraphClasses, s.EGraphNodes, s.EGraphSize,
		s.RunnerTime, s.ExtractorTime, s.CompilerTime,
	)
}
