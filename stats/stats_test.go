package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsString(t *testing.T) {
	s := Statistics{
		EGraphClasses:    3,
		EGraphNodes:      5,
		EGraphSize:       8,
		InstructionCount: 12,
		CompilerTime:     2 * time.Millisecond,
	}
	got := s.String()
	assert.Contains(t, got, "instructions=12")
	assert.Contains(t, got, "classes=3")
	assert.Contains(t, got, "nodes=5")
	assert.Contains(t, got, "size=8")
}
