package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testArch() *Architecture {
	return New(8, 16) // 8 subarrays, 16 rows each -> 4 local bits
}

func TestAddressRoundTrip(t *testing.T) {
	a := testArch()
	for sub := SubarrayId(0); sub < SubarrayId(a.SubarrayCount()); sub++ {
		for local := uint64(0); local < a.RowsPerSubarray(); local++ {
			addr := a.PackAddress(sub, local)
			assert.Equal(t, sub, a.SubarrayOf(addr))
			assert.Equal(t, local, a.LocalOf(addr))
		}
	}
}

func TestPartnerInvolution(t *testing.T) {
	a := testArch()
	for sub := SubarrayId(0); sub < SubarrayId(a.SubarrayCount()); sub++ {
		p := a.Partner(sub)
		assert.NotEqual(t, sub, p)
		assert.Equal(t, sub, a.Partner(p))
	}
}

func TestReprojectPreservesLocalRow(t *testing.T) {
	a := testArch()
	addr := a.PackAddress(2, 5)
	reprojected := a.Reproject(addr, 6)
	assert.Equal(t, SubarrayId(6), a.SubarrayOf(reprojected))
	assert.Equal(t, uint64(5), a.LocalOf(reprojected))
}

func TestSameOrPartner(t *testing.T) {
	a := testArch()
	same := a.PackAddress(2, 0)
	sameSub := a.PackAddress(2, 1)
	partner := a.PackAddress(3, 1)
	other := a.PackAddress(4, 1)

	assert.True(t, a.SameOrPartner(same, sameSub))
	assert.True(t, a.SameOrPartner(same, partner))
	assert.False(t, a.SameOrPartner(same, other))
}

func TestTotalRows(t *testing.T) {
	a := testArch()
	assert.Equal(t, uint64(128), a.TotalRows())
}
