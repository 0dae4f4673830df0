// Package arch describes the target DRAM module: how many subarrays it
// has, how many rows each subarray holds, and how a row address packs a
// subarray id and a local row index into a single integer.
//
// Everything here is pure address arithmetic. Nothing allocates, nothing
// mutates, and nothing is checked at runtime beyond what is documented:
// the caller is expected to only ever construct addresses that fit the
// architecture's bit widths, the same way a real address bus has no
// bounds check of its own.
package arch

import "math/bits"

// RowAddress packs a subarray id into the high bits and a local row index
// into the low bits: addr = (subarrayId << log2(rowsPerSubarray)) | local.
//
// Packing a value that does not fit the declared widths is a programmer
// error, not a runtime-checked condition.
type RowAddress uint64

// SubarrayId identifies one subarray of the DRAM module.
type SubarrayId uint64

// Architecture is an immutable description of the target DRAM module.
type Architecture struct {
	subarrays       uint64
	rowsPerSubarray uint64
	localBits       uint
}

// New builds an Architecture with the given number of subarrays and rows
// per subarray. rowsPerSubarray must be a power of two; its log2 becomes
// the width of the local-row field of a RowAddress.
func New(subarrays, rowsPerSubarray uint64) *Architecture {
	if subarrays == 0 || rowsPerSubarray == 0 {
		panic("arch: subarrays and rowsPerSubarray must be positive")
	}
	if bits.OnesCount64(rowsPerSubarray) != 1 {
		panic("arch: rowsPerSubarray must be a power of two")
	}
	return &Architecture{
		subarrays:       subarrays,
		rowsPerSubarray: rowsPerSubarray,
		localBits:       uint(bits.TrailingZeros64(rowsPerSubarray)),
	}
}

// SubarrayCount returns the number of subarrays in the module.
func (a *Architecture) SubarrayCount() uint64 { return a.subarrays }

// RowsPerSubarray returns the number of rows in a single subarray.
func (a *Architecture) RowsPerSubarray() uint64 { return a.rowsPerSubarray }

// TotalRows returns the total number of addressable rows in the module.
func (a *Architecture) TotalRows() uint64 { return a.subarrays * a.rowsPerSubarray }

// PackAddress builds a RowAddress from a subarray id and a local row
// index within that subarray. Out-of-range inputs are a programmer
// error and are not checked.
func (a *Architecture) PackAddress(sub SubarrayId, local uint64) RowAddress {
	return RowAddress(uint64(sub)<<a.localBits | local)
}

// SubarrayOf extracts the subarray id of a RowAddress.
func (a *Architecture) SubarrayOf(addr RowAddress) SubarrayId {
	return SubarrayId(uint64(addr) >> a.localBits)
}

// LocalOf extracts the local row index of a RowAddress within its
// subarray.
func (a *Architecture) LocalOf(addr RowAddress) uint64 {
	mask := uint64(1)<<a.localBits - 1
	return uint64(addr) & mask
}

// Reproject returns the address with the same local row but in a
// different subarray.
func (a *Architecture) Reproject(addr RowAddress, sub SubarrayId) RowAddress {
	return a.PackAddress(sub, a.LocalOf(addr))
}

// Partner returns the subarray this one is paired with for cross-subarray
// ROWCOPYs: subarrays pair up (0<->1, 2<->3, ...).
func (a *Architecture) Partner(sub SubarrayId) SubarrayId {
	return sub ^ 1
}

// SameOrPartner reports whether two row addresses are either in the same
// subarray or in partner subarrays, i.e. whether a ROWCOPY between them
// is legal.
func (a *Architecture) SameOrPartner(x, y RowAddress) bool {
	sx, sy := a.SubarrayOf(x), a.SubarrayOf(y)
	return sx == sy || a.Partner(sx) == sy
}
