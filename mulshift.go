package ryu

import (
	"math/bits"

	"github.com/shogo82148/int128"
)

// The scaling step computes floor((m * mul) / 2^j) where m has at most 55
// significant bits, mul is a 125-bit table constant in low,high word order,
// and j is large enough that the result always fits in 64 bits.
//
// multiplier is the contract for that product. The three implementations
// must agree bit for bit: one works on extended-width int128 values, one on
// the math/bits intrinsics, and a portable reference never leaves 32-bit
// limbs for its multiplications. Conversions dispatch through mulBackend;
// tests swap it to cross-check whole conversions per backend.
type multiplier interface {
	mulShift(m uint64, mul [2]uint64, j int32) uint64
	mulShiftAll(m uint64, mul [2]uint64, j int32, mmShift uint32) (vr, vp, vm uint64)
}

var mulBackend multiplier = intrinsicMul{}

// intrinsicMul uses the math/bits wide multiply and add-with-carry, which
// compile to single instructions on 64-bit targets.
type intrinsicMul struct{}

func (intrinsicMul) mulShift(m uint64, mul [2]uint64, j int32) uint64 {
	high1, low1 := bits.Mul64(m, mul[1])
	high0, _ := bits.Mul64(m, mul[0])
	sum, carry := bits.Add64(high0, low1, 0)
	return shiftRight128(sum, high1+carry, uint32(j-64))
}

func (b intrinsicMul) mulShiftAll(m uint64, mul [2]uint64, j int32, mmShift uint32) (vr, vp, vm uint64) {
	vp = b.mulShift(4*m+2, mul, j)
	vm = b.mulShift(4*m-1-uint64(mmShift), mul, j)
	return b.mulShift(4*m, mul, j), vp, vm
}

// uint128Mul forms the products as full extended-width values. The table
// word joins the high half of the low product before the final shift.
type uint128Mul struct{}

func (uint128Mul) mulShift(m uint64, mul [2]uint64, j int32) uint64 {
	w := int128.Uint128{L: m}
	b0 := w.Mul(int128.Uint128{L: mul[0]})
	b2 := w.Mul(int128.Uint128{L: mul[1]})
	return b2.Add(int128.Uint128{L: b0.H}).Rsh(uint(j - 64)).L
}

func (b uint128Mul) mulShiftAll(m uint64, mul [2]uint64, j int32, mmShift uint32) (vr, vp, vm uint64) {
	vp = b.mulShift(4*m+2, mul, j)
	vm = b.mulShift(4*m-1-uint64(mmShift), mul, j)
	return b.mulShift(4*m, mul, j), vp, vm
}

// portableMul is the reference implementation. Its mulShiftAll shares one
// 64x128 product: with m doubled, the upper bound adds mul once, and the
// lower bound subtracts mul either from the product (mmShift == 1) or from
// the doubled product, folding the bound offsets into cheap adjustments.
type portableMul struct{}

func (portableMul) mulShift(m uint64, mul [2]uint64, j int32) uint64 {
	high1, low1 := umul128(m, mul[1])
	high0, _ := umul128(m, mul[0])
	sum := high0 + low1
	if sum < high0 {
		high1++
	}
	return shiftRight128(sum, high1, uint32(j-64))
}

func (portableMul) mulShiftAll(m uint64, mul [2]uint64, j int32, mmShift uint32) (vr, vp, vm uint64) {
	m <<= 1
	tmp, lo := umul128(m, mul[0])
	hi, lo1 := umul128(m, mul[1])
	mid := tmp + lo1
	if mid < tmp {
		hi++
	}

	lo2 := lo + mul[0]
	mid2 := mid + mul[1]
	if lo2 < lo {
		mid2++
	}
	hi2 := hi
	if mid2 < mid {
		hi2++
	}
	vp = shiftRight128(mid2, hi2, uint32(j-64-1))

	if mmShift == 1 {
		lo3 := lo - mul[0]
		mid3 := mid - mul[1]
		if lo3 > lo {
			mid3--
		}
		hi3 := hi
		if mid3 > mid {
			hi3--
		}
		vm = shiftRight128(mid3, hi3, uint32(j-64-1))
	} else {
		lo3 := lo + lo
		mid3 := mid + mid
		if lo3 < lo {
			mid3++
		}
		hi3 := hi + hi
		if mid3 < mid {
			hi3++
		}
		lo4 := lo3 - mul[0]
		mid4 := mid3 - mul[1]
		if lo4 > lo3 {
			mid4--
		}
		hi4 := hi3
		if mid4 > mid3 {
			hi4--
		}
		vm = shiftRight128(mid4, hi4, uint32(j-64))
	}

	return shiftRight128(mid, hi, uint32(j-64-1)), vp, vm
}

// umul128 multiplies two 64-bit values into a 128-bit product using 32-bit
// limbs only, the way a compiler without a wide multiply would.
func umul128(a, b uint64) (hi, lo uint64) {
	aLo := uint32(a)
	aHi := uint32(a >> 32)
	bLo := uint32(b)
	bHi := uint32(b >> 32)

	b00 := uint64(aLo) * uint64(bLo)
	b01 := uint64(aLo) * uint64(bHi)
	b10 := uint64(aHi) * uint64(bLo)
	b11 := uint64(aHi) * uint64(bHi)

	b00Lo := uint32(b00)
	b00Hi := uint32(b00 >> 32)

	mid1 := b10 + uint64(b00Hi)
	mid1Lo := uint32(mid1)
	mid1Hi := uint32(mid1 >> 32)

	mid2 := b01 + uint64(mid1Lo)
	mid2Lo := uint32(mid2)
	mid2Hi := uint32(mid2 >> 32)

	hi = b11 + uint64(mid1Hi) + uint64(mid2Hi)
	lo = uint64(mid2Lo)<<32 | uint64(b00Lo)
	return hi, lo
}

// shiftRight128 returns the low 64 bits of (hi<<64 | lo) >> dist, with
// 0 < dist < 64. Scaling shifts stay in [49, 58] against the full tables
// and [2, 59] during compact reconstruction.
func shiftRight128(lo, hi uint64, dist uint32) uint64 {
	return hi<<(64-dist) | lo>>dist
}

// pow5Factor returns how many times value is divisible by 5. Multiplying by
// the inverse of 5 mod 2^64 wraps to a value at most floor(2^64 / 5) exactly
// when the input was a multiple of 5. value must be nonzero.
func pow5Factor(value uint64) uint32 {
	const (
		mInv5 = 14757395258967641293
		nDiv5 = 3689348814741910323
	)
	count := uint32(0)
	for {
		value *= mInv5
		if value > nDiv5 {
			break
		}
		count++
	}
	return count
}

// multipleOfPowerOf5 reports whether value is divisible by 5^p.
func multipleOfPowerOf5(value uint64, p uint32) bool {
	return pow5Factor(value) >= p
}

// multipleOfPowerOf2 reports whether value is divisible by 2^p. value must
// be nonzero and p < 64.
func multipleOfPowerOf2(value uint64, p uint32) bool {
	return uint32(bits.TrailingZeros64(value)) >= p
}
