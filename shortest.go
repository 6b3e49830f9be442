package ryu

// IEEE-754 binary64 field widths and bias.
const (
	mantissaBits = 52
	exponentBits = 11
	exponentBias = 1023
)

// decode splits a binary64 bit pattern into its sign, biased exponent, and
// raw mantissa fields.
func decode(bits uint64) (sign bool, exponent uint32, mantissa uint64) {
	sign = bits>>(mantissaBits+exponentBits)&1 != 0
	mantissa = bits & (1<<mantissaBits - 1)
	exponent = uint32(bits >> mantissaBits & (1<<exponentBits - 1))
	return sign, exponent, mantissa
}

// smallInt extracts values that are exact integers below 2^53, which skip
// the shortest-digit search entirely. The returned mantissa may still carry
// decimal trailing zeros.
func smallInt(ieeeMantissa uint64, ieeeExponent uint32) (floatingDecimal, bool) {
	m2 := uint64(1)<<mantissaBits | ieeeMantissa
	e2 := int32(ieeeExponent) - exponentBias - mantissaBits

	if e2 > 0 {
		// 2^53 <= f.
		return floatingDecimal{}, false
	}
	if e2 < -52 {
		// 0 < f < 1.
		return floatingDecimal{}, false
	}

	// f is an integer in [1, 2^53) iff the fractional bits are zero.
	mask := uint64(1)<<uint32(-e2) - 1
	if m2&mask != 0 {
		return floatingDecimal{}, false
	}
	return floatingDecimal{mantissa: m2 >> uint32(-e2)}, true
}

// stripState is the digit-removal loop state: the candidate triple, how many
// digits came off, the last digit removed, and whether the discarded tails
// of vm and vr were all zeros.
type stripState struct {
	vr, vp, vm       uint64
	removed          int32
	lastRemovedDigit uint8
	vmTrailingZeros  bool
	vrTrailingZeros  bool
}

// stripSlow removes digits while tracking exact-tail information so that the
// final digit can round half to even. General numbers take this path about
// 0.7% of the time.
func (s *stripState) stripSlow(acceptBounds bool) uint64 {
	for {
		vpDiv10 := s.vp / 10
		vmDiv10 := s.vm / 10
		if vpDiv10 <= vmDiv10 {
			break
		}
		vmMod10 := s.vm - 10*vmDiv10
		vrDiv10 := s.vr / 10
		vrMod10 := s.vr - 10*vrDiv10
		s.vmTrailingZeros = s.vmTrailingZeros && vmMod10 == 0
		s.vrTrailingZeros = s.vrTrailingZeros && s.lastRemovedDigit == 0
		s.lastRemovedDigit = uint8(vrMod10)
		s.vr = vrDiv10
		s.vp = vpDiv10
		s.vm = vmDiv10
		s.removed++
	}
	if s.vmTrailingZeros {
		for {
			vmDiv10 := s.vm / 10
			vmMod10 := s.vm - 10*vmDiv10
			if vmMod10 != 0 {
				break
			}
			vrDiv10 := s.vr / 10
			vrMod10 := s.vr - 10*vrDiv10
			s.vrTrailingZeros = s.vrTrailingZeros && s.lastRemovedDigit == 0
			s.lastRemovedDigit = uint8(vrMod10)
			s.vr = vrDiv10
			s.vp = s.vp / 10
			s.vm = vmDiv10
			s.removed++
		}
	}
	if s.vrTrailingZeros && s.lastRemovedDigit == 5 && s.vr%2 == 0 {
		// The exact tail is ...500...0, round the final digit to even.
		s.lastRemovedDigit = 4
	}
	output := s.vr
	if (s.vr == s.vm && (!acceptBounds || !s.vmTrailingZeros)) || s.lastRemovedDigit >= 5 {
		output++
	}
	return output
}

// stripFast is the common path with no exact-tail bookkeeping. It peels two
// digits at once when the bounds allow, which happens for roughly 86% of
// values.
func (s *stripState) stripFast() uint64 {
	roundUp := false
	vpDiv100 := s.vp / 100
	vmDiv100 := s.vm / 100
	if vpDiv100 > vmDiv100 {
		vrDiv100 := s.vr / 100
		vrMod100 := s.vr - 100*vrDiv100
		roundUp = vrMod100 >= 50
		s.vr = vrDiv100
		s.vp = vpDiv100
		s.vm = vmDiv100
		s.removed += 2
	}
	for {
		vpDiv10 := s.vp / 10
		vmDiv10 := s.vm / 10
		if vpDiv10 <= vmDiv10 {
			break
		}
		vrDiv10 := s.vr / 10
		vrMod10 := s.vr - 10*vrDiv10
		roundUp = vrMod10 >= 5
		s.vr = vrDiv10
		s.vp = vpDiv10
		s.vm = vmDiv10
		s.removed++
	}
	output := s.vr
	if s.vr == s.vm || roundUp {
		output++
	}
	return output
}

// shortestDecimal runs the core search: scale the value and its rounding
// interval to integers via a 128-bit power-of-five multiply, then discard
// digits while the interval still brackets a decimal, choosing the candidate
// closest to the exact value at the stopping width.
func shortestDecimal(ieeeMantissa uint64, ieeeExponent uint32) floatingDecimal {
	var e2 int32
	var m2 uint64
	if ieeeExponent == 0 {
		// Subnormal. The extra -2 makes room for the scaled bounds below.
		e2 = 1 - exponentBias - mantissaBits - 2
		m2 = ieeeMantissa
	} else {
		e2 = int32(ieeeExponent) - exponentBias - mantissaBits - 2
		m2 = uint64(1)<<mantissaBits | ieeeMantissa
	}
	even := m2&1 == 0
	acceptBounds := even

	// Step 2: the scaled value mv = 4*m2 keeps the halfway points mv+2 and
	// mv-1-mmShift integral. The lower boundary is closer when the mantissa
	// sits on a power of two with a predecessor in a lower binade.
	mv := 4 * m2
	mmShift := uint32(0)
	if ieeeMantissa != 0 || ieeeExponent <= 1 {
		mmShift = 1
	}

	// Step 3: convert the triple to a decimal power base, keeping track of
	// whether anything nonzero was truncated.
	var st stripState
	var e10 int32
	if e2 >= 0 {
		q := log10Pow2(e2)
		if e2 > 3 {
			q--
		}
		e10 = int32(q)
		k := pow5InvBitcount + pow5Bits(int32(q)) - 1
		i := -e2 + int32(q) + k
		st.vr, st.vp, st.vm = mulBackend.mulShiftAll(m2, pow5InvFor(q), i, mmShift)
		if q <= 21 {
			// At most one of mv, mv+2 and mv-1-mmShift is a multiple of
			// 5 given that mv spans only two adjacent values of m2.
			mvMod5 := uint32(mv) - 5*uint32(mv/5)
			if mvMod5 == 0 {
				st.vrTrailingZeros = multipleOfPowerOf5(mv, q)
			} else if acceptBounds {
				st.vmTrailingZeros = multipleOfPowerOf5(mv-1-uint64(mmShift), q)
			} else if multipleOfPowerOf5(mv+2, q) {
				st.vp--
			}
		}
	} else {
		q := log10Pow5(-e2)
		if -e2 > 1 {
			q--
		}
		e10 = int32(q) + e2
		i := -e2 - int32(q)
		k := pow5Bits(i) - pow5Bitcount
		j := int32(q) - k
		st.vr, st.vp, st.vm = mulBackend.mulShiftAll(m2, pow5For(uint32(i)), j, mmShift)
		if q <= 1 {
			// Every value of the form 4*m2 has at least two trailing zero
			// bits, so vr is trailing-zero exact here.
			st.vrTrailingZeros = true
			if acceptBounds {
				// mm = mv - 1 - mmShift has one trailing zero bit only
				// when mmShift is 1.
				st.vmTrailingZeros = mmShift == 1
			} else {
				// mp = mv + 2 always has one trailing zero bit.
				st.vp--
			}
		} else if q < 63 {
			st.vrTrailingZeros = multipleOfPowerOf2(mv, q)
		}
	}

	// Step 4: find the shortest representation inside [vm, vp].
	var output uint64
	if st.vmTrailingZeros || st.vrTrailingZeros {
		output = st.stripSlow(acceptBounds)
	} else {
		output = st.stripFast()
	}
	return floatingDecimal{mantissa: output, exponent: e10 + st.removed}
}
