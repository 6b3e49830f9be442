package ryu

// Integer log approximations used to pick the decimal scaling power. Each is
// exact over its stated domain; the multiplier/shift pairs fail just past it.

// pow5Bits returns e == 0 ? 1 : ceil(log2(5^e)). Requires 0 <= e <= 3528;
// the 32-bit multiplication overflows at e = 3529.
func pow5Bits(e int32) int32 {
	return int32((uint32(e)*1217359)>>19) + 1
}

// log10Pow2 returns floor(log10(2^e)). Requires 0 <= e <= 1650; 2^1651 is
// the first power just above 10^297 where the approximation breaks.
func log10Pow2(e int32) uint32 {
	return (uint32(e) * 78913) >> 18
}

// log10Pow5 returns floor(log10(5^e)). Requires 0 <= e <= 2620; 5^2621 is
// the first power just above 10^1832 where the approximation breaks.
func log10Pow5(e int32) uint32 {
	return (uint32(e) * 732923) >> 20
}
