package ryu

// Compact power-of-five scheme: anchor entries every 26th power plus 2-bit
// error offsets let the full 125-bit tables be rebuilt on the fly. The
// ryu_optimize_size build tag routes conversions through the reconstruction;
// the anchors always compile so either mode can verify the other.

const (
	pow5Bitcount    = 125
	pow5InvBitcount = 125
)

const pow5TableSize = 26

// pow5Table holds 5^0 through 5^25, the offsets reachable from one anchor.
var pow5Table = [pow5TableSize]uint64{
	1, 5, 25, 125, 625, 3125, 15625, 78125, 390625,
	1953125, 9765625, 48828125, 244140625, 1220703125,
	6103515625, 30517578125, 152587890625, 762939453125,
	3814697265625, 19073486328125, 95367431640625,
	476837158203125, 2384185791015625, 11920928955078125,
	59604644775390625, 298023223876953125,
}

var pow5Split2 = [13][2]uint64{
	{0, 1152921504606846976},
	{0, 1490116119384765625},
	{1032610780636961552, 1925929944387235853},
	{7910200175544436838, 1244603055572228341},
	{16941905809032713930, 1608611746708759036},
	{13024893955298202172, 2079081953128979843},
	{6607496772837067824, 1343575221513417750},
	{17332926989895652603, 1736530273035216783},
	{13037379183483547984, 2244412773384604712},
	{1605989338741628675, 1450417759929778918},
	{9630225068416591280, 1874621017369538693},
	{665883850346957067, 1211445438634777304},
	{14931890668723713708, 1565756531257009982},
}

var pow5Offsets = [21]uint32{
	0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x40000000, 0x59695995,
	0x55545555, 0x56555515, 0x41150504, 0x40555410, 0x44555145, 0x44504540,
	0x45555550, 0x40004000, 0x96440440, 0x55565565, 0x54454045, 0x40154151,
	0x55559155, 0x51405555, 0x00000105,
}

var pow5InvSplit2 = [15][2]uint64{
	{1, 2305843009213693952},
	{5955668970331000884, 1784059615882449851},
	{8982663654677661702, 1380349269358112757},
	{7286864317269821294, 2135987035920910082},
	{7005857020398200553, 1652639921975621497},
	{17965325103354776697, 1278668206209430417},
	{8928596168509315048, 1978643211784836272},
	{10075671573058298858, 1530901034580419511},
	{597001226353042382, 1184477304306571148},
	{1527430471115325346, 1832889850782397517},
	{12533209867169019542, 1418129833677084982},
	{5577825024675947042, 2194449627517475473},
	{11006974540203867551, 1697873161311732311},
	{10313493231639821582, 1313665730009899186},
	{12701016819766672773, 2032799256770390445},
}

var pow5InvOffsets = [19]uint32{
	0x54544554, 0x04055545, 0x10041000, 0x00400414, 0x40010000, 0x41155555,
	0x00000454, 0x00010044, 0x40000000, 0x44000041, 0x50454450, 0x55550054,
	0x51655554, 0x40004000, 0x01000001, 0x00010500, 0x51515411, 0x05555554,
	0x00000000,
}

// computePow5 rebuilds the 125-bit form of 5^i from the nearest anchor at or
// below it: multiply by 5^offset, realign by the bit-width delta, and patch
// with the recorded 2-bit error.
func computePow5(i uint32) [2]uint64 {
	base := i / pow5TableSize
	base2 := base * pow5TableSize
	offset := i - base2
	mul := pow5Split2[base]
	if offset == 0 {
		return mul
	}
	m := pow5Table[offset]
	high1, low1 := umul128(m, mul[1])
	high0, low0 := umul128(m, mul[0])
	sum := high0 + low1
	if sum < high0 {
		high1++
	}
	delta := uint32(pow5Bits(int32(i)) - pow5Bits(int32(base2)))
	corr := (pow5Offsets[i/16] >> ((i % 16) << 1)) & 3
	return [2]uint64{
		shiftRight128(low0, sum, delta) + uint64(corr),
		shiftRight128(sum, high1, delta),
	}
}

// computeInvPow5 rebuilds the 125-bit form of the inverse power 5^-i from
// the nearest anchor at or above it, with the +1 that keeps the stored
// inverse an upper bound.
func computeInvPow5(i uint32) [2]uint64 {
	base := (i + pow5TableSize - 1) / pow5TableSize
	base2 := base * pow5TableSize
	offset := base2 - i
	mul := pow5InvSplit2[base]
	if offset == 0 {
		return mul
	}
	m := pow5Table[offset]
	high1, low1 := umul128(m, mul[1])
	high0, low0 := umul128(m, mul[0]-1)
	sum := high0 + low1
	if sum < high0 {
		high1++
	}
	delta := uint32(pow5Bits(int32(base2)) - pow5Bits(int32(i)))
	corr := (pow5InvOffsets[i/16] >> ((i % 16) << 1)) & 3
	return [2]uint64{
		shiftRight128(low0, sum, delta) + 1 + uint64(corr),
		shiftRight128(sum, high1, delta),
	}
}
