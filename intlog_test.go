package ryu

import (
	"math/big"
	"testing"
)

func TestLog10Pow2Exhaustive(t *testing.T) {
	for e := int32(0); e <= 1650; e++ {
		n := new(big.Int).Lsh(big.NewInt(1), uint(e))
		want := uint32(len(n.String()) - 1)
		if got := log10Pow2(e); got != want {
			t.Fatalf("log10Pow2(%d): got %d want %d", e, got, want)
		}
	}
}

func TestLog10Pow5Exhaustive(t *testing.T) {
	for e := int32(0); e <= 2620; e++ {
		n := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(e)), nil)
		want := uint32(len(n.String()) - 1)
		if got := log10Pow5(e); got != want {
			t.Fatalf("log10Pow5(%d): got %d want %d", e, got, want)
		}
	}
}

func TestPow5BitsExhaustive(t *testing.T) {
	// 5^e is never a power of two for e > 0, so the bit length equals the
	// rounded-up base-2 logarithm the multiplier bound needs. e == 0 is
	// pinned to 1 by the formula and BitLen(1) agrees.
	for e := int32(0); e <= 3528; e++ {
		n := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(e)), nil)
		want := int32(n.BitLen())
		if got := pow5Bits(e); got != want {
			t.Fatalf("pow5Bits(%d): got %d want %d", e, got, want)
		}
	}
}
