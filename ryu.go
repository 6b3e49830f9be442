// Package ryu converts IEEE-754 double-precision values to the shortest
// decimal text that reads back to the identical bit pattern.
//
// The conversion implements the Ryū algorithm (Ulf Adams, "Ryū: Fast
// Float-to-String Conversion", PLDI 2018). A value's rounding interval is
// scaled to integers with 128-bit fixed-point multiplies by precomputed
// powers of five, then digits are discarded while the interval still
// brackets a decimal; the surviving candidate is the shortest output that
// round-trips, with ties broken to the even digit. No heap allocation and
// no floating-point arithmetic happen after decoding.
//
// Output comes in three styles. Fixed is positional ("0.00025", "5000"),
// ExpLower and ExpUpper are scientific with a lowercase or uppercase
// exponent marker ("2.5e-4", "2.5E-4"). Infinity and NaN render as
// "Infinity" and "NaN" in every style, and NaN never takes a sign.
package ryu

import "math"

// Style selects the output notation.
type Style byte

const (
	// Fixed is positional notation with no exponent: 123.456, -0.00025.
	Fixed Style = iota
	// ExpLower is scientific notation with a lowercase marker: 1.23456e2.
	ExpLower
	// ExpUpper is scientific notation with an uppercase marker: 1.23456E2.
	ExpUpper
)

// Buffer ceilings. Scientific output peaks at 24 bytes (sign, 17 digits,
// point, marker, signed three-digit exponent). Fixed output peaks at 343
// bytes for the smallest subnormals (sign, "0.", 323 zeros, 17 digits).
const (
	maxScientificLen = 24
	maxFixedLen      = 343
)

// Write renders f in the given style into dst, truncating whenever dst is
// too small, and returns the length of the untruncated rendering. Like
// snprintf, the return value counts what would have been written, so
// Write(nil, f, style) sizes a rendering without storing it. When dst has
// any room a NUL is placed after the content, or over the final byte on
// truncation; the NUL is never counted. An unknown style writes nothing and
// returns zero.
func Write(dst []byte, f float64, style Style) int {
	w := boundedWriter{dst: dst}
	writeStyled(&w, f, style)
	w.terminate()
	return w.count
}

// Append renders f in the given style and appends it to dst, without any
// truncation or NUL, returning the extended slice.
func Append(dst []byte, f float64, style Style) []byte {
	var buf [maxFixedLen]byte
	w := boundedWriter{dst: buf[:]}
	writeStyled(&w, f, style)
	return append(dst, buf[:w.count]...)
}

// Format renders f in the given style as a string.
func Format(f float64, style Style) string {
	return string(Append(nil, f, style))
}

func writeStyled(w *boundedWriter, f float64, style Style) {
	switch style {
	case Fixed, ExpLower, ExpUpper:
	default:
		return
	}
	var scratch [maxScientificLen]byte
	reformat(w, renderFloat(scratch[:], f), style)
}

// renderFloat produces the scientific sequence for f in buf. Specials exit
// before any arithmetic; exact small integers skip the search but still
// fold decimal trailing zeros into the exponent.
func renderFloat(buf []byte, f float64) formatted {
	bits := math.Float64bits(f)
	sign, ieeeExponent, ieeeMantissa := decode(bits)

	if ieeeExponent == 1<<exponentBits-1 || (ieeeExponent == 0 && ieeeMantissa == 0) {
		return renderSpecial(buf, sign, ieeeExponent != 0, ieeeMantissa != 0)
	}

	v, ok := smallInt(ieeeMantissa, ieeeExponent)
	if ok {
		for {
			q := v.mantissa / 10
			r := uint32(v.mantissa) - 10*uint32(q)
			if r != 0 {
				break
			}
			v.mantissa = q
			v.exponent++
		}
	} else {
		v = shortestDecimal(ieeeMantissa, ieeeExponent)
	}
	return renderScientific(buf, v, sign)
}
