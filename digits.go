package ryu

// smallsString is every two-digit decimal pair; digits are emitted two at a
// time from it.
const smallsString = "00010203040506070809" +
	"10111213141516171819" +
	"20212223242526272829" +
	"30313233343536373839" +
	"40414243444546474849" +
	"50515253545556575859" +
	"60616263646566676869" +
	"70717273747576777879" +
	"80818283848586878889" +
	"90919293949596979899"

// decimalLength17 returns the digit count of v, which must be below 10^17.
// Outputs average 16.38 digits, so the thresholds run high to low.
func decimalLength17(v uint64) uint32 {
	if v >= 10000000000000000 {
		return 17
	}
	if v >= 1000000000000000 {
		return 16
	}
	if v >= 100000000000000 {
		return 15
	}
	if v >= 10000000000000 {
		return 14
	}
	if v >= 1000000000000 {
		return 13
	}
	if v >= 100000000000 {
		return 12
	}
	if v >= 10000000000 {
		return 11
	}
	if v >= 1000000000 {
		return 10
	}
	if v >= 100000000 {
		return 9
	}
	if v >= 10000000 {
		return 8
	}
	if v >= 1000000 {
		return 7
	}
	if v >= 100000 {
		return 6
	}
	if v >= 10000 {
		return 5
	}
	if v >= 1000 {
		return 4
	}
	if v >= 100 {
		return 3
	}
	if v >= 10 {
		return 2
	}
	return 1
}

// floatingDecimal is a finite nonzero value mantissa * 10^exponent. The
// decimal exponent stays within [-324, 308].
type floatingDecimal struct {
	mantissa uint64
	exponent int32
}

// renderScientific writes v in scientific notation: optional sign, leading
// digit, point and remaining digits when there are any, then 'E' and the
// signed adjusted exponent. Digits fill back to front in pairs; position
// index+1 is left open for the point until the leading digit lands.
func renderScientific(buf []byte, v floatingDecimal, sign bool) formatted {
	index := 0
	if sign {
		buf[index] = '-'
		index++
	}

	output := v.mantissa
	olength := int(decimalLength17(output))

	// Values wider than 32 bits shed eight digits up front so the loop
	// below stays in 32-bit divisions.
	i := 0
	if output>>32 != 0 {
		q := output / 100000000
		output2 := uint32(output) - 100000000*uint32(q)
		output = q

		c := output2 % 10000
		output2 /= 10000
		d := output2 % 10000
		c0 := (c % 100) << 1
		c1 := (c / 100) << 1
		d0 := (d % 100) << 1
		d1 := (d / 100) << 1
		copy(buf[index+olength-i-1:], smallsString[c0:c0+2])
		copy(buf[index+olength-i-3:], smallsString[c1:c1+2])
		copy(buf[index+olength-i-5:], smallsString[d0:d0+2])
		copy(buf[index+olength-i-7:], smallsString[d1:d1+2])
		i += 8
	}
	output2 := uint32(output)
	for output2 >= 10000 {
		c := output2 % 10000
		output2 /= 10000
		c0 := (c % 100) << 1
		c1 := (c / 100) << 1
		copy(buf[index+olength-i-1:], smallsString[c0:c0+2])
		copy(buf[index+olength-i-3:], smallsString[c1:c1+2])
		i += 4
	}
	if output2 >= 100 {
		c := (output2 % 100) << 1
		output2 /= 100
		copy(buf[index+olength-i-1:], smallsString[c:c+2])
		i += 2
	}
	if output2 >= 10 {
		c := output2 << 1
		// The decimal point goes between these two digits.
		buf[index+olength-i] = smallsString[c+1]
		buf[index] = smallsString[c]
	} else {
		buf[index] = byte('0' + output2)
	}

	if olength > 1 {
		buf[index+1] = '.'
		index += olength + 1
	} else {
		index++
	}

	marker := index
	buf[index] = 'E'
	index++
	exp := int(v.exponent) + olength - 1
	if exp < 0 {
		buf[index] = '-'
		index++
		exp = -exp
	}
	if exp >= 100 {
		c := exp % 10
		copy(buf[index:], smallsString[2*(exp/10):2*(exp/10)+2])
		buf[index+2] = byte('0' + c)
		index += 3
	} else if exp >= 10 {
		copy(buf[index:], smallsString[2*exp:2*exp+2])
		index += 2
	} else {
		buf[index] = byte('0' + exp)
		index++
	}

	return formatted{text: buf[:index], marker: marker}
}

// renderSpecial writes the token for zeros and non-finite values. NaN never
// takes a sign; zero keeps one and carries an explicit zero exponent.
func renderSpecial(buf []byte, sign, exponentSet, mantissaSet bool) formatted {
	if mantissaSet {
		n := copy(buf, "NaN")
		return formatted{text: buf[:n], marker: -1}
	}
	index := 0
	if sign {
		buf[index] = '-'
		index++
	}
	if exponentSet {
		index += copy(buf[index:], "Infinity")
		return formatted{text: buf[:index], marker: -1}
	}
	index += copy(buf[index:], "0E0")
	return formatted{text: buf[:index], marker: index - 2}
}
