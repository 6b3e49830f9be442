package ryu

// formatted is one conversion's scientific character sequence plus the
// offset of its exponent marker within text. Infinity and NaN carry no
// marker and use -1.
type formatted struct {
	text   []byte
	marker int
}

// reformat streams the scientific sequence through w in the requested
// style. Marker-free tokens pass through unchanged whatever the style.
func reformat(w *boundedWriter, fd formatted, style Style) {
	text := fd.text
	marker := fd.marker
	if len(text) > 0 && text[0] == '-' {
		w.writeByte('-')
		text = text[1:]
		marker--
	}
	if marker < 0 {
		w.write(text)
		return
	}

	digits := text[:marker]
	expDigits := text[marker+1:]

	switch style {
	case ExpLower, ExpUpper:
		w.write(digits)
		if style == ExpLower {
			w.writeByte('e')
		} else {
			w.writeByte('E')
		}
		w.write(expDigits)
	case Fixed:
		en := 0
		neg := false
		for i := 0; i < len(expDigits); i++ {
			if expDigits[i] == '-' {
				neg = true
				continue
			}
			en = en*10 + int(expDigits[i]-'0')
		}
		if neg {
			en = -en
		}
		writeFixed(w, digits, en)
	}
}

// writeFixed lays the significand out positionally. digits is the leading
// digit followed by an optional point and fraction; en is the power of ten
// of the leading digit.
func writeFixed(w *boundedWriter, digits []byte, en int) {
	if en < 0 {
		// The value is below one: "0.", a run of zeros, then every digit.
		w.writeByte('0')
		w.writeByte('.')
		for i := 0; i < -en-1; i++ {
			w.writeByte('0')
		}
		w.writeByte(digits[0])
		rest := digits[1:]
		if len(rest) > 0 {
			rest = rest[1:] // step over the point
		}
		w.write(rest)
		return
	}

	// The integer part takes en+1 digits, zero-padded once the significand
	// runs out.
	w.writeByte(digits[0])
	rest := digits[1:]
	if len(rest) > 0 {
		rest = rest[1:]
	}
	for i := 0; i < en; i++ {
		if len(rest) > 0 {
			w.writeByte(rest[0])
			rest = rest[1:]
		} else {
			w.writeByte('0')
		}
	}
	if len(rest) > 0 && !(len(rest) == 1 && rest[0] == '0') {
		// Keep the fraction unless it is a lone redundant zero.
		w.writeByte('.')
		w.write(rest)
	}
}
