package ryu

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
)

func TestFormatGoldenVectors(t *testing.T) {
	f, err := os.Open("testdata/golden_vectors.csv")
	if err != nil {
		t.Fatalf("open golden vectors: %v", err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			t.Fatalf("line %d malformed: %q", lineNo, line)
		}

		bits, err := strconv.ParseUint(parts[0], 16, 64)
		if err != nil {
			t.Fatalf("line %d bad bits %q: %v", lineNo, parts[0], err)
		}
		input := math.Float64frombits(bits)

		if got := Format(input, ExpUpper); got != parts[1] {
			t.Fatalf("line %d bits=%016x ExpUpper: got %q want %q", lineNo, bits, got, parts[1])
		}
		wantLower := strings.Replace(parts[1], "E", "e", 1)
		if got := Format(input, ExpLower); got != wantLower {
			t.Fatalf("line %d bits=%016x ExpLower: got %q want %q", lineNo, bits, got, wantLower)
		}
		if got := Format(input, Fixed); got != parts[2] {
			t.Fatalf("line %d bits=%016x Fixed: got %q want %q", lineNo, bits, got, parts[2])
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan golden vectors: %v", err)
	}
	if lineNo != 102 {
		t.Fatalf("golden vector line count mismatch: got %d want 102", lineNo)
	}
}

func TestFormatSpecials(t *testing.T) {
	for _, st := range []Style{Fixed, ExpLower, ExpUpper} {
		if got := Format(math.NaN(), st); got != "NaN" {
			t.Fatalf("style %d NaN: got %q", st, got)
		}
		if got := Format(math.Float64frombits(0xfff8000000000000), st); got != "NaN" {
			t.Fatalf("style %d negative NaN pattern: got %q, the sign must be dropped", st, got)
		}
		if got := Format(math.Inf(1), st); got != "Infinity" {
			t.Fatalf("style %d +Inf: got %q", st, got)
		}
		if got := Format(math.Inf(-1), st); got != "-Infinity" {
			t.Fatalf("style %d -Inf: got %q", st, got)
		}
	}
	negZero := math.Copysign(0, -1)
	if got := Format(negZero, Fixed); got != "-0" {
		t.Fatalf("Fixed -0: got %q", got)
	}
	if got := Format(negZero, ExpUpper); got != "-0E0" {
		t.Fatalf("ExpUpper -0: got %q", got)
	}
	if got := Format(0, ExpLower); got != "0e0" {
		t.Fatalf("ExpLower 0: got %q", got)
	}
}

func TestFormatUnknownStyle(t *testing.T) {
	if got := Format(1.5, Style(9)); got != "" {
		t.Fatalf("unknown style: got %q want empty", got)
	}
	var dst [8]byte
	dst[0] = 'x'
	if n := Write(dst[:], 1.5, Style(212)); n != 0 {
		t.Fatalf("unknown style count: got %d want 0", n)
	}
	if dst[0] != 0 {
		t.Fatal("unknown style must still terminate the destination")
	}
}

// scientificFromStrconv rewrites strconv's shortest 'e' form, which keeps a
// plus sign and pads the exponent to two digits, into the bare grammar used
// here. The digit sequences agree because both sides emit the shortest
// round-tripping decimal with ties to even.
func scientificFromStrconv(t *testing.T, v float64) string {
	t.Helper()
	s := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		t.Fatalf("no exponent in %q", s)
	}
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		t.Fatalf("bad exponent in %q: %v", s, err)
	}
	return s[:i] + "E" + strconv.Itoa(exp)
}

func TestFormatMatchesStrconv(t *testing.T) {
	check := func(v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
		bits := math.Float64bits(v)
		wantSci := scientificFromStrconv(t, v)
		if got := Format(v, ExpUpper); got != wantSci {
			t.Fatalf("bits=%016x ExpUpper: got %q want %q", bits, got, wantSci)
		}
		wantFixed := strconv.FormatFloat(v, 'f', -1, 64)
		if got := Format(v, Fixed); got != wantFixed {
			t.Fatalf("bits=%016x Fixed: got %q want %q", bits, got, wantFixed)
		}
	}

	// Every finite exponent with mantissas at and next to the binade
	// boundaries, both signs.
	mantissas := []uint64{0, 1, 2, 0x8000000000000, 0x5555555555555, 0xaaaaaaaaaaaaa, 0xffffffffffffe, 0xfffffffffffff}
	for e := uint64(0); e <= 2046; e++ {
		for _, m := range mantissas {
			check(math.Float64frombits(e<<52 | m))
			check(math.Float64frombits(1<<63 | e<<52 | m))
		}
	}
	for i := uint64(1); i <= 200000; i++ {
		check(math.Float64frombits(i * 0x9e3779b97f4a7c15))
	}
}

func TestFormatRoundTripProperty(t *testing.T) {
	styles := []Style{Fixed, ExpLower, ExpUpper}
	check := func(v float64) {
		for _, st := range styles {
			text := Format(v, st)
			parsed, err := strconv.ParseFloat(text, 64)
			if err != nil {
				t.Fatalf("parse %q: %v", text, err)
			}
			if math.Float64bits(parsed) != math.Float64bits(v) {
				t.Fatalf("round-trip bits=%016x style=%d: %q parsed to bits=%016x",
					math.Float64bits(v), st, text, math.Float64bits(parsed))
			}
		}
	}

	for _, c := range []float64{5e-324, 1e-7, 1e-6, 0.1, 0.2, 1.1, 1, 2, 1e20, 1e21, math.MaxFloat64, math.Copysign(0, -1)} {
		check(c)
	}
	for i := uint64(1); i < 50000; i += 97 {
		v := math.Float64frombits(i * 0x9e3779b97f4a7c15)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		check(v)
	}

	if testing.Verbose() {
		fmt.Println("round-trip property checks passed")
	}
}

// TestFormatShortest drops the last digit of the emitted mantissa and checks
// that neither rounding of the shortened form parses back to the same value.
// The two grid neighbors at the shortened scale, plus the all-nines value at
// the top of the decade below, are the only candidates a shorter rendering
// could take.
func TestFormatShortest(t *testing.T) {
	check := func(v float64) {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
		v = math.Abs(v)
		bits := math.Float64bits(v)

		sci := Format(v, ExpUpper)
		e := strings.IndexByte(sci, 'E')
		mant := strings.Replace(sci[:e], ".", "", 1)
		if len(mant) == 1 {
			return
		}
		exp, err := strconv.Atoi(sci[e+1:])
		if err != nil {
			t.Fatalf("bits=%016x bad exponent in %q: %v", bits, sci, err)
		}
		digits, err := strconv.ParseUint(mant, 10, 64)
		if err != nil {
			t.Fatalf("bits=%016x bad mantissa in %q: %v", bits, sci, err)
		}

		scale := exp - len(mant) + 2
		nines := uint64(1)
		for i := 0; i < len(mant)-1; i++ {
			nines *= 10
		}
		nines--

		candidates := []string{
			strconv.FormatUint(digits/10, 10) + "E" + strconv.Itoa(scale),
			strconv.FormatUint(digits/10+1, 10) + "E" + strconv.Itoa(scale),
			strconv.FormatUint(nines, 10) + "E" + strconv.Itoa(scale-1),
		}
		for _, text := range candidates {
			parsed, err := strconv.ParseFloat(text, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				t.Fatalf("bits=%016x candidate %q: %v", bits, text, err)
			}
			if math.Float64bits(parsed) == bits {
				t.Fatalf("bits=%016x: shorter rendering %q also round-trips %q", bits, text, sci)
			}
		}
	}

	for _, v := range []float64{0.1, 0.3, 1.0 / 3, 2.2250738585072014e-308,
		9007199254740993, 1.7976931348623157e308, 5e-324, 1.3441331} {
		check(v)
	}
	for i := uint64(1); i <= 20000; i++ {
		check(math.Float64frombits(i * 0x9e3779b97f4a7c15))
	}
}

func TestFormatSmallIntegers(t *testing.T) {
	for i := uint64(1); i <= 3000; i++ {
		want := strconv.FormatUint(i, 10)
		if got := Format(float64(i), Fixed); got != want {
			t.Fatalf("Fixed %d: got %q want %q", i, got, want)
		}
	}
	for k := 0; k <= 53; k++ {
		v := math.Ldexp(1, k)
		want := strconv.FormatUint(1<<uint(k), 10)
		if got := Format(v, Fixed); got != want {
			t.Fatalf("Fixed 2^%d: got %q want %q", k, got, want)
		}
	}

	// Decimal trailing zeros fold into the exponent in scientific styles.
	if got := Format(5000.0, ExpUpper); got != "5E3" {
		t.Fatalf("ExpUpper 5000: got %q want %q", got, "5E3")
	}
	if got := Format(1e22, ExpUpper); got != "1E22" {
		t.Fatalf("ExpUpper 1e22: got %q want %q", got, "1E22")
	}
}

func TestDecode(t *testing.T) {
	sign, exponent, mantissa := decode(0xc05c390a0e96f19f)
	if !sign || exponent != 0x405 || mantissa != 0xc390a0e96f19f {
		t.Fatalf("decode: got sign=%v exponent=%#x mantissa=%#x", sign, exponent, mantissa)
	}
	sign, exponent, mantissa = decode(0x8000000000000000)
	if !sign || exponent != 0 || mantissa != 0 {
		t.Fatalf("decode -0: got sign=%v exponent=%#x mantissa=%#x", sign, exponent, mantissa)
	}
}

func TestSmallInt(t *testing.T) {
	// 5.0 has exponent field 0x401 and mantissa field 2^50.
	fd, ok := smallInt(0x4000000000000, 0x401)
	if !ok || fd.mantissa != 5 || fd.exponent != 0 {
		t.Fatalf("smallInt(5.0): got %+v ok=%v", fd, ok)
	}
	// 0.5 is not an integer.
	if _, ok := smallInt(0, 0x3fe); ok {
		t.Fatal("smallInt accepted 0.5")
	}
	// 2^53 is out of range for the fast path.
	if _, ok := smallInt(0, 0x434); ok {
		t.Fatal("smallInt accepted 2^53")
	}
}
