package atod

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/lattice-substrate/ecma-num/numerr"
)

var (
	strict    = &Options{Strict: true}
	strictHex = &Options{Strict: true, AllowHex: true}
	hexOnly   = &Options{AllowHex: true}
)

func TestStringToDoubleBasics(t *testing.T) {
	cases := []struct {
		s    string
		opts *Options
		want float64
		n    int
	}{
		{"0", nil, 0, 1},
		{"1", nil, 1, 1},
		{"-1", nil, -1, 2},
		{"+1.5", nil, 1.5, 4},
		{"0.1", nil, 0.1, 3},
		{".5", nil, 0.5, 2},
		{"1.", nil, 1, 2},
		{"3.14", strict, 3.14, 4},
		{"  3.14  ", strict, 3.14, 8},
		{"\t42\n", strict, 42, 4},
		{"1e3", nil, 1000, 3},
		{"1E3", nil, 1000, 3},
		{"1e+3", nil, 1000, 4},
		{"1.5e-2", nil, 0.015, 6},
		{"0007", nil, 7, 4},
		{"Infinity", strict, math.Inf(+1), 8},
		{"-Infinity", strict, math.Inf(-1), 9},
		{"0x10", strictHex, 16, 4},
		{"-0xff", strictHex, -255, 5},
		{"0XAb", strictHex, 171, 4},
		// Longest-prefix behavior in non-strict mode.
		{"3.14abc", nil, 3.14, 4},
		{"1e", nil, 1, 1},
		{"1e+", nil, 1, 1},
		{"1e+x", nil, 1, 1},
		{"12.5px", nil, 12.5, 4},
		{"Infinityx", nil, math.Inf(+1), 8},
		{"0x10", nil, 0, 1}, // hex disabled: "0" is the numeral
		{"0x", hexOnly, 0, 1},
	}
	for _, c := range cases {
		got, n, err := StringToDouble(c.s, c.opts)
		if err != nil {
			t.Errorf("StringToDouble(%q): unexpected error %v", c.s, err)
			continue
		}
		if math.Float64bits(got) != math.Float64bits(c.want) || n != c.n {
			t.Errorf("StringToDouble(%q) = (%v, %d), want (%v, %d)", c.s, got, n, c.want, c.n)
		}
	}
}

func TestStringToDoubleFailures(t *testing.T) {
	cases := []struct {
		s     string
		opts  *Options
		class numerr.FailureClass
	}{
		{"", nil, numerr.InvalidNumeral},
		{"   ", nil, numerr.InvalidNumeral},
		{"+", nil, numerr.InvalidNumeral},
		{".", nil, numerr.InvalidNumeral},
		{".e5", nil, numerr.InvalidNumeral},
		{"abc", nil, numerr.InvalidNumeral},
		{"\u00a01", nil, numerr.InvalidNumeral}, // NBSP is not whitespace
		{"infinity", nil, numerr.InvalidNumeral},
		{"3.14abc", strict, numerr.TrailingContent},
		{"1 2", strict, numerr.TrailingContent},
		{"0x", strictHex, numerr.TrailingContent}, // numeral "0", then "x"
		{"0xg", strictHex, numerr.TrailingContent},
	}
	for _, c := range cases {
		_, _, err := StringToDouble(c.s, c.opts)
		if err == nil {
			t.Errorf("StringToDouble(%q): expected failure", c.s)
			continue
		}
		if got := numerr.ClassOf(err); got != c.class {
			t.Errorf("StringToDouble(%q): class %s, want %s", c.s, got, c.class)
		}
	}
}

func TestStringToDoubleNegativeZero(t *testing.T) {
	got, _, err := StringToDouble("-0", strict)
	if err != nil || got != 0 || !math.Signbit(got) {
		t.Fatalf("parse(-0) = %v (err %v), want -0", got, err)
	}
	got, _, err = StringToDouble("-0.0e10", strict)
	if err != nil || got != 0 || !math.Signbit(got) {
		t.Fatalf("parse(-0.0e10) = %v (err %v), want -0", got, err)
	}
}

func TestStringToDoubleTieBreaking(t *testing.T) {
	// Midpoints round to the even neighbor.
	cases := []struct {
		s    string
		want float64
	}{
		{"9007199254740993", 9007199254740992},
		{"9007199254740995", 9007199254740996},
	}
	for _, c := range cases {
		got, _, err := StringToDouble(c.s, strict)
		if err != nil || got != c.want {
			t.Errorf("parse(%q) = %v (err %v), want %v", c.s, got, err, c.want)
		}
	}
}

func TestStringToDoubleLongDigitRuns(t *testing.T) {
	s := "1" + strings.Repeat("0", 400)
	got, n, err := StringToDouble(s, nil)
	if err != nil {
		t.Fatalf("long run: %v", err)
	}
	if !math.IsInf(got, +1) || n != len(s) {
		t.Fatalf("parse(1e400 digits) = (%v, %d), want (+Inf, %d)", got, n, len(s))
	}

	// Leading zeros must be consumed without affecting the value.
	s = strings.Repeat("0", 1000) + "25"
	got, n, err = StringToDouble(s, nil)
	if err != nil || got != 25 || n != len(s) {
		t.Fatalf("parse(0*1000 + 25) = (%v, %d, %v), want (25, %d)", got, n, err, len(s))
	}

	// A huge negative exponent underflows to zero, fully consumed.
	s = "1e-400"
	got, n, err = StringToDouble(s, nil)
	if err != nil || got != 0 || n != len(s) {
		t.Fatalf("parse(1e-400) = (%v, %d, %v), want (0, %d)", got, n, err, len(s))
	}
}

func TestStringToDoubleMatchesStrconv(t *testing.T) {
	inputs := []string{
		"0.1", "0.2", "0.3", "0.30000000000000004", "2.2250738585072011e-308",
		"2.2250738585072012e-308", "1.7976931348623157e308", "1.7976931348623159e308",
		"4.9406564584124654e-324", "2.4703282292062327e-324", "2.4703282292062328e-324",
		"1e308", "1e-308", "123456789012345678901234567890", "0.000001", "1e-323",
		"5e-324", "9007199254740992", "3.141592653589793238462643383279",
		"0." + strings.Repeat("0", 300) + "17",
	}
	for _, s := range inputs {
		// ErrRange still carries the saturated value, which is exactly
		// what this parser must produce too.
		want, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			t.Fatalf("strconv rejects %q: %v", s, err)
		}
		got, _, perr := StringToDouble(s, strict)
		if perr != nil {
			t.Fatalf("parse(%q): %v", s, perr)
		}
		if math.Float64bits(got) != math.Float64bits(want) {
			t.Errorf("parse(%q) = %016x, strconv = %016x",
				s, math.Float64bits(got), math.Float64bits(want))
		}
	}
}

func TestStringToDoubleIntPow2Radix(t *testing.T) {
	cases := []struct {
		s     string
		radix int
		want  float64
		n     int
	}{
		{"ff", 16, 255, 2},
		{"FF", 16, 255, 2},
		{"777", 8, 511, 3},
		{"10", 2, 2, 2},
		{"vv", 32, 1023, 2},
		{"", 16, 0, 0},
		{"g1", 16, 0, 0},
		{"zz", 32, 0, 0}, // z is 35, out of range for radix 32
		{"101am", 2, 5, 3},
		{"1" + strings.Repeat("0", 53), 2, 9007199254740992, 54},
	}
	for _, c := range cases {
		got, n, err := StringToDoubleIntPow2Radix(c.s, c.radix)
		if err != nil {
			t.Errorf("pow2(%q, %d): %v", c.s, c.radix, err)
			continue
		}
		if got != c.want || n != c.n {
			t.Errorf("pow2(%q, %d) = (%v, %d), want (%v, %d)", c.s, c.radix, got, n, c.want, c.n)
		}
	}

	if _, _, err := StringToDoubleIntPow2Radix("10", 3); numerr.ClassOf(err) != numerr.RadixDomain {
		t.Error("radix 3 must be rejected as a domain violation")
	}
}

func TestStringToDoubleIntPow2RadixRounding(t *testing.T) {
	// 2^64 + 1: more than 53 significant bits, sticky below the round
	// bit, rounds down to exactly 2^64.
	s := "1" + strings.Repeat("0", 63) + "1"
	got, n, err := StringToDoubleIntPow2Radix(s, 2)
	if err != nil || n != len(s) {
		t.Fatalf("consume: n=%d err=%v", n, err)
	}
	if got != math.Ldexp(1, 64) {
		t.Fatalf("2^64+1 = %v, want 2^64", got)
	}

	// 2^53 + 1: exact midpoint between 2^53 and 2^53+2, ties to even.
	s = "1" + strings.Repeat("0", 52) + "1"
	got, _, _ = StringToDoubleIntPow2Radix(s, 2)
	if got != 9007199254740992 {
		t.Fatalf("2^53+1 = %v, want 9007199254740992", got)
	}
}

func TestStringToDoubleIntRadix(t *testing.T) {
	cases := []struct {
		s     string
		radix int
		want  float64
		n     int
	}{
		{"1111", 2, 15, 4},
		{"zz", 36, 1295, 2},
		{"100", 10, 100, 3},
		{"hello", 36, 0, 5}, // value computed below
		{"", 10, 0, 0},
		{"-5", 10, 0, 0}, // no sign in this entry point
	}
	// "hello" base 36.
	v := 0.0
	for _, c := range "hello" {
		v = v*36 + float64(int(c-'a')+10)
	}
	cases[3].want = v

	for _, c := range cases {
		got, n, err := StringToDoubleIntRadix(c.s, c.radix)
		if err != nil {
			t.Errorf("intRadix(%q, %d): %v", c.s, c.radix, err)
			continue
		}
		if got != c.want || n != c.n {
			t.Errorf("intRadix(%q, %d) = (%v, %d), want (%v, %d)", c.s, c.radix, got, n, c.want, c.n)
		}
	}

	if _, _, err := StringToDoubleIntRadix("1", 37); numerr.ClassOf(err) != numerr.RadixDomain {
		t.Error("radix 37 must be rejected as a domain violation")
	}
	if _, _, err := StringToDoubleIntRadix("1", 1); numerr.ClassOf(err) != numerr.RadixDomain {
		t.Error("radix 1 must be rejected as a domain violation")
	}
}

func TestStringToDoubleIntRadixHugeRuns(t *testing.T) {
	// 1000 ones in base 2 is 2^1000 - 1, which rounds to exactly 2^1000.
	s := strings.Repeat("1", 1000)
	got, n, err := StringToDoubleIntRadix(s, 2)
	if err != nil || n != 1000 {
		t.Fatalf("consume: n=%d err=%v", n, err)
	}
	if got != math.Ldexp(1, 1000) {
		t.Fatalf("2^1000-1 = %v, want 2^1000", got)
	}

	// 4000 binary digits overflow the double range entirely.
	s = "1" + strings.Repeat("0", 4000)
	got, n, err = StringToDoubleIntRadix(s, 2)
	if err != nil || n != len(s) || !math.IsInf(got, +1) {
		t.Fatalf("huge run = (%v, %d, %v), want (+Inf, %d)", got, n, err, len(s))
	}
}
