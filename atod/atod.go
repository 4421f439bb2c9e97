// Package atod converts numeric text to IEEE 754 doubles.
//
// The grammar accepted by StringToDouble is the engine's numeral
// grammar: optional whitespace, optional sign, then a hex literal
// (when enabled), the literal "Infinity", or a decimal numeral with
// optional fraction and exponent. Digit runs of any length are
// consumed in full and fed, exactly, to the shared rounding core in
// dblbits; nothing is truncated before rounding is resolved.
//
// Failure is reported through explicit errors, never panics: a numeral
// that does not match yields a numerr error with the byte offset where
// scanning stopped.
package atod

import (
	"strings"

	"github.com/lattice-substrate/ecma-num/biguint"
	"github.com/lattice-substrate/ecma-num/dblbits"
	"github.com/lattice-substrate/ecma-num/numchar"
	"github.com/lattice-substrate/ecma-num/numerr"
)

// Options controls parser behavior. A nil *Options means non-strict,
// no hex.
type Options struct {
	// Strict requires that everything after the numeral, up to
	// end-of-string, is engine whitespace; otherwise the whole call
	// fails even though a prefix matched.
	Strict bool
	// AllowHex enables 0x/0X hexadecimal literals.
	AllowHex bool
}

func (o *Options) strict() bool   { return o != nil && o.Strict }
func (o *Options) allowHex() bool { return o != nil && o.AllowHex }

// Exponent accumulation clamps here; combined with the magnitude
// cutoffs below, larger exponents cannot change the rounded result.
const expClamp = 1 << 30

// StringToDouble parses a numeral prefix of s.
//
// On success it returns the value and the number of bytes consumed
// (leading whitespace and sign included). Non-strict mode consumes the
// longest valid numeral prefix and leaves trailing content alone;
// strict mode consumes the whole string after verifying the tail is
// whitespace only.
func StringToDouble(s string, opts *Options) (float64, int, error) {
	i := numchar.IndexOfFirstNonSpace(s)

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	v, end, err := parseUnsignedNumeral(s, i, opts.allowHex())
	if err != nil {
		return 0, 0, err
	}
	if neg {
		v = -v
	}

	if opts.strict() {
		tail := end + numchar.IndexOfFirstNonSpace(s[end:])
		if tail != len(s) {
			return 0, 0, numerr.New(numerr.TrailingContent, tail, "content after numeral in strict mode")
		}
		return v, len(s), nil
	}
	return v, end, nil
}

// parseUnsignedNumeral parses the unsigned numeral starting at i:
// hex literal, "Infinity", or decimal numeral. Returns the magnitude
// (sign applied by the caller) and the end offset.
func parseUnsignedNumeral(s string, i int, allowHex bool) (float64, int, error) {
	if strings.HasPrefix(s[i:], "Infinity") {
		return dblbits.Bits{Class: dblbits.Inf}.Float(), i + len("Infinity"), nil
	}

	if allowHex && i+2 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') && isDigit(s[i+2], 16) {
		return parseHex(s, i+2)
	}

	return parseDecimal(s, i)
}

// parseHex consumes the maximal hex digit run starting at i (the
// caller has verified at least one digit) and rounds the exact integer
// magnitude.
func parseHex(s string, i int) (float64, int, error) {
	mag := &biguint.Int{}
	for i < len(s) {
		d, ok := digitValue(s[i], 16)
		if !ok {
			break
		}
		mag.MulAddSmall(16, uint32(d))
		i++
	}
	one := biguint.NewUint64(1)
	return dblbits.Compose(false, mag, one), i, nil
}

// parseDecimal consumes the longest decimal numeral starting at i:
// optional integer digits, optional '.' plus fraction digits (at least
// one digit must appear somewhere), optional exponent. An exponent
// marker without digits is not part of the numeral ("1e" parses as 1,
// one byte consumed).
func parseDecimal(s string, i int) (float64, int, error) {
	digits := &biguint.Int{}
	sigDigits := 0 // digits accumulated since the first nonzero one
	anyDigits := false

	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		digits.MulAddSmall(10, uint32(s[i]-'0'))
		if sigDigits > 0 || s[i] != '0' {
			sigDigits++
		}
		anyDigits = true
		i++
	}

	fracDigits := int64(0)
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			digits.MulAddSmall(10, uint32(s[j]-'0'))
			if sigDigits > 0 || s[j] != '0' {
				sigDigits++
			}
			fracDigits++
			anyDigits = true
			j++
		}
		// A bare '.' with no digits on either side is not a numeral;
		// "1." is one.
		if anyDigits {
			i = j
		}
	}

	if !anyDigits {
		return 0, 0, numerr.New(numerr.InvalidNumeral, i, "expected digits")
	}

	exp10 := int64(0)
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		expNeg := false
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			expNeg = s[j] == '-'
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				if exp10 < expClamp {
					exp10 = exp10*10 + int64(s[j]-'0')
				}
				j++
			}
			if expNeg {
				exp10 = -exp10
			}
			i = j
		}
		// Otherwise the 'e' is not part of the numeral; i stays put.
	}

	return roundDecimal(digits, sigDigits, exp10-fracDigits), i, nil
}

// roundDecimal converts (digits, netExp) — the exact value
// digits * 10^netExp — to the nearest double.
func roundDecimal(digits *biguint.Int, sigDigits int, netExp int64) float64 {
	if digits.IsZero() {
		return 0
	}

	// The value lies in [10^(dec-1), 10^dec) for dec = sigDigits+netExp.
	// Beyond these cutoffs the rounded result is pinned regardless of
	// the digits, which keeps the power-of-ten scaling below bounded.
	dec := int64(sigDigits) + netExp
	if dec > 310 {
		return dblbits.Bits{Class: dblbits.Inf}.Float()
	}
	if dec < -323 {
		return 0
	}

	num := digits.Clone()
	den := biguint.NewUint64(1)
	switch {
	case netExp > 0:
		mulPow10(num, int(netExp))
	case netExp < 0:
		mulPow10(den, int(-netExp))
	}
	return dblbits.Compose(false, num, den)
}

// mulPow10 multiplies z by 10^k.
func mulPow10(z *biguint.Int, k int) {
	for ; k > 0; k-- {
		z.MulAddSmall(10, 0)
	}
}

// StringToDoubleIntPow2Radix consumes the maximal run of digits valid
// for radix 2, 4, 8, 16, or 32 — no sign, no point, no exponent — and
// rounds it to the nearest double. More than 53 significant bits are
// tracked through a 64-bit high window plus a sticky bit for the
// discarded low bits. A leading non-digit is a zero-length match, not
// a failure: (0, 0, nil).
func StringToDoubleIntPow2Radix(s string, radix int) (float64, int, error) {
	shift := uint(0)
	switch radix {
	case 2:
		shift = 1
	case 4:
		shift = 2
	case 8:
		shift = 3
	case 16:
		shift = 4
	case 32:
		shift = 5
	default:
		return 0, 0, numerr.Newf(numerr.RadixDomain, -1, "radix %d is not a supported power of two", radix)
	}

	var mant uint64
	exp := 0
	sticky := false
	i := 0
	for i < len(s) {
		d, ok := digitValue(s[i], radix)
		if !ok {
			break
		}
		if mant>>(64-shift) == 0 {
			mant = mant<<shift | uint64(d)
		} else {
			exp += int(shift)
			sticky = sticky || d != 0
		}
		i++
	}
	if i == 0 {
		return 0, 0, nil
	}
	return dblbits.ComposeBits(false, mant, exp, sticky), i, nil
}

// StringToDoubleIntRadix is the arbitrary-radix (2-36) counterpart of
// StringToDoubleIntPow2Radix, accumulating the exact magnitude through
// biguint so that non-power-of-two radices round identically to every
// other path. Arbitrarily long digit runs are fully consumed; a run
// exceeding the double range rounds to +Inf.
func StringToDoubleIntRadix(s string, radix int) (float64, int, error) {
	if radix < numchar.MinRadix || radix > numchar.MaxRadix {
		return 0, 0, numerr.Newf(numerr.RadixDomain, -1, "radix %d out of range [2,36]", radix)
	}

	mag := &biguint.Int{}
	i := 0
	for i < len(s) {
		d, ok := digitValue(s[i], radix)
		if !ok {
			break
		}
		mag.MulAddSmall(uint32(radix), uint32(d))
		i++
	}
	if i == 0 {
		return 0, 0, nil
	}
	one := biguint.NewUint64(1)
	return dblbits.Compose(false, mag, one), i, nil
}

// digitValue returns the value of ASCII byte c as a digit for radix.
func digitValue(c byte, radix int) (int, bool) {
	v, ok := numchar.DigitValue(rune(c))
	if !ok || v >= radix {
		return 0, false
	}
	return v, true
}

func isDigit(c byte, radix int) bool {
	_, ok := digitValue(c, radix)
	return ok
}
