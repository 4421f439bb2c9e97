// Exact-expansion notations: toFixed, toExponential, toPrecision.
//
// These three round the double's exact binary value — not its shortest
// decimal — at the requested digit position, half-to-even. The exact
// expansion of a double always terminates (the denominator is a power
// of two), so generating it in full and rounding on the digit string
// is both simple and exactly correct; the longest case, the smallest
// subnormal, runs to 1074 fractional digits.

package dtoa

import (
	"math"

	"github.com/lattice-substrate/ecma-num/biguint"
	"github.com/lattice-substrate/ecma-num/dblbits"
	"github.com/lattice-substrate/ecma-num/numerr"
)

// FixedNotation formats f in plain fixed notation with exactly
// precision fractional digits, rounding the exact binary value
// half-to-even. Unlike Number.prototype.toFixed it never falls back to
// exponential form, no matter how large or small f is. precision must
// be in [0, 100].
func FixedNotation(f float64, precision int) (string, error) {
	if precision < 0 || precision > 100 {
		return "", numerr.Newf(numerr.PrecisionDomain, -1, "fixed precision %d out of range [0,100]", precision)
	}
	if special, ok := specialForm(f); ok {
		return special, nil
	}

	neg := f < 0
	var digits []byte
	var n int
	if f != 0 {
		digits, n = exactDigits(dblbits.Decompose(math.Abs(f)))
		digits, n = roundAt(digits, n, n+precision)
	}

	var buf []byte
	if neg {
		buf = append(buf, '-')
	}
	if n <= 0 || digits == nil {
		buf = append(buf, '0')
		if precision > 0 {
			buf = append(buf, '.')
			lead := 0
			if digits != nil {
				lead = -n
			}
			buf = appendZeros(buf, lead)
			buf = append(buf, digits...)
			buf = appendZeros(buf, precision-lead-len(digits))
		}
		return string(buf), nil
	}

	if len(digits) >= n {
		buf = append(buf, digits[:n]...)
	} else {
		buf = append(buf, digits...)
		buf = appendZeros(buf, n-len(digits))
	}
	if precision > 0 {
		buf = append(buf, '.')
		frac := 0
		if len(digits) > n {
			buf = append(buf, digits[n:]...)
			frac = len(digits) - n
		}
		buf = appendZeros(buf, precision-frac)
	}
	return string(buf), nil
}

// ExponentialNotation formats f as d[.ddd]e±K with exactly precision
// fractional mantissa digits, rounded half-to-even on the exact value.
// precision 0 omits the decimal point. precision must be in [0, 20].
func ExponentialNotation(f float64, precision int) (string, error) {
	if precision < 0 || precision > 20 {
		return "", numerr.Newf(numerr.PrecisionDomain, -1, "exponential precision %d out of range [0,20]", precision)
	}
	if special, ok := specialForm(f); ok {
		return special, nil
	}

	mant := []byte{'0'}
	e := 0
	if f != 0 {
		digits, n := exactDigits(dblbits.Decompose(math.Abs(f)))
		digits, n = roundAt(digits, n, precision+1)
		mant, e = digits, n-1
	}

	var buf []byte
	if f < 0 {
		buf = append(buf, '-')
	}
	buf = append(buf, mant[0])
	if precision > 0 {
		buf = append(buf, '.')
		buf = append(buf, mant[1:]...)
		buf = appendZeros(buf, precision-(len(mant)-1))
	}
	buf = appendExponent(buf, e)
	return string(buf), nil
}

// PrecisionNotation formats f with sigDigits total significant digits,
// choosing fixed or exponential layout the way
// Number.prototype.toPrecision does: exponential when the decimal
// exponent falls outside [-6, sigDigits), fixed with zero padding
// otherwise. Rounding happens before the layout choice, so a carry
// across a power of ten can force the switch to exponential.
// sigDigits must be in [1, 21].
func PrecisionNotation(f float64, sigDigits int) (string, error) {
	if sigDigits < 1 || sigDigits > 21 {
		return "", numerr.Newf(numerr.PrecisionDomain, -1, "significant digits %d out of range [1,21]", sigDigits)
	}
	if special, ok := specialForm(f); ok {
		return special, nil
	}

	var buf []byte
	if f < 0 {
		buf = append(buf, '-')
	}

	if f == 0 {
		buf = append(buf, '0')
		if sigDigits > 1 {
			buf = append(buf, '.')
			buf = appendZeros(buf, sigDigits-1)
		}
		return string(buf), nil
	}

	digits, n := exactDigits(dblbits.Decompose(math.Abs(f)))
	digits, n = roundAt(digits, n, sigDigits)
	e := n - 1

	if e < -6 || e >= sigDigits {
		buf = append(buf, digits[0])
		if sigDigits > 1 {
			buf = append(buf, '.')
			buf = append(buf, digits[1:]...)
			buf = appendZeros(buf, sigDigits-len(digits))
		}
		buf = appendExponent(buf, e)
		return string(buf), nil
	}

	if n <= 0 {
		buf = append(buf, '0', '.')
		buf = appendZeros(buf, -n)
		buf = append(buf, digits...)
		buf = appendZeros(buf, sigDigits-len(digits))
		return string(buf), nil
	}

	buf = append(buf, padDigits(digits, n)...)
	if sigDigits > n {
		buf = append(buf, '.')
		if len(digits) > n {
			buf = append(buf, digits[n:]...)
		}
		frac := len(digits) - n
		if frac < 0 {
			frac = 0
		}
		buf = appendZeros(buf, sigDigits-n-frac)
	}
	return string(buf), nil
}

// padDigits returns the first n digit characters, zero-padding on the
// right when fewer are available.
func padDigits(digits []byte, n int) []byte {
	if len(digits) >= n {
		return digits[:n]
	}
	out := append([]byte(nil), digits...)
	return appendZeros(out, n-len(digits))
}

// specialForm handles NaN and the infinities, which every notation
// renders identically.
func specialForm(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, +1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	}
	return "", false
}

func appendZeros(buf []byte, n int) []byte {
	for i := 0; i < n; i++ {
		buf = append(buf, '0')
	}
	return buf
}

// exactDigits returns the complete exact decimal expansion of the
// finite nonzero value described by b: ASCII significand digits with
// no trailing zeros, and n such that value = 0.<digits> * 10^n.
func exactDigits(b dblbits.Bits) ([]byte, int) {
	m := biguint.NewUint64(b.Significand)

	if b.BinExp >= 0 {
		m.Lsh(uint(b.BinExp))
		ds := asciiDigits(m.DigitsInRadix(10))
		return stripTrailingZeros(ds), len(ds)
	}

	k := uint(-b.BinExp)
	intPart := m.Clone()
	intPart.Rsh(k)
	frac := m
	frac.MaskBits(k)

	var out []byte
	n := 0
	if !intPart.IsZero() {
		out = asciiDigits(intPart.DigitsInRadix(10))
		n = len(out)
	}

	// Each pass peels one decimal digit off the binary fraction:
	// frac/2^k -> (10*frac)/2^k, whose integer part is the digit.
	// At most k digits are nonzero (the expansion of 2^-k ends there).
	for j := uint(0); j < k && !frac.IsZero(); j++ {
		frac.MulAddSmall(10, 0)
		top := frac.Clone()
		top.Rsh(k)
		d := byte(top.Uint64())
		frac.MaskBits(k)
		if len(out) == 0 && d == 0 {
			n--
			continue
		}
		out = append(out, '0'+d)
	}

	return stripTrailingZeros(out), n
}

// roundAt rounds the expansion (digits, n) to keep significant digits,
// half-to-even on the digits being discarded (which are exact). A
// result of (nil, 0) means the value rounded to zero. Trailing zeros
// of the kept digits are stripped; n tracks any carry across a power
// of ten.
func roundAt(digits []byte, n, keep int) ([]byte, int) {
	if keep >= len(digits) {
		return digits, n
	}
	if keep < 0 {
		return nil, 0
	}

	roundUp := false
	switch d := digits[keep]; {
	case d > '5':
		roundUp = true
	case d == '5':
		rest := false
		for _, c := range digits[keep+1:] {
			if c != '0' {
				rest = true
				break
			}
		}
		if rest {
			roundUp = true
		} else if keep > 0 && (digits[keep-1]-'0')%2 == 1 {
			roundUp = true
		}
	}

	out := append([]byte(nil), digits[:keep]...)
	if roundUp {
		i := len(out) - 1
		for i >= 0 && out[i] == '9' {
			out[i] = '0'
			i--
		}
		if i < 0 {
			out = append([]byte{'1'}, out...)
			n++
		} else {
			out[i]++
		}
	}

	out = stripTrailingZeros(out)
	if len(out) == 0 {
		return nil, 0
	}
	return out, n
}

func asciiDigits(values []byte) []byte {
	out := make([]byte, len(values))
	for i, v := range values {
		out[i] = '0' + v
	}
	return out
}

func stripTrailingZeros(digits []byte) []byte {
	n := len(digits)
	for n > 0 && digits[n-1] == '0' {
		n--
	}
	return digits[:n]
}
