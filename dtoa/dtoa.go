// Package dtoa formats IEEE 754 doubles as text: shortest
// round-tripping decimal (the ECMAScript Number::toString layout),
// fixed, exponential, and fixed-precision notations rounded on the
// exact binary value, plus exact power-of-two-radix and truncated
// integer-radix renderings.
//
// Every formatter is total over all doubles: NaN formats as "NaN",
// infinities as "Infinity"/"-Infinity". Precision and radix arguments
// outside their documented domains are rejected with a numerr error
// before any digits are produced.
package dtoa

import (
	"math"
	"strconv"

	"github.com/lattice-substrate/ecma-num/biguint"
	"github.com/lattice-substrate/ecma-num/dblbits"
)

// Shortest returns the minimal-digit decimal string that parses back
// to exactly f. Layout follows ECMA-262 Number::toString: fixed-point
// when the decimal exponent lies in (-6, 21], exponential d.ddde±K
// otherwise. Both 0 and -0 format as "0".
func Shortest(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, +1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	neg := math.Signbit(f)
	digits, n := shortestDigits(math.Abs(f))
	return formatLayout(neg, digits, n)
}

// formatLayout lays out significand digits per the ECMA-262
// Number::toString rules. n is the decimal exponent: the value equals
// 0.<digits> * 10^n, so n is also the count of digits landing before
// the point in fixed layout.
func formatLayout(negative bool, digits []byte, n int) string {
	k := len(digits)
	buf := make([]byte, 0, k+8)
	if negative {
		buf = append(buf, '-')
	}

	// Exponential outside (-6, 21], fixed inside.
	if n <= -6 || n > 21 {
		buf = append(buf, digits[0])
		if k > 1 {
			buf = append(buf, '.')
			buf = append(buf, digits[1:]...)
		}
		return string(appendExponent(buf, n-1))
	}

	switch {
	case n <= 0:
		buf = append(buf, '0', '.')
		buf = appendZeros(buf, -n)
		buf = append(buf, digits...)
	case n >= k:
		buf = append(buf, digits...)
		buf = appendZeros(buf, n-k)
	default:
		buf = append(buf, digits[:n]...)
		buf = append(buf, '.')
		buf = append(buf, digits[n:]...)
	}
	return string(buf)
}

// appendExponent writes the e±K suffix; the sign is always explicit.
func appendExponent(buf []byte, e int) []byte {
	buf = append(buf, 'e')
	if e >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, int64(e), 10)
}

// shortestDigits runs the Burger-Dybvig free-format algorithm over
// exact biguint arithmetic, producing the shortest decimal significand
// and its decimal exponent for a positive finite nonzero double, with
// ECMA-262 Note 2 (even-digit) tie-breaking.
//
// Returns (digits, n) where value = 0.<digits> * 10^n.
func shortestDigits(f float64) ([]byte, int) {
	b := dblbits.Decompose(f)
	fMant := b.Significand
	fExp := b.BinExp

	// At the lower boundary of a binade (significand a bare power of
	// two, with a binade below) the gap to the neighbor below is half
	// the gap above.
	lowerBoundary := b.Class == dblbits.Normal && fMant == 1<<52 && fExp > -1074

	// Boundaries are inclusive when the mantissa is even
	// (round-to-nearest-even admits the midpoint itself).
	isEven := fMant%2 == 0

	// Scaled integers r, s, mPlus, mMinus with r/s = f, mPlus/s the
	// distance to the upper midpoint, mMinus/s to the lower one.
	r := &biguint.Int{}
	s := &biguint.Int{}
	mPlus := &biguint.Int{}
	mMinus := &biguint.Int{}

	if fExp >= 0 {
		be := uint(fExp)
		if !lowerBoundary {
			r.SetUint64(fMant)
			r.Lsh(be + 1)
			s.SetUint64(2)
			mPlus.SetUint64(1)
			mPlus.Lsh(be)
			mMinus.Set(mPlus)
		} else {
			r.SetUint64(fMant)
			r.Lsh(be + 2)
			s.SetUint64(4)
			mPlus.SetUint64(1)
			mPlus.Lsh(be + 1)
			mMinus.SetUint64(1)
			mMinus.Lsh(be)
		}
	} else {
		nbe := uint(-fExp)
		if !lowerBoundary {
			r.SetUint64(fMant)
			r.Lsh(1)
			s.SetUint64(1)
			s.Lsh(nbe + 1)
			mPlus.SetUint64(1)
			mMinus.SetUint64(1)
		} else {
			r.SetUint64(fMant)
			r.Lsh(2)
			s.SetUint64(1)
			s.Lsh(nbe + 2)
			mPlus.SetUint64(2)
			mMinus.SetUint64(1)
		}
	}

	// Estimated decimal exponent; the fixup passes below correct it.
	k := estimateK(f)
	if k > 0 {
		mulPow10(s, k)
	} else if k < 0 {
		mulPow10(r, -k)
		mulPow10(mPlus, -k)
		mulPow10(mMinus, -k)
	}

	n := k

	// High fixup: if the interval's upper bound reaches 1, the first
	// digit could be 10, so scale s up.
	{
		high := r.Clone()
		high.Add(mPlus)
		if cmp := high.Cmp(s); cmp > 0 || (isEven && cmp == 0) {
			s.MulAddSmall(10, 0)
			n++
		}
	}

	// Low fixup: while the whole interval fits below 1/10, the leading
	// digit would be 0; scale the numerators up instead.
	for {
		tenR := r.Clone()
		tenR.MulAddSmall(10, 0)
		cmp := tenR.Cmp(s)
		low := cmp < 0 || (!isEven && cmp == 0)
		if !low {
			break
		}
		tenHigh := r.Clone()
		tenHigh.Add(mPlus)
		tenHigh.MulAddSmall(10, 0)
		hcmp := tenHigh.Cmp(s)
		highOk := hcmp < 0 || (!isEven && hcmp == 0)
		if !highOk {
			break
		}
		r.MulAddSmall(10, 0)
		mPlus.MulAddSmall(10, 0)
		mMinus.MulAddSmall(10, 0)
		n--
	}

	// Digit extraction.
	var digitBuf [32]byte
	dIdx := 0

	for {
		r.MulAddSmall(10, 0)
		mPlus.MulAddSmall(10, 0)
		mMinus.MulAddSmall(10, 0)

		// digit = floor(r/s), r = r mod s. The fixups keep r/s < 10,
		// so a subtraction loop stands in for division.
		d := 0
		for r.Cmp(s) >= 0 {
			r.Sub(s)
			d++
		}

		// tc1: remaining value low enough to round down and stay in
		// the rounding interval. tc2: high enough to round up.
		lcmp := r.Cmp(mMinus)
		tc1 := lcmp < 0 || (isEven && lcmp == 0)
		high := r.Clone()
		high.Add(mPlus)
		hcmp := high.Cmp(s)
		tc2 := hcmp > 0 || (isEven && hcmp == 0)

		switch {
		case !tc1 && !tc2:
			digitBuf[dIdx] = byte('0' + d)
			dIdx++
			continue
		case tc1 && !tc2:
			digitBuf[dIdx] = byte('0' + d)
			dIdx++
		case !tc1 && tc2:
			digitBuf[dIdx] = byte('0' + d + 1)
			dIdx++
		default:
			// Both sides admissible: compare against the midpoint,
			// even digit on an exact tie.
			twoR := r.Clone()
			twoR.Lsh(1)
			cmp := twoR.Cmp(s)
			switch {
			case cmp < 0:
				digitBuf[dIdx] = byte('0' + d)
			case cmp > 0:
				digitBuf[dIdx] = byte('0' + d + 1)
			case d%2 == 0:
				digitBuf[dIdx] = byte('0' + d)
			default:
				digitBuf[dIdx] = byte('0' + d + 1)
			}
			dIdx++
		}
		break
	}

	// Carry propagation for a final rounded-up digit of 10.
	for i := dIdx - 1; i > 0; i-- {
		if digitBuf[i] > '9' {
			digitBuf[i] = '0'
			digitBuf[i-1]++
		}
	}
	if dIdx > 0 && digitBuf[0] > '9' {
		copy(digitBuf[1:dIdx+1], digitBuf[0:dIdx])
		digitBuf[0] = '1'
		digitBuf[1] = '0'
		dIdx++
		n++
	}

	for dIdx > 1 && digitBuf[dIdx-1] == '0' {
		dIdx--
	}

	out := make([]byte, dIdx)
	copy(out, digitBuf[:dIdx])
	return out, n
}

// estimateK returns an estimate of ceil(log10(f)) for f > 0.
func estimateK(f float64) int {
	bits := math.Float64bits(f)
	biasedExp := int((bits >> 52) & 0x7FF)

	var log2f float64
	if biasedExp == 0 {
		log2f = math.Log2(f)
	} else {
		log2f = float64(biasedExp-1023) + math.Log2(1.0+float64(bits&((1<<52)-1))/float64(uint64(1)<<52))
	}

	return int(math.Ceil(log2f / math.Log2(10)))
}

// mulPow10 multiplies z by 10^k, one small multiply per decimal order.
// k never exceeds a few hundred here, so a cache buys nothing.
func mulPow10(z *biguint.Int, k int) {
	for ; k > 0; k-- {
		z.MulAddSmall(10, 0)
	}
}
