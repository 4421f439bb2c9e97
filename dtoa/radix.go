// Radix notations: exact power-of-two-radix rendering and truncated
// integer rendering in any radix 2-36.

package dtoa

import (
	"math"

	"github.com/lattice-substrate/ecma-num/biguint"
	"github.com/lattice-substrate/ecma-num/dblbits"
	"github.com/lattice-substrate/ecma-num/numchar"
	"github.com/lattice-substrate/ecma-num/numerr"
)

// Pow2RadixString renders f exactly — no rounding anywhere — in radix
// 2, 4, 8, 16, or 32 by regrouping the mantissa bits into
// log2(radix)-bit digits for both the integer and fractional parts.
// The fractional expansion always terminates, but can run to ~1074
// digits at radix 2 for the smallest subnormal. Both zeros render "0".
func Pow2RadixString(f float64, radix int) (string, error) {
	var bitsPerDigit uint
	switch radix {
	case 2:
		bitsPerDigit = 1
	case 4:
		bitsPerDigit = 2
	case 8:
		bitsPerDigit = 3
	case 16:
		bitsPerDigit = 4
	case 32:
		bitsPerDigit = 5
	default:
		return "", numerr.Newf(numerr.RadixDomain, -1, "radix %d is not a supported power of two", radix)
	}
	if special, ok := specialForm(f); ok {
		return special, nil
	}
	if f == 0 {
		return "0", nil
	}

	b := dblbits.Decompose(math.Abs(f))
	m := biguint.NewUint64(b.Significand)

	var intDigits, fracDigits []byte
	if b.BinExp >= 0 {
		m.Lsh(uint(b.BinExp))
		intDigits = m.DigitsInRadix(radix)
	} else {
		k := uint(-b.BinExp)
		intPart := m.Clone()
		intPart.Rsh(k)
		intDigits = intPart.DigitsInRadix(radix)

		frac := m
		frac.MaskBits(k)
		if !frac.IsZero() {
			// Pad the k fraction bits on the right to a whole number
			// of digits; the fraction then reads off as an integer in
			// the radix, left-padded with zero digits to its width.
			nd := (k + bitsPerDigit - 1) / bitsPerDigit
			frac.Lsh(nd*bitsPerDigit - k)
			fd := frac.DigitsInRadix(radix)
			if uint(len(fd)) < nd {
				fd = append(make([]byte, int(nd)-len(fd)), fd...)
			}
			for len(fd) > 0 && fd[len(fd)-1] == 0 {
				fd = fd[:len(fd)-1]
			}
			fracDigits = fd
		}
	}

	var buf []byte
	if math.Signbit(f) {
		buf = append(buf, '-')
	}
	for _, d := range intDigits {
		buf = append(buf, numchar.DigitChar(int(d)))
	}
	if len(fracDigits) > 0 {
		buf = append(buf, '.')
		for _, d := range fracDigits {
			buf = append(buf, numchar.DigitChar(int(d)))
		}
	}
	return string(buf), nil
}

// IntegerRadixString truncates f toward zero to its exact mathematical
// integer value and renders it in the given radix via repeated
// big-integer division. The fractional part is discarded outright,
// never rounded into the digits; anything below 1 in magnitude renders
// "0" with no sign.
func IntegerRadixString(f float64, radix int) (string, error) {
	if radix < numchar.MinRadix || radix > numchar.MaxRadix {
		return "", numerr.Newf(numerr.RadixDomain, -1, "radix %d out of range [2,36]", radix)
	}
	if special, ok := specialForm(f); ok {
		return special, nil
	}

	b := dblbits.Decompose(f)
	if b.Class == dblbits.Zero {
		return "0", nil
	}

	m := biguint.NewUint64(b.Significand)
	if b.BinExp >= 0 {
		m.Lsh(uint(b.BinExp))
	} else {
		m.Rsh(uint(-b.BinExp))
	}
	if m.IsZero() {
		return "0", nil
	}

	var buf []byte
	if b.Neg {
		buf = append(buf, '-')
	}
	for _, d := range m.DigitsInRadix(radix) {
		buf = append(buf, numchar.DigitChar(int(d)))
	}
	return string(buf), nil
}
