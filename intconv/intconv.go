// Package intconv parses and formats fixed-width 32/64-bit integer
// literals and checks the array-index grammar.
//
// Parsing accumulates modulo the type width: arbitrarily long literals
// wrap, they never clamp or error on magnitude, so "4294967296" parses
// to 0 as a 32-bit value. Negative values format through the unsigned
// magnitude of their negation, which keeps INT_MIN and LONG_MIN exact.
package intconv

import (
	"github.com/lattice-substrate/ecma-num/atod"
	"github.com/lattice-substrate/ecma-num/numchar"
	"github.com/lattice-substrate/ecma-num/numerr"
)

// StringToInt32 parses an optionally signed decimal — or, with
// opts.AllowHex, 0x-prefixed hexadecimal — literal as a 32-bit two's
// complement value, wrapping modulo 2^32. Leading zeros are always
// permitted. The strict/non-strict trailing-whitespace contract
// mirrors atod.StringToDouble.
func StringToInt32(s string, opts *atod.Options) (int32, int, error) {
	u, n, err := scanFixed(s, opts, 1<<32-1)
	return int32(uint32(u)), n, err
}

// StringToUint32 is StringToInt32 with an unsigned result; a '-' sign
// still wraps through unsigned negation modulo 2^32.
func StringToUint32(s string, opts *atod.Options) (uint32, int, error) {
	u, n, err := scanFixed(s, opts, 1<<32-1)
	return uint32(u), n, err
}

// StringToInt64 is the 64-bit counterpart of StringToInt32, wrapping
// modulo 2^64.
func StringToInt64(s string, opts *atod.Options) (int64, int, error) {
	u, n, err := scanFixed(s, opts, ^uint64(0))
	return int64(u), n, err
}

// StringToUint64 is the 64-bit counterpart of StringToUint32.
func StringToUint64(s string, opts *atod.Options) (uint64, int, error) {
	return scanFixed(s, opts, ^uint64(0))
}

// scanFixed is the shared literal scanner: whitespace, optional sign,
// then decimal or hex digits accumulated under mask (2^32-1 or 2^64-1),
// with the sign applied as two's complement negation.
func scanFixed(s string, opts *atod.Options, mask uint64) (uint64, int, error) {
	i := numchar.IndexOfFirstNonSpace(s)

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	radix := uint64(10)
	if opts != nil && opts.AllowHex && i+2 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') && isHexDigit(s[i+2]) {
		radix = 16
		i += 2
	}

	var v uint64
	digits := 0
	for i < len(s) {
		d, ok := numchar.DigitValue(rune(s[i]))
		if !ok || uint64(d) >= radix {
			break
		}
		v = (v*radix + uint64(d)) & mask
		digits++
		i++
	}
	if digits == 0 {
		return 0, 0, numerr.New(numerr.InvalidNumeral, i, "expected digits")
	}
	if neg {
		v = -v & mask
	}

	if opts != nil && opts.Strict {
		tail := i + numchar.IndexOfFirstNonSpace(s[i:])
		if tail != len(s) {
			return 0, 0, numerr.New(numerr.TrailingContent, tail, "content after integer literal in strict mode")
		}
		return v, len(s), nil
	}
	return v, i, nil
}

func isHexDigit(c byte) bool {
	v, ok := numchar.DigitValue(rune(c))
	return ok && v < 16
}

// Int32String renders v in the given radix (2-36), lowercase digits.
func Int32String(v int32, radix int) (string, error) {
	if v < 0 {
		return formatUnsigned(uint64(uint32(-v)), radix, true)
	}
	return formatUnsigned(uint64(uint32(v)), radix, false)
}

// Uint32String renders v in the given radix (2-36).
func Uint32String(v uint32, radix int) (string, error) {
	return formatUnsigned(uint64(v), radix, false)
}

// Int64String renders v in the given radix (2-36).
func Int64String(v int64, radix int) (string, error) {
	if v < 0 {
		return formatUnsigned(uint64(-v), radix, true)
	}
	return formatUnsigned(uint64(v), radix, false)
}

// Uint64String renders v in the given radix (2-36).
func Uint64String(v uint64, radix int) (string, error) {
	return formatUnsigned(v, radix, false)
}

func formatUnsigned(v uint64, radix int, neg bool) (string, error) {
	if radix < numchar.MinRadix || radix > numchar.MaxRadix {
		return "", numerr.Newf(numerr.RadixDomain, -1, "radix %d out of range [2,36]", radix)
	}
	// 64 binary digits plus a sign is the worst case.
	var tmp [65]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = numchar.DigitChar(int(v % uint64(radix)))
		v /= uint64(radix)
		if v == 0 {
			break
		}
	}
	if neg {
		i--
		tmp[i] = '-'
	}
	return string(tmp[i:]), nil
}

// ParseArrayIndex decides whether s denotes a dense array index: the
// entire string must be "0" or match [1-9][0-9]* (leading zeros only
// when allowLeadingZeroes), with no sign, point, exponent, or
// whitespace, and the value must fit in a uint32. The full uint32
// range is accepted, including 4294967295: this engine's boundary is
// 2^32-1 inclusive, one above the ECMA-262 array-index cap, and the
// observed behavior is kept.
func ParseArrayIndex(s string, allowLeadingZeroes bool) (uint32, bool) {
	if len(s) == 0 {
		return 0, false
	}
	if !allowLeadingZeroes && s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
		if v > 1<<32-1 {
			return 0, false
		}
	}
	return uint32(v), true
}
