// Package dblbits models IEEE 754 binary64 values as (sign,
// significand, binary exponent) triples and provides the engine's
// single correctly-rounded composition routine.
//
// Every parsing path — decimal, hex, radix-N, power-of-two radix —
// rounds through Compose (or its ComposeBits fast path, which agrees
// with Compose bit-for-bit). Rounding is round-to-nearest with
// ties-to-even at the 53rd significant bit, with fewer bits available
// in the subnormal range. Magnitudes above (2-2^-52)*2^1023 saturate
// to ±Inf; magnitudes at or below 2^-1075 saturate to ±0 (exactly
// 2^-1075 is a tie and rounds to the even neighbor, zero).
package dblbits

import (
	"math"

	"github.com/lattice-substrate/ecma-num/biguint"
)

// Class partitions doubles into the five cases the converters care
// about.
type Class int

const (
	Zero Class = iota
	Subnormal
	Normal
	Inf
	NaN
)

// Bits is the decomposition of a double.
//
// For Normal values the significand carries the implicit leading bit:
// 2^52 <= Significand < 2^53, and the value is Significand * 2^BinExp.
// For Subnormal values Significand is the raw 52-bit fraction field
// and BinExp is always -1074. For Zero, Inf, and NaN the numeric
// fields are zero.
type Bits struct {
	Neg         bool
	Significand uint64
	BinExp      int
	Class       Class
}

// IsSubnormal reports whether the decomposed value is subnormal.
func (b Bits) IsSubnormal() bool { return b.Class == Subnormal }

// Decompose splits f into its bit model. Decompose(b.Float()) == b
// for every b produced by Decompose.
func Decompose(f float64) Bits {
	bits := math.Float64bits(f)
	neg := bits>>63 != 0
	exp := int(bits>>52) & 0x7FF
	frac := bits & (1<<52 - 1)

	switch {
	case exp == 0x7FF:
		if frac != 0 {
			return Bits{Class: NaN}
		}
		return Bits{Neg: neg, Class: Inf}
	case exp == 0:
		if frac == 0 {
			return Bits{Neg: neg, Class: Zero}
		}
		return Bits{Neg: neg, Significand: frac, BinExp: -1074, Class: Subnormal}
	default:
		return Bits{Neg: neg, Significand: 1<<52 | frac, BinExp: exp - 1075, Class: Normal}
	}
}

// Float reconstructs the double described by b.
func (b Bits) Float() float64 {
	var sign uint64
	if b.Neg {
		sign = 1 << 63
	}
	switch b.Class {
	case Zero:
		return math.Float64frombits(sign)
	case Inf:
		return math.Float64frombits(sign | 0x7FF<<52)
	case NaN:
		return math.NaN()
	case Subnormal:
		return math.Float64frombits(sign | b.Significand)
	default:
		exp := uint64(b.BinExp+1075) & 0x7FF
		return math.Float64frombits(sign | exp<<52 | b.Significand&^(1<<52))
	}
}

// Compose rounds the exact rational num/den to the nearest double,
// ties-to-even, with overflow/underflow saturation. den must be
// nonzero. num and den are scratch owned by the caller; Compose may
// not mutate them.
func Compose(neg bool, num, den *biguint.Int) float64 {
	if num.IsZero() {
		return signedZero(neg)
	}

	// 2^(nb-db-1) <= num/den < 2^(nb-db+1), so the binary exponent E
	// (floor(log2) of the value) is nb-db-1 or nb-db; one comparison
	// settles which.
	nb := num.BitLen()
	db := den.BitLen()
	e := nb - db - 1
	{
		n2 := num.Clone()
		d2 := den.Clone()
		if nb >= db {
			d2.Lsh(uint(nb - db))
		} else {
			n2.Lsh(uint(db - nb))
		}
		if n2.Cmp(d2) >= 0 {
			e = nb - db
		}
	}

	if e > 1023 {
		return signedInf(neg)
	}
	if e < -1075 {
		return signedZero(neg)
	}

	// p is the number of significand bits available at this magnitude:
	// 53 for normals, fewer approaching the bottom of the subnormal
	// range (p == 0 exactly at e == -1075, where the value either ties
	// down to zero or rounds up to the smallest subnormal).
	p := 53
	if e < -1022 {
		p = e + 1075
	}

	// Scale so that q = floor(num/den * 2^-g) is the p-bit significand
	// candidate, with g the exponent of one ulp.
	g := e + 1 - p
	n2 := num.Clone()
	d2 := den.Clone()
	if g >= 0 {
		d2.Lsh(uint(g))
	} else {
		n2.Lsh(uint(-g))
	}

	// Restoring long division, one quotient bit per step. q gets
	// exactly p bits; n2 becomes the remainder.
	var q uint64
	if p > 0 {
		t := d2.Clone()
		t.Lsh(uint(p - 1))
		for i := p - 1; i >= 0; i-- {
			if n2.Cmp(t) >= 0 {
				n2.Sub(t)
				q |= 1 << uint(i)
			}
			t.Rsh(1)
		}
	}

	// Round on the remainder: up when 2*rem > den, to even on a tie.
	n2.Lsh(1)
	switch cmp := n2.Cmp(d2); {
	case cmp > 0:
		q++
	case cmp == 0 && q&1 == 1:
		q++
	}

	// Carry out of the significand bumps the exponent. The new
	// significand is a power of two: 2^52 once normal, otherwise the
	// same q (the subnormal ulp does not change).
	if q == 1<<uint(p) {
		e++
		if e > 1023 {
			return signedInf(neg)
		}
		if e >= -1022 {
			q = 1 << 52
		}
	}

	return assemble(neg, q, e)
}

// ComposeBits rounds mant * 2^exp to the nearest double, where sticky
// records that nonzero bits below mant were discarded. This is the
// fast-path entry for power-of-two radix digit runs; it produces the
// same bits Compose would for the same exact value.
func ComposeBits(neg bool, mant uint64, exp int, sticky bool) float64 {
	if mant == 0 {
		return signedZero(neg)
	}
	// Append the sticky bit one position below the mantissa window. It
	// sits strictly below the rounding position, so it influences only
	// midpoint detection, which is exactly a sticky bit's job.
	num := biguint.NewUint64(mant)
	num.Lsh(1)
	if sticky {
		num.MulAddSmall(1, 1)
	}
	e := exp - 1
	den := biguint.NewUint64(1)
	if e >= 0 {
		num.Lsh(uint(e))
	} else {
		den.Lsh(uint(-e))
	}
	return Compose(neg, num, den)
}

func assemble(neg bool, q uint64, e int) float64 {
	var sign uint64
	if neg {
		sign = 1 << 63
	}
	if q == 0 {
		return math.Float64frombits(sign)
	}
	if e < -1022 {
		// Subnormal: q already sits at 2^-1074 ulps.
		return math.Float64frombits(sign | q)
	}
	return math.Float64frombits(sign | uint64(e+1023)<<52 | q&^(1<<52))
}

func signedZero(neg bool) float64 {
	if neg {
		return math.Float64frombits(1 << 63)
	}
	return 0
}

func signedInf(neg bool) float64 {
	if neg {
		return math.Inf(-1)
	}
	return math.Inf(+1)
}
