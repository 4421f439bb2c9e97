// Package biguint implements the arbitrary-precision non-negative
// integer underlying both numeric parsing and exact floating-point
// formatting.
//
// An Int is a growable little-endian slice of 32-bit limbs. Values are
// created fresh per parse/format call, owned entirely by that call
// frame, and never shared across goroutines; the zero Int is a valid
// representation of zero.
//
// The operation set is deliberately narrow: digit accumulation
// (MulAddSmall), comparison, small division with remainder, bit
// shifts, exact subtraction, and digit extraction in any radix 2-36.
// There is no signed arithmetic and no full multi-limb multiply or
// divide; the callers never need them.
package biguint

import "math/bits"

// Int is an arbitrary-precision non-negative integer.
// The limb slice is little-endian and normalized: the most significant
// limb, if any, is nonzero.
type Int struct {
	limbs []uint32
}

// NewUint64 returns a fresh Int holding v.
func NewUint64(v uint64) *Int {
	z := &Int{}
	z.SetUint64(v)
	return z
}

// SetUint64 sets z to v.
func (z *Int) SetUint64(v uint64) {
	z.limbs = z.limbs[:0]
	if v != 0 {
		z.limbs = append(z.limbs, uint32(v))
	}
	if v>>32 != 0 {
		z.limbs = append(z.limbs, uint32(v>>32))
	}
}

// Set sets z to the value of x.
func (z *Int) Set(x *Int) {
	z.limbs = append(z.limbs[:0], x.limbs...)
}

// Clone returns an independent copy of z.
func (z *Int) Clone() *Int {
	c := &Int{}
	c.Set(z)
	return c
}

// IsZero reports whether z is zero.
func (z *Int) IsZero() bool {
	return len(z.limbs) == 0
}

// trim drops high zero limbs so the representation stays normalized.
func (z *Int) trim() {
	n := len(z.limbs)
	for n > 0 && z.limbs[n-1] == 0 {
		n--
	}
	z.limbs = z.limbs[:n]
}

// BitLen returns the length of z in bits; 0 for zero.
func (z *Int) BitLen() int {
	n := len(z.limbs)
	if n == 0 {
		return 0
	}
	return (n-1)*32 + bits.Len32(z.limbs[n-1])
}

// Uint64 returns the low 64 bits of z. Callers use it only when z is
// known to fit.
func (z *Int) Uint64() uint64 {
	var v uint64
	if len(z.limbs) > 0 {
		v = uint64(z.limbs[0])
	}
	if len(z.limbs) > 1 {
		v |= uint64(z.limbs[1]) << 32
	}
	return v
}

// Cmp compares z and x, returning -1, 0, or +1.
func (z *Int) Cmp(x *Int) int {
	if len(z.limbs) != len(x.limbs) {
		if len(z.limbs) < len(x.limbs) {
			return -1
		}
		return +1
	}
	for i := len(z.limbs) - 1; i >= 0; i-- {
		if z.limbs[i] != x.limbs[i] {
			if z.limbs[i] < x.limbs[i] {
				return -1
			}
			return +1
		}
	}
	return 0
}

// MulAddSmall sets z = z*factor + addend. This is the digit
// accumulation step v = v*radix + digit.
func (z *Int) MulAddSmall(factor, addend uint32) {
	carry := uint64(addend)
	for i := range z.limbs {
		t := uint64(z.limbs[i])*uint64(factor) + carry
		z.limbs[i] = uint32(t)
		carry = t >> 32
	}
	if carry != 0 {
		z.limbs = append(z.limbs, uint32(carry))
	}
	z.trim()
}

// Add sets z = z + x.
func (z *Int) Add(x *Int) {
	var carry uint64
	for i := 0; i < len(x.limbs) || carry != 0; i++ {
		if i == len(z.limbs) {
			z.limbs = append(z.limbs, 0)
		}
		t := uint64(z.limbs[i]) + carry
		if i < len(x.limbs) {
			t += uint64(x.limbs[i])
		}
		z.limbs[i] = uint32(t)
		carry = t >> 32
	}
}

// Sub sets z = z - x. The caller guarantees z >= x.
func (z *Int) Sub(x *Int) {
	var borrow uint64
	for i := 0; i < len(x.limbs) || borrow != 0; i++ {
		t := uint64(z.limbs[i]) - borrow
		if i < len(x.limbs) {
			t -= uint64(x.limbs[i])
		}
		z.limbs[i] = uint32(t)
		borrow = (t >> 32) & 1
	}
	z.trim()
}

// Lsh sets z = z << k.
func (z *Int) Lsh(k uint) {
	if z.IsZero() || k == 0 {
		return
	}
	limbShift := int(k / 32)
	bitShift := k % 32
	n := len(z.limbs)
	z.limbs = append(z.limbs, make([]uint32, limbShift+1)...)
	for i := n - 1; i >= 0; i-- {
		v := uint64(z.limbs[i]) << bitShift
		z.limbs[i+limbShift] = uint32(v)
		z.limbs[i+limbShift+1] |= uint32(v >> 32)
	}
	for i := 0; i < limbShift; i++ {
		z.limbs[i] = 0
	}
	z.trim()
}

// Rsh sets z = z >> k.
func (z *Int) Rsh(k uint) {
	limbShift := int(k / 32)
	bitShift := k % 32
	if limbShift >= len(z.limbs) {
		z.limbs = z.limbs[:0]
		return
	}
	for i := 0; i+limbShift < len(z.limbs); i++ {
		v := uint64(z.limbs[i+limbShift]) >> bitShift
		if bitShift > 0 && i+limbShift+1 < len(z.limbs) {
			v |= uint64(z.limbs[i+limbShift+1]) << (32 - bitShift)
		}
		z.limbs[i] = uint32(v)
	}
	z.limbs = z.limbs[:len(z.limbs)-limbShift]
	z.trim()
}

// MaskBits keeps only the low k bits of z.
func (z *Int) MaskBits(k uint) {
	limbs := int(k / 32)
	bitRem := k % 32
	if limbs >= len(z.limbs) {
		return
	}
	if bitRem == 0 {
		z.limbs = z.limbs[:limbs]
	} else {
		z.limbs = z.limbs[:limbs+1]
		z.limbs[limbs] &= (1 << bitRem) - 1
	}
	z.trim()
}

// Bit returns bit i of z (0 or 1).
func (z *Int) Bit(i uint) uint {
	limb := int(i / 32)
	if limb >= len(z.limbs) {
		return 0
	}
	return uint(z.limbs[limb]>>(i%32)) & 1
}

// AnyBitBelow reports whether any of bits [0, i) of z is set.
func (z *Int) AnyBitBelow(i uint) bool {
	limb := int(i / 32)
	for j := 0; j < limb && j < len(z.limbs); j++ {
		if z.limbs[j] != 0 {
			return true
		}
	}
	if limb < len(z.limbs) && i%32 != 0 {
		if z.limbs[limb]&((1<<(i%32))-1) != 0 {
			return true
		}
	}
	return false
}

// DivModSmall sets z = z / divisor and returns z mod divisor.
// divisor must be nonzero.
func (z *Int) DivModSmall(divisor uint32) uint32 {
	var rem uint64
	for i := len(z.limbs) - 1; i >= 0; i-- {
		t := rem<<32 | uint64(z.limbs[i])
		z.limbs[i] = uint32(t / uint64(divisor))
		rem = t % uint64(divisor)
	}
	z.trim()
	return uint32(rem)
}

// DigitsInRadix returns the digit values of z in the given radix,
// most-significant first. Zero yields a single 0 digit. The receiver
// is not modified.
func (z *Int) DigitsInRadix(radix int) []byte {
	if z.IsZero() {
		return []byte{0}
	}
	// Radix 2 needs up to 32 digits per limb, the worst case.
	digits := make([]byte, 0, len(z.limbs)*32)
	q := z.Clone()
	for !q.IsZero() {
		digits = append(digits, byte(q.DivModSmall(uint32(radix))))
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return digits
}

// SetDigits sets z from digit values (most-significant first) in the
// given radix. This is the inverse of DigitsInRadix.
func (z *Int) SetDigits(digits []byte, radix int) {
	z.limbs = z.limbs[:0]
	for _, d := range digits {
		z.MulAddSmall(uint32(radix), uint32(d))
	}
}
