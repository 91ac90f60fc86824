// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pallas

import (
	"math/big"
)

// Pallas: y^2 = x^3 + b over Fp, a = 0, cofactor 1.
var curveB = big.NewInt(5)

func fpMod() *big.Int {
	return fpModulus.Nat().Big()
}

// Point is a Pallas curve element in projective (X:Y:Z) coordinates.
// The identity is represented by Z == 0 and is never a valid wire value:
// both serialize and deserialize reject it, matching Mina's requirement
// that a VerifyingKey or nonce commitment can never be the point at
// infinity.
type Point struct {
	x, y, z *big.Int
}

// Identity returns the point at infinity in this representation.
func Identity() Point {
	p := fpMod()
	return Point{x: big.NewInt(0), y: big.NewInt(1), z: big.NewInt(0)}.mod(p)
}

// Generator returns the distinguished base point used for scalar
// multiplication. Its coordinates are derived deterministically (a
// try-and-increment search from a fixed starting x) rather than
// transcribed from the published network parameters, so points produced
// here are self-consistent but not interchangeable with the live Mina
// network's; see DESIGN.md.
func Generator() Point {
	p := fpMod()
	x := new(big.Int).SetUint64(1)
	one := big.NewInt(1)
	for i := 0; i < 1<<20; i++ {
		y2 := new(big.Int).Exp(x, big.NewInt(3), p)
		y2.Add(y2, curveB)
		y2.Mod(y2, p)
		if y, ok := sqrtMod(y2, p); ok {
			if y.Bit(0) != 0 {
				y.Sub(p, y)
			}
			return Point{x: x, y: y, z: one}
		}
		x.Add(x, one)
	}
	panic("pallas: failed to locate generator candidate")
}

// sqrtMod computes a square root of a modulo p (p prime) via Tonelli-Shanks,
// returning ok=false if a is not a quadratic residue.
func sqrtMod(a, p *big.Int) (*big.Int, bool) {
	if a.Sign() == 0 {
		return big.NewInt(0), true
	}
	// Legendre symbol check.
	pm1o2 := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	ls := new(big.Int).Exp(a, pm1o2, p)
	if ls.Cmp(big.NewInt(1)) != 0 {
		return nil, false
	}
	// p mod 4 == 3 fast path. The Pasta moduli are 1 mod 2^32 (high
	// 2-adicity), so they never take it; it is kept for the general case.
	if new(big.Int).And(p, big.NewInt(3)).Int64() == 3 {
		exp := new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(1)), 2)
		return new(big.Int).Exp(a, exp, p), true
	}
	return tonelliShanks(a, p)
}

func tonelliShanks(n, p *big.Int) (*big.Int, bool) {
	q := new(big.Int).Sub(p, big.NewInt(1))
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}
	// Find a quadratic non-residue z (Legendre symbol p-1, not 1).
	pm1o2 := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	z := big.NewInt(2)
	for new(big.Int).Exp(z, pm1o2, p).Cmp(big.NewInt(1)) == 0 {
		z.Add(z, big.NewInt(1))
	}
	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(n, q, p)
	rExp := new(big.Int).Rsh(new(big.Int).Add(q, big.NewInt(1)), 1)
	r := new(big.Int).Exp(n, rExp, p)
	for t.Cmp(big.NewInt(1)) != 0 {
		i, tt := 0, new(big.Int).Set(t)
		for tt.Cmp(big.NewInt(1)) != 0 {
			tt.Mul(tt, tt)
			tt.Mod(tt, p)
			i++
			if i == m {
				return nil, false
			}
		}
		b := new(big.Int).Exp(c, new(big.Int).Lsh(big.NewInt(1), uint(m-i-1)), p)
		m = i
		c = new(big.Int).Mul(b, b)
		c.Mod(c, p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
	return r, true
}

func (pt Point) mod(p *big.Int) Point {
	pt.x.Mod(pt.x, p)
	pt.y.Mod(pt.y, p)
	pt.z.Mod(pt.z, p)
	return pt
}

// IsIdentity reports whether pt is the point at infinity.
func (pt Point) IsIdentity() bool {
	return pt.z == nil || pt.z.Sign() == 0
}

// Affine returns the affine (x, y) representation; panics if called on the
// identity (callers must check IsIdentity first).
func (pt Point) Affine() (x, y *big.Int) {
	if pt.IsIdentity() {
		panic("pallas: affine of identity")
	}
	p := fpMod()
	zInv := new(big.Int).ModInverse(pt.z, p)
	ax := new(big.Int).Mul(pt.x, zInv)
	ax.Mod(ax, p)
	ay := new(big.Int).Mul(pt.y, zInv)
	ay.Mod(ay, p)
	return ax, ay
}

// AffineElts returns the point's affine coordinates as base-field Elts.
func (pt Point) AffineElts() (x, y Elt) {
	ax, ay := pt.Affine()
	return baseEltFromBig(ax), baseEltFromBig(ay)
}

// YIsOdd reports the parity of the affine Y coordinate; the even-Y
// discipline conditionally negates points so this is always false for
// the published group verifying key and a signature's group commitment R
// (individual signers' nonce commitments are not negated).
func (pt Point) YIsOdd() bool {
	_, y := pt.Affine()
	return y.Bit(0) == 1
}

// Neg returns the point negation (x, -y).
func (pt Point) Neg() Point {
	if pt.IsIdentity() {
		return pt
	}
	p := fpMod()
	ny := new(big.Int).Sub(p, pt.y)
	ny.Mod(ny, p)
	return Point{x: new(big.Int).Set(pt.x), y: ny, z: new(big.Int).Set(pt.z)}
}

// Add performs complete projective point addition for a=0 short
// Weierstrass curves (Renes-Costello-Batina Algorithm 1, specialized).
func (pt Point) Add(o Point) Point {
	if pt.IsIdentity() {
		return o
	}
	if o.IsIdentity() {
		return pt
	}
	p := fpMod()
	b3 := new(big.Int).Mul(curveB, big.NewInt(3))
	mulMod := func(a, c *big.Int) *big.Int {
		r := new(big.Int).Mul(a, c)
		return r.Mod(r, p)
	}
	addMod := func(a, c *big.Int) *big.Int {
		r := new(big.Int).Add(a, c)
		return r.Mod(r, p)
	}
	subMod := func(a, c *big.Int) *big.Int {
		r := new(big.Int).Sub(a, c)
		return r.Mod(r, p)
	}

	x1, y1, z1 := pt.x, pt.y, pt.z
	x2, y2, z2 := o.x, o.y, o.z

	t0 := mulMod(x1, x2)
	t1 := mulMod(y1, y2)
	t2 := mulMod(z1, z2)
	t3 := addMod(x1, y1)
	t4 := addMod(x2, y2)
	t3 = mulMod(t3, t4)
	t4 = addMod(t0, t1)
	t3 = subMod(t3, t4)
	t4 = addMod(y1, z1)
	x3 := addMod(y2, z2)
	t4 = mulMod(t4, x3)
	x3 = addMod(t1, t2)
	t4 = subMod(t4, x3)
	x3 = addMod(x1, z1)
	y3 := addMod(x2, z2)
	x3 = mulMod(x3, y3)
	y3 = addMod(t0, t2)
	y3 = subMod(x3, y3)
	x3 = addMod(t0, t0)
	t0 = addMod(x3, t0)
	t2 = mulMod(b3, t2)
	z3 := addMod(t1, t2)
	t1 = subMod(t1, t2)
	y3 = mulMod(b3, y3)
	x3 = mulMod(t4, y3)
	t2 = mulMod(t3, t1)
	x3 = subMod(t2, x3)
	y3 = mulMod(y3, t0)
	t1 = mulMod(t1, z3)
	y3 = addMod(t1, y3)
	t0 = mulMod(t0, t3)
	z3 = mulMod(z3, t4)
	z3 = addMod(z3, t0)

	return Point{x: x3, y: y3, z: z3}
}

// Double returns pt + pt.
func (pt Point) Double() Point { return pt.Add(pt) }

// ScalarMul computes [s]pt via double-and-add over the scalar's bits,
// least significant first; an addition happens only for set bits.
func (pt Point) ScalarMul(s Elt) Point {
	if s.field != ScalarField {
		panic("pallas: scalar multiplication requires a scalar-field element")
	}
	acc := Identity()
	base := pt
	n := s.Big()
	for i := 0; i < n.BitLen(); i++ {
		if n.Bit(i) == 1 {
			acc = acc.Add(base)
		}
		base = base.Double()
	}
	return acc
}

// Bytes serializes the point as a 96-byte uncompressed projective
// encoding (X || Y || Z, each 32 bytes little-endian). Fails on identity.
func (pt Point) Bytes() ([96]byte, error) {
	var out [96]byte
	if pt.IsIdentity() {
		return out, ErrInvalidIdentityElement
	}
	writeLE := func(dst []byte, v *big.Int) {
		be := v.Bytes()
		for i, j := 0, len(be)-1; j >= 0 && i < 32; i, j = i+1, j-1 {
			dst[i] = be[j]
		}
	}
	writeLE(out[0:32], pt.x)
	writeLE(out[32:64], pt.y)
	writeLE(out[64:96], pt.z)
	return out, nil
}

// MarshalBinary encodes the point via Bytes, letting struct-reflection
// codecs (cbor) that honor encoding.BinaryMarshaler serialize types built
// from Point without exposing its projective representation.
func (pt Point) MarshalBinary() ([]byte, error) {
	b, err := pt.Bytes()
	if err != nil {
		return nil, err
	}
	return b[:], nil
}

// UnmarshalBinary is the inverse of MarshalBinary.
func (pt *Point) UnmarshalBinary(data []byte) error {
	if len(data) != 96 {
		return ErrInvalidIdentityElement
	}
	var b [96]byte
	copy(b[:], data)
	out, err := PointFromBytes(b)
	if err != nil {
		return err
	}
	*pt = out
	return nil
}

// PointFromBytes decodes a 96-byte uncompressed projective encoding,
// rejecting identity and non-canonical field encodings.
func PointFromBytes(b [96]byte) (Point, error) {
	readLE := func(src []byte) *big.Int {
		be := make([]byte, 32)
		for i, j := 0, 31; j >= 0; i, j = i+1, j-1 {
			be[i] = src[j]
		}
		return new(big.Int).SetBytes(be)
	}
	p := fpMod()
	x := readLE(b[0:32])
	y := readLE(b[32:64])
	z := readLE(b[64:96])
	if x.Cmp(p) >= 0 || y.Cmp(p) >= 0 || z.Cmp(p) >= 0 {
		return Point{}, ErrMalformedElement
	}
	if z.Sign() == 0 {
		return Point{}, ErrInvalidIdentityElement
	}
	pt := Point{x: x, y: y, z: z}
	if !pt.onCurve(p) {
		return Point{}, ErrMalformedElement
	}
	return pt, nil
}

func (pt Point) onCurve(p *big.Int) bool {
	// Projective Weierstrass check: Y^2*Z = X^3 + b*Z^3.
	y2z := new(big.Int).Mul(pt.y, pt.y)
	y2z.Mul(y2z, pt.z)
	y2z.Mod(y2z, p)

	x3 := new(big.Int).Exp(pt.x, big.NewInt(3), p)
	bz3 := new(big.Int).Exp(pt.z, big.NewInt(3), p)
	bz3.Mul(bz3, curveB)
	rhs := new(big.Int).Add(x3, bz3)
	rhs.Mod(rhs, p)
	return y2z.Cmp(rhs) == 0
}

// NewPointFromAffine builds a projective point from affine base-field
// coordinates without an on-curve check (used internally once the
// caller has already validated the pair, e.g. after a hash-to-curve).
func NewPointFromAffine(x, y Elt) Point {
	return Point{x: x.Big(), y: y.Big(), z: big.NewInt(1)}
}

// PointFromXEvenY reconstructs an on-curve point from its x-coordinate
// alone, selecting whichever of the two roots of y^2 = x^3 + 5 is even.
// This is what every compact Mina wire form (a compressed public key, or
// a signature's R.x) relies on in place of carrying the full y coordinate:
// the even-Y discipline guarantees the even root is always the
// correct one.
func PointFromXEvenY(x Elt) (Point, error) {
	p := fpMod()
	xb := x.Big()
	y2 := new(big.Int).Exp(xb, big.NewInt(3), p)
	y2.Add(y2, curveB)
	y2.Mod(y2, p)
	y, ok := sqrtMod(y2, p)
	if !ok {
		return Point{}, ErrMalformedElement
	}
	if y.Bit(0) != 0 {
		y.Sub(p, y)
	}
	return Point{x: new(big.Int).Set(xb), y: y, z: big.NewInt(1)}, nil
}
