// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pallas implements the field and group arithmetic for the Pallas
// curve used by Mina's Schnorr signature scheme: the base field Fp (curve
// coordinates, Poseidon state) and the scalar field Fq (FROST scalars,
// Shamir indices, signing shares).
package pallas

import (
	"errors"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

var (
	ErrMalformedScalar        = errors.New("pallas: bytes do not decode to a canonical field element")
	ErrInvalidZeroScalar      = errors.New("pallas: zero scalar is not a valid signing key")
	ErrMalformedElement       = errors.New("pallas: bytes do not decode to a valid curve point")
	ErrInvalidIdentityElement = errors.New("pallas: identity element is not serializable")
)

// fpDecimal and fqDecimal are the Pasta curve pair's field moduli:
// Fp backs curve coordinates and Poseidon state, Fq backs FROST scalars.
// The two differ only in their low-order limbs (the commonly cited "< 2^125"
// gap referenced by the ciphersuite's field-reinterpretation step).
const (
	fpDecimal = "28948022309329048855892746252171976963363056481941560715954676764349967630337"
	fqDecimal = "28948022309329048855892746252171976963363056481941647379679742748393362948097"
)

var (
	fpModulus = mustModulus(fpDecimal)
	fqModulus = mustModulus(fqDecimal)
)

func mustModulus(decimal string) *saferith.Modulus {
	n, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		panic("pallas: invalid modulus literal")
	}
	return saferith.ModulusFromNat(new(saferith.Nat).SetBig(n, n.BitLen()))
}

// FieldID distinguishes the base field from the scalar field so a single
// Element type can serve both without duplicating the arithmetic.
type FieldID uint8

const (
	BaseField FieldID = iota
	ScalarField
)

func (f FieldID) modulus() *saferith.Modulus {
	if f == BaseField {
		return fpModulus
	}
	return fqModulus
}

// Elt is an element of either the Pallas base field or scalar field.
// Zero is a well-formed value for both fields; callers that need a
// non-zero scalar (signing key shares, identifiers) must check explicitly.
type Elt struct {
	field FieldID
	val   *saferith.Nat
}

func zeroElt(f FieldID) Elt {
	return Elt{field: f, val: new(saferith.Nat).SetUint64(0)}
}

// NewBaseElt and NewScalarElt wrap a small integer as a field element.
func NewBaseElt(x uint64) Elt { return Elt{field: BaseField, val: new(saferith.Nat).SetUint64(x)} }
func NewScalarElt(x uint64) Elt { return Elt{field: ScalarField, val: new(saferith.Nat).SetUint64(x)} }

// IsZero reports whether the element is the additive identity.
func (e Elt) IsZero() bool {
	return e.val.Eq(new(saferith.Nat).SetUint64(0)) == 1
}

// Field reports which of the two Pasta fields this element belongs to.
func (e Elt) Field() FieldID { return e.field }

// Add, Sub, Mul, Neg perform field arithmetic; operands must share a field.
func (e Elt) Add(o Elt) Elt { return e.binop(o, (*saferith.Nat).ModAdd) }
func (e Elt) Sub(o Elt) Elt { return e.binop(o, (*saferith.Nat).ModSub) }
func (e Elt) Mul(o Elt) Elt { return e.binop(o, (*saferith.Nat).ModMul) }

func (e Elt) binop(o Elt, op func(z, x, y *saferith.Nat, m *saferith.Modulus) *saferith.Nat) Elt {
	if e.field != o.field {
		panic("pallas: field mismatch")
	}
	z := new(saferith.Nat)
	op(z, e.val, o.val, e.field.modulus())
	return Elt{field: e.field, val: z}
}

// Neg returns the additive inverse.
func (e Elt) Neg() Elt {
	return zeroElt(e.field).Sub(e)
}

// Invert returns the multiplicative inverse; fails on zero.
func (e Elt) Invert() (Elt, error) {
	if e.IsZero() {
		return Elt{}, ErrInvalidZeroScalar
	}
	z := new(saferith.Nat).ModInverse(e.val, e.field.modulus())
	return Elt{field: e.field, val: z}, nil
}

// Equal reports whether two elements of the same field are equal.
func (e Elt) Equal(o Elt) bool {
	return e.field == o.field && e.val.Eq(o.val) == 1
}

// Bytes serializes the element as 32 bytes little-endian, the canonical
// wire form for both Pasta fields.
func (e Elt) Bytes() [32]byte {
	var out [32]byte
	be := e.val.Bytes()
	for i, j := 0, len(be)-1; j >= 0 && i < 32; i, j = i+1, j-1 {
		out[i] = be[j]
	}
	return out
}

// Big returns the element's canonical representative as a big.Int.
func (e Elt) Big() *big.Int {
	return e.val.Big()
}

// MarshalBinary encodes the element as a field-tag byte followed by its
// 32-byte little-endian form, letting struct-reflection codecs (cbor) that
// honor encoding.BinaryMarshaler serialize types built from Elt without
// exposing its private representation.
func (e Elt) MarshalBinary() ([]byte, error) {
	b := e.Bytes()
	return append([]byte{byte(e.field)}, b[:]...), nil
}

// UnmarshalBinary is the inverse of MarshalBinary.
func (e *Elt) UnmarshalBinary(data []byte) error {
	if len(data) != 33 {
		return ErrMalformedScalar
	}
	var b [32]byte
	copy(b[:], data[1:])
	var (
		out Elt
		err error
	)
	switch FieldID(data[0]) {
	case BaseField:
		out, err = NewBaseFromBytes(b)
	case ScalarField:
		out, err = NewScalarFromBytes(b)
	default:
		return ErrMalformedScalar
	}
	if err != nil {
		return err
	}
	*e = out
	return nil
}

// IsOdd reports whether the element's canonical integer representative is odd.
// Used by the even-Y discipline and compressed public key encoding.
func (e Elt) IsOdd() bool {
	return e.Big().Bit(0) == 1
}

// NewBaseFromBytes and NewScalarFromBytes decode a 32-byte little-endian
// buffer, rejecting values that are not strictly less than the field's
// modulus (non-canonical encodings).
func NewBaseFromBytes(b [32]byte) (Elt, error)   { return fieldFromBytes(BaseField, b) }
func NewScalarFromBytes(b [32]byte) (Elt, error) { return fieldFromBytes(ScalarField, b) }

// baseEltFromBig wraps an already-reduced big.Int as a base-field Elt.
// Callers must ensure v is already < Fp; used for values produced by
// curve-group arithmetic, which works modulo Fp directly.
func baseEltFromBig(v *big.Int) Elt {
	n := new(big.Int).Mod(v, fpModulus.Nat().Big())
	return Elt{field: BaseField, val: new(saferith.Nat).SetBig(n, n.BitLen()+1)}
}

// scalarEltFromBig wraps an already-reduced big.Int as a scalar-field Elt.
func scalarEltFromBig(v *big.Int) Elt {
	n := new(big.Int).Mod(v, fqModulus.Nat().Big())
	return Elt{field: ScalarField, val: new(saferith.Nat).SetBig(n, n.BitLen()+1)}
}

func fieldFromBytes(f FieldID, b [32]byte) (Elt, error) {
	be := make([]byte, 32)
	for i, j := 0, 31; j >= 0; i, j = i+1, j-1 {
		be[i] = b[j]
	}
	n := new(big.Int).SetBytes(be)
	modBig := f.modulus().Nat().Big()
	if n.Cmp(modBig) >= 0 {
		return Elt{}, ErrMalformedScalar
	}
	return Elt{field: f, val: new(saferith.Nat).SetBig(n, modBig.BitLen())}, nil
}

// ReinterpretBaseAsScalar takes a base-field element produced by a Poseidon
// squeeze and reinterprets its integer representative as a scalar-field
// element, reducing modulo Fq. Fp's modulus is smaller than Fq's, so every
// Fp representative is already below Fq and the reduction never changes
// the integer.
func ReinterpretBaseAsScalar(e Elt) Elt {
	if e.field != BaseField {
		panic("pallas: ReinterpretBaseAsScalar requires a base-field element")
	}
	return scalarEltFromBig(e.Big())
}

// RandomScalar draws a uniformly random, reduced scalar field element
// from rng, which must be a cryptographically secure source.
func RandomScalar(rng io.Reader) (Elt, error) {
	modBig := fqModulus.Nat().Big()
	buf := make([]byte, (modBig.BitLen()+7)/8+8)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return Elt{}, err
	}
	n := new(big.Int).SetBytes(buf)
	n.Mod(n, modBig)
	return Elt{field: ScalarField, val: new(saferith.Nat).SetBig(n, modBig.BitLen())}, nil
}

// RandomNonZeroScalar is RandomScalar restricted to the non-zero subset,
// used for FROST identifiers and signing shares.
func RandomNonZeroScalar(rng io.Reader) (Elt, error) {
	for {
		e, err := RandomScalar(rng)
		if err != nil {
			return Elt{}, err
		}
		if !e.IsZero() {
			return e, nil
		}
	}
}
