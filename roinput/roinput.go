// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package roinput implements Mina's Random Oracle Input: a typed pre-image
// buffer holding an ordered list of field elements plus an ordered list of
// typed bit groups (u32 / u64 / bool / byte-slice). It exposes the two wire
// serializers the rest of the system needs: a legacy concatenation form and
// a packed-to-fields form used by the zkApp packing pipeline.
package roinput

import "github.com/luxfi/mina-frost/pallas"

// BitKind identifies the shape of one typed bit group appended to an ROI.
type BitKind uint8

const (
	KindBool BitKind = iota
	KindU32
	KindU64
	KindBytes
)

// BitGroup is one typed bit group in the ROI's bit list.
type BitGroup struct {
	Kind  BitKind
	Bool  bool
	U32   uint32
	U64   uint64
	Bytes []byte
}

// BitLen returns the number of bits this group contributes.
func (b BitGroup) BitLen() int {
	switch b.Kind {
	case KindBool:
		return 1
	case KindU32:
		return 32
	case KindU64:
		return 64
	case KindBytes:
		return len(b.Bytes) * 8
	default:
		panic("roinput: unknown bit kind")
	}
}

// bits returns the group's bits, LSB first, matching Mina's packing order:
// u32/u64 are packed LSB-first, and byte slices are packed bit-by-bit
// LSB-first within each byte, bytes in order.
func (b BitGroup) bits() []bool {
	out := make([]bool, 0, b.BitLen())
	switch b.Kind {
	case KindBool:
		out = append(out, b.Bool)
	case KindU32:
		for i := 0; i < 32; i++ {
			out = append(out, (b.U32>>uint(i))&1 == 1)
		}
	case KindU64:
		for i := 0; i < 64; i++ {
			out = append(out, (b.U64>>uint(i))&1 == 1)
		}
	case KindBytes:
		for _, by := range b.Bytes {
			for i := 0; i < 8; i++ {
				out = append(out, (by>>uint(i))&1 == 1)
			}
		}
	}
	return out
}

// Input is Mina's Random Oracle Input: an ordered field-element list and an
// ordered typed-bit-group list.
type Input struct {
	Fields []pallas.Elt
	Bits   []BitGroup
}

// New returns an empty ROI.
func New() Input { return Input{} }

func (r Input) AppendField(f pallas.Elt) Input {
	r.Fields = append(r.Fields, f)
	return r
}

func (r Input) AppendBool(b bool) Input {
	r.Bits = append(r.Bits, BitGroup{Kind: KindBool, Bool: b})
	return r
}

func (r Input) AppendU32(x uint32) Input {
	r.Bits = append(r.Bits, BitGroup{Kind: KindU32, U32: x})
	return r
}

func (r Input) AppendU64(x uint64) Input {
	r.Bits = append(r.Bits, BitGroup{Kind: KindU64, U64: x})
	return r
}

func (r Input) AppendBytes(b []byte) Input {
	r.Bits = append(r.Bits, BitGroup{Kind: KindBytes, Bytes: append([]byte(nil), b...)})
	return r
}

func (r Input) Append(o Input) Input {
	r.Fields = append(r.Fields, o.Fields...)
	r.Bits = append(r.Bits, o.Bits...)
	return r
}

// allBits flattens every bit group into one ordered bit sequence, the order
// the legacy and packed-to-fields serializers both start from.
func (r Input) allBits() []bool {
	var out []bool
	for _, g := range r.Bits {
		out = append(out, g.bits()...)
	}
	return out
}

// bitsToFieldLegacy packs a run of bits, LSB-first, into one field element
// (used for the memo hash's 254-bit chunks and PackToFields' 255-bit
// chunks; a value at or above Fp's modulus wraps modulo Fp).
func bitsToFieldLegacy(bits []bool) pallas.Elt {
	acc := pallas.NewBaseElt(0)
	two := pallas.NewBaseElt(2)
	pow := pallas.NewBaseElt(1)
	for _, bit := range bits {
		if bit {
			acc = acc.Add(pow)
		}
		pow = pow.Mul(two)
	}
	return acc
}

// PackBoolsToFieldsLegacy packs a flat bit slice into field elements, 254
// bits per field, used by the zkApp memo hash.
func PackBoolsToFieldsLegacy(bits []bool) []pallas.Elt {
	const chunk = 254
	var out []pallas.Elt
	for i := 0; i < len(bits); i += chunk {
		end := i + chunk
		if end > len(bits) {
			end = len(bits)
		}
		out = append(out, bitsToFieldLegacy(bits[i:end]))
	}
	if len(bits) == 0 {
		out = append(out, pallas.NewBaseElt(0))
	}
	return out
}

// PackToFields implements the packed-to-fields serializer: bit groups are
// accumulated in order, emitting a field element whenever the accumulated
// bit width would exceed the 255-bit threshold, with a final residue field
// at the end. Field elements already present in the ROI are emitted first,
// unchanged.
func (r Input) PackToFields() []pallas.Elt {
	const threshold = 255

	out := append([]pallas.Elt(nil), r.Fields...)

	var acc []bool
	flush := func() {
		if len(acc) == 0 {
			return
		}
		out = append(out, bitsToFieldLegacy(acc))
		acc = nil
	}

	for _, g := range r.Bits {
		gb := g.bits()
		for len(gb) > 0 {
			room := threshold - len(acc)
			if room <= 0 {
				flush()
				room = threshold
			}
			take := room
			if take > len(gb) {
				take = len(gb)
			}
			acc = append(acc, gb[:take]...)
			gb = gb[take:]
			if len(acc) == threshold {
				flush()
			}
		}
	}
	flush()
	return out
}

// LegacyBytes serializes the ROI in the legacy concatenation form: every
// field element's 32-byte little-endian encoding, concatenated, followed by
// the bit list packed 8 bits per byte (LSB first) in append order.
func (r Input) LegacyBytes() []byte {
	out := make([]byte, 0, len(r.Fields)*32)
	for _, f := range r.Fields {
		b := f.Bytes()
		out = append(out, b[:]...)
	}
	bits := r.allBits()
	for i := 0; i < len(bits); i += 8 {
		var by byte
		for j := 0; j < 8 && i+j < len(bits); j++ {
			if bits[i+j] {
				by |= 1 << uint(j)
			}
		}
		out = append(out, by)
	}
	return out
}
