// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mina

import (
	"github.com/luxfi/mina-frost/pallas"
)

// AddressVersionByte is Mina's account-public-key base58check version byte.
// Unlike the signature (0x9A) and memo (0x14) version bytes, the address
// version byte is not part of this system's tested surface (addresses
// arrive and leave as opaque B62... strings); this value is a best-effort
// constant carried for completeness and is not asserted against a literal
// test vector anywhere in this package's tests.
const AddressVersionByte = 0xCB

// CompressedPubKey is a Mina public key in its compressed form: the curve
// point's affine X coordinate plus the parity of Y. The full point is
// recovered by finding the Y with matching parity on the curve.
type CompressedPubKey struct {
	X     pallas.Elt
	IsOdd bool
}

// FromPoint compresses a Pallas group element into a CompressedPubKey.
func FromPoint(pt pallas.Point) CompressedPubKey {
	x, _ := pt.AffineElts()
	return CompressedPubKey{X: x, IsOdd: pt.YIsOdd()}
}

// Bytes serializes the compressed key as 33 bytes: 32-byte little-endian X
// followed by a single parity byte (1 = odd, 0 = even).
func (k CompressedPubKey) Bytes() [33]byte {
	var out [33]byte
	xb := k.X.Bytes()
	copy(out[:32], xb[:])
	if k.IsOdd {
		out[32] = 1
	}
	return out
}

// CompressedPubKeyFromBytes parses the 33-byte compressed form.
func CompressedPubKeyFromBytes(b [33]byte) (CompressedPubKey, error) {
	var xb [32]byte
	copy(xb[:], b[:32])
	x, err := pallas.NewBaseFromBytes(xb)
	if err != nil {
		return CompressedPubKey{}, err
	}
	if b[32] > 1 {
		return CompressedPubKey{}, ErrDeSerialization
	}
	return CompressedPubKey{X: x, IsOdd: b[32] == 1}, nil
}

// Address renders the compressed key as a base58check address string.
func (k CompressedPubKey) Address() string {
	b := k.Bytes()
	return ToBase58Check(AddressVersionByte, b[:])
}

// AddressToCompressedPubKey parses a base58check address string.
func AddressToCompressedPubKey(address string) (CompressedPubKey, error) {
	payload, err := FromBase58Check(address, AddressVersionByte)
	if err != nil {
		return CompressedPubKey{}, err
	}
	if len(payload) != 33 {
		return CompressedPubKey{}, ErrDeSerialization
	}
	var b [33]byte
	copy(b[:], payload)
	return CompressedPubKeyFromBytes(b)
}
