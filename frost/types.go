// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package frost

import (
	"io"

	"github.com/luxfi/mina-frost/pallas"
)

// Identifier is a non-zero scalar-field element used as a participant's
// Shamir index.
type Identifier = pallas.Elt

// IdentifierFromUint32 derives a participant identifier from a small
// integer (the common 1..=n case).
func IdentifierFromUint32(i uint32) Identifier {
	return pallas.NewScalarElt(uint64(i))
}

// IdentifierFromBytes derives a participant identifier from an arbitrary
// byte string via HID, retrying on the vanishingly unlikely zero output.
func IdentifierFromBytes(b []byte) Identifier {
	id := HID(b)
	if id.IsZero() {
		return HID(append(append([]byte(nil), b...), 0))
	}
	return id
}

// SigningShare is a participant's Shamir share of the group secret key
// (combined with Lagrange coefficients at signing time).
type SigningShare = pallas.Elt

// VerifyingShare is the public commitment to a SigningShare.
type VerifyingShare = pallas.Point

// VerifyingKey is the group's public key: always has even Y after the
// even-Y layer's key-generation negation has run.
type VerifyingKey = pallas.Point

// KeyPackage is everything one participant needs to take part in signing.
type KeyPackage struct {
	Identifier     Identifier
	SigningShare   SigningShare
	VerifyingShare VerifyingShare
	VerifyingKey   VerifyingKey
	MinSigners     uint16
	MaxSigners     uint16
}

// PublicKeyPackage is the public output of key generation, shared by every
// participant and the coordinator.
type PublicKeyPackage struct {
	VerifyingKey    VerifyingKey
	VerifyingShares map[string]VerifyingShare
}

// idKey canonicalizes an Identifier for use as a map key.
func idKey(id Identifier) string {
	b := id.Bytes()
	return string(b[:])
}

// SigningNonces are a participant's round-1 secret nonces. They must be
// used for exactly one round-2 signing call; Use panics on reuse to make
// the single-use contract hard to violate accidentally.
type SigningNonces struct {
	Hiding  pallas.Elt
	Binding pallas.Elt
	used    bool
}

// Use marks the nonces consumed, panicking if they were already used.
func (n *SigningNonces) Use() {
	if n.used {
		panic(ErrNonceReuse)
	}
	n.used = true
}

// SigningCommitments are the public commitments derived from SigningNonces,
// published in round 1.
type SigningCommitments struct {
	Hiding  pallas.Point
	Binding pallas.Point
}

// NewSigningNonces draws fresh hiding and binding nonces and derives their
// commitments, per FROST round 1.
func NewSigningNonces(rng io.Reader) (SigningNonces, SigningCommitments, error) {
	hiding, err := pallas.RandomNonZeroScalar(rng)
	if err != nil {
		return SigningNonces{}, SigningCommitments{}, err
	}
	binding, err := pallas.RandomNonZeroScalar(rng)
	if err != nil {
		return SigningNonces{}, SigningCommitments{}, err
	}
	nonces := SigningNonces{Hiding: hiding, Binding: binding}
	commitments := SigningCommitments{
		Hiding:  pallas.Generator().ScalarMul(hiding),
		Binding: pallas.Generator().ScalarMul(binding),
	}
	return nonces, commitments, nil
}

// SigningPackage is the coordinator's round-2 input: every participating
// signer's published commitments plus the message to sign.
type SigningPackage struct {
	Commitments map[string]SigningCommitments
	Message     []byte
}

// SignerIDs returns the signing package's participant identifiers in the
// canonical ordering the binding-factor computation requires: ascending
// numeric value of the identifier scalars.
func (sp SigningPackage) SignerIDs() []Identifier {
	ids := make([]Identifier, 0, len(sp.Commitments))
	for k := range sp.Commitments {
		var b [32]byte
		copy(b[:], k)
		id, err := pallas.NewScalarFromBytes(b)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sortIdentifiers(ids)
	return ids
}

func sortIdentifiers(ids []Identifier) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0; j-- {
			bi := ids[j].Bytes()
			bj := ids[j-1].Bytes()
			if lessBytes(bi[:], bj[:]) {
				ids[j], ids[j-1] = ids[j-1], ids[j]
			} else {
				break
			}
		}
	}
}

func lessBytes(a, b []byte) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// SignatureShare is one participant's contribution to the aggregate
// signature.
type SignatureShare = pallas.Elt

// Signature is a finished FROST Schnorr signature. R always has even Y
// after the even-Y layer's signing negation has run.
type Signature struct {
	R pallas.Point
	Z pallas.Elt
}
