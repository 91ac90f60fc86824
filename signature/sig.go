// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package signature implements Mina's wire and JSON forms for a finished
// Schnorr signature, and the zkApp injection logic that writes a computed
// signature back into a command's fee payer and account updates.
package signature

import (
	"encoding/json"
	"errors"
	"math/big"

	"github.com/luxfi/mina-frost/frost"
	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/pallas"
)

// ErrInvalidSignature is returned when a wire or JSON signature fails to
// decode into two canonical field/scalar elements.
var ErrInvalidSignature = errors.New("signature: malformed signature encoding")

// Sig is a Mina Schnorr signature: the group commitment's x-coordinate
// (field) and the aggregated response scalar.
type Sig struct {
	Field  pallas.Elt
	Scalar pallas.Elt
}

// FromFROST converts a finished frost.Signature (whose R carries full
// curve coordinates) into the compact (field, scalar) wire representation
// Mina signatures use.
func FromFROST(sig frost.Signature) Sig {
	x, _ := sig.R.AffineElts()
	return Sig{Field: x, Scalar: sig.Z}
}

// Bytes encodes the signature's base58check payload: version_number(1) ||
// R.x(32 LE) || z(32 LE).
func (s Sig) Bytes() []byte {
	out := make([]byte, 0, 65)
	out = append(out, mina.SignatureVersionNumber)
	fb := s.Field.Bytes()
	zb := s.Scalar.Bytes()
	out = append(out, fb[:]...)
	out = append(out, zb[:]...)
	return out
}

// Base58 renders the signature as Mina's base58check string.
func (s Sig) Base58() string {
	return mina.ToBase58Check(mina.SignatureVersionByte, s.Bytes())
}

// FromBase58 parses a Mina base58check signature string.
func FromBase58(encoded string) (Sig, error) {
	payload, err := mina.FromBase58Check(encoded, mina.SignatureVersionByte)
	if err != nil {
		return Sig{}, err
	}
	if len(payload) != 65 || payload[0] != mina.SignatureVersionNumber {
		return Sig{}, ErrInvalidSignature
	}
	var fb, zb [32]byte
	copy(fb[:], payload[1:33])
	copy(zb[:], payload[33:65])
	field, err := pallas.NewBaseFromBytes(fb)
	if err != nil {
		return Sig{}, ErrInvalidSignature
	}
	scalar, err := pallas.NewScalarFromBytes(zb)
	if err != nil {
		return Sig{}, ErrInvalidSignature
	}
	return Sig{Field: field, Scalar: scalar}, nil
}

// sigJSON is the external JSON shape: both components as decimal strings
// plus the base58check rendering, so consumers can pick whichever form
// their tooling parses.
type sigJSON struct {
	Field  string `json:"field"`
	Scalar string `json:"scalar"`
	Base58 string `json:"base58"`
}

// MarshalJSON encodes the signature as
// {"field": "<decimal>", "scalar": "<decimal>", "base58": "..."}.
func (s Sig) MarshalJSON() ([]byte, error) {
	return json.Marshal(sigJSON{
		Field:  s.Field.Big().String(),
		Scalar: s.Scalar.Big().String(),
		Base58: s.Base58(),
	})
}

// UnmarshalJSON decodes the shape MarshalJSON produces. The base58 field
// is authoritative when present (it carries its own checksum); the
// decimal pair is accepted on its own for inputs produced by tooling
// that never computed the base58 form.
func (s *Sig) UnmarshalJSON(data []byte) error {
	var in sigJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Base58 != "" {
		parsed, err := FromBase58(in.Base58)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	field, err := eltFromDecimal(in.Field, pallas.BaseField)
	if err != nil {
		return err
	}
	scalar, err := eltFromDecimal(in.Scalar, pallas.ScalarField)
	if err != nil {
		return err
	}
	*s = Sig{Field: field, Scalar: scalar}
	return nil
}

// eltFromDecimal parses a decimal string into a canonical field element.
func eltFromDecimal(dec string, f pallas.FieldID) (pallas.Elt, error) {
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok || n.Sign() < 0 {
		return pallas.Elt{}, ErrInvalidSignature
	}
	var le [32]byte
	be := n.Bytes()
	if len(be) > 32 {
		return pallas.Elt{}, ErrInvalidSignature
	}
	for i, j := 0, len(be)-1; j >= 0; i, j = i+1, j-1 {
		le[i] = be[j]
	}
	var (
		e   pallas.Elt
		err error
	)
	if f == pallas.BaseField {
		e, err = pallas.NewBaseFromBytes(le)
	} else {
		e, err = pallas.NewScalarFromBytes(le)
	}
	if err != nil {
		return pallas.Elt{}, ErrInvalidSignature
	}
	return e, nil
}
