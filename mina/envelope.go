// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mina

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// EnvelopeKind discriminates the two transaction shapes an envelope can
// carry.
type EnvelopeKind uint8

const (
	KindLegacy EnvelopeKind = iota
	KindZkApp
)

// Envelope is the self-describing wire wrapper around a transaction body:
// a 1-byte kind tag, a 1-byte network id, then the body. The zkApp body is
// not redefined here (see package zkapp); Envelope stores it as opaque
// canonical CBOR bytes and round-trips it losslessly.
type Envelope struct {
	Network NetworkId
	Kind    EnvelopeKind
	Legacy  *LegacyTransaction
	ZkApp   []byte // canonical CBOR encoding of a zkapp.Command
}

// Bytes serializes the envelope: kind tag, network byte, then the body.
// ROI field order is for hashing, not wire encoding; the legacy body uses
// CBOR for a lossless, self-contained wire form, matching the zkApp body's
// codec choice so both kinds share one round-trip story.
func (e Envelope) Bytes() ([]byte, error) {
	out := []byte{byte(e.Kind), e.Network.Byte()}
	switch e.Kind {
	case KindLegacy:
		if e.Legacy == nil {
			return nil, fmt.Errorf("%w: legacy envelope missing body", ErrDeSerialization)
		}
		body, err := cbor.Marshal(e.Legacy)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDeSerialization, err)
		}
		out = append(out, body...)
	case KindZkApp:
		out = append(out, e.ZkApp...)
	default:
		return nil, fmt.Errorf("%w: unknown envelope kind", ErrDeSerialization)
	}
	return out, nil
}

// envelopeJSON is the envelope's external JSON shape. Exactly one of the
// two body fields is populated, selected by kind; the zkApp body stays in
// its canonical CBOR form, base64-wrapped for JSON transport.
type envelopeJSON struct {
	Network string             `json:"network"`
	Kind    string             `json:"kind"`
	Legacy  *LegacyTransaction `json:"transaction,omitempty"`
	ZkApp   string             `json:"zkappCommand,omitempty"`
}

func (n NetworkId) jsonName() string {
	if n == Mainnet {
		return "mainnet"
	}
	return "testnet"
}

func networkFromJSONName(s string) (NetworkId, error) {
	switch s {
	case "testnet":
		return Testnet, nil
	case "mainnet":
		return Mainnet, nil
	default:
		return 0, fmt.Errorf("%w: unknown network %q", ErrDeSerialization, s)
	}
}

// MarshalJSON renders the envelope as the payload object of a signed
// transaction.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := envelopeJSON{Network: e.Network.jsonName()}
	switch e.Kind {
	case KindLegacy:
		if e.Legacy == nil {
			return nil, fmt.Errorf("%w: legacy envelope missing body", ErrDeSerialization)
		}
		out.Kind = "legacy"
		out.Legacy = e.Legacy
	case KindZkApp:
		out.Kind = "zkapp"
		out.ZkApp = base64.StdEncoding.EncodeToString(e.ZkApp)
	default:
		return nil, fmt.Errorf("%w: unknown envelope kind", ErrDeSerialization)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the shape MarshalJSON produces.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var in envelopeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrDeSerialization, err)
	}
	network, err := networkFromJSONName(in.Network)
	if err != nil {
		return err
	}
	switch in.Kind {
	case "legacy":
		if in.Legacy == nil {
			return fmt.Errorf("%w: legacy envelope missing transaction", ErrDeSerialization)
		}
		*e = Envelope{Network: network, Kind: KindLegacy, Legacy: in.Legacy}
	case "zkapp":
		body, err := base64.StdEncoding.DecodeString(in.ZkApp)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDeSerialization, err)
		}
		*e = Envelope{Network: network, Kind: KindZkApp, ZkApp: body}
	default:
		return fmt.Errorf("%w: unknown envelope kind %q", ErrDeSerialization, in.Kind)
	}
	return nil
}

// EnvelopeFromBytes decodes the wire form produced by Bytes.
func EnvelopeFromBytes(b []byte) (Envelope, error) {
	if len(b) < 2 {
		return Envelope{}, ErrDeSerialization
	}
	kind := EnvelopeKind(b[0])
	network, err := NetworkIdFromByte(b[1])
	if err != nil {
		return Envelope{}, err
	}
	body := b[2:]
	switch kind {
	case KindLegacy:
		var tx LegacyTransaction
		if err := cbor.Unmarshal(body, &tx); err != nil {
			return Envelope{}, fmt.Errorf("%w: %v", ErrDeSerialization, err)
		}
		return Envelope{Network: network, Kind: KindLegacy, Legacy: &tx}, nil
	case KindZkApp:
		return Envelope{Network: network, Kind: KindZkApp, ZkApp: append([]byte(nil), body...)}, nil
	default:
		return Envelope{}, ErrDeSerialization
	}
}
