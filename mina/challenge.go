// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mina

import "encoding/binary"

// ChallengeMessageVersion is the only version this package encodes or
// accepts.
const ChallengeMessageVersion = 0x01

// ChallengeMessage is the wire form fed to the FROST ciphersuite's
// challenge rule: it carries its own NetworkId and Poseidon-variant flag so
// the rule stays a stateless, per-call function with no ambient network
// context.
type ChallengeMessage struct {
	Network  NetworkId
	IsLegacy bool
	ROIBytes []byte
}

// Bytes encodes: version(1), network(1), is_legacy(1), roi_len(4 LE),
// roi_bytes.
func (c ChallengeMessage) Bytes() []byte {
	out := make([]byte, 0, 7+len(c.ROIBytes))
	out = append(out, ChallengeMessageVersion, c.Network.Byte(), boolByte(c.IsLegacy))
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(c.ROIBytes)))
	out = append(out, lenBuf[:]...)
	out = append(out, c.ROIBytes...)
	return out
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// ChallengeMessageFromBytes decodes the wire form, rejecting an unknown
// version, an invalid network byte, an invalid legacy byte, or a length
// mismatch, all as DeSerializationError.
func ChallengeMessageFromBytes(b []byte) (ChallengeMessage, error) {
	if len(b) < 7 {
		return ChallengeMessage{}, ErrDeSerialization
	}
	if b[0] != ChallengeMessageVersion {
		return ChallengeMessage{}, ErrDeSerialization
	}
	network, err := NetworkIdFromByte(b[1])
	if err != nil {
		return ChallengeMessage{}, err
	}
	var isLegacy bool
	switch b[2] {
	case 0:
		isLegacy = false
	case 1:
		isLegacy = true
	default:
		return ChallengeMessage{}, ErrDeSerialization
	}
	roiLen := binary.LittleEndian.Uint32(b[3:7])
	rest := b[7:]
	if uint32(len(rest)) != roiLen {
		return ChallengeMessage{}, ErrDeSerialization
	}
	return ChallengeMessage{Network: network, IsLegacy: isLegacy, ROIBytes: append([]byte(nil), rest...)}, nil
}

// DecodeOrOpaque implements the challenge rule's first step: decode m as a
// ChallengeMessage, falling back to treating m as opaque bytes under
// NetworkId = Testnet, legacy = true when it does not decode.
func DecodeOrOpaque(m []byte) ChallengeMessage {
	if cm, err := ChallengeMessageFromBytes(m); err == nil {
		return cm
	}
	return ChallengeMessage{Network: Testnet, IsLegacy: true, ROIBytes: append([]byte(nil), m...)}
}
