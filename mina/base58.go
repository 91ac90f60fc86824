// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mina

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
)

const (
	// SignatureVersionByte prefixes a Mina Schnorr signature's base58check
	// payload.
	SignatureVersionByte = 0x9A
	// SignatureVersionNumber is prepended before the 64 signature bytes.
	SignatureVersionNumber = 0x01
	// MemoVersionByte prefixes a Mina transaction memo's base58check payload.
	MemoVersionByte = 0x14
)

func checksum(payload []byte) [4]byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	var out [4]byte
	copy(out[:], second[:4])
	return out
}

// ToBase58Check encodes version||data||checksum(version||data) using the
// Bitcoin base58 alphabet.
func ToBase58Check(version byte, data []byte) string {
	payload := make([]byte, 0, 1+len(data)+4)
	payload = append(payload, version)
	payload = append(payload, data...)
	cs := checksum(payload)
	payload = append(payload, cs[:]...)
	return base58.Encode(payload)
}

// FromBase58Check decodes a base58check string, verifying the version byte
// and checksum, and returns the payload data (without version or checksum).
func FromBase58Check(s string, wantVersion byte) ([]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, ErrInvalidBase58
	}
	if len(raw) < 5 {
		return nil, ErrInvalidBase58
	}
	payload := raw[:len(raw)-4]
	wantCs := raw[len(raw)-4:]
	if payload[0] != wantVersion {
		return nil, ErrInvalidBase58
	}
	gotCs := checksum(payload)
	for i := 0; i < 4; i++ {
		if gotCs[i] != wantCs[i] {
			return nil, ErrInvalidChecksum
		}
	}
	return payload[1:], nil
}
