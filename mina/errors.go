// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mina

import "errors"

var (
	ErrDeSerialization  = errors.New("mina: deserialization failed")
	ErrInvalidMemo      = errors.New("mina: memo exceeds 32 source bytes")
	ErrInvalidSignature = errors.New("mina: invalid signature conversion")
	ErrInvalidPublicKey = errors.New("mina: invalid public key conversion")
	ErrInvalidBase58    = errors.New("mina: invalid base58 encoding")
	ErrInvalidChecksum  = errors.New("mina: base58check checksum mismatch")
)
