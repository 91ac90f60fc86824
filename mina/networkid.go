// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mina implements the Mina-specific wire formats this system
// signs over: compressed public keys, base58check, legacy transactions,
// and the envelope + challenge-message formats that carry a NetworkId and
// Poseidon-variant flag alongside the Random Oracle Input.
package mina

import "fmt"

// NetworkId selects the Poseidon domain string used when hashing a
// transaction or challenge.
type NetworkId uint8

const (
	Testnet NetworkId = iota
	Mainnet
)

// DomainString returns the Poseidon domain string for this network,
// always within the 20-byte param_to_field limit.
func (n NetworkId) DomainString() string {
	switch n {
	case Testnet:
		return "CodaSignature"
	case Mainnet:
		return "MinaSignatureMainnet"
	default:
		panic(fmt.Sprintf("mina: unknown network id %d", n))
	}
}

// Byte returns the 1-byte wire tag for this network.
func (n NetworkId) Byte() byte { return byte(n) }

// NetworkIdFromByte decodes the 1-byte wire tag, rejecting anything but 0/1.
func NetworkIdFromByte(b byte) (NetworkId, error) {
	switch b {
	case 0:
		return Testnet, nil
	case 1:
		return Mainnet, nil
	default:
		return 0, ErrDeSerialization
	}
}
