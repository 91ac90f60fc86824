// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package frost

import (
	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/pallas"
	"github.com/luxfi/mina-frost/poseidon"
)

// contextString is the ciphersuite identifier every hash below is
// domain-separated under.
const contextString = "bluepallas"

// H1 is the ciphersuite's binding-factor hash ("rho" tag).
func H1(message []byte) pallas.Elt { return poseidon.HashToScalar(contextString, "rho", message) }

// H3 is the ciphersuite's nonce hash-to-scalar ("nonce" tag). The signing
// code in this package does not call it: NewSigningNonces draws nonces
// directly from its rng, and binding factors go through H1.
func H3(message []byte) pallas.Elt { return poseidon.HashToScalar(contextString, "nonce", message) }

// HDKG hashes a DKG round-1 proof-of-knowledge challenge ("dkg" tag).
func HDKG(message []byte) pallas.Elt { return poseidon.HashToScalar(contextString, "dkg", message) }

// HID derives a participant identifier from an arbitrary byte string
// ("id" tag).
func HID(message []byte) pallas.Elt { return poseidon.HashToScalar(contextString, "id", message) }

// H4 hashes a message to bytes ("msg" tag). The signing code in this
// package does not call it: binding factors hash the raw message via H1.
func H4(message []byte) [32]byte { return poseidon.HashToBytes(contextString, "msg", message) }

// H5 hashes a commitment list to bytes ("com" tag).
func H5(message []byte) [32]byte { return poseidon.HashToBytes(contextString, "com", message) }

// Challenge implements the ciphersuite's `challenge` rule: the hash that
// replaces the generic FROST H2 so the resulting signature verifies under
// Mina's Schnorr checker. It decodes M as a ChallengeMessage (falling back
// to opaque Testnet/legacy bytes if it does not decode), folds R.x, VK.x,
// and VK.y into the ROI's preimage bytes, and hashes under the sponge
// variant and network domain string M's flags select.
func Challenge(R pallas.Point, vk VerifyingKey, M []byte) pallas.Elt {
	cm := mina.DecodeOrOpaque(M)

	vkX, vkY := vk.AffineElts()
	rX, _ := R.AffineElts()

	vkXBytes := vkX.Bytes()
	vkYBytes := vkY.Bytes()
	rXBytes := rX.Bytes()

	structured := make([]byte, 0, len(cm.ROIBytes)+96)
	structured = append(structured, cm.ROIBytes...)
	structured = append(structured, vkXBytes[:]...)
	structured = append(structured, vkYBytes[:]...)
	structured = append(structured, rXBytes[:]...)

	variant := poseidon.Kimchi
	if cm.IsLegacy {
		variant = poseidon.Legacy
	}
	return poseidon.ChallengeHash(cm.Network.DomainString(), structured, variant)
}
