// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signature

import (
	"github.com/luxfi/mina-frost/mina"
)

// SignedPublicKey is the signer identity block of a signed transaction:
// the group key's base58check address form.
type SignedPublicKey struct {
	Address string `json:"address"`
}

// SignedTransaction is the coordinator's final output: the group public
// key, the aggregate signature, and the transaction payload the signature
// covers, all in their external JSON forms.
type SignedTransaction struct {
	PublicKey SignedPublicKey `json:"publicKey"`
	Signature Sig             `json:"signature"`
	Payload   mina.Envelope   `json:"payload"`
}

// NewSignedTransaction assembles a SignedTransaction from the group
// verifying key's compressed form, a finished signature, and the envelope
// that was signed.
func NewSignedTransaction(groupVK mina.CompressedPubKey, sig Sig, payload mina.Envelope) SignedTransaction {
	return SignedTransaction{
		PublicKey: SignedPublicKey{Address: groupVK.Address()},
		Signature: sig,
		Payload:   payload,
	}
}
