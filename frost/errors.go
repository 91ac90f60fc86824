// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package frost implements a FROST (Flexible Round-Optimized Schnorr
// Threshold signatures) engine bound to the Pallas curve and Mina's
// Schnorr verifier: trusted-dealer and DKG key generation, the two-round
// signing protocol, and the even-Y discipline that makes the result
// verify under Mina's existing Schnorr checker.
package frost

import "errors"

var (
	ErrMalformedScalar        = errors.New("frost: malformed scalar")
	ErrMalformedElement       = errors.New("frost: malformed group element")
	ErrInvalidIdentityElement = errors.New("frost: identity element is not valid here")
	ErrInvalidZeroScalar      = errors.New("frost: zero scalar is not valid here")

	ErrInvalidCoefficients = errors.New("frost: invalid secret-sharing coefficients")
	ErrInvalidMinSigners   = errors.New("frost: min_signers must be at least 2")
	ErrInvalidMaxSigners   = errors.New("frost: max_signers must be at least min_signers")

	ErrDuplicatedIdentifier    = errors.New("frost: duplicated participant identifier")
	ErrUnknownIdentifier       = errors.New("frost: unknown participant identifier")
	ErrIncorrectNumberOfShares = errors.New("frost: incorrect number of signing shares")

	ErrIdentityCommitment  = errors.New("frost: identity commitment is not valid")
	ErrMissingCommitment   = errors.New("frost: signing package missing a participant's commitment")
	ErrIncorrectCommitment = errors.New("frost: commitment does not match the signer's nonces")

	ErrInvalidSignatureShare = errors.New("frost: invalid signature share")
	ErrInvalidSignature      = errors.New("frost: invalid aggregate signature")

	ErrNonceReuse = errors.New("frost: signing nonces must be used only once")

	ErrDKGPart1Incomplete = errors.New("frost: DKG round 1 packages incomplete")
	ErrDKGPart2Incomplete = errors.New("frost: DKG round 2 packages incomplete")
	ErrDKGShareMismatch   = errors.New("frost: DKG secret share does not match the commitment")
)
