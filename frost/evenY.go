// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package frost

import "github.com/luxfi/mina-frost/pallas"

// EvenYKeygenOutput negates a key-generation output's secret share, its
// own verifying share, and the group verifying key together when the
// group key has odd Y, restoring the standard FROST Shamir relation under
// the negated values. Called by DKGPart3 for the participant's own output,
// and by TrustedDealerKeygen once for each participant's share.
func EvenYKeygenOutput(share SigningShare, verifyingShare VerifyingShare, groupVK VerifyingKey) (SigningShare, VerifyingShare, VerifyingKey) {
	if !groupVK.YIsOdd() {
		return share, verifyingShare, groupVK
	}
	return share.Neg(), verifyingShare.Neg(), groupVK.Neg()
}

// EvenYVerifyingShares negates every participant's verifying share in a
// public key package to match a negated group verifying key. Neither
// TrustedDealerKeygen nor the DKG path calls it; both negate each verifying
// share through EvenYKeygenOutput.
func EvenYVerifyingShares(shares map[string]VerifyingShare, groupVK VerifyingKey) map[string]VerifyingShare {
	if !groupVK.YIsOdd() {
		return shares
	}
	out := make(map[string]VerifyingShare, len(shares))
	for k, v := range shares {
		out[k] = v.Neg()
	}
	return out
}

// NeedsSigningNegation reports whether the group commitment R computed
// during round 2 / aggregation has odd Y and therefore requires the
// signing-negation hook before the Schnorr equation is used.
func NeedsSigningNegation(groupCommitment pallas.Point) bool {
	return groupCommitment.YIsOdd()
}

// NegateSignerNonces is the per-signer half of the signing-negation hook:
// negate this signer's hiding and binding nonces. Applied only when
// NeedsSigningNegation reports true.
func NegateSignerNonces(n SigningNonces) SigningNonces {
	return SigningNonces{Hiding: n.Hiding.Neg(), Binding: n.Binding.Neg(), used: n.used}
}

// NegateCommitments negates every hiding/binding commitment point in a
// signing package's commitment set. Applied identically by every signer
// (alongside NegateSignerNonces) and by the coordinator during aggregation
// (alone, since the coordinator holds no nonces), so every party ends up
// computing the same negated group commitment and challenge.
func NegateCommitments(commitments map[string]SigningCommitments) map[string]SigningCommitments {
	out := make(map[string]SigningCommitments, len(commitments))
	for k, c := range commitments {
		out[k] = SigningCommitments{Hiding: c.Hiding.Neg(), Binding: c.Binding.Neg()}
	}
	return out
}
