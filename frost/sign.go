// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package frost

import (
	"github.com/luxfi/mina-frost/pallas"
)

// encodeCommitments serializes a signing package's commitments in
// Identifier order, the canonical encoding the binding-factor computation
// hashes over.
func encodeCommitments(sp SigningPackage, ids []Identifier) ([]byte, error) {
	out := make([]byte, 0, len(ids)*(32+96+96))
	for _, id := range ids {
		idb := id.Bytes()
		out = append(out, idb[:]...)
		c, ok := sp.Commitments[idKey(id)]
		if !ok {
			return nil, ErrMissingCommitment
		}
		hb, err := c.Hiding.Bytes()
		if err != nil {
			return nil, ErrIdentityCommitment
		}
		bb, err := c.Binding.Bytes()
		if err != nil {
			return nil, ErrIdentityCommitment
		}
		out = append(out, hb[:]...)
		out = append(out, bb[:]...)
	}
	return out, nil
}

// bindingFactors computes rho_i = H1(id || commitment-list-encoding ||
// message) for one participant. The encoding is fixed from the original,
// unnegated commitment set: the even-Y signing-negation hook only ever
// flips the sign of the
// nonces and commitment points that these binding factors later weight,
// never the factors themselves, which is what keeps the negated group
// commitment exactly equal to the negation of the original one.
func bindingFactors(ids []Identifier, encodedCommitments, message []byte) map[string]pallas.Elt {
	out := make(map[string]pallas.Elt, len(ids))
	for _, id := range ids {
		idb := id.Bytes()
		input := make([]byte, 0, len(idb)+len(encodedCommitments)+len(message))
		input = append(input, idb[:]...)
		input = append(input, encodedCommitments...)
		input = append(input, message...)
		out[idKey(id)] = H1(input)
	}
	return out
}

// weightedGroupCommitment computes R = sum_i (commitments[i].Hiding +
// rho_i * commitments[i].Binding) using the given (fixed) binding factors.
func weightedGroupCommitment(commitments map[string]SigningCommitments, rhos map[string]pallas.Elt, ids []Identifier) pallas.Point {
	R := pallas.Identity()
	for _, id := range ids {
		c := commitments[idKey(id)]
		rho := rhos[idKey(id)]
		R = R.Add(c.Hiding).Add(c.Binding.ScalarMul(rho))
	}
	return R
}

// LagrangeCoefficient computes participant id's Lagrange coefficient for
// interpolating the secret at x=0, given the full set of participating
// identifiers.
func LagrangeCoefficient(id Identifier, allIDs []Identifier) (pallas.Elt, error) {
	num := pallas.NewScalarElt(1)
	den := pallas.NewScalarElt(1)
	for _, other := range allIDs {
		if other.Equal(id) {
			continue
		}
		num = num.Mul(other)
		diff := other.Sub(id)
		den = den.Mul(diff)
	}
	denInv, err := den.Invert()
	if err != nil {
		return pallas.Elt{}, err
	}
	return num.Mul(denInv), nil
}

// Round2Sign computes one participant's signature share for a signing
// package, applying the even-Y signing-negation hook when the (unnegated)
// group commitment has odd Y. nonces is consumed (Use panics on reuse).
func Round2Sign(keyPkg KeyPackage, nonces *SigningNonces, sp SigningPackage) (SignatureShare, error) {
	nonces.Use()

	ids := sp.SignerIDs()
	if _, ok := sp.Commitments[idKey(keyPkg.Identifier)]; !ok {
		return pallas.Elt{}, ErrMissingCommitment
	}

	encoded, err := encodeCommitments(sp, ids)
	if err != nil {
		return pallas.Elt{}, err
	}
	rhos := bindingFactors(ids, encoded, sp.Message)

	commitments := sp.Commitments
	R := weightedGroupCommitment(commitments, rhos, ids)

	myNonces := *nonces
	if NeedsSigningNegation(R) {
		myNonces = NegateSignerNonces(myNonces)
		commitments = NegateCommitments(commitments)
		R = weightedGroupCommitment(commitments, rhos, ids)
	}

	rho := rhos[idKey(keyPkg.Identifier)]
	lambda, err := LagrangeCoefficient(keyPkg.Identifier, ids)
	if err != nil {
		return pallas.Elt{}, err
	}

	c := Challenge(R, keyPkg.VerifyingKey, sp.Message)

	share := myNonces.Hiding.
		Add(myNonces.Binding.Mul(rho)).
		Add(lambda.Mul(keyPkg.SigningShare).Mul(c))
	return share, nil
}

// Aggregate combines signature shares into a finished Signature, applying
// the coordinator's half of the even-Y signing-negation hook (it holds no
// nonces, only commitments, so it negates commitments alone, reusing the
// same binding factors every signer used).
func Aggregate(sp SigningPackage, shares map[string]SignatureShare, pub PublicKeyPackage) (Signature, error) {
	ids := sp.SignerIDs()
	if len(shares) != len(ids) {
		return Signature{}, ErrIncorrectNumberOfShares
	}

	encoded, err := encodeCommitments(sp, ids)
	if err != nil {
		return Signature{}, err
	}
	rhos := bindingFactors(ids, encoded, sp.Message)

	commitments := sp.Commitments
	R := weightedGroupCommitment(commitments, rhos, ids)
	if NeedsSigningNegation(R) {
		commitments = NegateCommitments(commitments)
		R = weightedGroupCommitment(commitments, rhos, ids)
	}

	z := pallas.NewScalarElt(0)
	for _, id := range ids {
		share, ok := shares[idKey(id)]
		if !ok {
			return Signature{}, ErrMissingCommitment
		}
		z = z.Add(share)
	}

	sig := Signature{R: R, Z: z}
	c := Challenge(R, pub.VerifyingKey, sp.Message)
	if !VerifySignature(pub.VerifyingKey, sig, c) {
		return Signature{}, ErrInvalidSignature
	}
	return sig, nil
}

// VerifySignature checks the Schnorr equation z*G == R + c*VK directly
// (used by Aggregate, and exposed for standalone verification given a
// precomputed challenge).
func VerifySignature(vk VerifyingKey, sig Signature, c pallas.Elt) bool {
	lhs := pallas.Generator().ScalarMul(sig.Z)
	rhs := sig.R.Add(vk.ScalarMul(c))
	lx, ly := lhs.AffineElts()
	rx, ry := rhs.AffineElts()
	return lx.Equal(rx) && ly.Equal(ry)
}

// Verify checks a finished Mina-compatible signature against a message by
// recomputing the challenge from scratch.
func Verify(vk VerifyingKey, message []byte, sig Signature) bool {
	c := Challenge(sig.R, vk, message)
	return VerifySignature(vk, sig, c)
}
