// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package frost

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/pallas"
)

// signAll runs a full round-1/round-2/aggregate cycle over every key
// package and returns the finished signature.
func signAll(t *testing.T, keyPkgs map[string]KeyPackage, ids []Identifier, pub PublicKeyPackage, message []byte) Signature {
	t.Helper()

	nonces := make(map[string]SigningNonces, len(ids))
	commitments := make(map[string]SigningCommitments, len(ids))
	for _, id := range ids {
		n, c, err := NewSigningNonces(rand.Reader)
		require.NoError(t, err)
		nonces[idKey(id)] = n
		commitments[idKey(id)] = c
	}

	sp := SigningPackage{Commitments: commitments, Message: message}

	shares := make(map[string]SignatureShare, len(ids))
	for _, id := range ids {
		n := nonces[idKey(id)]
		share, err := Round2Sign(keyPkgs[idKey(id)], &n, sp)
		require.NoError(t, err)
		shares[idKey(id)] = share
	}

	sig, err := Aggregate(sp, shares, pub)
	require.NoError(t, err)
	return sig
}

func testMessage(network mina.NetworkId, legacy bool, roi []byte) []byte {
	return mina.ChallengeMessage{Network: network, IsLegacy: legacy, ROIBytes: roi}.Bytes()
}

func TestSignRoundTripVerifies(t *testing.T) {
	ids := testIDs(3)
	keyPkgs, pub, err := TrustedDealerKeygen(2, 3, ids, rand.Reader)
	require.NoError(t, err)

	signerIDs := ids[:2]
	message := testMessage(mina.Testnet, true, []byte("hello pallas"))

	sig := signAll(t, keyPkgs, signerIDs, pub, message)
	require.False(t, sig.R.YIsOdd(), "aggregate signature must have even-Y R")
	require.True(t, Verify(pub.VerifyingKey, message, sig))
}

func TestSignRoundTripManyThresholdSubsets(t *testing.T) {
	ids := testIDs(5)
	keyPkgs, pub, err := TrustedDealerKeygen(3, 5, ids, rand.Reader)
	require.NoError(t, err)

	message := testMessage(mina.Mainnet, false, []byte("kimchi sponge mainnet tx"))

	subsets := [][]Identifier{
		{ids[0], ids[1], ids[2]},
		{ids[1], ids[3], ids[4]},
		{ids[0], ids[2], ids[4]},
	}
	for _, subset := range subsets {
		sig := signAll(t, keyPkgs, subset, pub, message)
		require.True(t, Verify(pub.VerifyingKey, message, sig))
	}
}

func TestSignRejectsWrongNumberOfShares(t *testing.T) {
	ids := testIDs(3)
	keyPkgs, pub, err := TrustedDealerKeygen(2, 3, ids, rand.Reader)
	require.NoError(t, err)

	signerIDs := ids[:2]
	message := testMessage(mina.Testnet, true, []byte("msg"))

	nonces := make(map[string]SigningNonces, 2)
	commitments := make(map[string]SigningCommitments, 2)
	for _, id := range signerIDs {
		n, c, err := NewSigningNonces(rand.Reader)
		require.NoError(t, err)
		nonces[idKey(id)] = n
		commitments[idKey(id)] = c
	}
	sp := SigningPackage{Commitments: commitments, Message: message}

	n0 := nonces[idKey(signerIDs[0])]
	share0, err := Round2Sign(keyPkgs[idKey(signerIDs[0])], &n0, sp)
	require.NoError(t, err)

	_, err = Aggregate(sp, map[string]SignatureShare{idKey(signerIDs[0]): share0}, pub)
	require.ErrorIs(t, err, ErrIncorrectNumberOfShares)
}

func TestSigningNoncesPanicOnReuse(t *testing.T) {
	ids := testIDs(2)
	keyPkgs, pub, err := TrustedDealerKeygen(2, 2, ids, rand.Reader)
	require.NoError(t, err)
	_ = pub

	n, c, err := NewSigningNonces(rand.Reader)
	require.NoError(t, err)

	sp := SigningPackage{
		Commitments: map[string]SigningCommitments{idKey(ids[0]): c},
		Message:     testMessage(mina.Testnet, true, []byte("x")),
	}

	_, err = Round2Sign(keyPkgs[idKey(ids[0])], &n, sp)
	// The first call consumes the nonces. It succeeds even though only one
	// of the two signers committed: Round2Sign does not check the signer
	// count against the threshold.
	_ = err

	require.Panics(t, func() {
		_, _ = Round2Sign(keyPkgs[idKey(ids[0])], &n, sp)
	})
}

func TestLagrangeCoefficientInterpolatesConstantTerm(t *testing.T) {
	// Build a degree-1 polynomial f(x) = secret + c1*x, confirm that the
	// Lagrange-weighted combination of two evaluations recovers f(0).
	secret := pallas.NewScalarElt(7)
	c1 := pallas.NewScalarElt(11)
	ids := []Identifier{pallas.NewScalarElt(1), pallas.NewScalarElt(2)}

	evalAt := func(x pallas.Elt) pallas.Elt {
		return secret.Add(c1.Mul(x))
	}

	acc := pallas.NewScalarElt(0)
	for _, id := range ids {
		lambda, err := LagrangeCoefficient(id, ids)
		require.NoError(t, err)
		acc = acc.Add(lambda.Mul(evalAt(id)))
	}
	require.True(t, acc.Equal(secret))
}

func TestChallengeDomainSeparation(t *testing.T) {
	ids := testIDs(2)
	_, pub, err := TrustedDealerKeygen(2, 2, ids, rand.Reader)
	require.NoError(t, err)

	R := pallas.Generator().ScalarMul(pallas.NewScalarElt(42))

	roi := []byte("same payload")
	cTestnet := Challenge(R, pub.VerifyingKey, testMessage(mina.Testnet, true, roi))
	cMainnet := Challenge(R, pub.VerifyingKey, testMessage(mina.Mainnet, true, roi))
	require.False(t, cTestnet.Equal(cMainnet), "network id must separate challenge hashes")

	cLegacy := Challenge(R, pub.VerifyingKey, testMessage(mina.Testnet, true, roi))
	cKimchi := Challenge(R, pub.VerifyingKey, testMessage(mina.Testnet, false, roi))
	require.False(t, cLegacy.Equal(cKimchi), "sponge variant must separate challenge hashes")
}

func TestChallengeOpaqueFallback(t *testing.T) {
	ids := testIDs(2)
	_, pub, err := TrustedDealerKeygen(2, 2, ids, rand.Reader)
	require.NoError(t, err)
	R := pallas.Generator().ScalarMul(pallas.NewScalarElt(7))

	// A message that does not decode as a ChallengeMessage is treated as
	// opaque bytes under Testnet/legacy, matching the explicit envelope form.
	opaque := []byte("not a challenge message envelope")
	explicit := testMessage(mina.Testnet, true, opaque)

	cOpaque := Challenge(R, pub.VerifyingKey, opaque)
	cExplicit := Challenge(R, pub.VerifyingKey, explicit)
	require.True(t, cOpaque.Equal(cExplicit))
}
