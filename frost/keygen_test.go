// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package frost

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/mina-frost/pallas"
)

func testIDs(n uint32) []Identifier {
	ids := make([]Identifier, n)
	for i := uint32(0); i < n; i++ {
		ids[i] = IdentifierFromUint32(i + 1)
	}
	return ids
}

func pointsEqual(a, b pallas.Point) bool {
	ax, ay := a.AffineElts()
	bx, by := b.AffineElts()
	return ax.Equal(bx) && ay.Equal(by)
}

func TestTrustedDealerKeygenEvenY(t *testing.T) {
	ids := testIDs(5)
	pkgs, pub, err := TrustedDealerKeygen(3, 5, ids, rand.Reader)
	require.NoError(t, err)
	require.False(t, pub.VerifyingKey.YIsOdd())
	require.Len(t, pkgs, 5)

	for _, id := range ids {
		kp, ok := pkgs[idKey(id)]
		require.True(t, ok)
		require.True(t, pointsEqual(kp.VerifyingKey, pub.VerifyingKey))
		expected := pallas.Generator().ScalarMul(kp.SigningShare)
		require.True(t, pointsEqual(expected, kp.VerifyingShare))
	}
}

func TestTrustedDealerKeygenRejectsBadThreshold(t *testing.T) {
	ids := testIDs(3)
	_, _, err := TrustedDealerKeygen(1, 3, ids, rand.Reader)
	require.ErrorIs(t, err, ErrInvalidMinSigners)

	_, _, err = TrustedDealerKeygen(4, 3, ids, rand.Reader)
	require.ErrorIs(t, err, ErrInvalidMaxSigners)

	_, _, err = TrustedDealerKeygen(2, 3, ids[:2], rand.Reader)
	require.ErrorIs(t, err, ErrInvalidCoefficients)

	dup := []Identifier{IdentifierFromUint32(1), IdentifierFromUint32(1), IdentifierFromUint32(2)}
	_, _, err = TrustedDealerKeygen(2, 3, dup, rand.Reader)
	require.ErrorIs(t, err, ErrDuplicatedIdentifier)
}

func TestDKGRoundTrip(t *testing.T) {
	ids := testIDs(3)
	minSigners, maxSigners := uint16(2), uint16(3)

	round1 := make([]DKGRound1Package, len(ids))
	for i, id := range ids {
		pkg, err := DKGPart1(id, minSigners, rand.Reader)
		require.NoError(t, err)
		round1[i] = pkg
	}

	// Each participant computes the shares it owes every other participant.
	sharesFrom := make(map[string]map[string]pallas.Elt, len(ids))
	for i, id := range ids {
		shares, err := DKGPart2(round1[i], round1, ids)
		require.NoError(t, err)
		sharesFrom[idKey(id)] = shares
	}

	keyPkgs := make(map[string]KeyPackage, len(ids))
	pubPkgs := make([]PublicKeyPackage, 0, len(ids))
	for _, id := range ids {
		received := make(map[string]pallas.Elt, len(ids))
		for _, sender := range ids {
			received[idKey(sender)] = sharesFrom[idKey(sender)][idKey(id)]
		}
		kp, pub, err := DKGPart3(id, received, round1, minSigners, maxSigners)
		require.NoError(t, err)
		keyPkgs[idKey(id)] = kp
		pubPkgs = append(pubPkgs, pub)
	}

	merged, err := MergePublicKeyPackages(pubPkgs)
	require.NoError(t, err)
	require.False(t, merged.VerifyingKey.YIsOdd())
	require.Len(t, merged.VerifyingShares, len(ids))

	for _, id := range ids {
		kp := keyPkgs[idKey(id)]
		require.True(t, pointsEqual(kp.VerifyingKey, merged.VerifyingKey))
		expected := pallas.Generator().ScalarMul(kp.SigningShare)
		require.True(t, pointsEqual(expected, kp.VerifyingShare))
	}
}

func TestDKGPart3RejectsShareMismatch(t *testing.T) {
	ids := testIDs(2)
	minSigners, maxSigners := uint16(2), uint16(2)

	round1 := make([]DKGRound1Package, len(ids))
	for i, id := range ids {
		pkg, err := DKGPart1(id, minSigners, rand.Reader)
		require.NoError(t, err)
		round1[i] = pkg
	}

	received := map[string]pallas.Elt{
		idKey(ids[0]): pallas.NewScalarElt(1),
		idKey(ids[1]): pallas.NewScalarElt(1),
	}
	_, _, err := DKGPart3(ids[0], received, round1, minSigners, maxSigners)
	require.ErrorIs(t, err, ErrDKGShareMismatch)
}
