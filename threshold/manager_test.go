// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package threshold

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/mina-frost/frost"
	"github.com/luxfi/mina-frost/mina"
)

func runDKG(t *testing.T, mgr *Manager, minSigners, maxSigners uint16, parts []*Participant) (frost.PublicKeyPackage, map[string]frost.KeyPackage) {
	t.Helper()

	ids := make([]frost.Identifier, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
	}

	sid, err := mgr.StartDKG(minSigners, maxSigners, ids, 1000)
	require.NoError(t, err)

	for _, p := range parts {
		pkg, err := p.BeginDKG(minSigners)
		require.NoError(t, err)
		require.NoError(t, mgr.SubmitDKGRound1(sid, p.ID, pkg, 1000))
	}

	allRound1, err := mgr.Round1Packages(sid, 1000)
	require.NoError(t, err)
	require.Len(t, allRound1, len(parts))

	for _, p := range parts {
		outbox, err := p.ContinueDKG(allRound1, ids)
		require.NoError(t, err)
		require.NoError(t, mgr.SubmitDKGRound2(sid, p.ID, outbox, 1000))
	}

	keyPkgs := make(map[string]frost.KeyPackage, len(parts))
	for _, p := range parts {
		inbox, err := mgr.Round2InboxFor(sid, p.ID, 1000)
		require.NoError(t, err)
		kp, pub, err := p.FinishDKG(inbox, allRound1, minSigners, maxSigners)
		require.NoError(t, err)
		require.NoError(t, mgr.SubmitDKGResult(sid, p.ID, pub, 1000))
		keyPkgs[idKey(p.ID)] = kp
	}

	result, err := mgr.DKGResult(sid)
	require.NoError(t, err)
	return *result, keyPkgs
}

func TestManagerDKGRoundTrip(t *testing.T) {
	mgr := NewManager(nil)
	parts := []*Participant{
		NewParticipant(frost.IdentifierFromUint32(1), nil, nil),
		NewParticipant(frost.IdentifierFromUint32(2), nil, nil),
		NewParticipant(frost.IdentifierFromUint32(3), nil, nil),
	}

	pub, keyPkgs := runDKG(t, mgr, 2, 3, parts)
	require.Len(t, pub.VerifyingShares, 3)
	for _, p := range parts {
		kp := keyPkgs[idKey(p.ID)]
		kx, ky := kp.VerifyingKey.AffineElts()
		px, py := pub.VerifyingKey.AffineElts()
		require.True(t, kx.Equal(px))
		require.True(t, ky.Equal(py))
	}
}

func TestManagerSigningRoundTrip(t *testing.T) {
	mgr := NewManager(nil)
	parts := []*Participant{
		NewParticipant(frost.IdentifierFromUint32(1), nil, nil),
		NewParticipant(frost.IdentifierFromUint32(2), nil, nil),
		NewParticipant(frost.IdentifierFromUint32(3), nil, nil),
	}

	pub, keyPkgs := runDKG(t, mgr, 2, 3, parts)

	signers := parts[:2]
	ids := make([]frost.Identifier, len(signers))
	for i, p := range signers {
		ids[i] = p.ID
	}

	message := []byte("threshold coordinator round trip")
	sid, err := mgr.StartSigning(pub, mina.Testnet, message, ids, 2000)
	require.NoError(t, err)

	for _, p := range signers {
		c, err := p.BeginSigning(sid)
		require.NoError(t, err)
		require.NoError(t, mgr.SubmitCommitment(sid, p.ID, c, 2000))
	}

	sp, err := mgr.SigningPackage(sid, 2000)
	require.NoError(t, err)

	for _, p := range signers {
		kp := keyPkgs[idKey(p.ID)]
		share, err := p.ContinueSigning(sid, kp, sp)
		require.NoError(t, err)
		require.NoError(t, mgr.SubmitShare(sid, p.ID, share, 2000))
	}

	sig, err := mgr.SigningResult(sid)
	require.NoError(t, err)
	require.True(t, frost.Verify(pub.VerifyingKey, message, *sig))
}

func TestManagerRejectsUnknownParticipant(t *testing.T) {
	mgr := NewManager(nil)
	ids := []frost.Identifier{frost.IdentifierFromUint32(1), frost.IdentifierFromUint32(2)}
	sid, err := mgr.StartDKG(2, 2, ids, 1000)
	require.NoError(t, err)

	intruder := NewParticipant(frost.IdentifierFromUint32(99), nil, nil)
	pkg, err := intruder.BeginDKG(2)
	require.NoError(t, err)
	err = mgr.SubmitDKGRound1(sid, intruder.ID, pkg, 1000)
	require.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestManagerExpiredSession(t *testing.T) {
	mgr := NewManager(nil)
	ids := []frost.Identifier{frost.IdentifierFromUint32(1), frost.IdentifierFromUint32(2)}
	sid, err := mgr.StartDKG(2, 2, ids, 1000)
	require.NoError(t, err)

	_, err = mgr.dkgSession(sid, 1000+DefaultSessionExpiry+1)
	require.ErrorIs(t, err, ErrSessionExpired)
}
