// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkapp

import (
	"testing"

	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/pallas"
	"github.com/stretchr/testify/require"
)

func samplePubKey(seed uint64) mina.CompressedPubKey {
	return mina.CompressedPubKey{X: pallas.NewBaseElt(seed), IsOdd: seed%2 == 1}
}

func minimalUpdate(depth uint32) AccountUpdate {
	return AccountUpdate{
		Body: AccountUpdateBody{
			PublicKey:     samplePubKey(10 + uint64(depth)),
			TokenID:       pallas.NewBaseElt(1),
			Update:        EmptyUpdate(),
			BalanceChange: BalanceChange{Magnitude: 0, Positive: true},
			CallData:      pallas.NewBaseElt(0),
			CallDepth:     depth,
			Preconditions: Preconditions{
				Network: EmptyNetworkPreconditions(),
				Account: EmptyAccountPreconditions(),
			},
			AuthorizationKind: AuthorizationKind{
				IsSigned:            true,
				IsProved:            false,
				VerificationKeyHash: DummyHash(),
			},
		},
	}
}

func sampleCommand() Command {
	memo, _ := mina.NewMemo("zkapp test")
	return Command{
		FeePayer: FeePayer{
			Body: FeePayerBody{
				PublicKey: samplePubKey(1),
				Fee:       1_000_000,
				Nonce:     0,
			},
		},
		AccountUpdates: []AccountUpdate{minimalUpdate(0), minimalUpdate(1)},
		Memo:           memo,
	}
}

func TestCommitIsDeterministic(t *testing.T) {
	cmd := sampleCommand()
	c1, err := Commit(cmd, mina.Testnet)
	require.NoError(t, err)
	c2, err := Commit(cmd, mina.Testnet)
	require.NoError(t, err)
	require.True(t, c1.FullCommitment.Equal(c2.FullCommitment))
	require.True(t, c1.AccountUpdatesCommitment.Equal(c2.AccountUpdatesCommitment))
}

func TestCommitNetworkSeparation(t *testing.T) {
	cmd := sampleCommand()
	testnet, err := Commit(cmd, mina.Testnet)
	require.NoError(t, err)
	mainnet, err := Commit(cmd, mina.Mainnet)
	require.NoError(t, err)
	require.False(t, testnet.FullCommitment.Equal(mainnet.FullCommitment))
}

func TestCommitChangesWithMemo(t *testing.T) {
	cmd := sampleCommand()
	base, err := Commit(cmd, mina.Testnet)
	require.NoError(t, err)

	cmd.Memo, _ = mina.NewMemo("a different memo")
	changed, err := Commit(cmd, mina.Testnet)
	require.NoError(t, err)

	require.False(t, base.FullCommitment.Equal(changed.FullCommitment))
	// Memo only enters the full commitment, not the account-updates one.
	require.True(t, base.AccountUpdatesCommitment.Equal(changed.AccountUpdatesCommitment))
}

func TestCommitRejectsInvalidCallDepth(t *testing.T) {
	cmd := sampleCommand()
	cmd.AccountUpdates[1].Body.CallDepth = 5
	_, err := Commit(cmd, mina.Testnet)
	require.ErrorIs(t, err, ErrInvalidCallDepth)
}

func TestCommitRejectsSignedAndProved(t *testing.T) {
	cmd := sampleCommand()
	cmd.AccountUpdates[0].Body.AuthorizationKind.IsProved = true
	_, err := Commit(cmd, mina.Testnet)
	require.ErrorIs(t, err, ErrBadAuthorizationKind)
}

func TestCommitRejectsUnprovedWithNonDummyHash(t *testing.T) {
	cmd := sampleCommand()
	cmd.AccountUpdates[0].Body.AuthorizationKind.VerificationKeyHash = pallas.NewBaseElt(42)
	_, err := Commit(cmd, mina.Testnet)
	require.ErrorIs(t, err, ErrBadAuthorizationKind)
}

func TestCommitAcceptsSiblingSubtrees(t *testing.T) {
	cmd := sampleCommand()
	cmd.AccountUpdates = []AccountUpdate{
		minimalUpdate(0), minimalUpdate(1), minimalUpdate(0), minimalUpdate(1),
	}
	_, err := Commit(cmd, mina.Testnet)
	require.NoError(t, err)
}
