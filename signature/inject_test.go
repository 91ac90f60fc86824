// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/pallas"
	"github.com/luxfi/mina-frost/zkapp"
)

func pubKey(seed uint64) mina.CompressedPubKey {
	return mina.CompressedPubKey{X: pallas.NewBaseElt(seed), IsOdd: seed%2 == 1}
}

func baseCommand(vk mina.CompressedPubKey) zkapp.Command {
	memo, _ := mina.NewMemo("inject test")
	return zkapp.Command{
		FeePayer: zkapp.FeePayer{
			Body: zkapp.FeePayerBody{PublicKey: vk, Fee: 1_000_000, Nonce: 0},
		},
		AccountUpdates: []zkapp.AccountUpdate{
			{
				Body: zkapp.AccountUpdateBody{
					PublicKey:         vk,
					UseFullCommitment: true,
					AuthorizationKind: zkapp.AuthorizationKind{IsSigned: true},
				},
			},
			{
				Body: zkapp.AccountUpdateBody{
					PublicKey:         vk,
					UseFullCommitment: false,
					AuthorizationKind: zkapp.AuthorizationKind{IsSigned: true},
				},
			},
			{
				Body: zkapp.AccountUpdateBody{
					PublicKey:         pubKey(999),
					UseFullCommitment: true,
					AuthorizationKind: zkapp.AuthorizationKind{IsSigned: true},
				},
			},
			{
				Body: zkapp.AccountUpdateBody{
					PublicKey:         vk,
					UseFullCommitment: true,
					AuthorizationKind: zkapp.AuthorizationKind{IsSigned: false, IsProved: true},
				},
			},
		},
		Memo: memo,
	}
}

func TestInjectZkAppWritesEligibleSlots(t *testing.T) {
	vk := pubKey(1)
	cmd := baseCommand(vk)
	sig := sampleSig()

	warnings := InjectZkApp(&cmd, vk, sig)

	require.Equal(t, sig.Base58(), cmd.FeePayer.Authorization)
	require.Equal(t, sig.Base58(), cmd.AccountUpdates[0].Authorization.Signature)
	require.Empty(t, cmd.AccountUpdates[1].Authorization.Signature)
	require.Empty(t, cmd.AccountUpdates[2].Authorization.Signature)
	require.Empty(t, cmd.AccountUpdates[3].Authorization.Signature)

	var kinds []WarningKind
	for _, w := range warnings {
		kinds = append(kinds, w.Kind)
	}
	require.Contains(t, kinds, WarnPartialCommitmentSkipped)
	require.NotContains(t, kinds, WarnFeePayerKeyMismatch)
}

func TestInjectZkAppFeePayerKeyMismatch(t *testing.T) {
	vk := pubKey(1)
	cmd := baseCommand(pubKey(2))
	warnings := InjectZkApp(&cmd, vk, sampleSig())

	require.Empty(t, cmd.FeePayer.Authorization)
	found := false
	for _, w := range warnings {
		if w.Kind == WarnFeePayerKeyMismatch && w.Index == -1 {
			found = true
		}
	}
	require.True(t, found)
}

func TestInjectZkAppIdempotentWithOverwriteWarning(t *testing.T) {
	vk := pubKey(1)
	cmd := baseCommand(vk)
	sig := sampleSig()

	first := InjectZkApp(&cmd, vk, sig)
	for _, w := range first {
		require.NotEqual(t, WarnOverwrittenAuthorization, w.Kind)
	}

	before := cmd.FeePayer.Authorization
	second := InjectZkApp(&cmd, vk, sig)
	require.Equal(t, before, cmd.FeePayer.Authorization)

	foundFeePayerOverwrite := false
	foundUpdateOverwrite := false
	for _, w := range second {
		if w.Kind == WarnOverwrittenAuthorization && w.Index == -1 {
			foundFeePayerOverwrite = true
		}
		if w.Kind == WarnOverwrittenAuthorization && w.Index == 0 {
			foundUpdateOverwrite = true
		}
	}
	require.True(t, foundFeePayerOverwrite)
	require.True(t, foundUpdateOverwrite)
}
