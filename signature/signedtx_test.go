// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/mina-frost/mina"
)

func TestSignedTransactionJSONShape(t *testing.T) {
	memo, err := mina.NewMemo("signed tx test")
	require.NoError(t, err)
	tx := mina.LegacyTransaction{
		FeePayer:   pubKey(1),
		Source:     pubKey(1),
		Receiver:   pubKey(2),
		Fee:        10_000_000,
		Nonce:      0,
		ValidUntil: 4_294_967_295,
		Memo:       memo,
		Tag:        mina.TagPayment,
		Amount:     1_000_000_000,
	}
	env := mina.Envelope{Network: mina.Testnet, Kind: mina.KindLegacy, Legacy: &tx}

	signed := NewSignedTransaction(pubKey(1), sampleSig(), env)
	b, err := json.Marshal(signed)
	require.NoError(t, err)
	require.Contains(t, string(b), `"publicKey"`)
	require.Contains(t, string(b), `"address"`)
	require.Contains(t, string(b), `"signature"`)
	require.Contains(t, string(b), `"payload"`)

	var out SignedTransaction
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, signed.PublicKey.Address, out.PublicKey.Address)
	require.True(t, out.Signature.Field.Equal(signed.Signature.Field))
	require.Equal(t, mina.KindLegacy, out.Payload.Kind)
	require.Equal(t, tx.Amount, out.Payload.Legacy.Amount)
}
