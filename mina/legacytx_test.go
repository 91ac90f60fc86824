// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mina

import (
	"encoding/json"
	"testing"

	"github.com/luxfi/mina-frost/pallas"
	"github.com/stretchr/testify/require"
)

func samplePubKey(seed uint64) CompressedPubKey {
	return CompressedPubKey{X: pallas.NewBaseElt(seed), IsOdd: seed%2 == 1}
}

func sampleTx(tag TxTag) LegacyTransaction {
	memo, _ := NewMemo("FROST payment test")
	tx := LegacyTransaction{
		FeePayer:   samplePubKey(1),
		Source:     samplePubKey(2),
		Receiver:   samplePubKey(3),
		Fee:        10_000_000,
		FeeToken:   1,
		Nonce:      0,
		ValidUntil: 4_294_967_295,
		Memo:       memo,
		Tag:        tag,
		TokenID:    1,
	}
	if tag == TagPayment {
		tx.Amount = 1_000_000_000
	}
	return tx
}

func TestMemoRoundTrip(t *testing.T) {
	m, err := NewMemo("FROST payment test")
	require.NoError(t, err)
	require.Equal(t, "FROST payment test", m.String())
	require.Equal(t, byte(0x01), m[0])
	require.Equal(t, byte(len("FROST payment test")), m[1])
}

func TestMemoTooLongRejected(t *testing.T) {
	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewMemo(string(long))
	require.ErrorIs(t, err, ErrInvalidMemo)
}

func TestDelegationJSONOmitsAmount(t *testing.T) {
	tx := sampleTx(TagDelegation)
	b, err := json.Marshal(tx)
	require.NoError(t, err)
	require.NotContains(t, string(b), `"amount"`)
}

func TestDelegationJSONRejectsAmount(t *testing.T) {
	payment := sampleTx(TagPayment)
	b, err := json.Marshal(payment)
	require.NoError(t, err)

	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &asMap))
	asMap["tag"] = "delegation"
	withAmount, err := json.Marshal(asMap)
	require.NoError(t, err)

	var decoded LegacyTransaction
	err = json.Unmarshal(withAmount, &decoded)
	require.Error(t, err)
}

func TestDelegationJSONWithoutAmountDecodesToZero(t *testing.T) {
	tx := sampleTx(TagDelegation)
	b, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded LegacyTransaction
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, uint64(0), decoded.Amount)
}

func TestPaymentJSONRequiresAmount(t *testing.T) {
	var asMap map[string]interface{}
	tx := sampleTx(TagPayment)
	b, _ := json.Marshal(tx)
	require.NoError(t, json.Unmarshal(b, &asMap))
	delete(asMap, "amount")
	withoutAmount, err := json.Marshal(asMap)
	require.NoError(t, err)

	var decoded LegacyTransaction
	err = json.Unmarshal(withoutAmount, &decoded)
	require.Error(t, err)
}

func TestToROIFieldOrder(t *testing.T) {
	tx := sampleTx(TagPayment)
	roi := tx.ToROI()
	require.Len(t, roi.Fields, 3)
	require.True(t, roi.Fields[0].Equal(tx.FeePayer.X))
	require.True(t, roi.Fields[1].Equal(tx.Source.X))
	require.True(t, roi.Fields[2].Equal(tx.Receiver.X))
}
