// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mina

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/mina-frost/roinput"
)

// TxTag is the 3-bit transaction-kind tag carried in a LegacyTransaction.
type TxTag uint8

const (
	TagPayment    TxTag = 0 // 000
	TagDelegation TxTag = 1 // 001
)

func (t TxTag) bits() [3]bool {
	switch t {
	case TagPayment:
		return [3]bool{false, false, false}
	case TagDelegation:
		return [3]bool{false, false, true}
	default:
		panic("mina: unknown tx tag")
	}
}

// Memo is the fixed 34-byte memo layout: 0x01 || len || utf8 || zero-pad.
type Memo [34]byte

// NewMemo builds a Memo from a UTF-8 string, rejecting anything over 32
// source bytes.
func NewMemo(s string) (Memo, error) {
	var m Memo
	if len(s) > 32 {
		return m, ErrInvalidMemo
	}
	m[0] = 0x01
	m[1] = byte(len(s))
	copy(m[2:], s)
	return m, nil
}

// String recovers the original UTF-8 memo text using the stored length byte,
// not by trimming trailing zero bytes (naively trimming breaks memos that
// legitimately contain a trailing NUL byte).
func (m Memo) String() string {
	n := int(m[1])
	if n > 32 {
		n = 32
	}
	return string(m[2 : 2+n])
}

// LegacyTransaction is Mina's legacy payment/delegation transaction body.
type LegacyTransaction struct {
	FeePayer    CompressedPubKey
	Source      CompressedPubKey
	Receiver    CompressedPubKey
	Fee         uint64
	FeeToken    uint64
	Nonce       uint32
	ValidUntil  uint32
	Memo        Memo
	Tag         TxTag
	TokenID     uint64
	Amount      uint64
	TokenLocked bool
}

// ToROI encodes the transaction in the exact field order Mina's legacy
// signed-payload hash expects.
func (tx LegacyTransaction) ToROI() roinput.Input {
	in := roinput.New().
		AppendField(tx.FeePayer.X).
		AppendField(tx.Source.X).
		AppendField(tx.Receiver.X).
		AppendU64(tx.Fee).
		AppendU64(tx.FeeToken).
		AppendBool(tx.FeePayer.IsOdd).
		AppendU32(tx.Nonce).
		AppendU32(tx.ValidUntil).
		AppendBytes(tx.Memo[:])

	tagBits := tx.Tag.bits()
	// "3 tag bits (MSB to LSB of tag array)".
	in = in.AppendBool(tagBits[0]).AppendBool(tagBits[1]).AppendBool(tagBits[2])

	in = in.
		AppendBool(tx.Source.IsOdd).
		AppendBool(tx.Receiver.IsOdd).
		AppendU64(tx.TokenID).
		AppendU64(tx.Amount).
		AppendBool(tx.TokenLocked)

	return in
}

// legacyTxJSON mirrors LegacyTransaction's external JSON shape. Amount is a
// pointer so delegation transactions can omit it entirely.
type legacyTxJSON struct {
	FeePayer    string  `json:"feePayer"`
	Source      string  `json:"source"`
	Receiver    string  `json:"receiver"`
	Fee         uint64  `json:"fee"`
	FeeToken    uint64  `json:"feeToken"`
	Nonce       uint32  `json:"nonce"`
	ValidUntil  uint32  `json:"validUntil"`
	Memo        string  `json:"memo"`
	Tag         string  `json:"tag"`
	TokenID     uint64  `json:"tokenId"`
	Amount      *uint64 `json:"amount,omitempty"`
	TokenLocked bool    `json:"tokenLocked"`
}

func (t TxTag) String() string {
	switch t {
	case TagPayment:
		return "payment"
	case TagDelegation:
		return "delegation"
	default:
		return "unknown"
	}
}

func tagFromString(s string) (TxTag, error) {
	switch s {
	case "payment":
		return TagPayment, nil
	case "delegation":
		return TagDelegation, nil
	default:
		return 0, fmt.Errorf("%w: unknown tag %q", ErrDeSerialization, s)
	}
}

// MarshalJSON omits amount entirely for delegation transactions.
func (tx LegacyTransaction) MarshalJSON() ([]byte, error) {
	out := legacyTxJSON{
		FeePayer:    tx.FeePayer.Address(),
		Source:      tx.Source.Address(),
		Receiver:    tx.Receiver.Address(),
		Fee:         tx.Fee,
		FeeToken:    tx.FeeToken,
		Nonce:       tx.Nonce,
		ValidUntil:  tx.ValidUntil,
		Memo:        tx.Memo.String(),
		Tag:         tx.Tag.String(),
		TokenID:     tx.TokenID,
		TokenLocked: tx.TokenLocked,
	}
	if tx.Tag == TagPayment {
		amt := tx.Amount
		out.Amount = &amt
	}
	return json.Marshal(out)
}

// UnmarshalJSON requires delegation transactions to omit amount and payment
// transactions to include it.
func (tx *LegacyTransaction) UnmarshalJSON(data []byte) error {
	var in legacyTxJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrDeSerialization, err)
	}
	tag, err := tagFromString(in.Tag)
	if err != nil {
		return err
	}
	if tag == TagDelegation && in.Amount != nil {
		return fmt.Errorf("%w: delegation transaction must not include amount", ErrDeSerialization)
	}
	if tag == TagPayment && in.Amount == nil {
		return fmt.Errorf("%w: payment transaction requires amount", ErrDeSerialization)
	}
	feePayer, err := AddressToCompressedPubKey(in.FeePayer)
	if err != nil {
		return err
	}
	source, err := AddressToCompressedPubKey(in.Source)
	if err != nil {
		return err
	}
	receiver, err := AddressToCompressedPubKey(in.Receiver)
	if err != nil {
		return err
	}
	memo, err := NewMemo(in.Memo)
	if err != nil {
		return err
	}
	var amount uint64
	if in.Amount != nil {
		amount = *in.Amount
	}
	*tx = LegacyTransaction{
		FeePayer:    feePayer,
		Source:      source,
		Receiver:    receiver,
		Fee:         in.Fee,
		FeeToken:    in.FeeToken,
		Nonce:       in.Nonce,
		ValidUntil:  in.ValidUntil,
		Memo:        memo,
		Tag:         tag,
		TokenID:     in.TokenID,
		Amount:      amount,
		TokenLocked: in.TokenLocked,
	}
	return nil
}
