// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roinput

import (
	"testing"

	"github.com/luxfi/mina-frost/pallas"
	"github.com/stretchr/testify/require"
)

func TestBitGroupLens(t *testing.T) {
	require.Equal(t, 1, BitGroup{Kind: KindBool}.BitLen())
	require.Equal(t, 32, BitGroup{Kind: KindU32}.BitLen())
	require.Equal(t, 64, BitGroup{Kind: KindU64}.BitLen())
	require.Equal(t, 24, BitGroup{Kind: KindBytes, Bytes: []byte{1, 2, 3}}.BitLen())
}

func TestPackToFieldsEmitsFieldsFirst(t *testing.T) {
	f := pallas.NewBaseElt(7)
	in := New().AppendU32(1).AppendField(f)
	out := in.PackToFields()
	require.True(t, out[0].Equal(f))
}

func TestPackToFieldsSingleSmallGroup(t *testing.T) {
	out := New().AppendU32(5).PackToFields()
	require.Len(t, out, 1)
	require.True(t, out[0].Equal(pallas.NewBaseElt(5)))
}

func TestPackToFieldsLSBFirst(t *testing.T) {
	// A bool true followed by u32 2 accumulates as bit 0 = 1, bit 2 = 1,
	// i.e. the value 1 + 2*2^1 = 5 once both land in one field.
	out := New().AppendBool(true).AppendU32(2).PackToFields()
	require.Len(t, out, 1)
	require.True(t, out[0].Equal(pallas.NewBaseElt(1+2*2)))
}

func TestPackToFieldsOverflowSplits(t *testing.T) {
	// 4 u64 groups are 256 bits: more than one 255-bit field can hold.
	in := New().AppendU64(1).AppendU64(2).AppendU64(3).AppendU64(4)
	out := in.PackToFields()
	require.Len(t, out, 2)
}

func TestPackBoolsToFieldsLegacyChunking(t *testing.T) {
	bits := make([]bool, 254)
	require.Len(t, PackBoolsToFieldsLegacy(bits), 1)

	bits = make([]bool, 255)
	require.Len(t, PackBoolsToFieldsLegacy(bits), 2)

	require.Len(t, PackBoolsToFieldsLegacy(nil), 1)
}

func TestLegacyBytesLayout(t *testing.T) {
	f := pallas.NewBaseElt(1)
	in := New().AppendField(f).AppendBool(true)
	b := in.LegacyBytes()
	// 32 bytes of field, then one byte holding the single bit.
	require.Len(t, b, 33)
	require.Equal(t, byte(1), b[0])
	require.Equal(t, byte(1), b[32])
}

func TestAppendPreservesOrder(t *testing.T) {
	a := New().AppendU32(1)
	b := New().AppendU32(2)
	combined := a.Append(b)
	require.Len(t, combined.Bits, 2)
	require.Equal(t, uint32(1), combined.Bits[0].U32)
	require.Equal(t, uint32(2), combined.Bits[1].U32)
}
