// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pallas

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	for i := uint64(0); i < 32; i++ {
		e := NewScalarElt(i)
		b := e.Bytes()
		got, err := NewScalarFromBytes(b)
		require.NoError(t, err)
		require.True(t, e.Equal(got))
	}
}

func TestScalarLittleEndian(t *testing.T) {
	var one [32]byte
	one[0] = 0x01
	got, err := NewScalarFromBytes(one)
	require.NoError(t, err)
	require.True(t, got.Equal(NewScalarElt(1)))

	var twoFiftySix [32]byte
	twoFiftySix[1] = 0x01
	got, err = NewScalarFromBytes(twoFiftySix)
	require.NoError(t, err)
	require.True(t, got.Equal(NewScalarElt(256)))
}

func TestScalarRandomRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		e, err := RandomScalar(rand.Reader)
		require.NoError(t, err)
		got, err := NewScalarFromBytes(e.Bytes())
		require.NoError(t, err)
		require.True(t, e.Equal(got))
	}
}

func TestInvertZeroFails(t *testing.T) {
	_, err := NewScalarElt(0).Invert()
	require.ErrorIs(t, err, ErrInvalidZeroScalar)
}

func TestMalformedScalarRejected(t *testing.T) {
	var tooBig [32]byte
	for i := range tooBig {
		tooBig[i] = 0xff
	}
	_, err := NewScalarFromBytes(tooBig)
	require.ErrorIs(t, err, ErrMalformedScalar)
}
