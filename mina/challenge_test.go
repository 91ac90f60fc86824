// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mina

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChallengeMessageRoundTrip(t *testing.T) {
	cm := ChallengeMessage{Network: Mainnet, IsLegacy: false, ROIBytes: []byte("hello")}
	b := cm.Bytes()
	got, err := ChallengeMessageFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, cm, got)
}

func TestChallengeMessageRejectsBadVersion(t *testing.T) {
	cm := ChallengeMessage{Network: Testnet, IsLegacy: true, ROIBytes: []byte("x")}
	b := cm.Bytes()
	b[0] = 0x02
	_, err := ChallengeMessageFromBytes(b)
	require.ErrorIs(t, err, ErrDeSerialization)
}

func TestChallengeMessageRejectsBadNetwork(t *testing.T) {
	cm := ChallengeMessage{Network: Testnet, IsLegacy: true, ROIBytes: []byte("x")}
	b := cm.Bytes()
	b[1] = 0x09
	_, err := ChallengeMessageFromBytes(b)
	require.ErrorIs(t, err, ErrDeSerialization)
}

func TestDecodeOrOpaqueFallsBack(t *testing.T) {
	cm := DecodeOrOpaque([]byte("not a challenge message"))
	require.Equal(t, Testnet, cm.Network)
	require.True(t, cm.IsLegacy)
	require.Equal(t, []byte("not a challenge message"), cm.ROIBytes)
}
