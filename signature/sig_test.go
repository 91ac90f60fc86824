// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/mina-frost/pallas"
)

func sampleSig() Sig {
	return Sig{Field: pallas.NewBaseElt(12345), Scalar: pallas.NewScalarElt(67890)}
}

func TestSigBase58RoundTrip(t *testing.T) {
	s := sampleSig()
	encoded := s.Base58()
	decoded, err := FromBase58(encoded)
	require.NoError(t, err)
	require.True(t, decoded.Field.Equal(s.Field))
	require.True(t, decoded.Scalar.Equal(s.Scalar))
}

func TestSigBase58RejectsBadChecksum(t *testing.T) {
	s := sampleSig()
	encoded := s.Base58()
	tampered := encoded[:len(encoded)-1] + "9"
	if tampered == encoded {
		tampered = encoded[:len(encoded)-1] + "8"
	}
	_, err := FromBase58(tampered)
	require.Error(t, err)
}

func TestSigJSONRoundTrip(t *testing.T) {
	s := sampleSig()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	require.Contains(t, string(b), `"base58"`)
	require.Contains(t, string(b), `"field":"12345"`)
	require.Contains(t, string(b), `"scalar":"67890"`)

	var out Sig
	require.NoError(t, json.Unmarshal(b, &out))
	require.True(t, out.Field.Equal(s.Field))
	require.True(t, out.Scalar.Equal(s.Scalar))
}

func TestSigJSONDecimalOnlyDecode(t *testing.T) {
	var out Sig
	require.NoError(t, json.Unmarshal([]byte(`{"field":"12345","scalar":"67890"}`), &out))
	require.True(t, out.Field.Equal(sampleSig().Field))
	require.True(t, out.Scalar.Equal(sampleSig().Scalar))
}

func TestSigJSONRejectsBadDecimal(t *testing.T) {
	var out Sig
	require.Error(t, json.Unmarshal([]byte(`{"field":"not a number","scalar":"1"}`), &out))
}

func TestSigBytesLayout(t *testing.T) {
	s := sampleSig()
	b := s.Bytes()
	require.Len(t, b, 65)
	require.Equal(t, byte(0x01), b[0])
}
