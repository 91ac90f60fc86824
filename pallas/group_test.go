// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pallas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentitySerializationFails(t *testing.T) {
	id := Identity()
	_, err := id.Bytes()
	require.ErrorIs(t, err, ErrInvalidIdentityElement)
}

func TestIdentityDeserializationFails(t *testing.T) {
	var zero [96]byte
	_, err := PointFromBytes(zero)
	require.ErrorIs(t, err, ErrInvalidIdentityElement)
}

func TestGeneratorRoundTrip(t *testing.T) {
	g := Generator()
	b, err := g.Bytes()
	require.NoError(t, err)
	got, err := PointFromBytes(b)
	require.NoError(t, err)
	gx, gy := g.Affine()
	kx, ky := got.Affine()
	require.Equal(t, 0, gx.Cmp(kx))
	require.Equal(t, 0, gy.Cmp(ky))
}

func TestScalarMulAdditive(t *testing.T) {
	g := Generator()
	two := g.Add(g)
	scaled := g.ScalarMul(NewScalarElt(2))
	tx, ty := two.Affine()
	sx, sy := scaled.Affine()
	require.Equal(t, 0, tx.Cmp(sx))
	require.Equal(t, 0, ty.Cmp(sy))
}

func TestNegationFlipsParity(t *testing.T) {
	g := Generator()
	n := g.Neg()
	require.NotEqual(t, g.YIsOdd(), n.YIsOdd())
}
