// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkapp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCallDepthsAcceptsSiblingSubtrees(t *testing.T) {
	// Two sibling one-deep subtrees: a well-formed forest that a naive
	// "no decrease allowed" rule would incorrectly reject.
	require.NoError(t, ValidateCallDepths([]uint32{0, 1, 0, 1}))
}

func TestValidateCallDepthsRejectsBadFirstDepth(t *testing.T) {
	require.ErrorIs(t, ValidateCallDepths([]uint32{1}), ErrInvalidCallDepth)
}

func TestValidateCallDepthsRejectsSkippedDepth(t *testing.T) {
	require.ErrorIs(t, ValidateCallDepths([]uint32{0, 2}), ErrInvalidCallDepth)
}

func TestValidateCallDepthsAcceptsDeepThenShallow(t *testing.T) {
	require.NoError(t, ValidateCallDepths([]uint32{0, 1, 2, 1, 0, 1}))
}

func TestValidateCallDepthsEmpty(t *testing.T) {
	require.NoError(t, ValidateCallDepths(nil))
}

func TestBuildCallForestShape(t *testing.T) {
	mk := func(depth uint32) AccountUpdate {
		return AccountUpdate{Body: AccountUpdateBody{CallDepth: depth}}
	}
	updates := []AccountUpdate{mk(0), mk(1), mk(0), mk(1)}
	forest := BuildCallForest(updates)
	require.Len(t, forest, 2)
	require.Len(t, forest[0].Children, 1)
	require.Len(t, forest[1].Children, 1)
}
