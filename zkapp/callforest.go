// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkapp

import "errors"

// ErrInvalidCallDepth is returned when a flattened account-update list's
// call_depth sequence cannot correspond to any call forest.
var ErrInvalidCallDepth = errors.New("zkapp: invalid call_depth sequence")

// CallTree is one node of a call forest: an account update plus the forest
// of updates nested immediately beneath it.
type CallTree struct {
	AccountUpdate AccountUpdate
	Children      CallForest
}

// CallForest is an ordered list of call trees, the structure the
// call-forest hash recurses over.
type CallForest []CallTree

// ValidateCallDepths enforces the flattened representation's only
// structural invariant: the first update starts at depth 0, and depth can
// only ever increase by one level at a time (entering exactly one more
// nested call) though it may decrease by any amount (popping back up to
// any ancestor). A stricter no-decrease rule would wrongly reject a
// well-formed sequence like [0,1,0,1] — two sibling subtrees, each one
// level deep — which BuildCallForest handles fine.
func ValidateCallDepths(depths []uint32) error {
	if len(depths) == 0 {
		return nil
	}
	if depths[0] != 0 {
		return ErrInvalidCallDepth
	}
	for i := 1; i < len(depths); i++ {
		if depths[i] > depths[i-1]+1 {
			return ErrInvalidCallDepth
		}
	}
	return nil
}

// BuildCallForest reconstructs the tree structure implied by a flattened,
// depth-annotated account-update list. Callers must validate depths first
// with ValidateCallDepths.
func BuildCallForest(updates []AccountUpdate) CallForest {
	forest, rest := buildForestAt(updates, 0)
	_ = rest
	return forest
}

// buildForestAt consumes updates at exactly the given depth, recursing into
// each update's children (updates immediately following at depth+1) until
// an update at a shallower depth, or the end of the list, is reached.
func buildForestAt(updates []AccountUpdate, depth uint32) (CallForest, []AccountUpdate) {
	var forest CallForest
	for len(updates) > 0 {
		u := updates[0]
		if u.Body.CallDepth < depth {
			break
		}
		if u.Body.CallDepth > depth {
			// Malformed input (should have been rejected by
			// ValidateCallDepths); treat as a jump into a child we didn't
			// expect by attaching it at the current node's depth instead of
			// panicking.
			u.Body.CallDepth = depth
		}
		updates = updates[1:]
		var children CallForest
		children, updates = buildForestAt(updates, depth+1)
		forest = append(forest, CallTree{AccountUpdate: u, Children: children})
	}
	return forest, updates
}
