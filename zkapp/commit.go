// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkapp

import (
	"errors"

	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/pallas"
	"github.com/luxfi/mina-frost/poseidon"
	"github.com/luxfi/mina-frost/roinput"
)

// ErrBadAuthorizationKind is returned when an account update's
// authorization_kind is self-contradictory: claiming to be both proved and
// signed, or claiming not to be proved while carrying a verification-key
// hash other than DummyHash().
var ErrBadAuthorizationKind = errors.New("zkapp: account update has an invalid authorization kind")

func bodyPrefixForNetwork(n mina.NetworkId) string {
	switch n {
	case mina.Testnet:
		return "MinaZkappBodyT"
	case mina.Mainnet:
		return "MinaZkappBodyM"
	default:
		panic("zkapp: unknown network id")
	}
}

// assertAuthorizationKind enforces the invariant real account updates
// satisfy: an update cannot claim to be both proved and signed, and an
// update that is not proved must carry the dummy verification-key hash
// (a real hash there would silently pin a proof that will never be
// checked).
func assertAuthorizationKind(u AccountUpdate) error {
	k := u.Body.AuthorizationKind
	if k.IsSigned && k.IsProved {
		return ErrBadAuthorizationKind
	}
	if !k.IsProved && !k.VerificationKeyHash.Equal(DummyHash()) {
		return ErrBadAuthorizationKind
	}
	return nil
}

// hashAccountUpdate validates an update's authorization kind, packs its
// body to fields, then hashes under the network-specific body prefix.
func hashAccountUpdate(u AccountUpdate, network mina.NetworkId) (pallas.Elt, error) {
	if err := assertAuthorizationKind(u); err != nil {
		return pallas.Elt{}, err
	}
	fields := u.Body.Pack().PackToFields()
	return poseidon.HashWithPrefix(bodyPrefixForNetwork(network), fields)
}

// emptyStackHash is EMPTY_STACK_HASH, the call-forest recursion's seed.
func emptyStackHash() (pallas.Elt, error) {
	return poseidon.HashNoInputLong("MinaAcctUpdateStackFrameEmpty")
}

// callForestHash implements call_forest_hash: reverse-order traversal,
// per-node hash, and cons-chaining into a single running stack hash.
func callForestHash(forest CallForest, network mina.NetworkId) (pallas.Elt, error) {
	stackHash, err := emptyStackHash()
	if err != nil {
		return pallas.Elt{}, err
	}
	for i := len(forest) - 1; i >= 0; i-- {
		tree := forest[i]
		calls, err := callForestHash(tree.Children, network)
		if err != nil {
			return pallas.Elt{}, err
		}
		treeHash, err := hashAccountUpdate(tree.AccountUpdate, network)
		if err != nil {
			return pallas.Elt{}, err
		}
		nodeHash, err := poseidon.HashWithPrefix("MinaAcctUpdateNode", []pallas.Elt{treeHash, calls})
		if err != nil {
			return pallas.Elt{}, err
		}
		stackHash, err = poseidon.HashWithPrefix("MinaAcctUpdateCons", []pallas.Elt{nodeHash, stackHash})
		if err != nil {
			return pallas.Elt{}, err
		}
	}
	return stackHash, nil
}

// memoHash bit-packs a 34-byte memo (LSB-first per byte) into 254-bit-wide
// fields and hashes them under the memo prefix.
func memoHash(memo mina.Memo) (pallas.Elt, error) {
	var bits []bool
	for _, b := range memo {
		for i := 0; i < 8; i++ {
			bits = append(bits, (b>>uint(i))&1 == 1)
		}
	}
	fields := roinput.PackBoolsToFieldsLegacy(bits)
	return poseidon.HashWithPrefix("MinaZkappMemo", fields)
}

// feePayerHash hashes the fee payer under the same per-update routine as
// any other account update, via its synthesized AccountUpdate form.
func feePayerHash(fp FeePayer, network mina.NetworkId) (pallas.Elt, error) {
	return hashAccountUpdate(fp.AsAccountUpdate(), network)
}

// Commitment is the pair of scalars a zkApp command's signers actually
// sign over: AccountUpdatesCommitment excludes the fee payer and memo (used
// when use_full_commitment is false), FullCommitment folds them in.
type Commitment struct {
	AccountUpdatesCommitment pallas.Elt
	FullCommitment           pallas.Elt
}

// Commit computes a zkApp command's commitments: validate call_depth,
// build the call forest, hash it, hash the memo and fee payer, and fold
// everything into the final full commitment.
func Commit(cmd Command, network mina.NetworkId) (Commitment, error) {
	depths := make([]uint32, len(cmd.AccountUpdates))
	for i, u := range cmd.AccountUpdates {
		depths[i] = u.Body.CallDepth
	}
	if err := ValidateCallDepths(depths); err != nil {
		return Commitment{}, err
	}

	forest := BuildCallForest(cmd.AccountUpdates)
	accountUpdatesCommitment, err := callForestHash(forest, network)
	if err != nil {
		return Commitment{}, err
	}

	mh, err := memoHash(cmd.Memo)
	if err != nil {
		return Commitment{}, err
	}
	fph, err := feePayerHash(cmd.FeePayer, network)
	if err != nil {
		return Commitment{}, err
	}
	full, err := poseidon.HashWithPrefix("MinaAcctUpdateCons", []pallas.Elt{mh, fph, accountUpdatesCommitment})
	if err != nil {
		return Commitment{}, err
	}

	return Commitment{AccountUpdatesCommitment: accountUpdatesCommitment, FullCommitment: full}, nil
}
