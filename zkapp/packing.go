// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkapp

import (
	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/pallas"
	"github.com/luxfi/mina-frost/poseidon"
	"github.com/luxfi/mina-frost/roinput"
)

// DummyHash is the verification-key-hash placeholder every unproved account
// update (including the synthesized fee-payer update) must carry, so the
// authorization-kind check in commit.go has a fixed value to compare
// against instead of a sentinel zero that could collide with a real hash.
func DummyHash() pallas.Elt {
	h, err := poseidon.HashNoInput("MinaZkappDummyVK")
	if err != nil {
		panic(err)
	}
	return h
}

// packOptionalField packs an Optional[pallas.Elt]: is_some followed by the
// field itself, or Fp::zero() when absent. Every Option encoding is fixed
// width regardless of Present so packed layout never depends on it.
func packOptionalField(o Optional[pallas.Elt]) roinput.Input {
	v := o.Value
	if !o.Present {
		v = pallas.NewBaseElt(0)
	}
	return roinput.New().AppendBool(o.Present).AppendField(v)
}

// packOptionalBool packs an Optional[bool]: is_some followed by the value,
// or false when absent.
func packOptionalBool(o Optional[bool]) roinput.Input {
	v := o.Value
	if !o.Present {
		v = false
	}
	return roinput.New().AppendBool(o.Present).AppendBool(v)
}

// packOptionalPubKey packs an Optional[CompressedPubKey]: is_some followed
// by the key's field/parity, or the all-zero key when absent.
func packOptionalPubKey(o Optional[mina.CompressedPubKey]) roinput.Input {
	v := o.Value
	if !o.Present {
		v = mina.CompressedPubKey{X: pallas.NewBaseElt(0), IsOdd: false}
	}
	return roinput.New().AppendBool(o.Present).AppendField(v.X).AppendBool(v.IsOdd)
}

// packOptionalURI packs an Optional[string] zkApp URI: is_some, followed
// by a single field hashing the URI's bytes under the "MinaZkappUri"
// prefix. Hashing (rather than packing the raw bytes) keeps the packed
// width independent of the URI's length, matching the fixed-width-Option
// rule every other Optional here follows.
func packOptionalURI(o Optional[string]) roinput.Input {
	v := ""
	if o.Present {
		v = o.Value
	}
	h, err := poseidon.HashWithPrefix("MinaZkappUri", roinput.New().AppendBytes([]byte(v)).PackToFields())
	if err != nil {
		panic(err)
	}
	return roinput.New().AppendBool(o.Present).AppendField(h)
}

// fixedTokenSymbolWidth is the byte width a token symbol is padded or
// truncated to before packing, so the packed width never depends on the
// symbol's actual length (real Mina token symbols are capped at 6 bytes).
const fixedTokenSymbolWidth = 6

// packOptionalTokenSymbol packs an Optional[string] token symbol as
// is_some followed by fixedTokenSymbolWidth raw bytes (zero-padded or
// truncated).
func packOptionalTokenSymbol(o Optional[string]) roinput.Input {
	var buf [fixedTokenSymbolWidth]byte
	if o.Present {
		copy(buf[:], o.Value)
	}
	return roinput.New().AppendBool(o.Present).AppendBytes(buf[:])
}

// packOptional packs any Packable Optional: is_some followed by either the
// value's own packing or the zero value's packing, so the two arms always
// emit the same shape.
func packOptional[T Packable](o Optional[T], zero T) roinput.Input {
	v := o.Value
	if !o.Present {
		v = zero
	}
	return roinput.New().AppendBool(o.Present).Append(v.Pack())
}

// Pack assembles an AccountUpdateBody's full Random Oracle Input in the
// field order the per-update hash requires.
func (b AccountUpdateBody) Pack() roinput.Input {
	in := roinput.New().
		AppendField(b.PublicKey.X).AppendBool(b.PublicKey.IsOdd).
		AppendField(b.TokenID)
	in = in.Append(b.Update.Pack())
	in = in.Append(b.BalanceChange.Pack())
	in = in.AppendBool(b.IncrementNonce)
	in = in.Append(packEventsOrActions(b.Events, "MinaZkappEventsEmpty", "MinaZkappEvents"))
	in = in.Append(packEventsOrActions(b.Actions, "MinaZkappActionsEmpty", "MinaZkappActions"))
	in = in.AppendField(b.CallData)
	in = in.AppendU32(b.CallDepth)
	in = in.Append(b.Preconditions.Pack())
	in = in.AppendBool(b.UseFullCommitment)
	in = in.AppendBool(b.ImplicitAccountCreationFee)
	in = in.Append(b.MayUseToken.Pack())
	in = in.Append(b.AuthorizationKind.Pack())
	return in
}

// packEventsOrActions folds an ordered list of field-element tuples into a
// single field via the standard Mina events/actions hash: the accumulator is
// seeded from hash_noinput(emptyPrefix), then the list is folded in reverse,
// each step computing hash_with_prefix(prefix, [acc, tuple_hash]). Events and
// Actions share this shape but never share a prefix, so the two fields can
// never collide. The result is re-wrapped as a one-field ROI so it slots
// into the body packing above.
func packEventsOrActions(list [][]pallas.Elt, emptyPrefix, prefix string) roinput.Input {
	return roinput.New().AppendField(hashEventList(list, emptyPrefix, prefix))
}

func hashEventList(list [][]pallas.Elt, emptyPrefix, prefix string) pallas.Elt {
	acc, err := poseidon.HashNoInput(emptyPrefix)
	if err != nil {
		panic(err)
	}
	for i := len(list) - 1; i >= 0; i-- {
		tupleHash, err := poseidon.HashWithPrefix("MinaZkappEvent", list[i])
		if err != nil {
			panic(err)
		}
		acc, err = poseidon.HashWithPrefix(prefix, []pallas.Elt{acc, tupleHash})
		if err != nil {
			panic(err)
		}
	}
	return acc
}
