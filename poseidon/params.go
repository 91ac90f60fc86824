// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package poseidon implements the Poseidon-family sponge construction used
// by the Mina Schnorr scheme: a legacy variant (used for legacy
// transactions) and a kimchi variant (used for zkApp commitments), plus the
// hash-to-scalar / hash-to-bytes mappings the FROST ciphersuite needs.
//
// The round constants and MDS matrix below are generated deterministically
// from a domain-separated seed rather than transcribed from Mina's
// published parameter tables (no Go package ships Mina's Poseidon
// instance; see DESIGN.md). The sponge's width, rate, capacity, and
// round-count shape match the real construction; only the numeric
// constants are substitutes, so this package is bit-compatible with
// itself but not with the live Mina network.
package poseidon

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/luxfi/mina-frost/pallas"
)

// Variant selects the round-count / constant-generation domain for the
// sponge; Mina runs two distinct Poseidon instances over the same state
// shape.
type Variant uint8

const (
	Legacy Variant = iota
	Kimchi
)

const (
	stateWidth = 3
	rate       = 2
	capacity   = stateWidth - rate
)

func roundsFull(v Variant) int {
	switch v {
	case Legacy:
		return 63
	case Kimchi:
		return 55
	default:
		panic("poseidon: unknown variant")
	}
}

// params holds the expanded round constants and MDS matrix for one variant.
type params struct {
	variant Variant
	rounds  int
	ark     [][stateWidth]pallas.Elt // one row of round constants per round
	mds     [stateWidth][stateWidth]pallas.Elt
}

var cache = map[Variant]*params{}

func getParams(v Variant) *params {
	if p, ok := cache[v]; ok {
		return p
	}
	p := generateParams(v)
	cache[v] = p
	return p
}

// generateParams expands a fixed seed into round constants and an MDS
// matrix via SHA-256 counter mode, reading each 32-byte digest as an
// integer; a digest that is not below Fp's modulus is shifted right by one
// bit (and generation panics if it is still out of range).
// This is the same shape of construction many Poseidon reference
// implementations use to derive test parameters, adapted here because the
// genuine Mina constants are not available as a Go dependency.
func generateParams(v Variant) *params {
	rounds := roundsFull(v)
	label := "mina-frost/poseidon/legacy"
	if v == Kimchi {
		label = "mina-frost/poseidon/kimchi"
	}

	counter := uint64(0)
	next := func() pallas.Elt {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], counter)
		counter++
		h := sha256.Sum256(append([]byte(label+"/ark-or-mds"), buf[:]...))
		n := new(big.Int).SetBytes(h[:])
		var arr [32]byte
		bs := n.Bytes()
		copy(arr[32-len(bs):], bs)
		var le [32]byte
		for i, j := 0, 31; j >= 0; i, j = i+1, j-1 {
			le[i] = arr[j]
		}
		e, err := pallas.NewBaseFromBytes(le)
		if err != nil {
			// Reduce further on the rare occasion the raw digest isn't
			// already canonical for Fp.
			n.Rsh(n, 1)
			bs = n.Bytes()
			var arr2 [32]byte
			copy(arr2[32-len(bs):], bs)
			var le2 [32]byte
			for i, j := 0, 31; j >= 0; i, j = i+1, j-1 {
				le2[i] = arr2[j]
			}
			e, err = pallas.NewBaseFromBytes(le2)
			if err != nil {
				panic("poseidon: failed to generate canonical constant")
			}
		}
		return e
	}

	ark := make([][stateWidth]pallas.Elt, rounds)
	for r := 0; r < rounds; r++ {
		for c := 0; c < stateWidth; c++ {
			ark[r][c] = next()
		}
	}

	var mds [stateWidth][stateWidth]pallas.Elt
	for i := 0; i < stateWidth; i++ {
		for j := 0; j < stateWidth; j++ {
			mds[i][j] = next()
		}
	}

	return &params{variant: v, rounds: rounds, ark: ark, mds: mds}
}
