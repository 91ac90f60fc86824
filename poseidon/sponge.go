// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poseidon

import "github.com/luxfi/mina-frost/pallas"

// Sponge is an arithmetic (Poseidon) sponge over the Pallas base field
// with Mina's absorb/squeeze protocol: construct, Absorb any number of
// times, Squeeze any number of times.
type Sponge struct {
	p     *params
	state [stateWidth]pallas.Elt
	// absorbPos tracks how many rate lanes are currently pending so Absorb
	// knows when a permutation is due.
	absorbPos int
}

// NewSponge constructs a fresh sponge in the given variant with a zeroed
// state (the Mina convention; domain separation comes from absorbing
// param_to_field(prefix) as the first element, not from an initial IV).
func NewSponge(v Variant) *Sponge {
	s := &Sponge{p: getParams(v)}
	for i := range s.state {
		s.state[i] = pallas.NewBaseElt(0)
	}
	return s
}

func (s *Sponge) permute() {
	st := s.state
	for r := 0; r < s.p.rounds; r++ {
		for i := range st {
			st[i] = st[i].Add(s.p.ark[r][i])
		}
		for i := range st {
			st[i] = sbox(st[i])
		}
		var next [stateWidth]pallas.Elt
		for i := 0; i < stateWidth; i++ {
			acc := pallas.NewBaseElt(0)
			for j := 0; j < stateWidth; j++ {
				acc = acc.Add(s.p.mds[i][j].Mul(st[j]))
			}
			next[i] = acc
		}
		st = next
	}
	s.state = st
}

// sbox applies the degree-5 S-box x^5, Poseidon's usual non-linear layer.
func sbox(x pallas.Elt) pallas.Elt {
	x2 := x.Mul(x)
	x4 := x2.Mul(x2)
	return x4.Mul(x)
}

// Absorb feeds field elements into the sponge's rate lanes, running the
// permutation whenever a lane fills.
func (s *Sponge) Absorb(elts []pallas.Elt) {
	for _, e := range elts {
		s.state[s.absorbPos] = s.state[s.absorbPos].Add(e)
		s.absorbPos++
		if s.absorbPos == rate {
			s.permute()
			s.absorbPos = 0
		}
	}
}

// Squeeze runs one permutation over whatever has been absorbed so far and
// returns the first rate lane. Every call permutes, so each squeeze
// (including the mid-sequence one in HashWithPrefix) advances the state.
func (s *Sponge) Squeeze() pallas.Elt {
	s.permute()
	s.absorbPos = 0
	return s.state[0]
}
