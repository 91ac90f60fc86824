// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package frost

import (
	"io"

	"github.com/luxfi/mina-frost/pallas"
)

// evalPolynomial evaluates a degree-(len(coeffs)-1) polynomial with the given
// coefficients (coeffs[0] is the constant term) at x, via Horner's method.
func evalPolynomial(coeffs []pallas.Elt, x pallas.Elt) pallas.Elt {
	acc := pallas.NewScalarElt(0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}

func randomPolynomial(minSigners uint16, constantTerm pallas.Elt, rng io.Reader) ([]pallas.Elt, error) {
	coeffs := make([]pallas.Elt, minSigners)
	coeffs[0] = constantTerm
	for i := 1; i < int(minSigners); i++ {
		c, err := pallas.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	return coeffs, nil
}

func validateThreshold(minSigners, maxSigners uint16, ids []Identifier) error {
	if minSigners < 2 {
		return ErrInvalidMinSigners
	}
	if maxSigners < minSigners {
		return ErrInvalidMaxSigners
	}
	if len(ids) != int(maxSigners) {
		return ErrInvalidCoefficients
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			return ErrInvalidZeroScalar
		}
		k := idKey(id)
		if seen[k] {
			return ErrDuplicatedIdentifier
		}
		seen[k] = true
	}
	return nil
}

// TrustedDealerKeygen implements the trusted-dealer path: one party
// samples the group secret and a random polynomial, derives
// each participant's share and verifying share, and applies the
// key-generation negation exactly once before distributing key packages.
func TrustedDealerKeygen(minSigners, maxSigners uint16, ids []Identifier, rng io.Reader) (map[string]KeyPackage, PublicKeyPackage, error) {
	if err := validateThreshold(minSigners, maxSigners, ids); err != nil {
		return nil, PublicKeyPackage{}, err
	}

	secret, err := pallas.RandomNonZeroScalar(rng)
	if err != nil {
		return nil, PublicKeyPackage{}, err
	}
	coeffs, err := randomPolynomial(minSigners, secret, rng)
	if err != nil {
		return nil, PublicKeyPackage{}, err
	}

	groupVK := pallas.Generator().ScalarMul(secret)

	keyPkgs := make(map[string]KeyPackage, len(ids))
	vshares := make(map[string]VerifyingShare, len(ids))
	var finalVK VerifyingKey
	for _, id := range ids {
		share := evalPolynomial(coeffs, id)
		vshare := pallas.Generator().ScalarMul(share)
		share, vshare, finalVK = EvenYKeygenOutput(share, vshare, groupVK)
		vshares[idKey(id)] = vshare
		keyPkgs[idKey(id)] = KeyPackage{
			Identifier:     id,
			SigningShare:   share,
			VerifyingShare: vshare,
			VerifyingKey:   finalVK,
			MinSigners:     minSigners,
			MaxSigners:     maxSigners,
		}
	}
	return keyPkgs, PublicKeyPackage{VerifyingKey: finalVK, VerifyingShares: vshares}, nil
}

// DKGRound1Package is one participant's broadcast output from DKG part 1:
// Feldman commitments to their secret polynomial's coefficients, plus a
// Schnorr proof of knowledge of the constant term.
type DKGRound1Package struct {
	Identifier  Identifier
	Commitments []pallas.Point
	ProofR      pallas.Point
	ProofZ      pallas.Elt

	// Coeffs is this participant's own secret polynomial coefficients.
	// Every other field above is the broadcast, public half of a round-1
	// package; Coeffs is the private half the originating participant
	// alone must retain (e.g. persisted to a local file) until it runs
	// DKGPart2 — never transmitted to any other participant.
	Coeffs []pallas.Elt
}

// DKGPart1 begins distributed key generation: sample a secret polynomial,
// commit to its coefficients, and prove knowledge of the constant term
// (binding the proof to this participant's identifier so it cannot be
// replayed by another party).
func DKGPart1(id Identifier, minSigners uint16, rng io.Reader) (DKGRound1Package, error) {
	constantTerm, err := pallas.RandomNonZeroScalar(rng)
	if err != nil {
		return DKGRound1Package{}, err
	}
	coeffs, err := randomPolynomial(minSigners, constantTerm, rng)
	if err != nil {
		return DKGRound1Package{}, err
	}
	commitments := make([]pallas.Point, minSigners)
	for i, c := range coeffs {
		commitments[i] = pallas.Generator().ScalarMul(c)
	}

	k, err := pallas.RandomNonZeroScalar(rng)
	if err != nil {
		return DKGRound1Package{}, err
	}
	R := pallas.Generator().ScalarMul(k)
	idb := id.Bytes()
	Rb, err := R.Bytes()
	if err != nil {
		return DKGRound1Package{}, err
	}
	vkb, err := commitments[0].Bytes()
	if err != nil {
		return DKGRound1Package{}, err
	}
	c := HDKG(append(append(append([]byte{}, idb[:]...), Rb[:]...), vkb[:]...))
	z := k.Add(c.Mul(constantTerm))

	return DKGRound1Package{
		Identifier:  id,
		Commitments: commitments,
		ProofR:      R,
		ProofZ:      z,
		Coeffs:      coeffs,
	}, nil
}

// verifyDKGProof checks a DKGRound1Package's proof of knowledge of its
// constant-term coefficient.
func verifyDKGProof(pkg DKGRound1Package) bool {
	idb := pkg.Identifier.Bytes()
	Rb, err := pkg.ProofR.Bytes()
	if err != nil {
		return false
	}
	vkb, err := pkg.Commitments[0].Bytes()
	if err != nil {
		return false
	}
	c := HDKG(append(append(append([]byte{}, idb[:]...), Rb[:]...), vkb[:]...))
	lhs := pallas.Generator().ScalarMul(pkg.ProofZ)
	rhs := pkg.ProofR.Add(pkg.Commitments[0].ScalarMul(c))
	lx, ly := lhs.AffineElts()
	rx, ry := rhs.AffineElts()
	return lx.Equal(rx) && ly.Equal(ry)
}

// DKGPart2 consumes every participant's round-1 package (including the
// caller's own), verifies their proofs of knowledge, and produces the
// secret shares this participant owes every other participant.
func DKGPart2(self DKGRound1Package, allRound1 []DKGRound1Package, ids []Identifier) (map[string]pallas.Elt, error) {
	for _, pkg := range allRound1 {
		if !verifyDKGProof(pkg) {
			return nil, ErrDKGShareMismatch
		}
	}
	shares := make(map[string]pallas.Elt, len(ids))
	for _, id := range ids {
		shares[idKey(id)] = evalPolynomial(self.Coeffs, id)
	}
	return shares, nil
}

// DKGPart3 finishes distributed key generation: sum the shares this
// participant received from every other participant (and from itself),
// derive the verifying share and group verifying key from the combined
// commitments, verify the received shares against those commitments, then
// apply the key-generation negation.
func DKGPart3(self Identifier, receivedShares map[string]pallas.Elt, allRound1 []DKGRound1Package, minSigners, maxSigners uint16) (KeyPackage, PublicKeyPackage, error) {
	secretShare := pallas.NewScalarElt(0)
	for _, pkg := range allRound1 {
		s, ok := receivedShares[idKey(pkg.Identifier)]
		if !ok {
			return KeyPackage{}, PublicKeyPackage{}, ErrDKGPart2Incomplete
		}
		expected := evalCommitment(pkg.Commitments, self)
		got := pallas.Generator().ScalarMul(s)
		gx, gy := got.AffineElts()
		ex, ey := expected.AffineElts()
		if !gx.Equal(ex) || !gy.Equal(ey) {
			return KeyPackage{}, PublicKeyPackage{}, ErrDKGShareMismatch
		}
		secretShare = secretShare.Add(s)
	}

	groupVK := pallas.Identity()
	for _, pkg := range allRound1 {
		groupVK = groupVK.Add(pkg.Commitments[0])
	}

	verifyingShare := pallas.Generator().ScalarMul(secretShare)
	secretShare, verifyingShare, groupVK = EvenYKeygenOutput(secretShare, verifyingShare, groupVK)

	keyPkg := KeyPackage{
		Identifier:     self,
		SigningShare:   secretShare,
		VerifyingShare: verifyingShare,
		VerifyingKey:   groupVK,
		MinSigners:     minSigners,
		MaxSigners:     maxSigners,
	}
	pub := PublicKeyPackage{VerifyingKey: groupVK, VerifyingShares: map[string]VerifyingShare{idKey(self): verifyingShare}}
	return keyPkg, pub, nil
}

// MergePublicKeyPackages combines the per-participant public key package
// views DKGPart3 returns (each holding only its own verifying share) into
// the full PublicKeyPackage every signer and the coordinator need.
func MergePublicKeyPackages(pkgs []PublicKeyPackage) (PublicKeyPackage, error) {
	if len(pkgs) == 0 {
		return PublicKeyPackage{}, ErrDKGPart2Incomplete
	}
	merged := PublicKeyPackage{VerifyingKey: pkgs[0].VerifyingKey, VerifyingShares: map[string]VerifyingShare{}}
	for _, p := range pkgs {
		x, y := p.VerifyingKey.AffineElts()
		mx, my := merged.VerifyingKey.AffineElts()
		if !x.Equal(mx) || !y.Equal(my) {
			return PublicKeyPackage{}, ErrDKGShareMismatch
		}
		for k, v := range p.VerifyingShares {
			merged.VerifyingShares[k] = v
		}
	}
	return merged, nil
}

// evalCommitment evaluates a Feldman commitment list in the exponent:
// sum_j commitments[j] * x^j, matching evalPolynomial's coefficient form.
func evalCommitment(commitments []pallas.Point, x pallas.Elt) pallas.Point {
	acc := pallas.Identity()
	power := pallas.NewScalarElt(1)
	for _, c := range commitments {
		acc = acc.Add(c.ScalarMul(power))
		power = power.Mul(x)
	}
	return acc
}
