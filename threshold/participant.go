// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package threshold

import (
	"crypto/rand"
	"io"
	"sync"

	log "github.com/luxfi/log"

	"github.com/luxfi/mina-frost/frost"
)

// Participant wraps the local cryptographic half of the DKG and signing
// protocols for one identifier: everything a Manager never sees because it
// depends on a secret the participant alone holds. A Manager session only
// ever receives this type's outputs (round-1 packages, round-2 shares,
// signing commitments, signature shares); it never receives the secrets
// that produced them.
type Participant struct {
	ID  frost.Identifier
	log log.Logger

	rng io.Reader

	mu          sync.Mutex
	dkgSecret   *frost.DKGRound1Package
	keyPackage  *frost.KeyPackage
	pendingNonc map[[32]byte]frost.SigningNonces
}

// NewParticipant creates a Participant for identifier id, using rng for
// all randomness (crypto/rand.Reader if nil).
func NewParticipant(id frost.Identifier, logger log.Logger, rng io.Reader) *Participant {
	if logger == nil {
		logger = log.NewTestLogger(log.InfoLevel)
	}
	if rng == nil {
		rng = rand.Reader
	}
	return &Participant{
		ID:          id,
		log:         logger,
		rng:         rng,
		pendingNonc: make(map[[32]byte]frost.SigningNonces),
	}
}

// BeginDKG runs DKGPart1 locally and returns the round-1 package to
// broadcast via Manager.SubmitDKGRound1.
func (p *Participant) BeginDKG(minSigners uint16) (frost.DKGRound1Package, error) {
	pkg, err := frost.DKGPart1(p.ID, minSigners, p.rng)
	if err != nil {
		return frost.DKGRound1Package{}, err
	}
	p.mu.Lock()
	p.dkgSecret = &pkg
	p.mu.Unlock()
	p.log.Info("dkg round1 generated", "participant", p.ID)
	return pkg, nil
}

// ContinueDKG runs DKGPart2 against every participant's round-1 packages
// and returns the per-recipient shares to submit via
// Manager.SubmitDKGRound2.
func (p *Participant) ContinueDKG(allRound1 []frost.DKGRound1Package, participants []frost.Identifier) (map[string]frost.SigningShare, error) {
	p.mu.Lock()
	self := p.dkgSecret
	p.mu.Unlock()
	if self == nil {
		return nil, ErrSessionNotReady
	}
	return frost.DKGPart2(*self, allRound1, participants)
}

// FinishDKG runs DKGPart3 against this participant's received round-2
// inbox and returns its own KeyPackage and its view of the
// PublicKeyPackage, the latter submitted via Manager.SubmitDKGResult.
func (p *Participant) FinishDKG(inbox map[string]frost.SigningShare, allRound1 []frost.DKGRound1Package, minSigners, maxSigners uint16) (frost.KeyPackage, frost.PublicKeyPackage, error) {
	kp, pub, err := frost.DKGPart3(p.ID, inbox, allRound1, minSigners, maxSigners)
	if err != nil {
		return frost.KeyPackage{}, frost.PublicKeyPackage{}, err
	}
	p.mu.Lock()
	p.keyPackage = &kp
	p.mu.Unlock()
	p.log.Info("dkg complete", "participant", p.ID)
	return kp, pub, nil
}

// BeginSigning generates fresh signing nonces, stashes them
// keyed by a caller-chosen session id so they survive until Round2 runs,
// and returns the commitments to submit via Manager.SubmitCommitment.
func (p *Participant) BeginSigning(sessionID [32]byte) (frost.SigningCommitments, error) {
	nonces, commitments, err := frost.NewSigningNonces(p.rng)
	if err != nil {
		return frost.SigningCommitments{}, err
	}
	p.mu.Lock()
	p.pendingNonc[sessionID] = nonces
	p.mu.Unlock()
	return commitments, nil
}

// ContinueSigning computes this participant's signature share once the
// Manager reports the signing package is ready; sessionID must match the
// one passed to BeginSigning. The stashed nonces are consumed (a second
// call with the same sessionID fails).
func (p *Participant) ContinueSigning(sessionID [32]byte, keyPkg frost.KeyPackage, sp frost.SigningPackage) (frost.SignatureShare, error) {
	p.mu.Lock()
	nonces, ok := p.pendingNonc[sessionID]
	if ok {
		delete(p.pendingNonc, sessionID)
	}
	p.mu.Unlock()
	if !ok {
		return frost.SignatureShare{}, ErrSessionNotReady
	}
	return frost.Round2Sign(keyPkg, &nonces, sp)
}
