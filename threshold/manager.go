// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package threshold

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"
	"time"

	log "github.com/luxfi/log"

	"github.com/luxfi/mina-frost/frost"
	"github.com/luxfi/mina-frost/mina"
)

// Manager coordinates DKG and signing sessions for a group of FROST
// participants. It holds no cryptographic secrets of its own — every
// cryptographic step (DKGPart1/2/3, nonce generation, Round2Sign,
// Aggregate) runs on the participant's side, in package frost; Manager
// only tracks which round packages have arrived and reports when a round
// is ready to advance.
type Manager struct {
	log log.Logger

	dkgSessions     map[[32]byte]*DKGSession
	signingSessions map[[32]byte]*SigningSession

	SessionExpiry time.Duration

	mu sync.RWMutex
}

// NewManager creates a Manager with the given logger, or a default
// info-level test logger if logger is nil.
func NewManager(logger log.Logger) *Manager {
	if logger == nil {
		logger = log.NewTestLogger(log.InfoLevel)
	}
	return &Manager{
		log:             logger,
		dkgSessions:     make(map[[32]byte]*DKGSession),
		signingSessions: make(map[[32]byte]*SigningSession),
		SessionExpiry:   DefaultSessionExpiry * time.Second,
	}
}

func idKey(id frost.Identifier) string {
	b := id.Bytes()
	return string(b[:])
}

func sessionID(seed []byte, now uint64) [32]byte {
	data := make([]byte, 0, len(seed)+8)
	data = append(data, seed...)
	var tb [8]byte
	binary.BigEndian.PutUint64(tb[:], now)
	data = append(data, tb[:]...)
	return sha256.Sum256(data)
}

// --- DKG ---

// StartDKG opens a new DKG session for the given participant set.
func (m *Manager) StartDKG(minSigners, maxSigners uint16, participants []frost.Identifier, now uint64) ([32]byte, error) {
	if minSigners < 2 || minSigners > maxSigners {
		return [32]byte{}, ErrInvalidThreshold
	}
	if len(participants) != int(maxSigners) {
		return [32]byte{}, ErrInvalidPartyCount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seed := make([]byte, 0, len(participants)*32)
	for _, id := range participants {
		b := id.Bytes()
		seed = append(seed, b[:]...)
	}
	id := sessionID(seed, now)

	m.dkgSessions[id] = &DKGSession{
		SessionID:      id,
		MinSigners:     minSigners,
		MaxSigners:     maxSigners,
		Participants:   participants,
		Status:         StatusRound1,
		Round1Packages: make(map[string]frost.DKGRound1Package),
		Round2Outboxes: make(map[string]map[string]frost.SigningShare),
		PublicKeyViews: make(map[string]frost.PublicKeyPackage),
		CreatedAt:      now,
		ExpiresAt:      now + uint64(m.SessionExpiry.Seconds()),
	}

	m.log.Info("dkg session opened", "session", id, "min_signers", minSigners, "max_signers", maxSigners)
	return id, nil
}

func (m *Manager) dkgSession(id [32]byte, now uint64) (*DKGSession, error) {
	s, ok := m.dkgSessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if now > s.ExpiresAt {
		s.Status = StatusFailed
		return nil, ErrSessionExpired
	}
	return s, nil
}

func mustBeParticipant(id frost.Identifier, participants []frost.Identifier) error {
	for _, p := range participants {
		if p.Equal(id) {
			return nil
		}
	}
	return ErrUnknownParticipant
}

// SubmitDKGRound1 records a participant's broadcast round-1 package.
func (m *Manager) SubmitDKGRound1(sid [32]byte, from frost.Identifier, pkg frost.DKGRound1Package, now uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.dkgSession(sid, now)
	if err != nil {
		return err
	}
	if s.Status != StatusRound1 {
		return ErrSessionNotReady
	}
	if err := mustBeParticipant(from, s.Participants); err != nil {
		return err
	}
	key := idKey(from)
	if _, exists := s.Round1Packages[key]; exists {
		return ErrDuplicateSubmission
	}
	s.Round1Packages[key] = pkg

	if len(s.Round1Packages) == len(s.Participants) {
		s.Status = StatusRound2
		m.log.Info("dkg round1 complete", "session", sid)
	}
	return nil
}

// Round1Packages returns every participant's round-1 package, in the
// order StartDKG's participant list was given, once the round is
// complete.
func (m *Manager) Round1Packages(sid [32]byte, now uint64) ([]frost.DKGRound1Package, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, err := m.dkgSession(sid, now)
	if err != nil {
		return nil, err
	}
	if s.Status == StatusRound1 {
		return nil, ErrIncompleteRound
	}
	out := make([]frost.DKGRound1Package, 0, len(s.Participants))
	for _, id := range s.Participants {
		out = append(out, s.Round1Packages[idKey(id)])
	}
	return out, nil
}

// SubmitDKGRound2 records one participant's batch of round-2 shares, one
// per recipient, keyed by recipient identifier byte string.
func (m *Manager) SubmitDKGRound2(sid [32]byte, from frost.Identifier, shares map[string]frost.SigningShare, now uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.dkgSession(sid, now)
	if err != nil {
		return err
	}
	if s.Status != StatusRound2 {
		return ErrSessionNotReady
	}
	if err := mustBeParticipant(from, s.Participants); err != nil {
		return err
	}
	key := idKey(from)
	if _, exists := s.Round2Outboxes[key]; exists {
		return ErrDuplicateSubmission
	}
	s.Round2Outboxes[key] = shares

	if len(s.Round2Outboxes) == len(s.Participants) {
		m.log.Info("dkg round2 complete", "session", sid)
	}
	return nil
}

// Round2InboxFor collects the share every participant (including recipient
// itself) routed to recipient, once every participant has submitted their
// round-2 outbox. DKGPart3 expects one received share per entry in
// allRound1, including the recipient's own self-addressed share.
func (m *Manager) Round2InboxFor(sid [32]byte, recipient frost.Identifier, now uint64) (map[string]frost.SigningShare, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, err := m.dkgSession(sid, now)
	if err != nil {
		return nil, err
	}
	if len(s.Round2Outboxes) != len(s.Participants) {
		return nil, ErrIncompleteRound
	}

	rkey := idKey(recipient)
	inbox := make(map[string]frost.SigningShare, len(s.Participants))
	for senderKey, outbox := range s.Round2Outboxes {
		share, ok := outbox[rkey]
		if !ok {
			return nil, ErrIncompleteRound
		}
		inbox[senderKey] = share
	}
	return inbox, nil
}

// SubmitDKGResult records one participant's own view of the combined
// PublicKeyPackage (from DKGPart3). Once every participant has submitted
// a matching view, the session completes and MergePublicKeyPackages'
// result is available from DKGResult.
func (m *Manager) SubmitDKGResult(sid [32]byte, from frost.Identifier, view frost.PublicKeyPackage, now uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.dkgSession(sid, now)
	if err != nil {
		return err
	}
	if s.Status == StatusComplete {
		return ErrSessionAlreadyComplete
	}
	if err := mustBeParticipant(from, s.Participants); err != nil {
		return err
	}
	s.PublicKeyViews[idKey(from)] = view

	if len(s.PublicKeyViews) != len(s.Participants) {
		return nil
	}

	views := make([]frost.PublicKeyPackage, 0, len(s.Participants))
	for _, id := range s.Participants {
		views = append(views, s.PublicKeyViews[idKey(id)])
	}
	merged, err := frost.MergePublicKeyPackages(views)
	if err != nil {
		s.Status = StatusFailed
		return err
	}
	s.Result = &merged
	s.Status = StatusComplete
	m.log.Info("dkg session complete", "session", sid)
	return nil
}

// DKGResult returns a finished DKG session's combined PublicKeyPackage.
func (m *Manager) DKGResult(sid [32]byte) (*frost.PublicKeyPackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.dkgSessions[sid]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.Status != StatusComplete {
		return nil, ErrSessionNotReady
	}
	return s.Result, nil
}

// --- Signing ---

// StartSigning opens a new signing session for the given message and
// participant subset (which must be at least pub's threshold).
func (m *Manager) StartSigning(pub frost.PublicKeyPackage, network mina.NetworkId, message []byte, participants []frost.Identifier, now uint64) ([32]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seed := append([]byte{}, message...)
	for _, id := range participants {
		b := id.Bytes()
		seed = append(seed, b[:]...)
	}
	id := sessionID(seed, now)

	m.signingSessions[id] = &SigningSession{
		SessionID:    id,
		GroupKey:     pub,
		Network:      network,
		Message:      append([]byte{}, message...),
		Participants: participants,
		Status:       StatusRound1,
		Commitments:  make(map[string]frost.SigningCommitments),
		Shares:       make(map[string]frost.SignatureShare),
		CreatedAt:    now,
		ExpiresAt:    now + uint64(m.SessionExpiry.Seconds()),
	}

	m.log.Info("signing session opened", "session", id, "participants", len(participants))
	return id, nil
}

func (m *Manager) signingSession(id [32]byte, now uint64) (*SigningSession, error) {
	s, ok := m.signingSessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if now > s.ExpiresAt {
		s.Status = StatusFailed
		return nil, ErrSessionExpired
	}
	return s, nil
}

// SubmitCommitment records one participant's round-1 signing commitments.
func (m *Manager) SubmitCommitment(sid [32]byte, from frost.Identifier, c frost.SigningCommitments, now uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.signingSession(sid, now)
	if err != nil {
		return err
	}
	if s.Status != StatusRound1 {
		return ErrSessionNotReady
	}
	if err := mustBeParticipant(from, s.Participants); err != nil {
		return err
	}
	key := idKey(from)
	if _, exists := s.Commitments[key]; exists {
		return ErrDuplicateSubmission
	}
	s.Commitments[key] = c

	if len(s.Commitments) == len(s.Participants) {
		s.Status = StatusRound2
		m.log.Info("signing round1 complete", "session", sid)
	}
	return nil
}

// SigningPackage assembles the SigningPackage every participant needs to
// compute its round-2 share, once every commitment has arrived.
func (m *Manager) SigningPackage(sid [32]byte, now uint64) (frost.SigningPackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, err := m.signingSession(sid, now)
	if err != nil {
		return frost.SigningPackage{}, err
	}
	if s.Status == StatusRound1 {
		return frost.SigningPackage{}, ErrIncompleteRound
	}
	return frost.SigningPackage{
		Commitments: s.Commitments,
		Message:     s.Message,
	}, nil
}

// SubmitShare records one participant's round-2 signature share. Once
// every participant's share has arrived, the session completes and the
// aggregated Signature is available from SigningResult.
func (m *Manager) SubmitShare(sid [32]byte, from frost.Identifier, share frost.SignatureShare, now uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.signingSession(sid, now)
	if err != nil {
		return err
	}
	if s.Status == StatusComplete {
		return ErrSessionAlreadyComplete
	}
	if err := mustBeParticipant(from, s.Participants); err != nil {
		return err
	}
	key := idKey(from)
	if _, exists := s.Shares[key]; exists {
		return ErrDuplicateSubmission
	}
	s.Shares[key] = share

	if len(s.Shares) != len(s.Participants) {
		return nil
	}

	sp := frost.SigningPackage{Commitments: s.Commitments, Message: s.Message}
	sig, err := frost.Aggregate(sp, s.Shares, s.GroupKey)
	if err != nil {
		s.Status = StatusFailed
		m.log.Error("signing aggregate failed", "session", sid, "err", err)
		return err
	}
	s.Result = &sig
	s.Status = StatusComplete
	m.log.Info("signing session complete", "session", sid)
	return nil
}

// SigningResult returns a finished signing session's aggregated
// Signature.
func (m *Manager) SigningResult(sid [32]byte) (*frost.Signature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.signingSessions[sid]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.Status != StatusComplete {
		return nil, ErrSessionNotReady
	}
	return s.Result, nil
}
