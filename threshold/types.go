// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package threshold coordinates FROST distributed key generation and
// threshold signing rounds across participants that exchange round
// packages out of band (a CLI writing/reading files, a relay script, or
// any other transport outside this package's scope). It holds no network
// or transport logic itself: it only tracks round state and tells a
// caller when a round is complete and what to do next.
package threshold

import (
	"errors"

	"github.com/luxfi/mina-frost/frost"
	"github.com/luxfi/mina-frost/mina"
)

// SessionStatus is the lifecycle state of a DKG or signing session.
type SessionStatus uint8

const (
	StatusPending SessionStatus = iota
	StatusRound1
	StatusRound2
	StatusComplete
	StatusFailed
	StatusExpired
)

// DKGSession tracks one distributed-key-generation run for a fixed set of
// participants.
type DKGSession struct {
	SessionID    [32]byte
	MinSigners   uint16
	MaxSigners   uint16
	Participants []frost.Identifier
	Status       SessionStatus

	// Round1Packages holds each participant's broadcast round-1 package,
	// keyed by its sender's identifier.
	Round1Packages map[string]frost.DKGRound1Package

	// Round2Outboxes holds each sender's batch of round-2 shares, one per
	// recipient, keyed by sender identifier then by recipient identifier.
	Round2Outboxes map[string]map[string]frost.SigningShare

	// PublicKeyViews holds each participant's own view of the combined
	// PublicKeyPackage, produced locally by DKGPart3, keyed by that
	// participant's identifier. Merged into Result once all are in.
	PublicKeyViews map[string]frost.PublicKeyPackage

	Result *frost.PublicKeyPackage

	CreatedAt uint64
	ExpiresAt uint64
}

// SigningSession tracks one threshold-signing run over a fixed message.
type SigningSession struct {
	SessionID    [32]byte
	Threshold    uint16
	GroupKey     frost.PublicKeyPackage
	Network      mina.NetworkId
	Message      []byte
	Participants []frost.Identifier
	Status       SessionStatus

	Commitments map[string]frost.SigningCommitments
	Shares      map[string]frost.SignatureShare

	Result *frost.Signature

	CreatedAt uint64
	ExpiresAt uint64
}

var (
	ErrSessionNotFound        = errors.New("threshold: session not found")
	ErrSessionExpired         = errors.New("threshold: session expired")
	ErrSessionNotReady        = errors.New("threshold: session not yet ready for this step")
	ErrSessionAlreadyComplete = errors.New("threshold: session already complete")
	ErrUnknownParticipant     = errors.New("threshold: identifier is not a participant in this session")
	ErrDuplicateSubmission    = errors.New("threshold: participant already submitted for this round")
	ErrInvalidThreshold       = errors.New("threshold: min_signers must be >= 2 and <= max_signers")
	ErrInvalidPartyCount      = errors.New("threshold: participant count must equal max_signers")
	ErrIncompleteRound        = errors.New("threshold: not all participants have submitted for this round")
)

// DefaultSessionExpiry is how long, in seconds, a session stays open after
// it is created; submissions do not extend it.
const DefaultSessionExpiry = 24 * 60 * 60
