// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signature

import (
	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/zkapp"
)

// WarningKind discriminates the non-fatal conditions InjectZkApp reports.
type WarningKind string

const (
	// WarnFeePayerKeyMismatch is emitted when the fee payer's public key
	// does not equal the group verifying key; the fee payer is left
	// untouched.
	WarnFeePayerKeyMismatch WarningKind = "FeePayerKeyMismatch"
	// WarnPartialCommitmentSkipped is emitted for a signed account update
	// whose use_full_commitment is false: the group only ever signs full
	// commitments, so there is nothing valid to inject there.
	WarnPartialCommitmentSkipped WarningKind = "PartialCommitmentSkipped"
	// WarnOverwrittenAuthorization is emitted whenever injection replaces a
	// non-empty prior authorization value.
	WarnOverwrittenAuthorization WarningKind = "OverwrittenAuthorization"
)

// Warning is one informational note produced by InjectZkApp. Injection
// never fails; warnings are the only way a caller learns something was
// skipped or overwritten.
type Warning struct {
	Kind WarningKind
	// Index is the account update's position in cmd.AccountUpdates, or -1
	// for a warning about the fee payer.
	Index int
}

// compressedKeysEqual compares two compressed public keys field-wise.
func compressedKeysEqual(a, b mina.CompressedPubKey) bool {
	return a.IsOdd == b.IsOdd && a.X.Equal(b.X)
}

// InjectZkApp writes a finished group signature's base58check encoding into
// every fee-payer and account-update authorization slot that is eligible to
// carry it: the fee payer iff its public key equals the group
// verifying key, and each signed account update whose public key equals the
// group verifying key and whose use_full_commitment is true. It never
// fails; every skip or overwrite is reported as a Warning instead.
func InjectZkApp(cmd *zkapp.Command, groupVK mina.CompressedPubKey, sig Sig) []Warning {
	var warnings []Warning
	encoded := sig.Base58()

	if compressedKeysEqual(cmd.FeePayer.Body.PublicKey, groupVK) {
		if cmd.FeePayer.Authorization != "" {
			warnings = append(warnings, Warning{Kind: WarnOverwrittenAuthorization, Index: -1})
		}
		cmd.FeePayer.Authorization = encoded
	} else {
		warnings = append(warnings, Warning{Kind: WarnFeePayerKeyMismatch, Index: -1})
	}

	for i := range cmd.AccountUpdates {
		u := &cmd.AccountUpdates[i]
		if !u.Body.AuthorizationKind.IsSigned {
			continue
		}
		if !compressedKeysEqual(u.Body.PublicKey, groupVK) {
			continue
		}
		if !u.Body.UseFullCommitment {
			warnings = append(warnings, Warning{Kind: WarnPartialCommitmentSkipped, Index: i})
			continue
		}
		if u.Authorization.Signature != "" {
			warnings = append(warnings, Warning{Kind: WarnOverwrittenAuthorization, Index: i})
		}
		u.Authorization.Signature = encoded
	}

	return warnings
}
