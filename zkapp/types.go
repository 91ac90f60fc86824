// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package zkapp implements Mina's zkApp command structure, its packing into
// Random Oracle Input form, and the call-forest commitment construction
// that produces the scalar a FROST signature actually signs.
package zkapp

import (
	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/pallas"
	"github.com/luxfi/mina-frost/roinput"
)

// Packable is implemented by every type that contributes to an account
// update's Random Oracle Input. Every Option<T> in the Mina schema must
// pair a "some" packing with a deterministic "empty" packing so the packed
// width never depends on Some/None; a width that varies with presence
// silently breaks commitment interoperability.
type Packable interface {
	Pack() roinput.Input
}

// RangeCondition is a closed interval precondition over a comparable value.
type RangeCondition[T any] struct {
	Lower T
	Upper T
}

// U32/U64 packers for RangeCondition instantiations used below.
func packU32Range(r RangeCondition[uint32]) roinput.Input {
	return roinput.New().AppendU32(r.Lower).AppendU32(r.Upper)
}

func packU64Range(r RangeCondition[uint64]) roinput.Input {
	return roinput.New().AppendU64(r.Lower).AppendU64(r.Upper)
}

// Optional wraps a value that may be absent; Pack always emits is_some
// followed by either the value's packing or its type's empty packing.
type Optional[T any] struct {
	Present bool
	Value   T
}

func None[T any]() Optional[T]    { return Optional[T]{} }
func Some[T any](v T) Optional[T] { return Optional[T]{Present: true, Value: v} }

// EpochLedger is the precondition over one epoch's staking ledger.
type EpochLedger struct {
	Hash          Optional[pallas.Elt]
	TotalCurrency RangeCondition[uint64]
}

func (e EpochLedger) Pack() roinput.Input {
	in := packOptionalField(e.Hash)
	return in.Append(packU64Range(e.TotalCurrency))
}

func emptyEpochLedger() EpochLedger {
	return EpochLedger{
		Hash:          None[pallas.Elt](),
		TotalCurrency: RangeCondition[uint64]{},
	}
}

// EpochData is the precondition over one epoch's seed and ledger.
type EpochData struct {
	Ledger          EpochLedger
	SeedHash        Optional[pallas.Elt]
	StartCheckpoint Optional[pallas.Elt]
	LockCheckpoint  Optional[pallas.Elt]
	EpochLength     RangeCondition[uint32]
}

func (e EpochData) Pack() roinput.Input {
	in := e.Ledger.Pack()
	in = in.Append(packOptionalField(e.SeedHash))
	in = in.Append(packOptionalField(e.StartCheckpoint))
	in = in.Append(packOptionalField(e.LockCheckpoint))
	return in.Append(packU32Range(e.EpochLength))
}

func emptyEpochData() EpochData {
	return EpochData{
		Ledger:          emptyEpochLedger(),
		SeedHash:        None[pallas.Elt](),
		StartCheckpoint: None[pallas.Elt](),
		LockCheckpoint:  None[pallas.Elt](),
		EpochLength:     RangeCondition[uint32]{},
	}
}

// NetworkPreconditions constrains the chain state the update executes
// against.
type NetworkPreconditions struct {
	SnarkedLedgerHash Optional[pallas.Elt]
	BlockchainLength  RangeCondition[uint32]
	MinWindowDensity  RangeCondition[uint32]
	TotalCurrency     RangeCondition[uint64]
	GlobalSlotSince   RangeCondition[uint32]
	StakingEpochData  EpochData
	NextEpochData     EpochData
}

func (n NetworkPreconditions) Pack() roinput.Input {
	in := packOptionalField(n.SnarkedLedgerHash)
	in = in.Append(packU32Range(n.BlockchainLength))
	in = in.Append(packU32Range(n.MinWindowDensity))
	in = in.Append(packU64Range(n.TotalCurrency))
	in = in.Append(packU32Range(n.GlobalSlotSince))
	in = in.Append(n.StakingEpochData.Pack())
	return in.Append(n.NextEpochData.Pack())
}

func EmptyNetworkPreconditions() NetworkPreconditions {
	return NetworkPreconditions{
		SnarkedLedgerHash: None[pallas.Elt](),
		StakingEpochData:  emptyEpochData(),
		NextEpochData:     emptyEpochData(),
	}
}

// AccountPreconditions constrains the account the update executes against.
type AccountPreconditions struct {
	Balance      RangeCondition[uint64]
	Nonce        RangeCondition[uint32]
	ReceiptChain Optional[pallas.Elt]
	Delegate     Optional[mina.CompressedPubKey]
	State        [8]Optional[pallas.Elt]
	ActionState  Optional[pallas.Elt]
	ProvedState  Optional[bool]
	IsNew        Optional[bool]
}

func (a AccountPreconditions) Pack() roinput.Input {
	in := packU64Range(a.Balance)
	in = in.Append(packU32Range(a.Nonce))
	in = in.Append(packOptionalField(a.ReceiptChain))
	in = in.Append(packOptionalPubKey(a.Delegate))
	for _, s := range a.State {
		in = in.Append(packOptionalField(s))
	}
	in = in.Append(packOptionalField(a.ActionState))
	in = in.Append(packOptionalBool(a.ProvedState))
	return in.Append(packOptionalBool(a.IsNew))
}

func EmptyAccountPreconditions() AccountPreconditions {
	return AccountPreconditions{
		ReceiptChain: None[pallas.Elt](),
		Delegate:     None[mina.CompressedPubKey](),
		ActionState:  None[pallas.Elt](),
		ProvedState:  None[bool](),
		IsNew:        None[bool](),
	}
}

// Preconditions bundles the network- and account-level preconditions.
type Preconditions struct {
	Network NetworkPreconditions
	Account AccountPreconditions
}

func (p Preconditions) Pack() roinput.Input {
	return p.Network.Pack().Append(p.Account.Pack())
}

// VerificationKeyData is the update's proposed new verification key, if
// any; Hash is the field committed into the body.
type VerificationKeyData struct {
	Hash pallas.Elt
}

func (v VerificationKeyData) Pack() roinput.Input {
	return roinput.New().AppendField(v.Hash)
}

// TimingData is the update's proposed new vesting schedule, if any.
type TimingData struct {
	InitialMinimumBalance uint64
	CliffTime             uint32
	CliffAmount           uint64
	VestingPeriod         uint32
	VestingIncrement      uint64
}

func (t TimingData) Pack() roinput.Input {
	return roinput.New().
		AppendU64(t.InitialMinimumBalance).
		AppendU32(t.CliffTime).
		AppendU64(t.CliffAmount).
		AppendU32(t.VestingPeriod).
		AppendU64(t.VestingIncrement)
}

func emptyTimingData() TimingData { return TimingData{} }

// Permissions is the update's proposed new authorization-requirement set;
// each field is an AuthRequired small enum, packed as three bits:
// constant, signature-necessary, signature-sufficient (see pack).
type AuthRequired uint8

const (
	AuthNone AuthRequired = iota
	AuthEither
	AuthProof
	AuthSignature
	AuthImpossible
)

func (a AuthRequired) pack() roinput.Input {
	// Matches o1js's encoding of AuthRequired as {constant, signatureNecessary,
	// signatureSufficient} booleans.
	switch a {
	case AuthNone:
		return roinput.New().AppendBool(true).AppendBool(false).AppendBool(true)
	case AuthProof:
		return roinput.New().AppendBool(false).AppendBool(false).AppendBool(false)
	case AuthSignature:
		return roinput.New().AppendBool(false).AppendBool(true).AppendBool(true)
	case AuthEither:
		return roinput.New().AppendBool(false).AppendBool(false).AppendBool(true)
	case AuthImpossible:
		return roinput.New().AppendBool(true).AppendBool(true).AppendBool(false)
	default:
		panic("zkapp: unknown auth required kind")
	}
}

// SetVerificationKeyPermission pairs the AuthRequired needed to replace a
// zkApp's verification key with the transaction-version the replacement is
// pinned to, matching the Mina ledger's SetVerificationKey permission shape.
type SetVerificationKeyPermission struct {
	Auth       AuthRequired
	TxnVersion uint32
}

func (s SetVerificationKeyPermission) pack() roinput.Input {
	return s.Auth.pack().AppendU32(s.TxnVersion)
}

type Permissions struct {
	EditState          AuthRequired
	AccessPermission   AuthRequired
	Send               AuthRequired
	Receive            AuthRequired
	SetDelegate        AuthRequired
	SetPermissions     AuthRequired
	SetVerificationKey SetVerificationKeyPermission
	SetZkappURI        AuthRequired
	EditActionState    AuthRequired
	SetTokenSymbol     AuthRequired
	IncrementNonce     AuthRequired
	SetVotingFor       AuthRequired
	SetTiming          AuthRequired
}

func (p Permissions) Pack() roinput.Input {
	in := roinput.New().
		Append(p.EditState.pack()).
		Append(p.AccessPermission.pack()).
		Append(p.Send.pack()).
		Append(p.Receive.pack()).
		Append(p.SetDelegate.pack()).
		Append(p.SetPermissions.pack()).
		Append(p.SetVerificationKey.pack()).
		Append(p.SetZkappURI.pack()).
		Append(p.EditActionState.pack()).
		Append(p.SetTokenSymbol.pack()).
		Append(p.IncrementNonce.pack()).
		Append(p.SetVotingFor.pack()).
		Append(p.SetTiming.pack())
	return in
}

// Update bundles every state field an account update may modify, each
// wrapped Optional so an absent field packs its type's empty encoding.
type Update struct {
	AppState         [8]Optional[pallas.Elt]
	Delegate         Optional[mina.CompressedPubKey]
	VerificationKey  Optional[VerificationKeyData]
	Permissions      Optional[Permissions]
	ZkappURI         Optional[string]
	TokenSymbol      Optional[string]
	Timing           Optional[TimingData]
	VotingFor        Optional[pallas.Elt]
}

func (u Update) Pack() roinput.Input {
	in := roinput.New()
	for _, s := range u.AppState {
		in = in.Append(packOptionalField(s))
	}
	in = in.Append(packOptionalPubKey(u.Delegate))
	in = in.Append(packOptional(u.VerificationKey, VerificationKeyData{}))
	in = in.Append(packOptional(u.Permissions, Permissions{}))
	in = in.Append(packOptionalURI(u.ZkappURI))
	in = in.Append(packOptionalTokenSymbol(u.TokenSymbol))
	in = in.Append(packOptional(u.Timing, emptyTimingData()))
	return in.Append(packOptionalField(u.VotingFor))
}

func EmptyUpdate() Update {
	u := Update{
		Delegate:        None[mina.CompressedPubKey](),
		VerificationKey: None[VerificationKeyData](),
		Permissions:     None[Permissions](),
		ZkappURI:        None[string](),
		TokenSymbol:     None[string](),
		Timing:          None[TimingData](),
		VotingFor:       None[pallas.Elt](),
	}
	for i := range u.AppState {
		u.AppState[i] = None[pallas.Elt]()
	}
	return u
}

// BalanceChange is a signed magnitude: +1 credits the account, -1 debits it.
type BalanceChange struct {
	Magnitude uint64
	Positive  bool
}

func (b BalanceChange) Pack() roinput.Input {
	return roinput.New().AppendU64(b.Magnitude).AppendBool(b.Positive)
}

// MayUseToken controls whether an update may act on behalf of a parent's
// custom token.
type MayUseToken struct {
	ParentsOwnToken   bool
	InheritFromParent bool
}

func (m MayUseToken) Pack() roinput.Input {
	return roinput.New().AppendBool(m.ParentsOwnToken).AppendBool(m.InheritFromParent)
}

// AuthorizationKind records whether an update is signed or proved, plus the
// verification key hash it is proved against (DUMMY_HASH when unproved).
type AuthorizationKind struct {
	IsSigned            bool
	IsProved            bool
	VerificationKeyHash pallas.Elt
}

func (a AuthorizationKind) Pack() roinput.Input {
	return roinput.New().AppendBool(a.IsSigned).AppendBool(a.IsProved).AppendField(a.VerificationKeyHash)
}

// Events and Actions are ordered lists of field-element tuples; each event
// is itself hashed (see hashEventList) before being folded into the
// running events/actions hash.
type Events [][]pallas.Elt
type Actions [][]pallas.Elt

// AccountUpdateBody is every field that contributes to an account update's
// commitment hash, in Mina's fixed body-packing order.
type AccountUpdateBody struct {
	PublicKey                    mina.CompressedPubKey
	TokenID                      pallas.Elt
	Update                       Update
	BalanceChange                BalanceChange
	IncrementNonce               bool
	Events                       Events
	Actions                      Actions
	CallData                     pallas.Elt
	CallDepth                    uint32
	Preconditions                Preconditions
	UseFullCommitment            bool
	ImplicitAccountCreationFee   bool
	MayUseToken                  MayUseToken
	AuthorizationKind            AuthorizationKind
}

// Authorization is the proof-or-signature payload attached to an update;
// the FROST signer only ever writes into Signature.
type Authorization struct {
	Proof     string
	Signature string
}

// AccountUpdate is one node of a zkApp command's call forest.
type AccountUpdate struct {
	Body          AccountUpdateBody
	Authorization Authorization
}

// FeePayerBody is the fee payer's reduced update body (no token, no
// balance-change sign, always a full commitment).
type FeePayerBody struct {
	PublicKey  mina.CompressedPubKey
	Fee        uint64
	ValidUntil Optional[uint32]
	Nonce      uint32
}

// FeePayer is the distinguished first signer of a zkApp command.
type FeePayer struct {
	Body          FeePayerBody
	Authorization string
}

// AsAccountUpdate synthesizes the fee payer's AccountUpdateBody so it can
// be hashed with the same per-update routine as any other node.
func (f FeePayer) AsAccountUpdate() AccountUpdate {
	return AccountUpdate{
		Body: AccountUpdateBody{
			PublicKey:         f.Body.PublicKey,
			TokenID:           pallas.NewBaseElt(1), // the default token
			Update:            EmptyUpdate(),
			BalanceChange:     BalanceChange{Magnitude: f.Body.Fee, Positive: false},
			IncrementNonce:    true,
			CallData:          pallas.NewBaseElt(0),
			CallDepth:         0,
			Preconditions: Preconditions{
				Network: EmptyNetworkPreconditions(),
				Account: AccountPreconditions{
					Nonce:        RangeCondition[uint32]{Lower: f.Body.Nonce, Upper: f.Body.Nonce},
					ReceiptChain: None[pallas.Elt](),
					Delegate:     None[mina.CompressedPubKey](),
					ActionState:  None[pallas.Elt](),
					ProvedState:  None[bool](),
					IsNew:        None[bool](),
				},
			},
			UseFullCommitment:          true,
			ImplicitAccountCreationFee: true,
			MayUseToken:                MayUseToken{},
			AuthorizationKind: AuthorizationKind{
				IsSigned:            true,
				IsProved:            false,
				VerificationKeyHash: DummyHash(),
			},
		},
	}
}

// Command is a full zkApp command: a fee payer plus an ordered, flattened
// list of account updates (their call_depth encodes the tree shape).
type Command struct {
	FeePayer       FeePayer
	AccountUpdates []AccountUpdate
	Memo           mina.Memo
}
