// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/luxfi/mina-frost/frost"
	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/signature"
)

func newSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "FROST threshold signing rounds (round1, round2, aggregate)",
	}
	cmd.AddCommand(newSignRound1Cmd(), newSignRound2Cmd(), newSignAggregateCmd())
	return cmd
}

func newSignRound1Cmd() *cobra.Command {
	var keyPath, outDir string

	cmd := &cobra.Command{
		Use:   "round1",
		Short: "Generate fresh signing nonces and commitments for one signer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var kp frost.KeyPackage
			if err := readCBOR(keyPath, &kp); err != nil {
				return err
			}
			nonces, commitments, err := frost.NewSigningNonces(cryptoRandReader())
			if err != nil {
				return err
			}

			stem := identifierFileStem(kp.Identifier)
			noncesPath := filepath.Join(outDir, fmt.Sprintf("sign-%s.nonces.cbor", stem))
			if err := writeCBOR(noncesPath, &nonces); err != nil {
				return err
			}
			fmt.Println("wrote (keep private, single use)", noncesPath)

			commitmentPath := filepath.Join(outDir, fmt.Sprintf("sign-%s.commitment.cbor", stem))
			if err := writeCBOR(commitmentPath, &commitments); err != nil {
				return err
			}
			fmt.Println("wrote (broadcast this)", commitmentPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "path to this signer's KeyPackage file")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write round-1 files into")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func loadCommitments(dir string, participants []frost.Identifier) (map[string]frost.SigningCommitments, error) {
	out := make(map[string]frost.SigningCommitments, len(participants))
	for _, pid := range participants {
		var c frost.SigningCommitments
		path := filepath.Join(dir, fmt.Sprintf("sign-%s.commitment.cbor", identifierFileStem(pid)))
		if err := readCBOR(path, &c); err != nil {
			return nil, err
		}
		out[idKey(pid)] = c
	}
	return out, nil
}

func newSignRound2Cmd() *cobra.Command {
	var keyPath, noncesPath, commitmentsDir, participantsCSV, messageFile, outPath string

	cmd := &cobra.Command{
		Use:   "round2",
		Short: "Compute this signer's signature share",
		RunE: func(cmd *cobra.Command, args []string) error {
			var kp frost.KeyPackage
			if err := readCBOR(keyPath, &kp); err != nil {
				return err
			}
			var nonces frost.SigningNonces
			if err := readCBOR(noncesPath, &nonces); err != nil {
				return err
			}
			participants, err := parseParticipants(participantsCSV)
			if err != nil {
				return err
			}
			commitments, err := loadCommitments(commitmentsDir, participants)
			if err != nil {
				return err
			}
			message, err := os.ReadFile(messageFile)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("out") {
				outPath = fmt.Sprintf("sign-%s.share.cbor", identifierFileStem(kp.Identifier))
			}

			sp := frost.SigningPackage{Commitments: commitments, Message: message}
			share, err := frost.Round2Sign(kp, &nonces, sp)
			if err != nil {
				return err
			}
			if err := writeCBOR(outPath, &share); err != nil {
				return err
			}
			fmt.Println("wrote", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "path to this signer's KeyPackage file")
	cmd.Flags().StringVar(&noncesPath, "nonces", "", "path to this signer's round1 nonces file")
	cmd.Flags().StringVar(&commitmentsDir, "commitments-dir", ".", "directory containing every signer's commitment.cbor")
	cmd.Flags().StringVar(&participantsCSV, "participants", "", "comma-separated signer ids participating in this signature")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "path to the raw message bytes to sign")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write this signer's share to (default sign-<id>.share.cbor)")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("nonces")
	_ = cmd.MarkFlagRequired("participants")
	_ = cmd.MarkFlagRequired("message-file")
	return cmd
}

func newSignAggregateCmd() *cobra.Command {
	var pubPath, commitmentsDir, sharesDir, participantsCSV, messageFile, outPath string
	var payloadFile, signedOutPath string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Combine every signer's share into a finished signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pub frost.PublicKeyPackage
			if err := readCBOR(pubPath, &pub); err != nil {
				return err
			}
			participants, err := parseParticipants(participantsCSV)
			if err != nil {
				return err
			}
			commitments, err := loadCommitments(commitmentsDir, participants)
			if err != nil {
				return err
			}
			message, err := os.ReadFile(messageFile)
			if err != nil {
				return err
			}

			shares := make(map[string]frost.SignatureShare, len(participants))
			for _, pid := range participants {
				var share frost.SignatureShare
				path := filepath.Join(sharesDir, fmt.Sprintf("sign-%s.share.cbor", identifierFileStem(pid)))
				if err := readCBOR(path, &share); err != nil {
					return err
				}
				shares[idKey(pid)] = share
			}

			sp := frost.SigningPackage{Commitments: commitments, Message: message}
			sig, err := frost.Aggregate(sp, shares, pub)
			if err != nil {
				return err
			}

			out := signature.FromFROST(sig)
			if outPath != "" {
				if err := writeCBOR(outPath, &out); err != nil {
					return err
				}
				fmt.Println("wrote", outPath)
			}

			if signedOutPath != "" {
				raw, err := os.ReadFile(payloadFile)
				if err != nil {
					return err
				}
				env, err := mina.EnvelopeFromBytes(raw)
				if err != nil {
					return err
				}
				signed := signature.NewSignedTransaction(mina.FromPoint(pub.VerifyingKey), out, env)
				b, err := json.MarshalIndent(signed, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(signedOutPath, append(b, '\n'), 0o644); err != nil {
					return err
				}
				fmt.Println("wrote", signedOutPath)
			}

			fmt.Println(out.Base58())
			return nil
		},
	}
	cmd.Flags().StringVar(&pubPath, "pub", "", "path to the group PublicKeyPackage file")
	cmd.Flags().StringVar(&commitmentsDir, "commitments-dir", ".", "directory containing every signer's commitment.cbor")
	cmd.Flags().StringVar(&sharesDir, "shares-dir", ".", "directory containing every signer's sign-<id>.share.cbor")
	cmd.Flags().StringVar(&participantsCSV, "participants", "", "comma-separated signer ids that participated")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "path to the raw message bytes that were signed")
	cmd.Flags().StringVar(&outPath, "out", "", "optional path to also write the Sig as CBOR")
	cmd.Flags().StringVar(&payloadFile, "payload", "", "transaction envelope wire file backing the signed-transaction JSON")
	cmd.Flags().StringVar(&signedOutPath, "signed-out", "", "optional path to write the signed-transaction JSON to (requires --payload)")
	cmd.MarkFlagsRequiredTogether("payload", "signed-out")
	_ = cmd.MarkFlagRequired("pub")
	_ = cmd.MarkFlagRequired("participants")
	_ = cmd.MarkFlagRequired("message-file")
	return cmd
}
