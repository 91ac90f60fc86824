// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luxfi/mina-frost/frost"
	"github.com/luxfi/mina-frost/pallas"
)

// idKey mirrors package frost's unexported canonicalization for
// Identifier map keys, so this CLI can address the same per-recipient
// shares a DKGRound2 output map uses without needing frost to export it.
func idKey(id frost.Identifier) string {
	b := id.Bytes()
	return string(b[:])
}

func parseParticipants(csv string) ([]frost.Identifier, error) {
	parts := strings.Split(csv, ",")
	ids := make([]frost.Identifier, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad participant id %q: %w", p, err)
		}
		ids = append(ids, frost.IdentifierFromUint32(uint32(n)))
	}
	return ids, nil
}

func newDKGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dkg",
		Short: "File-relayed distributed key generation (rounds 1-3)",
	}
	cmd.AddCommand(newDKGRound1Cmd(), newDKGRound2Cmd(), newDKGRound3Cmd(), newDKGMergeCmd())
	return cmd
}

func newDKGRound1Cmd() *cobra.Command {
	var id uint32
	var minSigners uint16
	var outDir string

	cmd := &cobra.Command{
		Use:   "round1",
		Short: "Sample this participant's secret polynomial and commit to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			self := frost.IdentifierFromUint32(id)
			pkg, err := frost.DKGPart1(self, minSigners, cryptoRandReader())
			if err != nil {
				return err
			}

			stem := identifierFileStem(self)
			secretPath := filepath.Join(outDir, fmt.Sprintf("dkg-%s.round1.secret.cbor", stem))
			if err := writeCBOR(secretPath, &pkg); err != nil {
				return err
			}
			fmt.Println("wrote (keep private)", secretPath)

			public := pkg
			public.Coeffs = nil
			publicPath := filepath.Join(outDir, fmt.Sprintf("dkg-%s.round1.public.cbor", stem))
			if err := writeCBOR(publicPath, &public); err != nil {
				return err
			}
			fmt.Println("wrote (broadcast this)", publicPath)
			return nil
		},
	}
	cmd.Flags().Uint32Var(&id, "id", 0, "this participant's numeric identifier")
	cmd.Flags().Uint16Var(&minSigners, "min", 2, "minimum signers required (t)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write round-1 files into")
	return cmd
}

func loadRound1Packages(dir string, participants []frost.Identifier) ([]frost.DKGRound1Package, error) {
	out := make([]frost.DKGRound1Package, len(participants))
	for i, pid := range participants {
		var pkg frost.DKGRound1Package
		path := filepath.Join(dir, fmt.Sprintf("dkg-%s.round1.public.cbor", identifierFileStem(pid)))
		if err := readCBOR(path, &pkg); err != nil {
			return nil, err
		}
		out[i] = pkg
	}
	return out, nil
}

func newDKGRound2Cmd() *cobra.Command {
	var id uint32
	var secretPath, round1Dir, participantsCSV, outDir string

	cmd := &cobra.Command{
		Use:   "round2",
		Short: "Compute the per-recipient secret shares this participant owes everyone",
		RunE: func(cmd *cobra.Command, args []string) error {
			var self frost.DKGRound1Package
			if err := readCBOR(secretPath, &self); err != nil {
				return err
			}
			participants, err := parseParticipants(participantsCSV)
			if err != nil {
				return err
			}
			allRound1, err := loadRound1Packages(round1Dir, participants)
			if err != nil {
				return err
			}

			shares, err := frost.DKGPart2(self, allRound1, participants)
			if err != nil {
				return err
			}

			selfStem := identifierFileStem(frost.IdentifierFromUint32(id))
			for _, recipient := range participants {
				share, ok := shares[idKey(recipient)]
				if !ok {
					return fmt.Errorf("no share computed for participant %s", identifierFileStem(recipient))
				}
				path := filepath.Join(outDir, fmt.Sprintf("dkg-%s.round2.to-%s.cbor", selfStem, identifierFileStem(recipient)))
				if err := writeCBOR(path, &share); err != nil {
					return err
				}
				fmt.Println("wrote", path, "(send privately to participant", identifierFileStem(recipient), ")")
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&id, "id", 0, "this participant's numeric identifier")
	cmd.Flags().StringVar(&secretPath, "secret", "", "path to this participant's round1 secret file")
	cmd.Flags().StringVar(&round1Dir, "round1-dir", ".", "directory containing every participant's round1.public.cbor")
	cmd.Flags().StringVar(&participantsCSV, "participants", "", "comma-separated participant ids")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write round-2 share files into")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("participants")
	return cmd
}

func newDKGRound3Cmd() *cobra.Command {
	var id uint32
	var round1Dir, sharesDir, participantsCSV, outDir string
	var minSigners, maxSigners uint16

	cmd := &cobra.Command{
		Use:   "round3",
		Short: "Combine received shares into this participant's key package",
		RunE: func(cmd *cobra.Command, args []string) error {
			self := frost.IdentifierFromUint32(id)
			participants, err := parseParticipants(participantsCSV)
			if err != nil {
				return err
			}
			allRound1, err := loadRound1Packages(round1Dir, participants)
			if err != nil {
				return err
			}

			received := make(map[string]pallas.Elt, len(participants))
			selfStem := identifierFileStem(self)
			for _, sender := range participants {
				var share pallas.Elt
				path := filepath.Join(sharesDir, fmt.Sprintf("dkg-%s.round2.to-%s.cbor", identifierFileStem(sender), selfStem))
				if err := readCBOR(path, &share); err != nil {
					return err
				}
				received[idKey(sender)] = share
			}

			kp, pub, err := frost.DKGPart3(self, received, allRound1, minSigners, maxSigners)
			if err != nil {
				return err
			}

			keyPath := filepath.Join(outDir, fmt.Sprintf("dkg-%s.key.cbor", selfStem))
			if err := writeCBOR(keyPath, &kp); err != nil {
				return err
			}
			fmt.Println("wrote", keyPath)

			viewPath := filepath.Join(outDir, fmt.Sprintf("dkg-%s.pubview.cbor", selfStem))
			if err := writeCBOR(viewPath, &pub); err != nil {
				return err
			}
			fmt.Println("wrote", viewPath, "(share with the coordinator for merge)")
			return nil
		},
	}
	cmd.Flags().Uint32Var(&id, "id", 0, "this participant's numeric identifier")
	cmd.Flags().StringVar(&round1Dir, "round1-dir", ".", "directory containing every participant's round1.public.cbor")
	cmd.Flags().StringVar(&sharesDir, "shares-dir", ".", "directory containing round2 shares addressed to this participant")
	cmd.Flags().StringVar(&participantsCSV, "participants", "", "comma-separated participant ids")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write this participant's key files into")
	cmd.Flags().Uint16Var(&minSigners, "min", 2, "minimum signers required (t)")
	cmd.Flags().Uint16Var(&maxSigners, "max", 0, "total participants (n)")
	_ = cmd.MarkFlagRequired("participants")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func newDKGMergeCmd() *cobra.Command {
	var views []string
	var outPath string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Combine every participant's pubview.cbor into the group's PublicKeyPackage",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs := make([]frost.PublicKeyPackage, len(views))
			for i, v := range views {
				if err := readCBOR(v, &pkgs[i]); err != nil {
					return err
				}
			}
			merged, err := frost.MergePublicKeyPackages(pkgs)
			if err != nil {
				return err
			}
			if err := writeCBOR(outPath, &merged); err != nil {
				return err
			}
			fmt.Println("wrote", outPath)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&views, "view", nil, "path to a participant's pubview.cbor (repeatable)")
	cmd.Flags().StringVar(&outPath, "out", "group.pub.cbor", "path to write the merged PublicKeyPackage to")
	_ = cmd.MarkFlagRequired("view")
	return cmd
}
