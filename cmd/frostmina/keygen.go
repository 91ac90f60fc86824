// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/luxfi/mina-frost/frost"
)

func identifierFileStem(id frost.Identifier) string {
	b := id.Bytes()
	return hex.EncodeToString(b[:4])
}

func newKeygenCmd() *cobra.Command {
	var minSigners, maxSigners uint16
	var outDir string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Trusted-dealer FROST key generation (one party samples the group secret)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxSigners == 0 {
				return fmt.Errorf("--max is required")
			}
			ids := make([]frost.Identifier, maxSigners)
			for i := range ids {
				ids[i] = frost.IdentifierFromUint32(uint32(i + 1))
			}

			keyPkgs, pub, err := frost.TrustedDealerKeygen(minSigners, maxSigners, ids, rand.Reader)
			if err != nil {
				return err
			}

			pubPath := filepath.Join(outDir, "group.pub.cbor")
			if err := writeCBOR(pubPath, &pub); err != nil {
				return err
			}
			fmt.Println("wrote", pubPath)

			for _, kp := range keyPkgs {
				stem := identifierFileStem(kp.Identifier)
				path := filepath.Join(outDir, fmt.Sprintf("participant-%s.key.cbor", stem))
				if err := writeCBOR(path, &kp); err != nil {
					return err
				}
				fmt.Println("wrote", path)
			}
			return nil
		},
	}
	cmd.Flags().Uint16Var(&minSigners, "min", 2, "minimum signers required (t)")
	cmd.Flags().Uint16Var(&maxSigners, "max", 0, "total participants (n)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write key package files into")
	return cmd
}
