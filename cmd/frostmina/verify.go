// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/mina-frost/frost"
	"github.com/luxfi/mina-frost/pallas"
	"github.com/luxfi/mina-frost/signature"
)

func newVerifyCmd() *cobra.Command {
	var pubPath, messageFile, sigBase58 string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a base58check Mina signature against a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pub frost.PublicKeyPackage
			if err := readCBOR(pubPath, &pub); err != nil {
				return err
			}
			message, err := os.ReadFile(messageFile)
			if err != nil {
				return err
			}
			sig, err := signature.FromBase58(sigBase58)
			if err != nil {
				return err
			}
			R, err := pallas.PointFromXEvenY(sig.Field)
			if err != nil {
				return fmt.Errorf("signature does not decode to a curve point: %w", err)
			}
			ok := frost.Verify(pub.VerifyingKey, message, frost.Signature{R: R, Z: sig.Scalar})
			if !ok {
				return fmt.Errorf("signature does not verify")
			}
			fmt.Println("valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&pubPath, "pub", "", "path to the group PublicKeyPackage file")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "path to the raw message bytes that were signed")
	cmd.Flags().StringVar(&sigBase58, "sig", "", "base58check-encoded signature")
	_ = cmd.MarkFlagRequired("pub")
	_ = cmd.MarkFlagRequired("message-file")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}
