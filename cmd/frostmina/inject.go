// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/mina-frost/frost"
	"github.com/luxfi/mina-frost/mina"
	"github.com/luxfi/mina-frost/signature"
	"github.com/luxfi/mina-frost/zkapp"
)

func newInjectCmd() *cobra.Command {
	var txPath, pubPath, sigBase58, outPath string

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Write a finished group signature into a zkApp command's authorization slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cmdTx zkapp.Command
			if err := readCBOR(txPath, &cmdTx); err != nil {
				return err
			}
			var pub frost.PublicKeyPackage
			if err := readCBOR(pubPath, &pub); err != nil {
				return err
			}
			sig, err := signature.FromBase58(sigBase58)
			if err != nil {
				return err
			}

			groupVK := mina.FromPoint(pub.VerifyingKey)
			warnings := signature.InjectZkApp(&cmdTx, groupVK, sig)

			if err := writeCBOR(outPath, &cmdTx); err != nil {
				return err
			}
			fmt.Println("wrote", outPath)
			for _, w := range warnings {
				fmt.Printf("warning: %s (index=%d)\n", w.Kind, w.Index)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&txPath, "tx", "", "path to the zkApp Command file (CBOR)")
	cmd.Flags().StringVar(&pubPath, "pub", "", "path to the group PublicKeyPackage file")
	cmd.Flags().StringVar(&sigBase58, "sig", "", "base58check-encoded signature")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write the updated Command file to")
	_ = cmd.MarkFlagRequired("tx")
	_ = cmd.MarkFlagRequired("pub")
	_ = cmd.MarkFlagRequired("sig")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
