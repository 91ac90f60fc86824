// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "frostmina",
		Short: "FROST threshold Schnorr signing over Pallas, Mina-compatible",
	}
	root.AddCommand(
		newKeygenCmd(),
		newDKGCmd(),
		newSignCmd(),
		newVerifyCmd(),
		newInjectCmd(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "frostmina:", err)
		os.Exit(1)
	}
}
