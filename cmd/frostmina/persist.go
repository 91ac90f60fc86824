// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command frostmina drives FROST-over-Pallas threshold key generation and
// Mina-compatible signing from the shell: every round's input and output
// is a CBOR file, so a coordinator script (out of this repo's scope) can
// relay them between participants over whatever transport it likes.
package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

func cryptoRandReader() io.Reader { return rand.Reader }

func writeCBOR(path string, v interface{}) error {
	b, err := cbor.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readCBOR(path string, v interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := cbor.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
