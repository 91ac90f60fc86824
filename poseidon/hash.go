// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poseidon

import (
	"errors"

	"github.com/luxfi/mina-frost/pallas"
	"github.com/luxfi/mina-frost/roinput"
)

var ErrPrefixTooLong = errors.New("poseidon: prefix exceeds 20 bytes")

// ParamToField pads prefix with '*' to 20 bytes, then with NUL bytes to 32,
// and interprets the result as a little-endian base-field element. Fails if
// prefix is longer than 20 bytes.
func ParamToField(prefix string) (pallas.Elt, error) {
	if len(prefix) > 20 {
		return pallas.Elt{}, ErrPrefixTooLong
	}
	var buf [32]byte
	for i := 0; i < 20; i++ {
		buf[i] = '*'
	}
	copy(buf[:20], prefix)
	// buf[20:32] stays zero (NUL padding).
	return pallas.NewBaseFromBytes(buf)
}

// HashNoInput hashes a domain prefix alone: a fresh kimchi sponge that
// absorbs param_to_field(prefix) and squeezes once.
func HashNoInput(prefix string) (pallas.Elt, error) {
	p, err := ParamToField(prefix)
	if err != nil {
		return pallas.Elt{}, err
	}
	s := NewSponge(Kimchi)
	s.Absorb([]pallas.Elt{p})
	return s.Squeeze(), nil
}

// HashNoInputLong is HashNoInput's "multi-call variant" for prefixes longer
// than the 20-byte param_to_field limit (only "MinaAcctUpdateStackFrameEmpty"
// needs it): the prefix is split into 20-byte chunks, each padded the same
// way a short prefix is, and absorbed in sequence before the final squeeze.
func HashNoInputLong(prefix string) (pallas.Elt, error) {
	chunks, err := chunkPrefix(prefix)
	if err != nil {
		return pallas.Elt{}, err
	}
	s := NewSponge(Kimchi)
	s.Absorb(chunks)
	return s.Squeeze(), nil
}

// chunkPrefix splits prefix into 20-byte pieces (the last '*'-padded to 20
// bytes like a normal prefix) and maps each through ParamToField.
func chunkPrefix(prefix string) ([]pallas.Elt, error) {
	var out []pallas.Elt
	for i := 0; i < len(prefix); i += 20 {
		end := i + 20
		if end > len(prefix) {
			end = len(prefix)
		}
		f, err := ParamToField(prefix[i:end])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// HashWithPrefix is the zkApp hashing primitive: fresh kimchi sponge,
// absorb param_to_field(prefix), squeeze (discarding the output, advancing
// state), absorb data, squeeze (the result).
func HashWithPrefix(prefix string, data []pallas.Elt) (pallas.Elt, error) {
	p, err := ParamToField(prefix)
	if err != nil {
		return pallas.Elt{}, err
	}
	s := NewSponge(Kimchi)
	s.Absorb([]pallas.Elt{p})
	s.Squeeze()
	s.Absorb(data)
	return s.Squeeze(), nil
}

// bytesToFields packs raw bytes into base-field elements for ciphersuite
// hashing: each byte slice becomes one typed bit group, packed with the same
// packed-to-fields rule the zkApp pipeline uses.
func bytesToFields(parts ...[]byte) []pallas.Elt {
	in := roinput.New()
	for _, p := range parts {
		in = in.AppendBytes(p)
	}
	return in.PackToFields()
}

// HashToScalar implements the ciphersuite's H1/H3/HDKG/HID shape:
// concatenate context, tag, and message, pack to fields, run them through
// the legacy sponge, and reinterpret the base-field squeeze as a
// scalar-field element.
func HashToScalar(contextString, tag string, message []byte) pallas.Elt {
	return hashToScalarVariant(contextString, tag, message, Legacy)
}

// ChallengeHash implements the FROST ciphersuite's `challenge` rule's final
// hashing step: concatenate domain and the structured challenge bytes
// (ROI bytes followed by VK.x, VK.y, R.x), pack to fields, run them through
// the sponge variant the message's legacy/kimchi flag selects, and
// reinterpret the squeeze as a scalar. This is the same "concatenate, pack,
// sponge, reinterpret" shape HashToScalar uses for H1/H3/HDKG/HID, with the
// sponge variant made a parameter instead of fixed to Legacy.
func ChallengeHash(domain string, structuredBytes []byte, variant Variant) pallas.Elt {
	return hashToScalarVariant(domain, "", structuredBytes, variant)
}

func hashToScalarVariant(contextString, tag string, message []byte, variant Variant) pallas.Elt {
	fields := bytesToFields([]byte(contextString), []byte(tag), message)
	s := NewSponge(variant)
	s.Absorb(fields)
	out := s.Squeeze()
	return pallas.ReinterpretBaseAsScalar(out)
}

// HashToBytes implements the ciphersuite's H4/H5 shape: an H1-style scalar,
// serialized as 32 bytes.
func HashToBytes(contextString, tag string, message []byte) [32]byte {
	return HashToScalar(contextString, tag, message).Bytes()
}
