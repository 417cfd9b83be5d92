// Package rng derives independent, reproducible random streams from one seed.
//
// Every consumer in the glyph pipeline asks for its own stream with Fork,
// naming its place in the randomness tree with a domain path such as
// ["glyph", "A", "skeleton"]. There is no global generator: two streams never
// share state, so letters can be generated concurrently and a retry for one
// letter never shifts the draws of another.
//
// # Derivation
//
// The seed and path are encoded with length prefixes and hashed with keyed
// BLAKE2b-256. The first 16 digest bytes seed a PCG-DXSM generator from
// math/rand/v2. Draws are computed from its 64-bit output with integer
// arithmetic only, so a stream yields the same values on every platform.
package rng

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Delimiter is reserved and may not appear inside a path label.
const Delimiter = "/"

// derivationKey keys the hash so streams are bound to this derivation scheme.
// Changing it changes every generated alphabet.
var derivationKey = []byte("glyphforge/rng/v1")

// ErrInvalidDomainPath is returned when a path is empty or one of its labels
// is empty or contains Delimiter.
var ErrInvalidDomainPath = errors.New("rng: invalid domain path")

// Seed is the single source of randomness for one generation run.
type Seed []byte

// SeedFromInt encodes v as 8 big-endian bytes.
func SeedFromInt(v int64) Seed {
	return binary.BigEndian.AppendUint64(nil, uint64(v))
}

// String returns the seed as lowercase hex.
func (s Seed) String() string {
	return hex.EncodeToString(s)
}

// Path is an ordered list of labels identifying a point in the randomness tree.
type Path []string

// String joins the labels with Delimiter.
func (p Path) String() string {
	return strings.Join(p, Delimiter)
}

// Validate reports ErrInvalidDomainPath for an empty path, an empty label or
// a label containing Delimiter.
func (p Path) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: no labels", ErrInvalidDomainPath)
	}
	for i, label := range p {
		if label == "" {
			return fmt.Errorf("%w: label %d is empty", ErrInvalidDomainPath, i)
		}
		if strings.Contains(label, Delimiter) {
			return fmt.Errorf("%w: label %q contains %q", ErrInvalidDomainPath, label, Delimiter)
		}
	}
	return nil
}

// Fork returns the stream for (seed, path). The same pair always yields the
// same stream.
func Fork(seed Seed, path Path) (*Stream, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	digest := derive(seed, path)
	return &Stream{
		seed: slices.Clone(seed),
		path: slices.Clone(path),
		src: rand.NewPCG(
			binary.LittleEndian.Uint64(digest[0:8]),
			binary.LittleEndian.Uint64(digest[8:16]),
		),
	}, nil
}

// derive hashes the length-prefixed encoding of seed and path.
func derive(seed Seed, path Path) []byte {
	h, err := blake2b.New256(derivationKey)
	if err != nil {
		// Only possible for keys longer than 64 bytes.
		panic(err)
	}
	buf := binary.AppendUvarint(nil, uint64(len(seed)))
	buf = append(buf, seed...)
	buf = binary.AppendUvarint(buf, uint64(len(path)))
	for _, label := range path {
		buf = binary.AppendUvarint(buf, uint64(len(label)))
		buf = append(buf, label...)
	}
	h.Write(buf)
	return h.Sum(nil)
}
