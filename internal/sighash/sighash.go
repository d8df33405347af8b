// Package sighash derives stable identities for ordered condition descriptors.
package sighash

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Sum folds the descriptors, in order, into a single digest.
// Equal sequences always produce equal sums. Unequal sequences usually differ,
// but collisions are possible and callers treat them as a known weakness.
func Sum(descriptors ...string) uint64 {
	hash := uint64(seed)

	for _, descriptor := range descriptors {
		hash = hash*multiplier + element(descriptor)
	}

	return hash
}

// unexported constants.
const (
	multiplier = 23
	seed       = 17
)

// element is the first eight bytes of the BLAKE2b-256 digest of descriptor.
func element(descriptor string) uint64 {
	sum := blake2b.Sum256([]byte(descriptor))

	return binary.BigEndian.Uint64(sum[:8])
}
