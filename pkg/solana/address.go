package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	ErrInvalidPublicKey = errors.New("invalid public key")

	ErrBumpSeedNotFound = errors.New("unable to find a viable program address bump seed")
	ErrAddressMismatch  = errors.New("derived address mismatch")
	ErrBumpMismatch     = errors.New("derived address bump mismatch")
)

var (
	programHashCtor = sha256.New

	pdaMarker = []byte("ProgramDerivedAddress")
)

// CreateProgramAddress mirrors the implementation of the Solana SDK's CreateProgramAddress.
//
// ProgramAddresses are public keys that _do not_ lie on the ed25519 curve to ensure that
// there is no associated private key. In the event that the program and seed parameters
// result in a valid public key, ErrInvalidPublicKey is returned.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := programHashCtor()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}

		if _, err := h.Write(s); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{program, pdaMarker} {
		if _, err := h.Write(v); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	var pub [32]byte
	copy(pub[:], h.Sum(nil))

	// A valid compressed EdwardsPoint has a private key somewhere, so it can
	// never be a program address. The extended group element isn't exposed by
	// golang.org/x/crypto, hence the jdgcs fork.
	if IsOnCurve(pub[:]) {
		return nil, ErrInvalidPublicKey
	}

	return pub[:], nil
}

// FindProgramAddressAndBump mirrors the implementation of the Solana SDK's
// FindProgramAddress. It returns the address and the canonical bump seed,
// which is the first bump (counting down from 255) producing an off-curve
// address.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	if len(seeds) >= maxSeeds {
		return nil, 0, ErrTooManySeeds
	}

	bumpSeed := []byte{math.MaxUint8}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	withBump[len(seeds)] = bumpSeed

	for i := 0; i < math.MaxUint8; i++ {
		pub, err := CreateProgramAddress(program, withBump...)
		if err == nil {
			return pub, bumpSeed[0], nil
		}
		if err != ErrInvalidPublicKey {
			return nil, 0, err
		}

		bumpSeed[0]--
	}

	return nil, 0, ErrBumpSeedNotFound
}

// FindProgramAddress mirrors the implementation of the Solana SDK's FindProgramAddress.
// It only returns the address.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}

// AssertDerivation recomputes the canonical program address for the seeds and
// verifies the claimed address against it. The canonical bump is returned on
// success.
func AssertDerivation(program, claimed ed25519.PublicKey, seeds ...[]byte) (uint8, error) {
	expected, bump, err := FindProgramAddressAndBump(program, seeds...)
	if err != nil {
		return 0, err
	}

	if !bytes.Equal(expected, claimed) {
		return 0, errors.Wrapf(
			ErrAddressMismatch,
			"%s does not derive from the provided seeds (expected %s)",
			base58.Encode(claimed),
			base58.Encode(expected),
		)
	}

	return bump, nil
}

// AssertDerivationWithBump is AssertDerivation for callers that also supply a
// bump. A non-canonical bump is rejected even when it happens to reproduce the
// claimed address.
func AssertDerivationWithBump(program, claimed ed25519.PublicKey, claimedBump uint8, seeds ...[]byte) error {
	bump, err := AssertDerivation(program, claimed, seeds...)
	if err != nil {
		return err
	}

	if bump != claimedBump {
		return errors.Wrapf(ErrBumpMismatch, "bump %d provided for %s (expected %d)", claimedBump, base58.Encode(claimed), bump)
	}

	return nil
}

// IsOnCurve reports whether the 32 byte key decodes to a point on the ed25519
// curve.
func IsOnCurve(key []byte) bool {
	if len(key) != ed25519.PublicKeySize {
		return false
	}

	var pub [32]byte
	copy(pub[:], key)

	var A edwards25519.ExtendedGroupElement
	return A.FromBytes(&pub)
}
