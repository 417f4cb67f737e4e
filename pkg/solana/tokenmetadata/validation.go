package tokenmetadata

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"
)

// AssertMetadataValid checks that metadata is the metadata account of mint and
// that it has been created.
//
// Reference: https://github.com/metaplex-foundation/metaplex-program-library/blob/master/auction-house/program/src/utils.rs#L84
func AssertMetadataValid(metadata ed25519.PublicKey, metadataData []byte, mint ed25519.PublicKey) error {
	expected, _, err := GetMetadataAddress(&GetMetadataAddressArgs{
		Mint: mint,
	})
	if err != nil {
		return errors.Wrap(err, "error deriving metadata address")
	}

	if !bytes.Equal(expected, metadata) {
		return ErrDerivedKeyInvalid
	}

	if len(metadataData) == 0 {
		return ErrMetadataDoesntExist
	}

	return nil
}
