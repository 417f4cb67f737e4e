package tokenmetadata

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

// Current key: metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s
var PROGRAM_ADDRESS = ed25519.PublicKey{11, 112, 101, 177, 227, 209, 124, 69, 56, 157, 82, 127, 107, 4, 195, 205, 88, 184, 108, 115, 26, 160, 253, 181, 73, 182, 209, 188, 3, 248, 41, 70}

var PROGRAM_ID = PROGRAM_ADDRESS

var (
	ErrInvalidAccountData = errors.New("unexpected account data")

	// ErrDerivedKeyInvalid is returned when a metadata account isn't the
	// metadata PDA of the expected mint.
	ErrDerivedKeyInvalid = errors.New("derived key invalid")

	// ErrMetadataDoesntExist is returned when the metadata PDA holds no data.
	ErrMetadataDoesntExist = errors.New("metadata doesn't exist")
)
