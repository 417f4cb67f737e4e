package rewardcenter

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

// ErrInvalidInstructionData is returned by instruction decoders. Account
// decoders return the coded ErrInvalidAccountData instead.
var ErrInvalidInstructionData = errors.New("unexpected instruction data")

var (
	PROGRAM_ADDRESS = mustBase58Decode("rwdD3F6CgoCAoVaxcitXAeWRjQdiGc5AVABKCpQSMfd")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID               = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
	SPL_TOKEN_PROGRAM_ID            = ed25519.PublicKey(mustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	SPL_ASSOCIATED_TOKEN_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"))
	AUCTION_HOUSE_PROGRAM_ID        = ed25519.PublicKey(mustBase58Decode("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk"))

	SYSVAR_RENT_PUBKEY = ed25519.PublicKey(mustBase58Decode("SysvarRent111111111111111111111111111111111"))
)
