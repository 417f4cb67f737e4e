package system

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58/base58"
)

// https://explorer.solana.com/address/11111111111111111111111111111111
var SystemAccount ed25519.PublicKey

// RentSysVar points to the system variable "Rent"
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/rent.rs#L11
var RentSysVar ed25519.PublicKey

// ClockSysVar points to the system variable "Clock"
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/sysvar/clock.rs#L10
var ClockSysVar ed25519.PublicKey

// SysvarOwner owns every sysvar account.
var SysvarOwner ed25519.PublicKey

func init() {
	RentSysVar = mustDecode("SysvarRent111111111111111111111111111111111")
	ClockSysVar = mustDecode("SysvarC1ock11111111111111111111111111111111")
	SysvarOwner = mustDecode("Sysvar1111111111111111111111111111111111111")
	SystemAccount = mustDecode("11111111111111111111111111111111")
}

func mustDecode(s string) ed25519.PublicKey {
	v, err := base58.Decode(s)
	if err != nil {
		panic(err)
	}
	return v
}
