package auctionhouse

import (
	"bytes"

	"github.com/mr-tron/base58"
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

func hasDiscriminator(data, discriminator []byte) bool {
	return len(data) >= len(discriminator) && bytes.Equal(data[:len(discriminator)], discriminator)
}
