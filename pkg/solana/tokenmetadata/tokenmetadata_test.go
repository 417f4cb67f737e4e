package tokenmetadata

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/testutil"
)

func TestProgramAddress(t *testing.T) {
	assert.Equal(t, "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s", base58.Encode(PROGRAM_ADDRESS))
}

func TestMetadataAccount(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	expected := &MetadataAccount{
		Key:             KeyMetadataV1,
		UpdateAuthority: keys[0],
		Mint:            keys[1],
		Name:            "Degen Ape #1",
		Symbol:          "DAPE",
		Uri:             "https://example.com/1.json",
	}

	var actual MetadataAccount
	require.NoError(t, actual.Unmarshal(expected.Marshal()))
	assert.Equal(t, *expected, actual)
	assert.Contains(t, actual.String(), "DAPE")

	// Fixed prefix only
	var prefix MetadataAccount
	require.NoError(t, prefix.Unmarshal(expected.Marshal()[:minMetadataAccountSize]))
	assert.Equal(t, expected.Mint, prefix.Mint)
	assert.Empty(t, prefix.Name)

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(expected.Marshal()[:minMetadataAccountSize+2]))

	data := expected.Marshal()
	data[0] = uint8(KeyMasterEditionV1)
	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(data))
}

func TestAssertMetadataValid(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	mint := keys[0]

	metadata, _, err := GetMetadataAddress(&GetMetadataAddressArgs{Mint: mint})
	require.NoError(t, err)

	data := (&MetadataAccount{Key: KeyMetadataV1, UpdateAuthority: keys[1], Mint: mint}).Marshal()

	assert.NoError(t, AssertMetadataValid(metadata, data, mint))
	assert.Equal(t, ErrMetadataDoesntExist, AssertMetadataValid(metadata, nil, mint))
	assert.Equal(t, ErrDerivedKeyInvalid, AssertMetadataValid(keys[1], data, mint))
	assert.Equal(t, ErrDerivedKeyInvalid, AssertMetadataValid(metadata, data, keys[1]))
}
