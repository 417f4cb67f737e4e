package binary

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedLayout(t *testing.T) {
	key, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	discriminator := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	buf := make([]byte, 8+32+8+8+2+1+1)

	var offset int
	PutDiscriminator(buf[offset:], discriminator, &offset)
	PutKey32(buf[offset:], key, &offset)
	PutUint64(buf[offset:], 7_000_000_000, &offset)
	PutInt64(buf[offset:], -12, &offset)
	PutUint16(buf[offset:], 500, &offset)
	PutUint8(buf[offset:], 254, &offset)
	PutBool(buf[offset:], true, &offset)
	assert.Equal(t, len(buf), offset)

	var actualDiscriminator []byte
	var actualKey ed25519.PublicKey
	var u64 uint64
	var i64 int64
	var u16 uint16
	var u8 uint8
	var b bool

	offset = 0
	GetDiscriminator(buf[offset:], &actualDiscriminator, &offset)
	GetKey32(buf[offset:], &actualKey, &offset)
	GetUint64(buf[offset:], &u64, &offset)
	GetInt64(buf[offset:], &i64, &offset)
	GetUint16(buf[offset:], &u16, &offset)
	GetUint8(buf[offset:], &u8, &offset)
	GetBool(buf[offset:], &b, &offset)
	assert.Equal(t, len(buf), offset)

	assert.Equal(t, discriminator, actualDiscriminator)
	assert.EqualValues(t, key, actualKey)
	assert.EqualValues(t, 7_000_000_000, u64)
	assert.EqualValues(t, -12, i64)
	assert.EqualValues(t, 500, u16)
	assert.EqualValues(t, 254, u8)
	assert.True(t, b)
}

func TestString(t *testing.T) {
	buf := make([]byte, 4+5)

	var offset int
	PutString(buf, "hello", &offset)
	assert.Equal(t, 9, offset)

	var actual string
	offset = 0
	require.True(t, GetString(buf, &actual, &offset))
	assert.Equal(t, "hello", actual)
	assert.Equal(t, 9, offset)

	offset = 0
	assert.False(t, GetString(buf[:6], &actual, &offset))
	assert.False(t, GetString(buf[:2], &actual, &offset))
	assert.Equal(t, 0, offset)
}
