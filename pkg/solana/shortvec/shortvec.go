// Package shortvec implements the compact-u16 length prefix used by message
// and transaction encodings.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxEncodedSize is the most bytes a length can take on the wire.
const MaxEncodedSize = 3

var (
	ErrLengthOverflow = errors.New("shortvec: length exceeds max uint16")
	ErrAliasedLength  = errors.New("shortvec: length isn't minimally encoded")
)

// EncodedSize returns the number of bytes EncodeLen writes for n.
func EncodedSize(n int) int {
	size := 1
	for n >>= 7; n > 0; n >>= 7 {
		size++
	}
	return size
}

// EncodeLen writes n as a compact-u16, returning the number of bytes written.
func EncodeLen(w io.Writer, n int) (int, error) {
	if n < 0 || n > math.MaxUint16 {
		return 0, errors.Wrapf(ErrLengthOverflow, "length %d", n)
	}

	var buf [MaxEncodedSize]byte
	size := 0
	for {
		buf[size] = byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			size++
			break
		}
		buf[size] |= 0x80
		size++
	}

	return w.Write(buf[:size])
}

// DecodeLen reads a compact-u16 from r. Encodings that are longer than needed,
// or that don't fit in a uint16, are rejected.
func DecodeLen(r io.Reader) (int, error) {
	var (
		val  int
		next [1]byte
	)

	for i := 0; i < MaxEncodedSize; i++ {
		if _, err := io.ReadFull(r, next[:]); err != nil {
			return 0, err
		}

		b := next[0]
		if i > 0 && b == 0 {
			return 0, ErrAliasedLength
		}

		val |= int(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if val > math.MaxUint16 {
				return 0, errors.Wrapf(ErrLengthOverflow, "length %d", val)
			}
			return val, nil
		}
	}

	return 0, errors.Wrapf(ErrLengthOverflow, "more than %d bytes", MaxEncodedSize)
}
