package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/solana/shortvec"
)

// Only legacy messages are supported on the wire. A message whose first byte
// has the high bit set is a versioned message and is rejected.
const versionPrefixMask = 0x80

var (
	ErrVersionedMessage = errors.New("versioned messages not supported")
	ErrTrailingBytes    = errors.New("trailing bytes after message")
)

// Marshal encodes the transaction in the legacy wire format: a shortvec
// prefixed list of signatures followed by the message.
func (t Transaction) Marshal() []byte {
	b := bytes.NewBuffer(nil)

	_, _ = shortvec.EncodeLen(b, len(t.Signatures))
	for _, s := range t.Signatures {
		_, _ = b.Write(s[:])
	}
	_, _ = b.Write(t.Message.Marshal())

	return b.Bytes()
}

func (t *Transaction) Unmarshal(b []byte) error {
	r := bytes.NewReader(b)

	sigLen, err := shortvec.DecodeLen(r)
	if err != nil {
		return errors.Wrap(err, "failed to read signature length")
	}

	t.Signatures = make([]Signature, sigLen)
	for i := range t.Signatures {
		if _, err = io.ReadFull(r, t.Signatures[i][:]); err != nil {
			return errors.Wrapf(err, "failed to read signature at %d", i)
		}
	}

	return t.Message.Unmarshal(b[len(b)-r.Len():])
}

func (m Message) Marshal() []byte {
	b := bytes.NewBuffer(nil)

	_ = b.WriteByte(m.Header.NumSignatures)
	_ = b.WriteByte(m.Header.NumReadonlySigned)
	_ = b.WriteByte(m.Header.NumReadOnly)

	_, _ = shortvec.EncodeLen(b, len(m.Accounts))
	for _, a := range m.Accounts {
		_, _ = b.Write(a)
	}

	_, _ = b.Write(m.RecentBlockhash[:])

	_, _ = shortvec.EncodeLen(b, len(m.Instructions))
	for _, i := range m.Instructions {
		_ = b.WriteByte(i.ProgramIndex)
		writeBytes(b, i.Accounts)
		writeBytes(b, i.Data)
	}

	return b.Bytes()
}

// Unmarshal decodes a legacy message. The whole of b must be consumed, and
// every index must point into the account list.
func (m *Message) Unmarshal(b []byte) (err error) {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	if b[0]&versionPrefixMask != 0 {
		return ErrVersionedMessage
	}

	r := bytes.NewReader(b)

	var header [3]byte
	if _, err = io.ReadFull(r, header[:]); err != nil {
		return errors.Wrap(err, "failed to read header")
	}
	m.Header = Header{
		NumSignatures:     header[0],
		NumReadonlySigned: header[1],
		NumReadOnly:       header[2],
	}

	accountLen, err := shortvec.DecodeLen(r)
	if err != nil {
		return errors.Wrap(err, "failed to read account len")
	}
	if err := m.Header.validate(accountLen); err != nil {
		return err
	}

	m.Accounts = make([]ed25519.PublicKey, accountLen)
	for i := range m.Accounts {
		m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		if _, err = io.ReadFull(r, m.Accounts[i]); err != nil {
			return errors.Wrapf(err, "failed to read account at index %d", i)
		}
	}

	if _, err = io.ReadFull(r, m.RecentBlockhash[:]); err != nil {
		return errors.Wrap(err, "failed to read recent block hash")
	}

	instructionLen, err := shortvec.DecodeLen(r)
	if err != nil {
		return errors.Wrap(err, "failed to read instruction len")
	}
	m.Instructions = make([]CompiledInstruction, instructionLen)
	for i := range m.Instructions {
		c := &m.Instructions[i]

		if c.ProgramIndex, err = r.ReadByte(); err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d] program index", i)
		}
		if int(c.ProgramIndex) >= accountLen {
			return errors.Errorf("program index out of range: %d:%d", i, c.ProgramIndex)
		}

		if c.Accounts, err = readBytes(r); err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d] accounts", i)
		}
		for _, index := range c.Accounts {
			if int(index) >= accountLen {
				return errors.Errorf("account index out of range: %d:%d", i, index)
			}
		}

		if c.Data, err = readBytes(r); err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d] data", i)
		}
	}

	if r.Len() > 0 {
		return errors.Wrapf(ErrTrailingBytes, "%d bytes", r.Len())
	}
	return nil
}

func writeBytes(b *bytes.Buffer, data []byte) {
	_, _ = shortvec.EncodeLen(b, len(data))
	_, _ = b.Write(data)
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := shortvec.DecodeLen(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
