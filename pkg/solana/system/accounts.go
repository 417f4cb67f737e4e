package system

import (
	"encoding/binary"
	"math"
)

const (
	ClockAccountSize = 5 * 8
	RentAccountSize  = 8 + 8 + 1
)

// ClockAccount is the data layout of the clock sysvar.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/clock.rs#L72
type ClockAccount struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

func (c *ClockAccount) Marshal() []byte {
	b := make([]byte, ClockAccountSize)
	binary.LittleEndian.PutUint64(b, c.Slot)
	binary.LittleEndian.PutUint64(b[8:], uint64(c.EpochStartTimestamp))
	binary.LittleEndian.PutUint64(b[16:], c.Epoch)
	binary.LittleEndian.PutUint64(b[24:], c.LeaderScheduleEpoch)
	binary.LittleEndian.PutUint64(b[32:], uint64(c.UnixTimestamp))
	return b
}

func (c *ClockAccount) Unmarshal(b []byte) bool {
	if len(b) != ClockAccountSize {
		return false
	}

	c.Slot = binary.LittleEndian.Uint64(b)
	c.EpochStartTimestamp = int64(binary.LittleEndian.Uint64(b[8:]))
	c.Epoch = binary.LittleEndian.Uint64(b[16:])
	c.LeaderScheduleEpoch = binary.LittleEndian.Uint64(b[24:])
	c.UnixTimestamp = int64(binary.LittleEndian.Uint64(b[32:]))
	return true
}

// RentAccount is the data layout of the rent sysvar.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/rent.rs#L10
type RentAccount struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         uint8
}

func (r *RentAccount) Marshal() []byte {
	b := make([]byte, RentAccountSize)
	binary.LittleEndian.PutUint64(b, r.LamportsPerByteYear)
	binary.LittleEndian.PutUint64(b[8:], math.Float64bits(r.ExemptionThreshold))
	b[16] = r.BurnPercent
	return b
}

func (r *RentAccount) Unmarshal(b []byte) bool {
	if len(b) != RentAccountSize {
		return false
	}

	r.LamportsPerByteYear = binary.LittleEndian.Uint64(b)
	r.ExemptionThreshold = math.Float64frombits(binary.LittleEndian.Uint64(b[8:]))
	r.BurnPercent = b[16]
	return true
}

// MinimumBalance returns the lamports an account holding dataLen bytes needs
// to be rent exempt. Every account is charged for 128 bytes of metadata.
func (r *RentAccount) MinimumBalance(dataLen uint64) uint64 {
	return uint64(float64((128+dataLen)*r.LamportsPerByteYear) * r.ExemptionThreshold)
}
