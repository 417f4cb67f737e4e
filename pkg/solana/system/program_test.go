package system

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/testutil"
)

func TestCreateAccount(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)

	instruction := CreateAccount(keys[0], keys[1], keys[2], 12345, 67890)

	command := make([]byte, 4)
	lamports := make([]byte, 8)
	binary.LittleEndian.PutUint64(lamports, 12345)
	size := make([]byte, 8)
	binary.LittleEndian.PutUint64(size, 67890)

	assert.Equal(t, command, instruction.Data[0:4])
	assert.Equal(t, lamports, instruction.Data[4:12])
	assert.Equal(t, size, instruction.Data[12:20])
	assert.Equal(t, []byte(keys[2]), instruction.Data[20:52])

	// Round trip through a compiled message to pick up header derived flags
	var tx solana.Transaction
	require.NoError(t, tx.Unmarshal(solana.NewTransaction(keys[0], instruction).Marshal()))
	decompiledInstructions, err := tx.Message.DecompileInstructions()
	require.NoError(t, err)
	require.Len(t, decompiledInstructions, 1)

	decompiled, err := DecompileCreateAccount(decompiledInstructions[0])
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.Funder)
	assert.Equal(t, keys[1], decompiled.Address)
	assert.Equal(t, keys[2], decompiled.Owner)
	assert.EqualValues(t, 12345, decompiled.Lamports)
	assert.EqualValues(t, 67890, decompiled.Size)

	c, err := GetCommand(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, CommandCreateAccount, c)
	assert.Equal(t, "CreateAccount", c.String())
}

func TestDecompileNonCreate(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 4)

	instruction := CreateAccount(keys[0], keys[1], keys[2], 12345, 67890)

	instruction.Accounts = instruction.Accounts[:1]
	_, err := DecompileCreateAccount(instruction)
	assert.NotNil(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid number of accounts"), err)

	binary.LittleEndian.PutUint32(instruction.Data, uint32(CommandAllocate))
	_, err = DecompileCreateAccount(instruction)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	instruction.Data = make([]byte, 3)
	_, err = DecompileCreateAccount(instruction)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	instruction = CreateAccount(keys[0], keys[1], keys[2], 12345, 67890)
	instruction.Program = keys[3]
	_, err = DecompileCreateAccount(instruction)
	assert.Equal(t, solana.ErrIncorrectProgram, err)
}

func TestTransfer(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	instruction := Transfer(keys[0], keys[1], 42)
	require.Len(t, instruction.Accounts, 2)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)

	decompiled, err := DecompileTransfer(instruction)
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.From)
	assert.Equal(t, keys[1], decompiled.To)
	assert.EqualValues(t, 42, decompiled.Lamports)

	_, err = DecompileAssign(instruction)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)
}

func TestAssignAndAllocate(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	assign, err := DecompileAssign(Assign(keys[0], keys[1]))
	require.NoError(t, err)
	assert.Equal(t, keys[0], assign.Address)
	assert.Equal(t, keys[1], assign.Owner)

	allocate, err := DecompileAllocate(Allocate(keys[0], 129))
	require.NoError(t, err)
	assert.Equal(t, keys[0], allocate.Address)
	assert.EqualValues(t, 129, allocate.Size)

	_, err = GetCommand([]byte{1})
	assert.Equal(t, solana.ErrIncorrectInstruction, err)
}

func TestSysvarLayouts(t *testing.T) {
	clock := &ClockAccount{
		Slot:          10,
		Epoch:         1,
		UnixTimestamp: 1_700_000_000,
	}

	var actualClock ClockAccount
	require.True(t, actualClock.Unmarshal(clock.Marshal()))
	assert.Equal(t, *clock, actualClock)
	assert.False(t, actualClock.Unmarshal(make([]byte, ClockAccountSize-1)))

	rent := &RentAccount{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2,
		BurnPercent:         50,
	}

	var actualRent RentAccount
	require.True(t, actualRent.Unmarshal(rent.Marshal()))
	assert.Equal(t, *rent, actualRent)

	// An empty system account needs 890880 lamports on mainnet
	assert.EqualValues(t, 890_880, rent.MinimumBalance(0))
}

func TestSystemError(t *testing.T) {
	assert.EqualValues(t, 0, ErrAccountAlreadyInUse.Code())
	assert.EqualValues(t, 1, ErrResultWithNegativeLamports.Code())
	assert.Contains(t, ErrAccountAlreadyInUse.Error(), "already exists")

	var err solana.ProgramError = ErrInvalidAccountDataLength
	assert.EqualValues(t, 3, err.Code())
}
