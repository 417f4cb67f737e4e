package tests

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/bank/accounts"
)

func RunTests(t *testing.T, s accounts.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s accounts.Store){
		testRoundTrip,
		testGetMany,
		testApplyDeletes,
		testApplyInvalidBatch,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s accounts.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		record := &accounts.Record{
			Address:  "address",
			Lamports: 1_000_000_000,
			Owner:    "owner",
			Data:     []byte{1, 2, 3},
		}

		_, err := s.Get(ctx, record.Address)
		assert.Equal(t, accounts.ErrNotFound, err)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)

		require.NoError(t, s.Apply(ctx, 10, []*accounts.Record{record}, nil))
		assert.EqualValues(t, 10, record.Slot)

		actual, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, record, actual)

		// Returned records are copies
		actual.Data[0] = 0xff
		actual, err = s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 1, actual.Data[0])

		record.Lamports = 7_000_000_000
		record.Owner = "other"
		record.Executable = true
		record.Data = nil
		require.NoError(t, s.Apply(ctx, 11, []*accounts.Record{record}, nil))

		actual, err = s.Get(ctx, record.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, record, actual)
		assert.EqualValues(t, 11, actual.Slot)

		count, err = s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func testGetMany(t *testing.T, s accounts.Store) {
	t.Run("testGetMany", func(t *testing.T) {
		ctx := context.Background()

		var records []*accounts.Record
		for i := 0; i < 5; i++ {
			records = append(records, &accounts.Record{
				Address:  fmt.Sprintf("address%d", i),
				Lamports: uint64(i + 1),
				Owner:    "owner",
				Data:     []byte{byte(i)},
			})
		}
		require.NoError(t, s.Apply(ctx, 1, records, nil))

		actual, err := s.GetMany(ctx)
		require.NoError(t, err)
		assert.Empty(t, actual)

		actual, err = s.GetMany(ctx, "address1", "missing", "address3")
		require.NoError(t, err)
		require.Len(t, actual, 2)

		byAddress := make(map[string]*accounts.Record)
		for _, record := range actual {
			byAddress[record.Address] = record
		}
		assertEquivalentRecords(t, records[1], byAddress["address1"])
		assertEquivalentRecords(t, records[3], byAddress["address3"])

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 5, count)
	})
}

func testApplyDeletes(t *testing.T, s accounts.Store) {
	t.Run("testApplyDeletes", func(t *testing.T) {
		ctx := context.Background()

		closed := &accounts.Record{Address: "closed", Lamports: 1_447_680, Owner: "program"}
		receiver := &accounts.Record{Address: "receiver", Lamports: 1, Owner: "system"}
		require.NoError(t, s.Apply(ctx, 1, []*accounts.Record{closed, receiver}, nil))

		receiver.Lamports += closed.Lamports
		require.NoError(t, s.Apply(ctx, 2, []*accounts.Record{receiver}, []string{closed.Address, "never-existed"}))

		_, err := s.Get(ctx, closed.Address)
		assert.Equal(t, accounts.ErrNotFound, err)

		actual, err := s.Get(ctx, receiver.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 1_447_681, actual.Lamports)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func testApplyInvalidBatch(t *testing.T, s accounts.Store) {
	t.Run("testApplyInvalidBatch", func(t *testing.T) {
		ctx := context.Background()

		existing := &accounts.Record{Address: "existing", Lamports: 10, Owner: "owner"}
		require.NoError(t, s.Apply(ctx, 1, []*accounts.Record{existing}, nil))

		for _, tc := range []struct {
			updates []*accounts.Record
			deletes []string
		}{
			{updates: []*accounts.Record{{Address: "a", Lamports: 1, Owner: "owner"}, {Lamports: 1, Owner: "owner"}}},
			{updates: []*accounts.Record{{Address: "a", Lamports: 1}}},
			{updates: []*accounts.Record{{Address: "a", Owner: "owner"}}},
			{updates: []*accounts.Record{{Address: "a", Lamports: 1, Owner: "owner"}, {Address: "a", Lamports: 2, Owner: "owner"}}},
			{updates: []*accounts.Record{{Address: "a", Lamports: 1, Owner: "owner"}}, deletes: []string{"a"}},
			{deletes: []string{existing.Address, ""}},
		} {
			err := s.Apply(ctx, 2, tc.updates, tc.deletes)
			assert.True(t, errors.Is(err, accounts.ErrInvalidRecord))

			// Nothing in a rejected batch is written
			_, err = s.Get(ctx, "a")
			assert.Equal(t, accounts.ErrNotFound, err)

			actual, err := s.Get(ctx, existing.Address)
			require.NoError(t, err)
			assertEquivalentRecords(t, existing, actual)
		}
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *accounts.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Lamports, obj2.Lamports)
	assert.Equal(t, obj1.Owner, obj2.Owner)
	assert.Equal(t, obj1.Executable, obj2.Executable)
	assert.Equal(t, string(obj1.Data), string(obj2.Data))
	assert.Equal(t, obj1.Slot, obj2.Slot)
}
