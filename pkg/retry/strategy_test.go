package retry

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/code-payments/reward-center/pkg/retry/backoff"
)

func TestLimit(t *testing.T) {
	strategy := Limit(2)

	assert.True(t, strategy(1, errors.New("test")))
	assert.False(t, strategy(2, errors.New("test")))

	counter, err := Retry(func() error {
		return errors.New("test")
	}, Limit(2))

	assert.EqualError(t, err, "test")
	assert.EqualValues(t, 2, counter)
}

func TestRetriableErrors(t *testing.T) {
	retriableErrors := []error{
		errors.New("retriableA"),
		errors.New("retriableB"),
	}

	strategy := RetriableErrors(retriableErrors...)
	for _, err := range retriableErrors {
		assert.True(t, strategy(1, err))
		assert.True(t, strategy(1, errors.Wrap(err, "wrapper")))
	}
	assert.False(t, strategy(2, errors.New("unexpected")))
}

func TestNonRetriableErrors(t *testing.T) {
	nonRetriableErrors := []error{
		errors.New("nonRetriableA"),
		errors.New("nonRetriableB"),
	}

	strategy := NonRetriableErrors(nonRetriableErrors...)
	for _, err := range nonRetriableErrors {
		assert.False(t, strategy(1, err))
		assert.False(t, strategy(1, errors.Wrap(err, "wrapper")))
	}
	assert.True(t, strategy(1, errors.New("unexpected")))
}

func TestRetriableWhen(t *testing.T) {
	strategy := RetriableWhen(func(err error) bool {
		return strings.HasPrefix(err.Error(), "40001")
	})

	assert.True(t, strategy(1, errors.New("40001: could not serialize access")))
	assert.False(t, strategy(1, errors.New("23505: duplicate key")))
}

func TestBackoff(t *testing.T) {
	ts := &testSleeper{}
	sleeperImpl = ts
	strategy := Backoff(backoff.Constant(100*time.Millisecond), time.Second)

	for i := uint(0); i < 10; i++ {
		assert.True(t, strategy(i+1, errors.New("test-error")))
	}
	assert.EqualValues(t, time.Second, ts.Total())

	ts = &testSleeper{}
	sleeperImpl = ts
	strategy = Backoff(backoff.BinaryExponential(100*time.Millisecond), 250*time.Millisecond)
	for i := uint(1); i <= 3; i++ {
		strategy(i, errors.New("test-error"))
	}
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond}, ts.sleepTimes)
}

type testSleeper struct {
	sleepTimes []time.Duration
}

func (t *testSleeper) Sleep(d time.Duration) {
	t.sleepTimes = append(t.sleepTimes, d)
}

func (t *testSleeper) Total() (total time.Duration) {
	for _, d := range t.sleepTimes {
		total += d
	}
	return total
}
