package wrapper

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/config"
	"github.com/code-payments/reward-center/pkg/config/memory"
)

type getter[T any] interface {
	Get(ctx context.Context) T
	GetSafe(ctx context.Context) (T, error)
	Shutdown()
}

func assertValue[T any](t *testing.T, c getter[T], expected T, expectErr bool) {
	val, err := c.GetSafe(context.Background())
	if expectErr {
		require.Error(t, err)
	} else {
		require.NoError(t, err)
	}
	assert.Equal(t, expected, val)
	assert.Equal(t, expected, c.Get(context.Background()))
}

// testOverrideLifecycle covers the behaviour shared by every typed wrapper:
// default, override, last value on error, default once cleared, shutdown.
func testOverrideLifecycle[T any](t *testing.T, mock *memory.Config, c getter[T], defaultValue, overridenValue T) {
	assertValue(t, c, defaultValue, false)

	mock.SetValue(overridenValue)
	assertValue(t, c, overridenValue, false)

	mock.InduceErrors()
	assertValue(t, c, overridenValue, true)

	mock.StopInducingErrors()
	mock.ClearValue()
	assertValue(t, c, defaultValue, false)

	mock.SetValue("not supported")
	val, err := c.GetSafe(context.Background())
	assert.Equal(t, ErrUnsuportedConversion, err)
	assert.Equal(t, defaultValue, val)
}

func TestBoolConfig(t *testing.T) {
	mock := memory.NewConfig(nil)
	wrapper := NewBoolConfig(mock, true)

	testOverrideLifecycle[bool](t, mock, wrapper, true, false)

	mock.SetValue([]byte(strconv.FormatBool(false)))
	assertValue(t, wrapper, false, false)

	mock.SetValue([]byte("cannot convert"))
	assertValue(t, wrapper, false, true)

	wrapper.Shutdown()
	_, err := wrapper.GetSafe(context.Background())
	assert.Equal(t, config.ErrShutdown, err)
}

func TestUint64Config(t *testing.T) {
	defaultValue := uint64(math.MaxUint64)

	mock := memory.NewConfig(nil)
	wrapper := NewUint64Config(mock, defaultValue)

	testOverrideLifecycle[uint64](t, mock, wrapper, defaultValue, 0)

	mock.SetValue([]byte(strconv.FormatUint(5000, 10)))
	assertValue(t, wrapper, uint64(5000), false)

	mock.SetValue([]byte("-1"))
	assertValue(t, wrapper, uint64(5000), true)

	mock.SetValue(uint(42))
	assertValue(t, wrapper, uint64(42), false)

	mock.SetValue(uint32(7))
	assertValue(t, wrapper, uint64(7), false)

	wrapper.Shutdown()
	_, err := wrapper.GetSafe(context.Background())
	assert.Equal(t, config.ErrShutdown, err)
}

func TestDurationConfig(t *testing.T) {
	defaultValue := 30 * time.Second
	overridenValue := -2 * time.Hour

	mock := memory.NewConfig(nil)
	wrapper := NewDurationConfig(mock, defaultValue)

	testOverrideLifecycle[time.Duration](t, mock, wrapper, defaultValue, overridenValue)

	mock.SetValue([]byte(overridenValue.String()))
	assertValue(t, wrapper, overridenValue, false)

	mock.SetValue([]byte("cannot convert"))
	assertValue(t, wrapper, overridenValue, true)

	wrapper.Shutdown()
	_, err := wrapper.GetSafe(context.Background())
	assert.Equal(t, config.ErrShutdown, err)
}
