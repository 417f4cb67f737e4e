package env

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/config"
)

func TestConfig_Unset(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"

	t.Setenv(env, "value")
	v, err := NewConfig(env).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	t.Setenv(env, "")
	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestConfig_Typed(t *testing.T) {
	t.Setenv("ENV_CONFIG_TEST_UINT64", "3480")
	t.Setenv("ENV_CONFIG_TEST_BOOL", "true")
	t.Setenv("ENV_CONFIG_TEST_DURATION", "150ms")

	assert.EqualValues(t, 3480, NewUint64Config("env_config_test_uint64", 0).Get(context.Background()))
	assert.True(t, NewBoolConfig("ENV_CONFIG_TEST_BOOL", false).Get(context.Background()))
	assert.Equal(t, 150*time.Millisecond, NewDurationConfig("ENV_CONFIG_TEST_DURATION", time.Second).Get(context.Background()))

	assert.EqualValues(t, 7, NewUint64Config("ENV_CONFIG_TEST_MISSING", 7).Get(context.Background()))
}
