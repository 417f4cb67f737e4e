package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/reward-center/pkg/config"
)

func TestConfig(t *testing.T) {
	ctx := context.Background()

	c := NewConfig(uint64(5000))
	val, err := c.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, val)

	c.ClearValue()
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrNoValue, err)

	c.SetValue(true)
	val, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, val)

	// Induced errors take precedence over a set value
	c.InduceErrors()
	_, err = c.Get(ctx)
	assert.Equal(t, errDeveloperInduced, err)

	c.StopInducingErrors()
	val, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, val)

	c.Shutdown()
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrShutdown, err)

	c.SetValue(false)
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrShutdown, err)
}
