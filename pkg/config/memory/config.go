// Package memory provides a mutable in memory config.Config for tests and
// manual overrides.
package memory

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/code-payments/reward-center/pkg/config"
)

var errDeveloperInduced = errors.New("in memory config: developer induced error")

type state struct {
	value    interface{}
	err      error
	shutdown bool
}

// Config holds a single value that can be changed at any time. A nil value
// means no value is set.
type Config struct {
	mu    sync.RWMutex
	state state
}

func NewConfig(value interface{}) *Config {
	return &Config{state: state{value: value}}
}

// Get implements config.Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	s := c.state
	c.mu.RUnlock()

	switch {
	case s.shutdown:
		return nil, config.ErrShutdown
	case s.err != nil:
		return nil, s.err
	case s.value == nil:
		return nil, config.ErrNoValue
	}
	return s.value, nil
}

// Shutdown implements config.Config.Shutdown
func (c *Config) Shutdown() {
	c.update(func(s *state) { s.shutdown = true })
}

func (c *Config) SetValue(value interface{}) {
	c.update(func(s *state) { s.value = value })
}

// ClearValue makes subsequent Gets return config.ErrNoValue.
func (c *Config) ClearValue() {
	c.SetValue(nil)
}

// InduceErrors makes subsequent Gets fail until StopInducingErrors is called.
func (c *Config) InduceErrors() {
	c.update(func(s *state) { s.err = errDeveloperInduced })
}

func (c *Config) StopInducingErrors() {
	c.update(func(s *state) { s.err = nil })
}

func (c *Config) update(fn func(*state)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()
}
