package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Package logs are kept at trace level so every code path formats its fields,
// but only printed under go test -v.
func init() {
	logrus.SetLevel(logrus.TraceLevel)

	for _, arg := range os.Args {
		if arg == "-test.v=true" || arg == "-test.v" {
			return
		}
	}
	logrus.StandardLogger().Out = io.Discard
}

// CaptureLogs records every entry written to the standard logger until the
// test ends.
func CaptureLogs(t *testing.T) *test.Hook {
	hook := test.NewLocal(logrus.StandardLogger())
	t.Cleanup(func() {
		hook.Reset()
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})
	return hook
}
