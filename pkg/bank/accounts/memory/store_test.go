package memory

import (
	"testing"

	"github.com/code-payments/reward-center/pkg/bank/accounts/tests"
)

func TestAccountsMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
