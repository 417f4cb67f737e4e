package sync

import (
	"fmt"
	"sync"
	base "sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripedLock_HappyPath(t *testing.T) {
	workerCount := 256
	operationCount := 100000

	l := NewStripedLock(4)

	var workerWg base.WaitGroup
	startChan := make(chan struct{}, 0)
	data := make([]int, workerCount)

	for i := 0; i < workerCount; i++ {
		workerWg.Add(1)

		go func(workerID int) {
			defer workerWg.Done()

			var opWg sync.WaitGroup
			key := []byte(fmt.Sprintf("worker%d", workerID))
			for j := 0; j < operationCount; j++ {
				opWg.Add(1)

				go func() {
					defer opWg.Done()

					select {
					case <-startChan:
					}

					mu := l.Get([]byte(key))
					mu.Lock()
					data[workerID]++
					mu.Unlock()
				}()
			}
			opWg.Wait()
		}(i)
	}

	close(startChan)
	workerWg.Wait()

	for _, val := range data {
		assert.EqualValues(t, operationCount, val)
	}
}

func TestStripedLock_LockSet(t *testing.T) {
	l := NewStripedLock(8)

	var keys [][]byte
	for i := 0; i < 32; i++ {
		keys = append(keys, []byte(fmt.Sprintf("account%d", i)))
	}

	// Overlapping sets locked from many goroutines in different orders
	counters := make([]int, len(keys))
	var wg base.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()

			first := worker % len(keys)
			second := (worker * 7) % len(keys)
			for j := 0; j < 1000; j++ {
				unlock := l.LockSet([][]byte{keys[first], keys[second]}, keys[:4])
				counters[first]++
				if second != first {
					counters[second]++
				}
				unlock()
			}
		}(i)
	}
	wg.Wait()

	var total int
	for _, c := range counters {
		total += c
	}

	var expected int
	for i := 0; i < 64; i++ {
		if i%len(keys) == (i*7)%len(keys) {
			expected += 1000
		} else {
			expected += 2000
		}
	}
	assert.Equal(t, expected, total)
}

func TestStripedLock_LockSetWriteWins(t *testing.T) {
	l := NewStripedLock(4)
	key := []byte("account")

	unlock := l.LockSet([][]byte{key}, [][]byte{key})

	// The stripe is write locked, so a reader can't get in
	assert.False(t, l.Get(key).TryRLock())
	unlock()

	assert.True(t, l.Get(key).TryRLock())
	l.Get(key).RUnlock()

	assert.Equal(t, l.Stripe(key), l.Stripe([]byte("account")))
}
