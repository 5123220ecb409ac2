package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	var c Clock
	assert.Equal(t, uint64(1), c.Tick())
	c.Observe(10)
	assert.Equal(t, uint64(10), c.Now())
	c.Observe(4)
	assert.Equal(t, uint64(11), c.Tick())
}

func TestClockConcurrentTicks(t *testing.T) {
	var c Clock
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Tick()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(800), c.Now())
}
