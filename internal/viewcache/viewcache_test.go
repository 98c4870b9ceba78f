package viewcache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TRIPMOA_BACK-END/internal/viewcache"
)

func TestCache_FirstSightingNotSeen(t *testing.T) {
	c := viewcache.New(time.Hour, time.Hour)
	defer c.Stop()

	assert.False(t, c.Seen("plan-1", "alice|agent"))
	assert.True(t, c.Seen("plan-1", "alice|agent"))
	assert.True(t, c.Seen("plan-1", "alice|agent"))
}

func TestCache_KeysAreIndependent(t *testing.T) {
	c := viewcache.New(time.Hour, time.Hour)
	defer c.Stop()

	assert.False(t, c.Seen("plan-1", "alice|agent"))
	assert.False(t, c.Seen("plan-1", "bob|agent"))
	assert.False(t, c.Seen("plan-2", "alice|agent"))
	assert.False(t, c.Seen("plan-1", "alice|other-agent"))

	assert.True(t, c.Seen("plan-1", "bob|agent"))
	assert.Equal(t, 2, c.Len())
}

func TestCache_EntryExpires(t *testing.T) {
	c := viewcache.New(20*time.Millisecond, time.Hour)
	defer c.Stop()

	assert.False(t, c.Seen("plan-1", "alice|agent"))
	time.Sleep(30 * time.Millisecond)
	assert.False(t, c.Seen("plan-1", "alice|agent"), "expired entry counts as unseen")
}

func TestCache_SweeperEvicts(t *testing.T) {
	c := viewcache.New(10*time.Millisecond, 10*time.Millisecond)
	defer c.Stop()

	c.Seen("plan-1", "alice|agent")
	c.Seen("plan-2", "bob|agent")
	assert.Equal(t, 2, c.Len())

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestCache_StopIdempotent(t *testing.T) {
	c := viewcache.New(time.Hour, time.Hour)
	c.Stop()
	c.Stop()
}

func TestCache_ConcurrentSeen(t *testing.T) {
	c := viewcache.New(time.Hour, time.Hour)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("viewer-%d|agent", n)
			for j := 0; j < 100; j++ {
				c.Seen("plan-1", key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
	for i := 0; i < 16; i++ {
		assert.True(t, c.Seen("plan-1", fmt.Sprintf("viewer-%d|agent", i)))
	}
}
