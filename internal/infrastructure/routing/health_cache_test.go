package routing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/route-engine/internal/domain"
)

func TestHealthCache(t *testing.T) {
	now := time.Unix(1700000000, 0)
	cache := NewHealthCacheWithClock(30*time.Second, func() time.Time { return now })

	assert.Equal(t, domain.BackendStatusUnknown, cache.Status("valhalla"))

	cache.Set("valhalla", domain.BackendStatusUnavailable)
	assert.Equal(t, domain.BackendStatusUnavailable, cache.Status("valhalla"))

	now = now.Add(29 * time.Second)
	assert.Equal(t, domain.BackendStatusUnavailable, cache.Status("valhalla"))

	now = now.Add(time.Second)
	assert.Equal(t, domain.BackendStatusUnknown, cache.Status("valhalla"))

	cache.Set("valhalla", domain.BackendStatusAvailable)
	cache.Set("valhalla", domain.BackendStatusUnknown)
	assert.Equal(t, domain.BackendStatusUnknown, cache.Status("valhalla"))
}

func TestHealthCache_Concurrent(t *testing.T) {
	cache := NewHealthCache(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				cache.Set("osrm", domain.BackendStatusAvailable)
				return
			}
			_ = cache.Status("osrm")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, domain.BackendStatusAvailable, cache.Status("osrm"))
}
