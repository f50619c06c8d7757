package routing

import (
	"sync"
	"time"

	"github.com/route-engine/internal/domain"
)

type healthEntry struct {
	status    domain.BackendStatus
	checkedAt time.Time
}

// HealthCache хранит результат проверки доступности бэкендов.
// Запись живёт ttl, после чего статус снова становится unknown.
type HealthCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]healthEntry
}

// NewHealthCache создает кеш с системными часами
func NewHealthCache(ttl time.Duration) *HealthCache {
	return NewHealthCacheWithClock(ttl, time.Now)
}

// NewHealthCacheWithClock создает кеш с заданными часами (для тестов)
func NewHealthCacheWithClock(ttl time.Duration, now func() time.Time) *HealthCache {
	return &HealthCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]healthEntry),
	}
}

// Status возвращает закешированный статус бэкенда
func (h *HealthCache) Status(name string) domain.BackendStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.entries[name]
	if !ok {
		return domain.BackendStatusUnknown
	}
	if h.now().Sub(entry.checkedAt) >= h.ttl {
		delete(h.entries, name)
		return domain.BackendStatusUnknown
	}
	return entry.status
}

// Set фиксирует результат проверки
func (h *HealthCache) Set(name string, status domain.BackendStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if status == domain.BackendStatusUnknown {
		delete(h.entries, name)
		return
	}
	h.entries[name] = healthEntry{status: status, checkedAt: h.now()}
}
