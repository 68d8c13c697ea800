package cache

import (
	"sync"
	"time"

	"DomainCheck/domain"
)

type entry struct {
	result     domain.CheckResult
	recordedAt time.Time
}

// ResultCache 按域名缓存解析结果，带 TTL，过期条目在下次读取时惰性清除。
// 没有容量上限，进程重启即清空。
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func New(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get 返回未过期的缓存结果。读取不刷新 TTL。
func (c *ResultCache) Get(key string) (domain.CheckResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.CheckResult{}, false
	}
	if c.now().Sub(e.recordedAt) >= c.ttl {
		delete(c.entries, key)
		return domain.CheckResult{}, false
	}
	return e.result, true
}

// Set 无条件覆盖写入。
func (c *ResultCache) Set(key string, result domain.CheckResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{result: result, recordedAt: c.now()}
}
