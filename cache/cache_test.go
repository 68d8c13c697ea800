package cache

import (
	"testing"
	"time"

	"DomainCheck/domain"
)

func TestGetReturnsStoredResultWithinTTL(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	c := New(6 * time.Hour)
	c.now = func() time.Time { return clock }

	want := domain.CheckResult{
		Domain: "example.com",
		Status: domain.StatusAvailable,
		Tier:   domain.TierRegisterable,
		Price:  "$8.88/yr",
		Source: domain.SourceScraper,
	}
	c.Set("example.com", want)

	clock = base.Add(6*time.Hour - time.Second)
	got, ok := c.Get("example.com")
	if !ok {
		t.Fatal("expected cache hit before TTL expiry")
	}
	if got != want {
		t.Fatalf("cached result changed: %+v", got)
	}
}

func TestGetEvictsExpiredEntry(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	c := New(6 * time.Hour)
	c.now = func() time.Time { return clock }

	c.Set("example.com", domain.CheckResult{Domain: "example.com", Status: domain.StatusTaken, Source: domain.SourceScraper})

	clock = base.Add(6 * time.Hour)
	if _, ok := c.Get("example.com"); ok {
		t.Fatal("expected miss at exactly TTL age")
	}
	// 过期条目应已被清除，即使时钟回拨也不应复活。
	clock = base
	if _, ok := c.Get("example.com"); ok {
		t.Fatal("expected evicted entry to stay gone")
	}
}

func TestGetMissesUnknownKey(t *testing.T) {
	c := New(time.Hour)
	if _, ok := c.Get("missing.net"); ok {
		t.Fatal("expected miss for never-stored key")
	}
}

func TestSetOverwritesUnconditionally(t *testing.T) {
	c := New(time.Hour)
	c.Set("example.net", domain.CheckResult{Domain: "example.net", Status: domain.StatusUnknown, Source: domain.SourceFallback})
	c.Set("example.net", domain.CheckResult{Domain: "example.net", Status: domain.StatusTaken, Source: domain.SourceRegistry})

	got, ok := c.Get("example.net")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Status != domain.StatusTaken || got.Source != domain.SourceRegistry {
		t.Fatalf("expected overwritten result, got %+v", got)
	}
}
