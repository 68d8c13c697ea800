package domain

type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusUnknown   Status = "unknown"
)

// Tier 只在 status=available 时有意义；空串表示无法分级。
type Tier string

const (
	TierRegisterable Tier = "registerable"
	TierPremium      Tier = "premium"
	TierReview       Tier = "review"
)

type Source string

const (
	SourceScraper  Source = "scraper"
	SourceRegistry Source = "registry"
	SourceFallback Source = "fallback"
)

// CheckResult 是一次解析的最终输出，写入缓存后不再修改。
type CheckResult struct {
	Domain Name   `json:"domain"`
	Status Status `json:"status"`
	Tier   Tier   `json:"tier,omitempty"`
	Price  string `json:"price,omitempty"`
	Source Source `json:"source"`
}
