package app

import (
	"context"
	"errors"
	"log"

	"DomainCheck/domain"
	"DomainCheck/scraper"
)

var ErrMissingDependencies = errors.New("missing dependencies")

// Scraper 是主解析源，渲染失败返回 scraper.ErrScrapeUnavailable。
type Scraper interface {
	Scrape(ctx context.Context, name domain.Name) (domain.CheckResult, error)
}

// Registry 是次级解析源，查不到就返回 status=unknown，从不报错。
type Registry interface {
	Lookup(ctx context.Context, name domain.Name) domain.CheckResult
}

type ResultCache interface {
	Get(key string) (domain.CheckResult, bool)
	Set(key string, result domain.CheckResult)
}

// CheckService 串起完整的解析流程：校验 → 查缓存 → 抓取 → 注册局回退/补强 → 写缓存。
// 抓取源带价格信息但不可靠，注册局只回答二元问题但更权威；抓取给出确定
// 结论（available/taken）时直接采信，不再咨询注册局。
type CheckService struct {
	Scraper  Scraper
	Registry Registry
	Cache    ResultCache
}

// Check 解析一个原始输入。只有输入校验错误会返回 error，
// 其余失败都折算成 unknown/fallback 的正常结果。
func (s *CheckService) Check(ctx context.Context, raw string) (domain.CheckResult, error) {
	if s.Scraper == nil {
		return domain.CheckResult{}, ErrMissingDependencies
	}

	name, err := domain.Validate(raw)
	if err != nil {
		return domain.CheckResult{}, err
	}

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(name.String()); ok {
			return cached, nil
		}
	}

	result, err := s.Scraper.Scrape(ctx, name)
	switch {
	case err != nil:
		if !errors.Is(err, scraper.ErrScrapeUnavailable) {
			log.Printf("[check] scrape_error domain=%s err=%v", name, err)
		} else {
			log.Printf("[check] scrape_unavailable domain=%s err=%v", name, err)
		}
		result = s.registryFallback(ctx, name)
	case result.Status == domain.StatusUnknown:
		// 页面加载成功但看不出结论，用注册局结果补强；注册局也不确定就保留原样。
		if reg := s.registryLookup(ctx, name); reg.Status != domain.StatusUnknown {
			result = reg
		}
	}

	if s.Cache != nil {
		// unknown 也写入缓存：这个 TTL 窗口内的答案就是它，不反复重抓。
		s.Cache.Set(name.String(), result)
	}
	return result, nil
}

func (s *CheckService) registryFallback(ctx context.Context, name domain.Name) domain.CheckResult {
	if reg := s.registryLookup(ctx, name); reg.Status != domain.StatusUnknown {
		return reg
	}
	return domain.CheckResult{Domain: name, Status: domain.StatusUnknown, Source: domain.SourceFallback}
}

func (s *CheckService) registryLookup(ctx context.Context, name domain.Name) domain.CheckResult {
	if s.Registry == nil {
		return domain.CheckResult{Domain: name, Status: domain.StatusUnknown, Source: domain.SourceRegistry}
	}
	return s.Registry.Lookup(ctx, name)
}
