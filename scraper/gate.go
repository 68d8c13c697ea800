package scraper

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// RenderGate 限制同时进行的页面渲染数量，并保证任意两次渲染的启动间隔
// 不小于 minInterval（全局计，不按域名区分）。间隔约束的是启动时间，
// 不保证完成顺序。
type RenderGate struct {
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

func NewRenderGate(maxConcurrency int64, minInterval time.Duration) *RenderGate {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &RenderGate{
		sem:     semaphore.NewWeighted(maxConcurrency),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Acquire 先占用一个并发额度，再等待启动间隔。两步都可被 ctx 取消，
// 取消时不泄漏额度。
func (g *RenderGate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	if err := g.limiter.Wait(ctx); err != nil {
		g.sem.Release(1)
		return err
	}
	return nil
}

func (g *RenderGate) Release() {
	g.sem.Release(1)
}
