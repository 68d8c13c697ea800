package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"DomainCheck/domain"
)

// ErrScrapeUnavailable 表示渲染/导航/超时失败，上层据此走注册局回退。
// 页面加载成功但文本含糊不是错误，返回 status=unknown。
var ErrScrapeUnavailable = errors.New("scrape unavailable")

const (
	defaultSearchURL  = "https://www.spaceship.com/domain-search/?query=%s&beast=false&tab=domains"
	defaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124 Safari/537.36"
	defaultNavTimeout = 20 * time.Second
)

// SpaceshipScraper 用无头浏览器加载注册商搜索页并分类结果。
// 与目标站点的契约只靠页面措辞维系，结果不作为权威答案单独使用。
type SpaceshipScraper struct {
	Gate       *RenderGate
	Pricing    Pricing
	UserAgent  string
	SearchURL  string // 含一个 %s 占位符
	NavTimeout time.Duration
}

func NewSpaceshipScraper(gate *RenderGate, pricing Pricing) *SpaceshipScraper {
	return &SpaceshipScraper{
		Gate:       gate,
		Pricing:    pricing,
		UserAgent:  defaultUserAgent,
		SearchURL:  defaultSearchURL,
		NavTimeout: defaultNavTimeout,
	}
}

// Scrape 渲染搜索页并返回初步分类，标记 source=scraper。
func (s *SpaceshipScraper) Scrape(ctx context.Context, name domain.Name) (domain.CheckResult, error) {
	if s.Gate != nil {
		if err := s.Gate.Acquire(ctx); err != nil {
			return domain.CheckResult{}, fmt.Errorf("%w: %v", ErrScrapeUnavailable, err)
		}
		defer s.Gate.Release()
	}

	bodyText, html, err := s.render(name)
	if err != nil {
		return domain.CheckResult{}, fmt.Errorf("%w: %v", ErrScrapeUnavailable, err)
	}
	if bodyText == "" {
		bodyText = VisibleText(html)
	}

	status, tier, price := Evaluate(bodyText, html, s.Pricing)
	return domain.CheckResult{
		Domain: name,
		Status: status,
		Tier:   tier,
		Price:  price,
		Source: domain.SourceScraper,
	}, nil
}

// render 启动独立浏览器会话取正文和 HTML，所有资源保证关闭。
func (s *SpaceshipScraper) render(name domain.Name) (bodyText string, html string, err error) {
	pw, err := playwright.Run()
	if err != nil {
		return "", "", fmt.Errorf("启动 playwright 失败: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--no-sandbox"},
	})
	if err != nil {
		return "", "", fmt.Errorf("启动浏览器失败: %w", err)
	}
	defer browser.Close()

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(s.userAgent()),
		Viewport:  &playwright.Size{Width: 1280, Height: 900},
	})
	if err != nil {
		return "", "", fmt.Errorf("创建浏览器上下文失败: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", "", fmt.Errorf("创建页面失败: %w", err)
	}

	timeout := float64(s.navTimeout().Milliseconds())
	url := fmt.Sprintf(s.searchURL(), name.String())
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(timeout),
	}); err != nil {
		return "", "", fmt.Errorf("页面导航失败: %w", err)
	}

	// 结果卡片靠脚本渲染，尽量等到网络空闲；等不到就用当前文本。
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(timeout),
	}); err != nil {
		log.Printf("[scrape] networkidle_timeout domain=%s", name)
	}

	bodyText, err = page.InnerText("body")
	if err != nil {
		bodyText = ""
	}
	html, err = page.Content()
	if err != nil {
		return "", "", fmt.Errorf("读取页面内容失败: %w", err)
	}
	return strings.TrimSpace(bodyText), html, nil
}

func (s *SpaceshipScraper) userAgent() string {
	if s.UserAgent != "" {
		return s.UserAgent
	}
	return defaultUserAgent
}

func (s *SpaceshipScraper) searchURL() string {
	if s.SearchURL != "" {
		return s.SearchURL
	}
	return defaultSearchURL
}

func (s *SpaceshipScraper) navTimeout() time.Duration {
	if s.NavTimeout > 0 {
		return s.NavTimeout
	}
	return defaultNavTimeout
}
