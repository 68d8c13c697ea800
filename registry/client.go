package registry

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"DomainCheck/domain"
)

// 每个支持的后缀对应一个固定的 RDAP 权威端点。
var DefaultEndpoints = map[string]string{
	".com": "https://rdap.verisign.com/com/v1/domain/",
	".net": "https://rdap.verisign.com/net/v1/domain/",
}

// Client 向注册局 RDAP 端点做二元判定：200 视为已注册，404 视为可注册。
// 其他状态码和传输错误都降级为 unknown，错误不会越过这层边界。
type Client struct {
	HTTPClient *http.Client
	Endpoints  map[string]string
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Endpoints:  DefaultEndpoints,
	}
}

// Lookup 查询域名后缀对应的注册局端点，结果固定标记 source=registry。
// 注册局只回答注册与否，分不出价格档位，所以 404 一律按 registerable 处理。
func (c *Client) Lookup(ctx context.Context, name domain.Name) domain.CheckResult {
	result := domain.CheckResult{
		Domain: name,
		Status: domain.StatusUnknown,
		Source: domain.SourceRegistry,
	}

	base, ok := c.Endpoints[name.TLD()]
	if !ok {
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+name.String(), nil)
	if err != nil {
		log.Printf("[registry] request_build_failed domain=%s err=%v", name, err)
		return result
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		log.Printf("[registry] lookup_failed domain=%s err=%v", name, err)
		return result
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		result.Status = domain.StatusTaken
	case http.StatusNotFound:
		result.Status = domain.StatusAvailable
		result.Tier = domain.TierRegisterable
	default:
		log.Printf("[registry] unexpected_status domain=%s status=%d", name, resp.StatusCode)
	}
	return result
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
