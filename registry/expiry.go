package registry

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/likexian/whois"
	"github.com/openrdap/rdap"

	"DomainCheck/domain"
)

// Expiry 尽力查一个已注册域名的到期日（YYYY-MM-DD）。RDAP 优先，
// 拿不到再扫 whois 原文。纯粹是给用户回复补充信息，失败不影响主流程。
func (c *Client) Expiry(ctx context.Context, name domain.Name) (string, bool) {
	type result struct {
		date string
		ok   bool
	}
	ch := make(chan result, 1)

	go func() {
		if date, ok := expiryFromRDAP(name.String()); ok {
			ch <- result{date: date, ok: true}
			return
		}
		date, ok := expiryFromWhois(name.String())
		ch <- result{date: date, ok: ok}
	}()

	select {
	case <-ctx.Done():
		return "", false
	case res := <-ch:
		return res.date, res.ok
	}
}

func expiryFromRDAP(name string) (string, bool) {
	client := &rdap.Client{}
	d, err := client.QueryDomain(name)
	if err != nil {
		return "", false
	}
	for _, event := range d.Events {
		if strings.EqualFold(event.Action, "expiration") {
			if parsed, ok := parseExpiryDate(event.Date); ok {
				return parsed, true
			}
		}
	}
	return "", false
}

// whois 原文里可能出现的到期字段，按可信度排序。
var whoisExpiryKeys = []string{
	"Registry Expiry Date:",
	"Registrar Registration Expiration Date:",
	"Expiration Date:",
	"Expiry Date:",
	"expires:",
	"paid-till:",
}

func expiryFromWhois(name string) (string, bool) {
	raw, err := whois.Whois(name)
	if err != nil {
		return "", false
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		// 跳过声明和条款行，避免误把正文日期当到期日。
		if strings.HasPrefix(lower, "notice:") ||
			strings.Contains(lower, "terms of use") ||
			strings.Contains(lower, "disclaimer") {
			continue
		}
		for _, key := range whoisExpiryKeys {
			if strings.HasPrefix(line, key) {
				if parsed, ok := parseExpiryDate(strings.TrimPrefix(line, key)); ok {
					return parsed, true
				}
			}
		}
	}

	if parsed, ok := ExtractExpiry(raw); ok {
		return parsed, true
	}
	return "", false
}

var expiryRegex = regexp.MustCompile(
	`(?i)\b(expiration date|expiration|expiry|expires|expires on|registry expiry date|registry expiration date|paid-till)\b[^0-9A-Za-z]*([0-9A-Za-z ,:/\-T\.Z+]+)`,
)

// ExtractExpiry 从 whois/RDAP 原文里抽取到期日并归一化为 YYYY-MM-DD。
func ExtractExpiry(raw string) (string, bool) {
	match := expiryRegex.FindStringSubmatch(raw)
	if len(match) < 3 {
		return "", false
	}
	return parseExpiryDate(match[2])
}

var expiryLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"02-Jan-2006",
	"Jan 02, 2006",
	"January 2 2006",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

func parseExpiryDate(s string) (string, bool) {
	cleaned := strings.TrimSpace(strings.Trim(s, ":"))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
