package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"DomainCheck/domain"
)

// Pricing 是价格分档阈值。lowMax 和 premiumMin 之间是 review 区间，
// 留给人工判断，不并入相邻档位。
type Pricing struct {
	LowMax     float64
	PremiumMin float64
}

func DefaultPricing() Pricing {
	return Pricing{LowMax: 10, PremiumMin: 20}
}

// 页面措辞会变，这里集中所有文本规则，方便跟随目标站点调整。
var (
	takenRegex     = regexp.MustCompile(`(?i)(is already registered|is taken|unavailable|not available)`)
	availableRegex = regexp.MustCompile(`(?i)(is available|Add\s+to\s*cart)`)
	premiumRegex   = regexp.MustCompile(`(?i)(Premium|Buy\s*now|Aftermarket|Make\s*an\s*offer)`)
	priceStrRegex  = regexp.MustCompile(`(?i)\$\s*[\d,]+(?:\.\d{1,2})?\s*/?\s*yr?`)
	priceValRegex  = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{1,2})?)`)
)

// ExtractPriceString 取第一个形如 $9.98/yr 的展示价格，去掉空白。
func ExtractPriceString(text string) string {
	m := priceStrRegex.FindString(text)
	if m == "" {
		return ""
	}
	return strings.ReplaceAll(m, " ", "")
}

// ExtractPriceValue 解析第一个美元金额为数值。
func ExtractPriceValue(text string) (float64, bool) {
	m := priceValRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Classify 根据页面文本和已解析金额给出 status/tier。纯函数，永不报错。
// taken 判定优先于任何价格信号：已注册的域名即使残留价格标记也不能报 available。
func Classify(text string, price float64, hasPrice bool, p Pricing) (domain.Status, domain.Tier) {
	if takenRegex.MatchString(text) {
		return domain.StatusTaken, ""
	}

	status := domain.StatusUnknown
	if availableRegex.MatchString(text) {
		status = domain.StatusAvailable
	}

	premiumHint := premiumRegex.MatchString(text)

	if hasPrice {
		switch {
		case price <= p.LowMax:
			return domain.StatusAvailable, domain.TierRegisterable
		case price >= p.PremiumMin || premiumHint:
			return domain.StatusAvailable, domain.TierPremium
		default:
			return domain.StatusAvailable, domain.TierReview
		}
	}
	if premiumHint {
		return domain.StatusAvailable, domain.TierPremium
	}
	return status, ""
}

// Evaluate 把正文和原始 HTML 汇总成一次分类。价格文本可能只出现在标记
// 属性里，所以价格先查 HTML 再查正文；taken/premium 判定只看正文。
func Evaluate(bodyText, html string, p Pricing) (domain.Status, domain.Tier, string) {
	priceStr := ExtractPriceString(html)
	if priceStr == "" {
		priceStr = ExtractPriceString(bodyText)
	}
	price, hasPrice := ExtractPriceValue(html)
	if !hasPrice {
		price, hasPrice = ExtractPriceValue(bodyText)
	}

	status, tier := Classify(bodyText, price, hasPrice, p)
	if status == domain.StatusTaken {
		// 已注册结果不携带价格。
		return status, tier, ""
	}
	return status, tier, priceStr
}
