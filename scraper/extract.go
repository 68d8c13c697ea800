package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VisibleText 从原始 HTML 提取可见文本，去掉 script/style/noscript。
// 渲染器拿不到 body innerText 时作为正文来源。
func VisibleText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	body := doc.Find("body")
	if body.Length() == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.TrimSpace(body.Text())
}
