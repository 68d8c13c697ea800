package domain

import (
	"errors"
	"regexp"
	"strings"
)

// 仅支持 .com 和 .net，其他后缀一律拒绝，不做静默纠正。
var (
	ErrInvalidFormat = errors.New("only .com and .net domains are supported")
	ErrInvalidLabel  = errors.New("label cannot start or end with '-'")
)

var (
	nameRegex    = regexp.MustCompile(`^[a-z0-9-]+\.(com|net)$`)
	extractRegex = regexp.MustCompile(`(?i)\b([a-z0-9-]+\.(?:com|net))\b`)
)

// Name 是校验过的域名，只能由 Validate 构造。
type Name string

func (n Name) String() string { return string(n) }

// TLD 返回带点的后缀，例如 ".com"。
func (n Name) TLD() string {
	idx := strings.LastIndex(string(n), ".")
	if idx < 0 {
		return ""
	}
	return string(n)[idx:]
}

// Validate 归一化并校验原始输入。任何网络或缓存访问之前都必须先过这里。
func Validate(raw string) (Name, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	if !nameRegex.MatchString(d) {
		return "", ErrInvalidFormat
	}
	label := d[:strings.LastIndex(d, ".")]
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return "", ErrInvalidLabel
	}
	return Name(d), nil
}

// ExtractFromText 从自由文本中取出第一个形如 label.com/label.net 的候选，
// 找不到返回空串。候选仍需经过 Validate。
func ExtractFromText(text string) string {
	m := extractRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}
