package telegram

import (
	"context"
	"errors"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"DomainCheck/domain"
)

// Checker 是域名解析入口，只有输入校验错误会返回 error。
type Checker interface {
	Check(ctx context.Context, raw string) (domain.CheckResult, error)
}

// ExpiryProber 给已注册域名补充到期日，查不到返回 false。
type ExpiryProber interface {
	Expiry(ctx context.Context, name domain.Name) (string, bool)
}

// MessageHandler 处理私聊/群组消息：/start 和 /help 回帮助文案，
// 其他文本取第一个 .com/.net 候选交给解析服务。
type MessageHandler struct {
	Checker      Checker
	Expiry       ExpiryProber
	Sender       Sender
	AllowedChat  int64 // 0 表示不限制
	CheckTimeout time.Duration
}

const helpText = `Hi! Send me a domain like brand.com or name.net.
I support only .com and .net and I'll reply with:
- status (available/taken)
- tier (registerable/premium/review)
- price if visible`

func (h *MessageHandler) HandleMessage(msg *tgbotapi.Message) {
	if msg == nil || msg.Chat == nil {
		return
	}
	if h.AllowedChat != 0 && msg.Chat.ID != h.AllowedChat {
		return
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			h.reply(chatID, helpText)
		}
		return
	}

	candidate := domain.ExtractFromText(msg.Text)
	if candidate == "" {
		h.reply(chatID, "❌ Please send a .com or .net domain, e.g. example.com")
		return
	}

	h.reply(chatID, "🔎 Checking…")
	go h.resolve(chatID, candidate)
}

func (h *MessageHandler) resolve(chatID int64, candidate string) {
	ctx := context.Background()
	cancel := func() {}
	if h.CheckTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, h.CheckTimeout)
	}
	defer cancel()

	result, err := h.Checker.Check(ctx, candidate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFormat) || errors.Is(err, domain.ErrInvalidLabel) {
			h.reply(chatID, "❌ "+err.Error())
			return
		}
		log.Printf("[bot] check_failed domain=%s err=%v", candidate, err)
		h.reply(chatID, "⚪ Something went wrong, try again later.")
		return
	}

	text := FormatResult(result)
	if result.Status == domain.StatusTaken && h.Expiry != nil {
		if date, ok := h.Expiry.Expiry(ctx, result.Domain); ok {
			text += "\n📅 Expires: " + date
		}
	}
	h.reply(chatID, text)
}

func (h *MessageHandler) reply(chatID int64, text string) {
	if err := h.Sender.Reply(context.Background(), chatID, text); err != nil {
		log.Printf("[bot] reply_failed chat=%d err=%v", chatID, err)
	}
}

// FormatResult 按 status/tier 组合出一行用户可读的结论。
// unknown 统一说 "try again"，不向用户暴露内部错误。
func FormatResult(res domain.CheckResult) string {
	d := res.Domain.String()
	switch res.Status {
	case domain.StatusTaken:
		return "❌ " + d + " is already registered."
	case domain.StatusAvailable:
		info := "✅ Available"
		switch res.Tier {
		case domain.TierRegisterable:
			info += ", registerable"
		case domain.TierPremium:
			info += ", premium/aftermarket"
		case domain.TierReview:
			info += ", needs review"
		}
		if res.Price != "" {
			info += " — Price: " + res.Price
		}
		return d + ": " + info
	default:
		return "⚪ " + d + ": status unknown (try again later)."
	}
}
