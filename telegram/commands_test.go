package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"DomainCheck/domain"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeSender) Reply(ctx context.Context, chatID int64, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeSender) StartListener(ctx context.Context, handleMessage func(msg *tgbotapi.Message)) error {
	<-ctx.Done()
	return nil
}

func (f *fakeSender) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

type fakeChecker struct {
	result domain.CheckResult
	raw    string
}

func (f *fakeChecker) Check(ctx context.Context, raw string) (domain.CheckResult, error) {
	f.raw = raw
	return f.result, nil
}

type fakeProber struct{ date string }

func (f *fakeProber) Expiry(ctx context.Context, name domain.Name) (string, bool) {
	if f.date == "" {
		return "", false
	}
	return f.date, true
}

func textMessage(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func commandMessage(chatID int64, cmd string) *tgbotapi.Message {
	msg := textMessage(chatID, cmd)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	return msg
}

func TestHandleMessageStartCommandRepliesHelp(t *testing.T) {
	sender := &fakeSender{}
	h := &MessageHandler{Checker: &fakeChecker{}, Sender: sender}

	h.HandleMessage(commandMessage(42, "/start"))

	msgs := sender.all()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0], ".com and .net") {
		t.Fatalf("expected help text, got %q", msgs[0])
	}
}

func TestHandleMessageWithoutDomainReplies(t *testing.T) {
	sender := &fakeSender{}
	h := &MessageHandler{Checker: &fakeChecker{}, Sender: sender}

	h.HandleMessage(textMessage(42, "hello there"))

	msgs := sender.all()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "❌") {
		t.Fatalf("expected rejection reply, got %v", msgs)
	}
}

func TestHandleMessageIgnoresOtherChats(t *testing.T) {
	sender := &fakeSender{}
	h := &MessageHandler{Checker: &fakeChecker{}, Sender: sender, AllowedChat: 1}

	h.HandleMessage(textMessage(2, "example.com"))

	if len(sender.all()) != 0 {
		t.Fatal("expected message from other chat to be ignored")
	}
}

func TestResolveRepliesVerdict(t *testing.T) {
	sender := &fakeSender{}
	checker := &fakeChecker{result: domain.CheckResult{
		Domain: "cheap-name.net",
		Status: domain.StatusAvailable,
		Tier:   domain.TierRegisterable,
		Price:  "$8.88/yr",
		Source: domain.SourceScraper,
	}}
	h := &MessageHandler{Checker: checker, Sender: sender}

	h.resolve(42, "cheap-name.net")

	msgs := sender.all()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0], "registerable") || !strings.Contains(msgs[0], "$8.88/yr") {
		t.Fatalf("unexpected verdict: %q", msgs[0])
	}
	if checker.raw != "cheap-name.net" {
		t.Fatalf("unexpected candidate passed to checker: %q", checker.raw)
	}
}

func TestResolveAppendsExpiryForTakenDomains(t *testing.T) {
	sender := &fakeSender{}
	checker := &fakeChecker{result: domain.CheckResult{
		Domain: "example.com",
		Status: domain.StatusTaken,
		Source: domain.SourceScraper,
	}}
	h := &MessageHandler{Checker: checker, Sender: sender, Expiry: &fakeProber{date: "2026-03-15"}}

	h.resolve(42, "example.com")

	msgs := sender.all()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0], "already registered") || !strings.Contains(msgs[0], "2026-03-15") {
		t.Fatalf("unexpected reply: %q", msgs[0])
	}
}

func TestFormatResult(t *testing.T) {
	cases := []struct {
		name string
		res  domain.CheckResult
		want []string
	}{
		{
			"taken",
			domain.CheckResult{Domain: "example.com", Status: domain.StatusTaken, Source: domain.SourceScraper},
			[]string{"❌", "already registered"},
		},
		{
			"registerable with price",
			domain.CheckResult{Domain: "cheap-name.net", Status: domain.StatusAvailable, Tier: domain.TierRegisterable, Price: "$8.88/yr", Source: domain.SourceScraper},
			[]string{"✅", "registerable", "$8.88/yr"},
		},
		{
			"premium",
			domain.CheckResult{Domain: "pricey.com", Status: domain.StatusAvailable, Tier: domain.TierPremium, Price: "$45.00/yr", Source: domain.SourceScraper},
			[]string{"premium/aftermarket", "$45.00/yr"},
		},
		{
			"review",
			domain.CheckResult{Domain: "midrange.com", Status: domain.StatusAvailable, Tier: domain.TierReview, Price: "$15.00/yr", Source: domain.SourceScraper},
			[]string{"needs review"},
		},
		{
			"available without tier",
			domain.CheckResult{Domain: "brand.com", Status: domain.StatusAvailable, Source: domain.SourceRegistry},
			[]string{"✅ Available"},
		},
		{
			"unknown",
			domain.CheckResult{Domain: "example.com", Status: domain.StatusUnknown, Source: domain.SourceFallback},
			[]string{"⚪", "try again"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FormatResult(c.res)
			for _, want := range c.want {
				if !strings.Contains(got, want) {
					t.Fatalf("FormatResult(%+v) = %q, missing %q", c.res, got, want)
				}
			}
		})
	}
}

func TestSplitTelegramTextKeepsShortMessages(t *testing.T) {
	parts := splitTelegramText("short message", 100)
	if len(parts) != 1 || parts[0] != "short message" {
		t.Fatalf("unexpected parts: %v", parts)
	}
}

func TestSplitTelegramTextSplitsOnNewlines(t *testing.T) {
	long := strings.Repeat("line one\n", 30)
	parts := splitTelegramText(long, 100)
	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}
	for _, p := range parts {
		if len(p) > 100 {
			t.Fatalf("part exceeds limit: %d bytes", len(p))
		}
	}
}
