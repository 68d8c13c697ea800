package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender 抽象出 Telegram 发送能力，便于替换和测试。
type Sender interface {
	Reply(ctx context.Context, chatID int64, msg string) error
	StartListener(ctx context.Context, handleMessage func(msg *tgbotapi.Message)) error
}

type NoopSender struct{}

func (NoopSender) Reply(ctx context.Context, chatID int64, msg string) error { return nil }
func (NoopSender) StartListener(ctx context.Context, handleMessage func(msg *tgbotapi.Message)) error {
	<-ctx.Done()
	return nil
}

// BotSender 实现了带简单重试和节流的 Telegram 发送能力。
type BotSender struct {
	bot        *tgbotapi.BotAPI
	retryTimes int
	rate       *time.Ticker
	timeout    time.Duration
}

func NewBotSender(token string, retryTimes int, rateInterval time.Duration, timeout time.Duration) (*BotSender, error) {
	if token == "" {
		return nil, errors.New("telegram token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &BotSender{
		bot:        bot,
		retryTimes: retryTimes,
		rate:       time.NewTicker(rateInterval),
		timeout:    timeout,
	}, nil
}

const tgMaxLen = 3800

func (s *BotSender) Reply(ctx context.Context, chatID int64, msg string) error {
	parts := splitTelegramText(msg, tgMaxLen)
	for i, p := range parts {
		if len(parts) > 1 {
			p = fmt.Sprintf("(%d/%d)\n%s", i+1, len(parts), p)
		}
		if err := s.sendWithRetry(ctx, tgbotapi.NewMessage(chatID, p)); err != nil {
			return err
		}
	}
	return nil
}

func splitTelegramText(s string, limit int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{""}
	}
	if len(s) <= limit {
		return []string{s}
	}

	var out []string
	for len(s) > limit {
		// 优先在 limit 以内找最后一个换行，其次空格，实在不行硬切。
		cut := strings.LastIndex(s[:limit], "\n")
		if cut < limit/3 {
			cut = strings.LastIndex(s[:limit], " ")
		}
		if cut <= 0 {
			cut = limit
		}

		part := strings.TrimSpace(s[:cut])
		if part != "" {
			out = append(out, part)
		}
		s = strings.TrimSpace(s[cut:])
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}

func (s *BotSender) sendWithRetry(ctx context.Context, msg tgbotapi.MessageConfig) error {
	for attempt := 0; attempt <= s.retryTimes; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.rate.C:
			result := make(chan error, 1)
			sendCtx := ctx
			cancel := func() {}
			if s.timeout > 0 {
				sendCtx, cancel = context.WithTimeout(ctx, s.timeout)
			}

			go func() {
				_, err := s.bot.Send(msg)
				result <- err
			}()

			select {
			case <-sendCtx.Done():
				cancel()
				if attempt == s.retryTimes {
					return fmt.Errorf("发送 Telegram 超时: %w", sendCtx.Err())
				}
				continue
			case err := <-result:
				cancel()
				if err == nil {
					return nil
				}
				if attempt == s.retryTimes {
					return fmt.Errorf("发送 Telegram 失败: %w", err)
				}
				time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			}
		}
	}
	return nil
}

func (s *BotSender) StartListener(ctx context.Context, handleMessage func(msg *tgbotapi.Message)) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case up := <-updates:
			if up.Message != nil && handleMessage != nil {
				handleMessage(up.Message)
			}
		}
	}
}
