package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram Telegram `yaml:"telegram"`
	Scraper  Scraper  `yaml:"scraper"`
	Pricing  Pricing  `yaml:"pricing"`
	Cache    Cache    `yaml:"cache"`
	HTTP     HTTP     `yaml:"http"`
}

type Telegram struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatID"` // 0 表示不限制会话
}

type Scraper struct {
	UserAgent      string        `yaml:"userAgent"`
	SearchURL      string        `yaml:"searchURL"`
	NavTimeout     time.Duration `yaml:"navTimeout"`
	MaxConcurrency int64         `yaml:"maxConcurrency"`
	MinInterval    time.Duration `yaml:"minInterval"`
}

type Pricing struct {
	LowMax     float64 `yaml:"lowMax"`
	PremiumMin float64 `yaml:"premiumMin"`
}

type Cache struct {
	TTL time.Duration `yaml:"ttl"`
}

type HTTP struct {
	ListenAddr string `yaml:"listenAddr"`
}

var Cfg Config

// Load 读配置文件后再用环境变量覆盖，文件不存在不算错误（纯环境变量部署）。
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &Cfg); err != nil {
			return fmt.Errorf("解析配置失败: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}

	applyEnv(&Cfg)
	applyDefaults(&Cfg)
	return nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("APP_UA"); v != "" {
		c.Scraper.UserAgent = v
	}
	if v := os.Getenv("MAX_CONCURRENCY"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.Scraper.MaxConcurrency = n
		}
	}
	if v := os.Getenv("MIN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scraper.MinInterval = d
		}
	}
	if v := os.Getenv("PRICE_LOW_MAX"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Pricing.LowMax = f
		}
	}
	if v := os.Getenv("PRICE_PREMIUM_MIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Pricing.PremiumMin = f
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Cache.TTL = d
		}
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.HTTP.ListenAddr = v
	}
}

func applyDefaults(c *Config) {
	if c.Scraper.NavTimeout <= 0 {
		c.Scraper.NavTimeout = 20 * time.Second
	}
	if c.Scraper.MaxConcurrency <= 0 {
		c.Scraper.MaxConcurrency = 3
	}
	if c.Scraper.MinInterval <= 0 {
		c.Scraper.MinInterval = 800 * time.Millisecond
	}
	if c.Pricing.LowMax <= 0 {
		c.Pricing.LowMax = 10
	}
	if c.Pricing.PremiumMin <= 0 {
		c.Pricing.PremiumMin = 20
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 6 * time.Hour
	}
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
}
