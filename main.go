package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"DomainCheck/cache"
	"DomainCheck/config"
	"DomainCheck/httpapi"
	"DomainCheck/internal/app"
	"DomainCheck/registry"
	"DomainCheck/scraper"
	"DomainCheck/telegram"
)

func main() {
	// .env 可选，便于本地开发。
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("加载 .env 失败: %v", err)
	}
	if err := config.Load("config.yaml"); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gate := scraper.NewRenderGate(config.Cfg.Scraper.MaxConcurrency, config.Cfg.Scraper.MinInterval)
	pricing := scraper.Pricing{
		LowMax:     config.Cfg.Pricing.LowMax,
		PremiumMin: config.Cfg.Pricing.PremiumMin,
	}
	spaceship := scraper.NewSpaceshipScraper(gate, pricing)
	spaceship.UserAgent = config.Cfg.Scraper.UserAgent
	spaceship.NavTimeout = config.Cfg.Scraper.NavTimeout
	if config.Cfg.Scraper.SearchURL != "" {
		spaceship.SearchURL = config.Cfg.Scraper.SearchURL
	}

	registryClient := registry.NewClient()
	service := &app.CheckService{
		Scraper:  spaceship,
		Registry: registryClient,
		Cache:    cache.New(config.Cfg.Cache.TTL),
	}

	var sender telegram.Sender
	botSender, err := telegram.NewBotSender(config.Cfg.Telegram.BotToken, 2, time.Second, 10*time.Second)
	if err != nil {
		log.Printf("初始化 Telegram 失败，使用空实现: %v", err)
		sender = telegram.NoopSender{}
	} else {
		sender = botSender
	}

	handler := &telegram.MessageHandler{
		Checker:      service,
		Expiry:       registryClient,
		Sender:       sender,
		AllowedChat:  config.Cfg.Telegram.ChatID,
		CheckTimeout: 60 * time.Second,
	}

	go func() {
		if err := sender.StartListener(ctx, handler.HandleMessage); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Telegram 监听停止: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:    config.Cfg.HTTP.ListenAddr,
		Handler: httpapi.NewServer(service).Routes(),
	}
	go func() {
		log.Printf("[http] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务退出: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("收到退出信号，开始关闭")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP 关闭失败: %v", err)
	}
}
