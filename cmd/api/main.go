package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srgjo27/event_ticketing/internal/adapter/handler"
	"github.com/srgjo27/event_ticketing/internal/adapter/repository/postgres"
	"github.com/srgjo27/event_ticketing/internal/config"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
	"github.com/srgjo27/event_ticketing/internal/core/services"
	"github.com/srgjo27/event_ticketing/internal/notify"
	"github.com/srgjo27/event_ticketing/internal/platform/cache"
	"github.com/srgjo27/event_ticketing/internal/platform/database"
	"github.com/srgjo27/event_ticketing/internal/qrcode"
	"github.com/srgjo27/event_ticketing/internal/vnpay"
)

func main() {
	cfg := config.Load()

	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := cache.NewClient(cfg.Redis.Addr)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	if cfg.Gateway.HashSecret == "" {
		log.Fatal("VNP_HASH_SECRET must be set")
	}

	gateway := vnpay.Config{
		TmnCode:    cfg.Gateway.TmnCode,
		HashSecret: cfg.Gateway.HashSecret,
		PayURL:     cfg.Gateway.PayURL,
		ReturnURL:  cfg.Gateway.ReturnURL,
	}

	ticketRepo := postgres.NewTicketRepository(db)
	billRepo := postgres.NewBillRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	walletRepo := postgres.NewWalletRepository(db)

	seatCache := cache.NewSeatCache(redisClient)
	replayGuard := cache.NewReplayGuard(redisClient)
	coder := qrcode.NewGenerator()

	var notifier ports.Notifier = notify.NoopNotifier{}
	if pn := (notify.Config{
		PublishKey:   cfg.PubNub.PublishKey,
		SubscribeKey: cfg.PubNub.SubscribeKey,
	}); pn.Enabled() {
		notifier = notify.NewPubNubNotifier(pn)
		log.Println("PubNub notifications enabled")
	}

	holdService := services.NewHoldService(eventRepo, ticketRepo, seatCache, gateway)
	settlementService := services.NewSettlementService(
		eventRepo, ticketRepo, billRepo, seatCache, notifier, coder, replayGuard, gateway.HashSecret)
	checkinService := services.NewCheckinService(ticketRepo, eventRepo, cfg.Gate)
	reportService := services.NewReportService(reportRepo, ticketRepo, notifier)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	handler.NewPaymentHandler(holdService, settlementService, walletRepo, cfg.Gateway.FrontendResultURL).Register(api)
	handler.NewCheckinHandler(checkinService).Register(api)
	handler.NewReportHandler(reportService).Register(api)
	handler.NewSeatHandler(holdService).Register(api)

	go func() {
		log.Printf("Server starting on port :%s", cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
