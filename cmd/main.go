package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"arendago/backend/internal/api/handler"
	"arendago/backend/internal/complaint"
	"arendago/backend/internal/config"
	"arendago/backend/internal/conversation"
	"arendago/backend/internal/events"
	"arendago/backend/internal/listing"
	"arendago/backend/internal/matching"
	"arendago/backend/internal/models"
	"arendago/backend/internal/notification"
	"arendago/backend/internal/scheduler"
	"arendago/backend/internal/storage"
	"arendago/backend/internal/subscription"
	"arendago/backend/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Draft{},
		&models.Listing{},
		&models.Complaint{},
		&models.BlacklistEntry{},
		&models.Subscription{},
		&models.NotificationLog{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting ArendaGo Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN не задан!")
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Не удалось подключиться к Telegram Bot API: %v", err)
	}

	// Сервисы ядра
	sender := telegram.NewChannelService(bot, cfg)
	listings := listing.NewService(s, cfg)
	matcher := matching.NewService(s)
	notifier := notification.NewService(s, sender, cfg)
	complaints := complaint.NewService(s, cfg)
	subscriptions := subscription.NewService(s)

	engine := conversation.NewEngine(s, sender, listings, matcher, notifier, complaints, subscriptions, cfg)
	botService := telegram.NewBotService(bot, engine)

	// Live-лента и планировщик
	hub := events.NewHub(s)
	sched := scheduler.New(s, listings, sender)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	go hub.Run()
	go botService.Run()

	// HTTP API
	r := gin.Default()
	h := handler.NewHandler(s, listings, complaints, hub, cfg)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
