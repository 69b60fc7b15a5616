package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"course-service/internal/config"
	"course-service/internal/db"
	"course-service/internal/delivery/handler"
	"course-service/internal/delivery/messaging"
	"course-service/internal/infrastructure"
	"course-service/internal/repository"
	"course-service/internal/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	mongoClient, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("❌ Failed to connect to MongoDB:", err)
	}
	log.Println("✅ Connected to MongoDB!")
	database := mongoClient.Database(cfg.MongoDB)

	redisClient, err := infrastructure.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("❌ Failed to connect to Redis:", err)
	}
	log.Println("✅ Connected to Redis!")

	publisher, err := messaging.ConnectNats(cfg.NatsURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to NATS:", err)
	}
	defer publisher.Close()

	slipStore, err := infrastructure.NewSlipStore(cfg)
	if err != nil {
		log.Fatal("❌ Failed to set up slip storage:", err)
	}

	userRepo := repository.NewUserRepo(database)
	courseRepo := repository.NewCourseRepo(database)
	paymentRepo := repository.NewPaymentRepo(database)
	notificationRepo := repository.NewNotificationRepo(database)
	sessionRepo := repository.NewSessionRepo(redisClient)
	presenceRepo := repository.NewPresenceRepo(redisClient)

	tokens := infrastructure.NewTokenService(cfg.JWTSecret)
	mailer := infrastructure.NewMailer(cfg)

	authUC := usecase.NewAuthUsecase(tokens, sessionRepo, userRepo, cfg.OperatorID)
	paymentUC := usecase.NewPaymentUsecase(paymentRepo, courseRepo, userRepo, notificationRepo, slipStore, publisher, mailer)

	gateway := messaging.NewGateway(authUC, paymentUC, presenceRepo)
	notifier := usecase.NewNotifier(presenceRepo, userRepo, notificationRepo, gateway)
	gateway.SetNotifier(notifier)
	defer gateway.Close()

	e := echo.New()
	e.HideBanner = true
	handler.NewHandler(authUC, notifier).Register(e, gateway)

	log.Println("🚀 Server running on", cfg.HTTPAddr)
	log.Fatal(e.Start(cfg.HTTPAddr))
}
