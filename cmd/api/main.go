package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	rd "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ayurbliss/wellness-backend/internal/admin"
	"github.com/ayurbliss/wellness-backend/internal/appointment"
	"github.com/ayurbliss/wellness-backend/internal/checkout"
	"github.com/ayurbliss/wellness-backend/internal/config"
	"github.com/ayurbliss/wellness-backend/internal/contact"
	"github.com/ayurbliss/wellness-backend/internal/database"
	"github.com/ayurbliss/wellness-backend/internal/gallery"
	"github.com/ayurbliss/wellness-backend/internal/middleware"
	"github.com/ayurbliss/wellness-backend/internal/order"
	"github.com/ayurbliss/wellness-backend/internal/product"
	"github.com/ayurbliss/wellness-backend/internal/queue"
	"github.com/ayurbliss/wellness-backend/internal/review"
	"github.com/ayurbliss/wellness-backend/internal/shipping"
	"github.com/ayurbliss/wellness-backend/internal/upload"
)

func main() {
	_ = godotenv.Load()

	log := newLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// shipping worker: registers paid orders with Shiprocket
	var shippingClient *shipping.Client
	if cfg.ShippingConfigured() {
		shippingClient = shipping.NewClient(cfg.ShiprocketAPIURL, cfg.ShiprocketEmail, cfg.ShiprocketPassword)
	} else {
		log.Warn("shiprocket credentials not set, shipments will use placeholder ids")
	}
	shippingService := shipping.NewService(shipping.NewPostgresRepository(db), shippingClient, log)

	// shipment tasks go through Kafka when brokers are configured,
	// otherwise straight to a goroutine
	var dispatcher queue.Dispatcher
	if len(cfg.KafkaBrokers) > 0 {
		producer := queue.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		consumer := queue.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, shippingService.HandleTask, log)
		defer consumer.Close()
		go consumer.Run(ctx)
		dispatcher = producer
	} else {
		dispatcher = queue.NewInProcessDispatcher(shippingService.HandleTask)
	}

	orderRepo := order.NewPostgresRepository(db)
	gateway := checkout.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	checkoutService := checkout.NewService(gateway, orderRepo, dispatcher, cfg.RazorpayKeySecret, log)

	productService := product.NewService(product.NewPostgresRepository(db))
	reviewService := review.NewService(review.NewPostgresRepository(db))
	appointmentService := appointment.NewService(appointment.NewPostgresRepository(db))
	contactService := contact.NewService(contact.NewPostgresRepository(db))
	galleryService := gallery.NewService(gallery.NewPostgresRepository(db))

	app := fiber.New(fiber.Config{AppName: "wellness-backend"})
	app.Use(cors.New())

	// limit the purchase-path endpoints only; browsing stays unthrottled
	if cfg.RedisAddr != "" {
		rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer rdb.Close()
		limit := middleware.RedisRateLimit(rdb, cfg.RateLimit, cfg.RateWindow)
		app.Use("/api/payments", limit)
		app.Use("/api/appointments", limit)
	}

	app.Static("/uploads", cfg.UploadDir)

	productHandler := product.NewHandler(productService, log)
	reviewHandler := review.NewHandler(reviewService, log)
	appointmentHandler := appointment.NewHandler(appointmentService, log)
	contactHandler := contact.NewHandler(contactService, log)
	galleryHandler := gallery.NewHandler(galleryService, log)
	checkoutHandler := checkout.NewHandler(checkoutService, log)
	shippingHandler := shipping.NewHandler(shippingService, log)
	orderHandler := order.NewHandler(orderRepo, log)
	adminHandler := admin.NewHandler(cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret, log)
	uploadHandler := upload.NewHandler(cfg.UploadDir, log)

	productHandler.RegisterOpsRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	appointmentHandler.RegisterPublicRoutes(app)
	contactHandler.RegisterPublicRoutes(app)
	galleryHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)
	shippingHandler.RegisterPublicRoutes(app)
	adminHandler.RegisterPublicRoutes(app)

	// everything under /api/admin (except login, registered above) and
	// /api/upload requires an admin token
	protect := middleware.Protect(cfg.JWTSecret)
	app.Use("/api/admin", protect)
	app.Use("/api/upload", protect)

	productHandler.RegisterAdminRoutes(app)
	reviewHandler.RegisterAdminRoutes(app)
	appointmentHandler.RegisterAdminRoutes(app)
	contactHandler.RegisterAdminRoutes(app)
	galleryHandler.RegisterAdminRoutes(app)
	orderHandler.RegisterAdminRoutes(app)
	uploadHandler.RegisterAdminRoutes(app)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("starting server", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	log, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
