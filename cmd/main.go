package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/adapter/postgres"
	"github.com/emilybakes/bakery/internal/adapter/rabbitmq"
	"github.com/emilybakes/bakery/internal/app/order"
	"github.com/emilybakes/bakery/internal/app/report"
	"github.com/emilybakes/bakery/internal/app/staff"
	"github.com/emilybakes/bakery/internal/app/tracking"
	"github.com/emilybakes/bakery/internal/auth"
	"github.com/emilybakes/bakery/internal/config"
	"github.com/emilybakes/bakery/internal/notify"
	"github.com/emilybakes/bakery/internal/seed"
	"go.uber.org/zap"

	amqpAdapter "github.com/emilybakes/bakery/internal/adapter/amqp"
	httpAdapter "github.com/emilybakes/bakery/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: api-service, tracking-service, notification-subscriber, seed")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "HTTP port override")
	flag.Parse()

	if *mode == "" {
		fmt.Fprintln(os.Stderr, "--mode flag is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port == 0 {
		*port = cfg.Server.Port
	}

	logger.Init(cfg.App.Env)
	defer logger.Sync()
	log := logger.L()

	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	log.Info("connected to PostgreSQL",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	switch *mode {
	case "api-service":
		runAPIService(ctx, cfg, db, *port)
	case "tracking-service":
		runTrackingService(cfg, db, *port)
	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg)
	case "seed":
		runSeed(ctx, db)
	default:
		log.Fatal("invalid mode", zap.String("mode", *mode))
	}
}

// runAPIService serves the full admin API plus the public tracking route.
func runAPIService(ctx context.Context, cfg *config.Config, db postgres.DB, port int) {
	log := logger.L()

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()
	log.Info("connected to RabbitMQ", zap.String("host", cfg.RabbitMQ.Host))

	orderRepo := postgres.NewOrderRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	publisher := rabbitmq.NewPublisher(mqConn)

	tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Orders:   order.NewService(orderRepo, customerRepo, publisher),
		Tracking: tracking.NewService(orderRepo, customerRepo),
		Reports:  report.NewService(orderRepo),
		Auth:     staff.NewService(staffRepo, tokens),
		Tokens:   tokens,
	})

	serve("api-service", router, port)
}

// runTrackingService serves only the public tracking route, for deployments
// that keep the admin API off the public network.
func runTrackingService(cfg *config.Config, db postgres.DB, port int) {
	orderRepo := postgres.NewOrderRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)

	trackingHandler := httpAdapter.NewTrackingHandler(tracking.NewService(orderRepo, customerRepo))

	r := httpAdapter.NewPublicRouter(trackingHandler)
	serve("tracking-service", r, port)
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config) {
	log := logger.L()

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()
	log.Info("connected to RabbitMQ", zap.String("host", cfg.RabbitMQ.Host))

	consumer := rabbitmq.NewConsumer(mqConn)
	handler := amqpAdapter.NewNotificationHandler(
		notify.NewRenderer(cfg.App.PublicBaseURL),
		notify.NewLogMailer(),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := consumer.ConsumeNotifications(ctx, handler.HandleNotification); err != nil && ctx.Err() == nil {
			log.Error("notification consumer stopped", zap.Error(err))
		}
	}()

	log.Info("notification subscriber started")

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	log.Info("shutting down notification subscriber")
}

func runSeed(ctx context.Context, db postgres.DB) {
	seeder := seed.New(
		postgres.NewOrderRepository(db),
		postgres.NewCustomerRepository(db),
		postgres.NewStaffRepository(db),
	)
	if err := seeder.Run(ctx); err != nil {
		logger.L().Fatal("seeding failed", zap.Error(err))
	}
}

func serve(name string, handler http.Handler, port int) {
	log := logger.L()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("shutting down", zap.String("service", name))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	}()

	log.Info("service started", zap.String("service", name), zap.Int("port", port))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", zap.Error(err))
	}
}
