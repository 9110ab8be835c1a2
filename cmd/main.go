package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kokostore/parcel-dashboard/internal/application"
	"github.com/kokostore/parcel-dashboard/internal/carrier/droppex"
	"github.com/kokostore/parcel-dashboard/internal/carrier/firstdelivery"
	"github.com/kokostore/parcel-dashboard/internal/config"
	"github.com/kokostore/parcel-dashboard/internal/kafka"
	"github.com/kokostore/parcel-dashboard/internal/logger"
	"github.com/kokostore/parcel-dashboard/internal/migrate"
	"github.com/kokostore/parcel-dashboard/internal/presentation"
	"github.com/kokostore/parcel-dashboard/internal/repository"
)

func main() {
	logger.Init()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("config load failed", "err", err)
		os.Exit(1)
	}

	if err := migrate.Up(cfg.DB_STRING); err != nil {
		logger.Warn("migrations failed", "err", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DB_STRING)
	if err != nil {
		logger.Warn("pgxpool new failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Warn("db ping failed", "err", err)
		os.Exit(1)
	}
	logger.Info("db connected")

	repo := repository.NewOrderRepository(pool)
	orders := application.NewOrdersService(repo)

	dpx := droppex.NewClient(cfg.DROPPEX_URL, cfg.DROPPEX_CODE_API, cfg.DROPPEX_CLE_API)
	fd := firstdelivery.NewClient(cfg.FIRSTDELIVERY_BASE_URL, cfg.FIRSTDELIVERY_TOKEN)
	limiter := application.NewRateLimiter(cfg.FIRSTDELIVERY_RATE_LIMIT, nil)
	submission := application.NewSubmissionService(repo, dpx, fd, limiter)

	// Kafka: producer для вебхука, consumer пишет заказы в БД
	prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
	defer prod.Close()

	_, _ = kafka.StartConsumer(
		context.Background(),
		orders,
		kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		},
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	webhook := presentation.NewWebhookHandler(cfg.SHOPIFY_WEBHOOK_SECRET, prod)
	r.Post("/webhooks/shopify", webhook.HandleShopifyOrder)

	h := presentation.NewOrdersHandler(orders, submission, dpx, fd)
	r.Route("/api", func(api chi.Router) {
		h.Register(api)
	})

	presentation.MountStatic(r)

	addr := ":" + cfg.HTTP_PORT
	logger.Info("starting http", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Warn("http server crashed", "err", err)
		os.Exit(1)
	}
}
