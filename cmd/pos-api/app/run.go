package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/CSCE331-Fall2024/project-3-team-xp/configs"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/cache"
	httpadapter "github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/http"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/http/middleware"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/kafka"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/queue"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/repo"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/logging"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/security"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, parseLevel(cfg.App.LogLevel))

	// mysql
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("mysql ping: %w", err)
	}

	logger.Info("pos-api starting up")

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	// rabbitmq
	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}

	// sealed payloads are optional: only kiosk deployments ship keys
	var sealer security.Sealer
	if km, err := security.LoadKeyMaterial(cfg); err == nil {
		if sealer, err = security.NewSealer(km); err != nil {
			return nil, nil, fmt.Errorf("sealer: %w", err)
		}
	} else {
		logger.Warn("payload sealing disabled", "reason", err)
	}

	// repos + caches
	catalogRepo := repo.NewMySQLCatalogRepo(db)
	txnRepo := repo.NewMySQLTransactionRepo(db)
	loyaltyRepo := repo.NewMySQLLoyaltyRepo(db)
	outboxRepo := repo.NewMySQLOutboxRepo(db)
	catalogCache := cache.NewRedisCatalogCache(rdb, cfg.Catalog.CacheTTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)

	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbit producer: %w", err)
	}

	// loyalty consumer
	if err := startPointsConsumer(ch, loyaltyRepo); err != nil {
		return nil, nil, fmt.Errorf("points consumer: %w", err)
	}

	// usecases + http
	catalog := usecase.NewCatalogProvider(catalogRepo, catalogCache)
	checkoutUC := usecase.NewCheckout(catalog, txnRepo, idem, outboxRepo, producer)
	quoteUC := usecase.NewQuote(catalog)

	// back-office menu sync
	startMenuListener(cfg, catalogRepo, catalog)

	checkoutH := httpadapter.NewCheckoutHandler(checkoutUC, txnRepo)
	quoteH := httpadapter.NewQuoteHandler(quoteUC)
	menuH := httpadapter.NewMenuHandler(catalog, catalogRepo)
	tokenH := httpadapter.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	sv := middleware.NewSealedVerify(sealer)
	router := httpadapter.NewRouter(checkoutH, quoteH, menuH, tokenH, authz, sv)

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func startPointsConsumer(ch *amqp.Channel, loyalty usecase.LoyaltyRepo) error {
	h := queue.NewPointsAwardHandler(loyalty)

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register("transaction.completed.q",
		queue.JSONHandler[usecase.TransactionCompletedMsg]{HandleFunc: h.HandleCompleted})
	return router.Start()
}

func startMenuListener(cfg configs.Config, catalogRepo usecase.CatalogRepo, catalog *usecase.CatalogProvider) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		// menu sync is best-effort; the HTTP CRUD path still works
		logging.New("kafka").Warn("menu listener disabled", "err", err)
		return
	}

	h := kafka.NewMenuChangedHandler(catalogRepo, catalog)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.TopicMenu}, h.Handle)
	consumer.Logger = logging.New("kafka")

	go func() {
		if err := consumer.Start(context.Background()); err != nil && err != context.Canceled {
			logging.New("kafka").Error("menu listener stopped", "err", err)
		}
	}()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
