package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	chttp "github.com/radieske/sportsbook-catalog-service/internal/catalog-service/http"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/producer"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/pubsub"
	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/repo"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/config"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/db"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/kafka"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/logger"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("db_driver", cfg.DBDriver))

	// Banco: Postgres em produção, SQLite local
	var conn *sql.DB
	dialect := repo.DialectPostgres
	switch cfg.DBDriver {
	case "postgres":
		conn, err = db.ConnectPostgres(cfg.PostgresDSN)
	case "sqlite":
		dialect = repo.DialectSQLite
		conn, err = db.OpenSQLite(cfg.SQLitePath)
	default:
		log.Fatal("unknown DB_DRIVER", zap.String("driver", cfg.DBDriver))
	}
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer conn.Close()

	// Schema idempotente: seguro rodar em todo start
	if err := db.Migrate(context.Background(), conn, cfg.DBDriver); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	store := repo.NewStore(conn, dialect)

	// Redis pub/sub pra fan-out das desativações em cascata (opcional)
	var bcast chttp.StatusBroadcaster
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		bcast = pubsub.NewRedisBroadcaster(rdb, cfg.RedisPubSubChannel)
	}

	// Kafka writer pro feed de mudanças do catálogo (opcional)
	var publ chttp.ChangePublisher
	if cfg.KafkaBrokers != "" {
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicCatalogChanges)
		defer writer.Close()
		publ = producer.NewKafkaPublisher(writer, cfg.TopicCatalogChanges)
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicCatalogChanges))
	}

	// Métricas do catálogo
	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalog_mutations_total", Help: "mutações por entidade/ação"},
		[]string{"entity", "action"})
	cascades := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalog_cascade_deactivations_total", Help: "desativações em cascata por nível"},
		[]string{"level"})
	prometheus.MustRegister(mutations, cascades)

	api := chttp.NewServer(log, store, publ, bcast, cfg.TimeLayout, cfg.DefaultZone)
	api.OnMutation = func(entity, action string) { mutations.WithLabelValues(entity, action).Inc() }
	api.OnCascade = func(level string) { cascades.WithLabelValues(level).Inc() }

	// metrics/health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := conn.PingContext(ctx); err != nil {
			return fmt.Errorf("db: %w", err)
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})
	log.Info("metrics/health server starting", zap.String("port", cfg.MetricsPort))

	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	log.Info("catalog-service listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
