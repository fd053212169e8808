package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	bhttp "github.com/radieske/paper-sportsbook-poc/internal/bets-service/http"
	"github.com/radieske/paper-sportsbook-poc/internal/bets-service/lines"
	kpub "github.com/radieske/paper-sportsbook-poc/internal/bets-service/producer"
	"github.com/radieske/paper-sportsbook-poc/internal/bets-service/repo"
	"github.com/radieske/paper-sportsbook-poc/internal/shared/cache"
	"github.com/radieske/paper-sportsbook-poc/internal/shared/config"
	"github.com/radieske/paper-sportsbook-poc/internal/shared/db"
	skafka "github.com/radieske/paper-sportsbook-poc/internal/shared/kafka"
	"github.com/radieske/paper-sportsbook-poc/internal/shared/logger"
	"github.com/radieske/paper-sportsbook-poc/internal/shared/metrics"
)

func main() {
	_ = godotenv.Load() // .env só pra rodar local

	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	startingBalance, err := decimal.NewFromString(cfg.StartingBalance)
	if err != nil || !startingBalance.IsPositive() {
		log.Fatal("invalid STARTING_BALANCE", zap.String("value", cfg.StartingBalance))
	}

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	if err := db.Migrate(pg); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	// Redis
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writers (bet_placed, bet_settled)
	placedWriter := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer placedWriter.Close()
	settledWriter := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()

	// deps
	repository := repo.NewPostgres(pg)
	quotes := lines.NewService(lines.NewClient(cfg.LinesSourceURL), lines.NewCache(rdb))
	publ := kpub.NewKafkaPublisher(placedWriter, settledWriter)

	// HTTP público
	api := bhttp.NewServer(log, repository, quotes, publ, startingBalance)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})
	log.Info("metrics/health", zap.String("addr", fmt.Sprintf(":%s", cfg.MetricsPort)))

	log.Info("bets-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
