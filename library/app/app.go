package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/config"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/handler"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/repository"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/server"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/service"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/session"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/migrations"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/kafka"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/logger"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	ctx := context.Background()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatal("redis ping", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	cancel()

	var (
		events   kafka.Enqueuer = kafka.NopEnqueuer{}
		producer sarama.SyncProducer
	)
	if cfg.Kafka.Enabled() {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		events = kafka.NewEnqueuer(producer)
		log.Info("loan events enabled", zap.Strings("brokers", cfg.Kafka.Addrs), zap.String("topic", kafka.LoanTopic))
	}

	svc := service.NewService(repo, events, cfg.Library, log)
	if err := svc.EnsureAdmin(ctx); err != nil {
		log.Fatal("ensure admin", zap.Error(err))
	}

	sessions := session.NewStore(rdb, cfg.Session)
	h := handler.New(svc, sessions, cfg.Session.LoginPath, cfg.Server.AllowOrigins, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Warn("producer.Close", zap.Error(err))
		}
	}
	if err := rdb.Close(); err != nil {
		log.Warn("redis.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
