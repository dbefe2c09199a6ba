package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/uangjajan/internal/config"
	"github.com/chucky-1/uangjajan/internal/consumer"
	"github.com/chucky-1/uangjajan/internal/handler"
	"github.com/chucky-1/uangjajan/internal/producer"
	"github.com/chucky-1/uangjajan/internal/repository"
	"github.com/chucky-1/uangjajan/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	setupLogger(cfg)

	db, repo, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		logrus.Fatal(err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.Errorf("couldn't close storage: %v", err)
		}
	}()
	if err = repo.Init(ctx); err != nil {
		logrus.Fatal(err)
	}

	var events producer.Publisher = producer.Discard{}
	if len(cfg.Kafka.Brokers) > 0 {
		events = producer.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logrus.Infof("publishing entry events to %s on %v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}
	defer func() {
		if err := events.Close(); err != nil {
			logrus.Errorf("couldn't close event producer: %v", err)
		}
	}()

	ledger := service.NewLedger(repo, service.NewValidator(), events)

	if cfg.Telegram.Token != "" {
		if err = startTelegram(ctx, cfg.Telegram, ledger); err != nil {
			logrus.Fatal(err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.NewEntries(ledger).Router(cfg.HTTP.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.Infof("server listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown error: %v", err)
	}
	logrus.Info("server stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func openStorage(ctx context.Context, cfg config.Storage) (*sql.DB, *repository.SQL, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := repository.OpenPostgres(ctx, cfg.PostgresEndpoint)
		if err != nil {
			return nil, nil, err
		}
		logrus.Info("storage: postgres")
		return db, repository.NewPostgres(db), nil
	default:
		db, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logrus.Infof("storage: sqlite at %s", cfg.SQLitePath)
		return db, repository.NewSQLite(db), nil
	}
}

func startTelegram(ctx context.Context, cfg config.Telegram, ledger *service.Ledger) error {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Timeout
	updates := bot.GetUpdatesChan(u)

	chats := repository.NewChatsLocalStorage()
	go consumer.NewBot(bot, updates, ledger, chats).Consume(ctx)
	producer.NewReporter(bot, ledger, chats).Produce(ctx)

	go func() {
		<-ctx.Done()
		bot.StopReceivingUpdates()
	}()
	return nil
}
