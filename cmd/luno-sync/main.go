package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dunxen/luno-go/internal/database"
	"github.com/dunxen/luno-go/internal/monitor"
	"github.com/dunxen/luno-go/internal/sync"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "luno-sync",
		Usage:   "Sync own trades from the Luno exchange into Postgres",
		Version: fmt.Sprintf("%s (build: %s, commit: %s)", Version, BuildTime, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
			},
		},
		Action: runSync,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSync(c *cli.Context) error {
	cfg, err := sync.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel := c.String("log-level"); logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger := monitor.NewLogger(cfg.Log.Level, cfg.Log.Output)
	logger.WithFields(map[string]interface{}{
		"interval_seconds": cfg.Sync.IntervalSeconds,
		"pairs":            cfg.Sync.Pairs,
		"accounts":         len(cfg.Sync.Accounts),
	}).Info("Starting trade sync service")

	db, err := database.New(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connection established")

	service := sync.NewService(db, cfg, logger)
	if err := service.Start(); err != nil {
		return fmt.Errorf("failed to start sync service: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Sync service running, press Ctrl+C to stop")

	<-sigChan
	logger.Info("Stop signal received, shutting down")
	service.Stop()
	return nil
}
