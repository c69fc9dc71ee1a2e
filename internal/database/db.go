package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(cfg Config) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &DB{sqlDB}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// InitSchema initializes the database schema
func (db *DB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS own_trades (
		id BIGSERIAL PRIMARY KEY,
		account_label VARCHAR(100) NOT NULL,
		order_id VARCHAR(100) NOT NULL,
		pair VARCHAR(10) NOT NULL,
		order_type VARCHAR(5) NOT NULL,
		is_buy BOOLEAN NOT NULL,
		price DECIMAL(30, 8) NOT NULL,
		volume DECIMAL(30, 8) NOT NULL,
		base DECIMAL(30, 8) NOT NULL,
		counter DECIMAL(30, 8) NOT NULL,
		fee_base DECIMAL(30, 8) NOT NULL,
		fee_counter DECIMAL(30, 8) NOT NULL,
		trade_timestamp BIGINT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT unique_own_trade UNIQUE (account_label, order_id, pair, trade_timestamp)
	);

	CREATE INDEX IF NOT EXISTS idx_own_trades_account ON own_trades(account_label);
	CREATE INDEX IF NOT EXISTS idx_own_trades_pair ON own_trades(pair);
	CREATE INDEX IF NOT EXISTS idx_own_trades_timestamp ON own_trades(trade_timestamp);
	CREATE INDEX IF NOT EXISTS idx_own_trades_account_pair_time ON own_trades(account_label, pair, trade_timestamp DESC);

	CREATE TABLE IF NOT EXISTS sync_runs (
		id SERIAL PRIMARY KEY,
		run_id UUID NOT NULL,
		account_label VARCHAR(100) NOT NULL,
		pair VARCHAR(10) NOT NULL,
		last_trade_timestamp BIGINT,
		records_count INT DEFAULT 0,
		status VARCHAR(20) DEFAULT 'success',
		error_message TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sync_runs_account_pair ON sync_runs(account_label, pair);
	CREATE INDEX IF NOT EXISTS idx_sync_runs_created_at ON sync_runs(created_at DESC);
	`

	_, err := db.Exec(schema)
	return err
}
