package database

import (
	"fmt"
	"time"

	luno "github.com/dunxen/luno-go"
)

// OwnTradeRow is an own-trade record as stored in the database.
type OwnTradeRow struct {
	ID             int64
	AccountLabel   string
	OrderID        string
	Pair           string
	OrderType      string
	IsBuy          bool
	Price          string
	Volume         string
	Base           string
	Counter        string
	FeeBase        string
	FeeCounter     string
	TradeTimestamp int64
	CreatedAt      time.Time
}

// SaveOwnTrades inserts the given trades in one transaction, skipping any
// already present, and returns how many rows were actually written.
// Monetary values are passed as their exact decimal strings.
func (db *DB) SaveOwnTrades(accountLabel string, trades []luno.OwnTrade) (int, error) {
	if len(trades) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO own_trades (
			account_label, order_id, pair, order_type, is_buy,
			price, volume, base, counter, fee_base, fee_counter, trade_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (account_label, order_id, pair, trade_timestamp)
		DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, trade := range trades {
		result, err := stmt.Exec(
			accountLabel,
			trade.OrderID,
			trade.Pair.String(),
			trade.Type.String(),
			trade.IsBuy,
			trade.Price.String(),
			trade.Volume.String(),
			trade.Base.String(),
			trade.Counter.String(),
			trade.FeeBase.String(),
			trade.FeeCounter.String(),
			trade.Timestamp,
		)
		if err != nil {
			continue // skip this record and keep going
		}
		if rows, _ := result.RowsAffected(); rows > 0 {
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// LastTradeTimestamp returns the newest stored trade timestamp for an
// account and pair, or zero when nothing has been synced yet.
func (db *DB) LastTradeTimestamp(accountLabel, pair string) (int64, error) {
	var ts int64
	err := db.QueryRow(`
		SELECT COALESCE(MAX(trade_timestamp), 0)
		FROM own_trades
		WHERE account_label = $1 AND pair = $2
	`, accountLabel, pair).Scan(&ts)
	if err != nil {
		return 0, fmt.Errorf("failed to query last trade timestamp: %w", err)
	}
	return ts, nil
}

// RecordSyncRun stores the outcome of one sync pass.
func (db *DB) RecordSyncRun(runID, accountLabel, pair string, lastTradeTimestamp int64, count int, status, errMsg string) error {
	_, err := db.Exec(`
		INSERT INTO sync_runs (
			run_id, account_label, pair, last_trade_timestamp,
			records_count, status, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, runID, accountLabel, pair, lastTradeTimestamp, count, status, errMsg)
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}
