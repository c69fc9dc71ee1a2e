package sync

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	luno "github.com/dunxen/luno-go"
	"github.com/dunxen/luno-go/internal/database"
	"github.com/dunxen/luno-go/internal/monitor"
)

// Service periodically pulls own trades from the exchange into Postgres.
type Service struct {
	db     *database.DB
	config *Config
	logger *monitor.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewService creates a new sync service.
func NewService(db *database.DB, cfg *Config, logger *monitor.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start initializes the schema and begins the sync loop.
func (s *Service) Start() error {
	if err := s.db.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	s.logger.Info("Database schema initialized")

	s.wg.Add(1)
	go s.syncLoop()

	s.logger.Info("Trade sync service started")
	return nil
}

// Stop stops the sync service and waits for the current pass to finish.
func (s *Service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("Trade sync service stopped")
}

func (s *Service) syncLoop() {
	defer s.wg.Done()

	interval := time.Duration(s.config.Sync.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start.
	s.syncAll()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.syncAll()
		}
	}
}

// syncAll syncs every enabled account across every configured pair. Each
// pass gets one run id so its rows in sync_runs can be correlated.
func (s *Service) syncAll() {
	runID := uuid.NewString()
	s.logger.WithFields(map[string]interface{}{"run_id": runID}).Info("Starting trade sync pass")

	accounts := s.config.Sync.Accounts
	if len(accounts) == 0 {
		apiKey := os.Getenv("LUNO_API_KEY")
		apiSecret := os.Getenv("LUNO_API_SECRET")
		if apiKey == "" || apiSecret == "" {
			s.logger.Error("No accounts configured and LUNO_API_KEY/LUNO_API_SECRET not set")
			return
		}
		accounts = []AccountConfig{{
			Label:     "default",
			APIKey:    apiKey,
			APISecret: apiSecret,
			Enabled:   true,
		}}
	}

	for _, account := range accounts {
		if !account.Enabled {
			s.logger.WithFields(map[string]interface{}{
				"account": account.Label,
			}).Info("Skipping disabled account")
			continue
		}
		for _, pair := range s.config.Sync.Pairs {
			s.syncAccountPair(runID, account, pair)
		}
	}

	s.logger.WithFields(map[string]interface{}{"run_id": runID}).Info("Trade sync pass complete")
}

// syncAccountPair pulls trades newer than the last stored one for a single
// account and pair.
func (s *Service) syncAccountPair(runID string, account AccountConfig, rawPair string) {
	log := s.logger.WithFields(map[string]interface{}{
		"run_id":  runID,
		"account": account.Label,
		"pair":    rawPair,
	})

	pair, err := luno.ParseTradingPair(rawPair)
	if err != nil {
		log.Errorf("Invalid trading pair: %v", err)
		s.recordRun(runID, account.Label, rawPair, 0, 0, "error", err.Error())
		return
	}

	opts := []luno.Option{}
	if s.config.Sync.APIBaseURL != "" {
		opts = append(opts, luno.WithBaseURL(s.config.Sync.APIBaseURL))
	}
	client, err := luno.NewClient(account.APIKey, account.APISecret, opts...)
	if err != nil {
		log.Errorf("Failed to create client: %v", err)
		s.recordRun(runID, account.Label, rawPair, 0, 0, "error", err.Error())
		return
	}

	since, err := s.db.LastTradeTimestamp(account.Label, rawPair)
	if err != nil {
		log.Errorf("Failed to read sync position: %v", err)
		s.recordRun(runID, account.Label, rawPair, 0, 0, "error", err.Error())
		return
	}

	query := client.ListOwnTrades(pair)
	if since > 0 {
		// The since filter is inclusive; the unique constraint absorbs the
		// one overlapping trade.
		query = query.Since(since)
	}
	if s.config.Sync.Limit > 0 {
		query = query.Limit(s.config.Sync.Limit)
	}

	trades, err := query.List()
	if err != nil {
		log.Errorf("Failed to list own trades: %v", err)
		s.recordRun(runID, account.Label, rawPair, since, 0, "error", err.Error())
		return
	}

	saved, err := s.db.SaveOwnTrades(account.Label, trades)
	if err != nil {
		log.Errorf("Failed to save trades: %v", err)
		s.recordRun(runID, account.Label, rawPair, since, saved, "error", err.Error())
		return
	}

	last := since
	for _, t := range trades {
		if t.Timestamp > last {
			last = t.Timestamp
		}
	}

	s.recordRun(runID, account.Label, rawPair, last, saved, "success", "")
	log.WithFields(map[string]interface{}{
		"fetched": len(trades),
		"saved":   saved,
	}).Info("Synced own trades")
}

func (s *Service) recordRun(runID, label, pair string, lastTS int64, count int, status, errMsg string) {
	if err := s.db.RecordSyncRun(runID, label, pair, lastTS, count, status, errMsg); err != nil {
		s.logger.Errorf("Failed to record sync run: %v", err)
	}
}
