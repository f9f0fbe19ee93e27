// One-shot full reconciliation pass, meant to run from cron.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"omnia-sync/internal/adapters/omnia"
	"omnia-sync/internal/adapters/woocommerce"
	"omnia-sync/internal/app/usecases"
	"omnia-sync/internal/config"
	infrahttp "omnia-sync/internal/infra/http"
	"omnia-sync/internal/infra/mysql"
	"omnia-sync/internal/logging"
	"omnia-sync/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(logging.NewTelegramNotifier(cfg.Telegram))
	httpClient := infrahttp.NewClient(maxDuration(cfg.Omnia.Timeout, cfg.Woo.Timeout))

	var runs *state.RunStore
	if cfg.Mysql.Host != "" {
		db, err := mysql.New(cfg.Mysql)
		if err != nil {
			logger.LogWarning(fmt.Sprintf("mysql unavailable, sync history disabled: %v", err))
		} else {
			defer db.Close()
			runs = state.NewRunStore(db)
		}
	}

	omniaClient := omnia.NewClient(cfg.Omnia, cfg.Sync, httpClient, logger)
	wooClient := woocommerce.NewClient(cfg.Woo, cfg.Sync, httpClient, logger)
	syncer := usecases.NewCatalogSyncer(omniaClient, wooClient, runs, cfg.Sync, logger)

	if _, err := syncer.Run(context.Background(), "cron"); err != nil {
		logger.LogError("catalog sync failed", err)
		os.Exit(1)
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a >= b {
		return a
	}
	return b
}
