package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantabay/exsim/params"
	"github.com/quantabay/exsim/pkg/api"
	"github.com/quantabay/exsim/pkg/book"
	"github.com/quantabay/exsim/pkg/engine"
	"github.com/quantabay/exsim/pkg/oracle"
	"github.com/quantabay/exsim/pkg/util"
)

func main() {
	// Load config from .env file and environment variables
	cfg := params.LoadFromEnv("") // "" means load from .env in current directory

	// Setup logging (write to both console and file)
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "data/venue.log"
	}

	logger, err := util.NewLoggerWithFile(logFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()
	sugar.Infow("logger_initialized", "log_file", logFile)

	// ---- Price oracle ----
	// ORACLE_URL=static runs the venue offline against fixed quotes.
	var quotes oracle.Client
	var historian api.Historian
	if cfg.Oracle.URL == "static" {
		quotes = oracle.DefaultStatic()
		sugar.Info("oracle: static price table (offline mode)")
	} else {
		httpOracle := oracle.NewHTTPClient(cfg.Oracle.URL, cfg.Oracle.Timeout, sugar)
		quotes = httpOracle
		historian = httpOracle
		sugar.Infow("oracle_configured",
			"url", cfg.Oracle.URL,
			"timeout_ms", cfg.Oracle.Timeout.Milliseconds())
	}

	// ---- Order book store + execution engine ----
	store := book.NewStore()

	eng, err := engine.NewEngine(store, quotes, cfg.Node.ID, sugar)
	if err != nil {
		sugar.Fatalw("engine_init_failed", "err", err)
	}
	query := engine.NewQuery(store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- API Server ----
	apiServer := api.NewServer(eng, query, historian, cfg.API.CORSOrigins, sugar)

	go func() {
		if err := apiServer.Start(cfg.API.Addr); err != nil {
			sugar.Fatalw("api_server_failed", "err", err)
		}
	}()

	sugar.Infow("venue_started", "addr", cfg.API.Addr, "node_id", cfg.Node.ID)

	// Progress logging loop
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	lastLogged := 0
	for {
		select {
		case <-ctx.Done():
			sugar.Infow("venue_stopping", "executions", store.Len())
			return
		case <-ticker.C:
			if n := store.Len(); n != lastLogged {
				sugar.Infow("venue_progress", "executions", n)
				lastLogged = n
			}
		}
	}
}
