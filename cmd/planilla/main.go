package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/config"
	"github.com/jrojasb/control-facturas/internal/ledger"
	"github.com/jrojasb/control-facturas/internal/pipeline"
	"github.com/jrojasb/control-facturas/internal/runhistory"
	"github.com/jrojasb/control-facturas/internal/sources"
	"github.com/jrojasb/control-facturas/pkg/database"
	"github.com/jrojasb/control-facturas/pkg/utils"
)

const (
	modeHistorical = "historico"
	modeCurrent    = "actual"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	mode := flag.String("modo", modeCurrent, "run mode: actual (current period) or historico (full rebuild)")
	flag.Parse()

	if *mode != modeHistorical && *mode != modeCurrent {
		fmt.Fprintf(os.Stderr, "Unknown mode %q: expected %q or %q\n", *mode, modeCurrent, modeHistorical)
		os.Exit(1)
	}

	// Local overrides, if a .env file is present
	gotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	now := time.Now()
	started := now

	logger.Info("Starting invoice control run",
		zap.String("mode", *mode),
		zap.String("sources_root", cfg.Sources.Root))

	// Initialize run-history database
	db, err := database.Open(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	runs := runhistory.NewRepository(db.DB, logger)

	if previous, err := runs.Latest(context.Background()); err != nil {
		logger.Warn("Failed to read previous run", zap.Error(err))
	} else if previous != nil {
		logger.Info("Previous run",
			zap.String("run_id", previous.ID),
			zap.String("mode", previous.Mode),
			zap.Int("documents", previous.Documents),
			zap.Time("started_at", previous.StartedAt))
	}

	// Current-period runs only read the files of the current year;
	// historical rebuilds read every export.
	provider := &sources.DirProvider{Root: cfg.Sources.Root}
	if *mode == modeCurrent {
		provider.Year = now.Year()
	}

	in, err := loadInputs(provider, logger)
	if err != nil {
		logger.Fatal("Failed to load source tables", zap.Error(err))
	}

	records := pipeline.New(cfg.Review.WindowDays, cfg.Review.OCSentinels, logger).Run(in, now)
	table := ledger.Project(records)

	store := ledger.NewStore(cfg.Ledger.HistoryPath, cfg.Ledger.ExtractDir, logger)

	var saved int
	switch *mode {
	case modeHistorical:
		saved, err = store.SaveFullHistory(table)
	case modeCurrent:
		saved, err = store.UpsertCurrentPeriod(table, now.Year())
	}
	if err != nil {
		logger.Fatal("Failed to persist ledger", zap.Error(err))
	}

	run := &runhistory.Run{
		Mode:         *mode,
		Documents:    saved,
		SIIDocuments: len(in.SII),
		StartedAt:    started,
		Duration:     time.Since(started),
	}
	if err := runs.Create(context.Background(), run); err != nil {
		logger.Error("Failed to record run", zap.Error(err))
	}

	logger.Info("Invoice control run finished",
		zap.String("run_id", run.ID),
		zap.String("mode", *mode),
		zap.Int("documents", saved),
		zap.Int("sii_documents", len(in.SII)),
		zap.Duration("duration", run.Duration))
}

// loadInputs reads every source table through the provider. Any
// malformed or missing source aborts the run.
func loadInputs(provider sources.Provider, logger *zap.Logger) (pipeline.Inputs, error) {
	var in pipeline.Inputs
	var err error

	if in.SII, err = sources.LoadSII(provider, logger); err != nil {
		return in, err
	}
	if in.Acepta, err = sources.LoadAcepta(provider, logger); err != nil {
		return in, err
	}
	if in.Observaciones, err = sources.LoadObservaciones(provider, logger); err != nil {
		return in, err
	}
	if in.SCI, err = sources.LoadSCI(provider, logger); err != nil {
		return in, err
	}
	if in.Sigfe, err = sources.LoadSigfe(provider, logger); err != nil {
		return in, err
	}
	if in.Turbo, err = sources.LoadTurbo(provider, logger); err != nil {
		return in, err
	}
	if in.OC, err = sources.LoadOC(provider, logger); err != nil {
		return in, err
	}
	if in.Maestro, err = sources.LoadMaestro(provider, logger); err != nil {
		return in, err
	}
	if in.Presupuesto, err = sources.LoadPresupuesto(provider, logger); err != nil {
		return in, err
	}

	return in, nil
}
