package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/orilevi/business-forecast/internal/config"
	"github.com/orilevi/business-forecast/internal/forecast"
	"github.com/orilevi/business-forecast/internal/server"
	"github.com/orilevi/business-forecast/internal/storage"
	"github.com/orilevi/business-forecast/pkg/constants"
	"github.com/orilevi/business-forecast/pkg/output"
	"github.com/orilevi/business-forecast/pkg/planning"
	"github.com/orilevi/business-forecast/pkg/validation"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	snapshotFile := flag.String("snapshot", "", "path to a business snapshot fixture (overrides config)")
	monthsAhead := flag.Int("months", 0, "forecast horizon in months (overrides config)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP API server instead of a one-shot forecast")
	addr := flag.String("addr", "", "HTTP listen address override")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.InitializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		runServer(logger, conf, *addr)
		return
	}

	runOnce(logger, conf, *snapshotFile, *monthsAhead, *outputFormatFlag)
}

// runOnce loads a snapshot fixture, runs the forecast and prints the results.
func runOnce(logger *zap.Logger, conf *config.Configuration, snapshotFlag string, monthsFlag int, outputFormatFlag string) {
	// CLI overrides take precedence over config.
	outputFormat := conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	snapshotPath := conf.Forecast.SnapshotFile
	if snapshotFlag != "" {
		snapshotPath = snapshotFlag
	}
	if snapshotPath == "" {
		logger.Fatal("no snapshot file configured, pass -snapshot or set forecast.snapshotFile",
			zap.String("op", "main"),
		)
	}

	months := conf.Forecast.MonthsAhead
	if monthsFlag != 0 {
		months = monthsFlag
	}
	if err := validation.ValidateMonthsAhead(months); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	snapshot, err := config.LoadSnapshot(snapshotPath)
	if err != nil {
		logger.Fatal("failed to load snapshot",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range validation.SnapshotWarnings(*snapshot) {
		logger.Warn("Snapshot warning: "+warning,
			zap.String("op", "main"),
		)
	}

	engine := forecast.NewEngine(logger)
	results := engine.Run(*snapshot, forecast.Options{
		MonthsAhead:    months,
		OpeningBalance: snapshot.Business.OpeningBalance,
	})
	summary := planning.Summarize(results)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, results)
		output.PrettySummary(os.Stdout, summary)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, results)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(os.Stdout, results, summary); err != nil {
			logger.Fatal("failed to write results",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

// runServer starts the HTTP API, with the repository-backed routes enabled
// only when a database is configured.
func runServer(logger *zap.Logger, conf *config.Configuration, addrFlag string) {
	address := conf.Server.Address
	if addrFlag != "" {
		address = addrFlag
	}
	if address == "" {
		address = constants.DefaultServerAddress
	}

	var service *forecast.Service
	if dsn := conf.Database.DSN(); dsn != "" {
		conn, err := storage.NewConnection(context.Background(), dsn)
		if err != nil {
			logger.Fatal("failed to connect to database",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		defer func() {
			_ = conn.Close()
		}()
		service = forecast.NewService(storage.NewSnapshotRepository(conn), logger)
	} else {
		logger.Warn("no database configured, business routes disabled",
			zap.String("op", "main"),
		)
	}

	handler := server.New(logger, service, version)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", address),
		zap.String("version", version),
	)
	if err := http.ListenAndServe(address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
