// Command copy-store copies every record from an embedded Badger database into MySQL,
// for moving a deployment from STORE_DRIVER=badger to STORE_DRIVER=mysql. Records already
// present in MySQL are skipped, so the copy can be re-run after an interruption.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/indiesound/artist-insights/internal/app"
	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/datasources/badger"
	"github.com/indiesound/artist-insights/internal/datasources/mysql"
	"github.com/indiesound/artist-insights/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx := context.Background()

	logger, err := app.NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	result, err := run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "store copy failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "store copy completed", "copied", result.Copied, "skipped", result.Skipped)
}

func run(ctx context.Context) (command.CopyRecordsResult, error) {
	badgerPath := os.Getenv("BADGER_PATH")
	if badgerPath == "" {
		return command.CopyRecordsResult{}, fmt.Errorf("BADGER_PATH environment variable is required")
	}
	mysqlURI := os.Getenv("MYSQL_URI")
	if mysqlURI == "" {
		return command.CopyRecordsResult{}, fmt.Errorf("MYSQL_URI environment variable is required")
	}

	bdb, err := badger.Open(badgerPath)
	if err != nil {
		return command.CopyRecordsResult{}, fmt.Errorf("opening badger database: %w", err)
	}
	defer func() { _ = bdb.Close() }()

	db, err := mysql.Connect(ctx, mysqlURI)
	if err != nil {
		return command.CopyRecordsResult{}, fmt.Errorf("connecting to MySQL: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := mysql.EnsureSchema(ctx, db); err != nil {
		return command.CopyRecordsResult{}, fmt.Errorf("ensuring MySQL schema: %w", err)
	}

	copyCmd := command.NewCopyRecords(badger.New(bdb), mysql.New(db))
	return copyCmd.Execute(ctx, command.Empty{})
}
