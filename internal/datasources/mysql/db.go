package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// clientFoundRows makes UPDATE report matched rather than changed rows, so an update
// that leaves a row as it was is not mistaken for a missing row.
const driverParamStr string = "?parseTime=true&clientFoundRows=true"

//go:embed schema.sql
var schema string

func Connect(ctx context.Context, uri string) (*sql.DB, error) {
	db, err := sql.Open("mysql", uri+driverParamStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking MySQL DB connection: %w", err)
	}

	return db, nil
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
