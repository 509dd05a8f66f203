package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

type Direction string

const (
	Up     Direction = "up"
	Down   Direction = "down"
	Status Direction = "status"
)

// gooseLogger routes goose output through zap.
type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.sugar.Fatalf(format, v...)
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.sugar.Infof(format, v...)
}

// Migrate opens dsn with lib/pq and applies the embedded goose migrations.
func Migrate(ctx context.Context, dsn string, direction Direction, logger *zap.Logger) error {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("can not open database for migrations: %w", err)
	}
	defer conn.Close()

	goose.SetBaseFS(migrations)
	if logger != nil {
		goose.SetLogger(gooseLogger{sugar: logger.Sugar()})
	} else {
		goose.SetLogger(goose.NopLogger())
	}

	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch direction {
	case Up:
		err = goose.UpContext(ctx, conn, migrationsDir)
	case Down:
		err = goose.DownContext(ctx, conn, migrationsDir)
	case Status:
		err = goose.StatusContext(ctx, conn, migrationsDir)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}
