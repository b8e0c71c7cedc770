package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"emploiplus/internal/config"
	dbpostgres "emploiplus/internal/database/postgres"
	"emploiplus/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const app = "matchctl"

var (
	debug   bool
	jsonLog bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "matchctl runs Emploi+ matching operations from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")

	rootCmd.AddCommand(migrateCmd, extractCmd, scoreCmd, roadmapCmd)
}

func newLogger() (*zap.Logger, error) {
	return logger.New(jsonLog, debug)
}

// connect loads configuration and opens the database pool.
func connect(ctx context.Context) (*dbpostgres.Pool, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Database.Enabled() {
		return nil, nil, fmt.Errorf("database is not configured (DB_HOST, DB_NAME)")
	}
	lg, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	pool, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return pool, lg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
