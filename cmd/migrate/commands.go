package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/info-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/info-backend/internal/config"
	"github.com/heartmarshall/info-backend/migrations"
)

type dbOptions struct {
	driver string
	dsn    string
}

// resolve merges flag overrides into the loaded database config.
func (o *dbOptions) resolve() (config.DatabaseConfig, error) {
	var cfg config.DatabaseConfig

	if o.driver == "" || o.dsn == "" {
		loaded, err := config.Load()
		if err != nil {
			return cfg, err
		}
		cfg = loaded.Database
	}
	if o.driver != "" {
		cfg.Driver = o.driver
	}
	if o.dsn != "" {
		cfg.DSN = o.dsn
	}
	return cfg, nil
}

// withProvider opens the configured database, builds a goose provider for
// it and runs fn. The database is closed afterwards.
func withProvider(ctx context.Context, opts *dbOptions, fn func(*goose.Provider) error) error {
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}

	driver := cfg.NormalizedDriver()
	var db *sql.DB
	switch driver {
	case config.DriverPostgres:
		db, err = sql.Open("pgx", cfg.DSN)
		if err == nil {
			err = db.PingContext(ctx)
		}
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.DSN)
	case config.DriverMemory:
		return fmt.Errorf("driver %q has no schema to migrate", driver)
	default:
		return fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		if db != nil {
			db.Close()
		}
		return fmt.Errorf("open %s: %w", driver, err)
	}
	defer db.Close()

	provider, err := migrations.NewProvider(driver, db)
	if err != nil {
		return err
	}
	return fn(provider)
}

func newUpCmd(opts *dbOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProvider(cmd.Context(), opts, func(p *goose.Provider) error {
				results, err := p.Up(cmd.Context())
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
					return nil
				}
				printResults(cmd.OutOrStdout(), results)
				return nil
			})
		},
	}
}

func newDownCmd(opts *dbOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProvider(cmd.Context(), opts, func(p *goose.Provider) error {
				result, err := p.Down(cmd.Context())
				if err != nil {
					return err
				}
				printResults(cmd.OutOrStdout(), []*goose.MigrationResult{result})
				return nil
			})
		},
	}
}

func newStatusCmd(opts *dbOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List every migration and whether it is applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProvider(cmd.Context(), opts, func(p *goose.Provider) error {
				statuses, err := p.Status(cmd.Context())
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), statuses)
				return nil
			})
		},
	}
}

func newVersionCmd(opts *dbOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProvider(cmd.Context(), opts, func(p *goose.Provider) error {
				v, err := p.GetDBVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", v)
				return nil
			})
		},
	}
}

func printResults(w io.Writer, results []*goose.MigrationResult) {
	for _, r := range results {
		fmt.Fprintf(w, "%-4s %s (%s)\n",
			strings.ToUpper(r.Direction), r.Source.Path, r.Duration.Round(time.Millisecond))
	}
}

func printStatus(w io.Writer, statuses []*goose.MigrationStatus) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, s := range statuses {
		applied := "-"
		if !s.AppliedAt.IsZero() {
			applied = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
	}
	tw.Flush()
}
