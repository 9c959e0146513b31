// Command migrate manages the record store schema with the embedded goose
// migrations. Connection settings come from the same config as the server
// and can be overridden with --driver and --dsn.
//
// Usage:
//
//	migrate up
//	migrate down
//	migrate status
//	migrate version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts dbOptions

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or inspect record store migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "store driver (postgres or sqlite), overrides DATABASE_DRIVER")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "connection string, overrides DATABASE_DSN")

	root.AddCommand(
		newUpCmd(&opts),
		newDownCmd(&opts),
		newStatusCmd(&opts),
		newVersionCmd(&opts),
	)
	return root
}
