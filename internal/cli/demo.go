package cli

import (
	"fmt"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/db"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/demo"
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/store"
	"github.com/spf13/cobra"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	var sqlitePath string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Create, read, update and delete one reservation",
		Long: `Walk through one booking end to end against the configured database.

Example:
  reservas demo
  reservas demo --sqlite /tmp/reservas.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config.DB
			if sqlitePath != "" {
				cfg.Driver = "sqlite3"
				cfg.URL = ""
				cfg.Name = sqlitePath
				cfg.EnsureSchema = true
			}

			ctx := cmd.Context()
			d, err := db.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("db: %w", err)
			}
			defer d.Close()
			if cfg.EnsureSchema {
				if err := d.EnsureSchema(ctx); err != nil {
					return fmt.Errorf("ensure schema: %w", err)
				}
			}
			return demo.Run(ctx, store.New(d), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "run against a SQLite file instead of the configured database")

	return cmd
}
