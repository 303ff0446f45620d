package cli

import (
	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the configuration they resolve to.
type RootOptions struct {
	ConfigFile string
	Config     config.Config
}

// NewRootCommand creates the root command for the reservas CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "reservas",
		Short: "Casa Caribe table reservations",
		Long:  "Table reservation service for the Casa Caribe restaurant: booking form, list, edit and cancel.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := opts.ConfigFile
			var (
				cfg config.Config
				err error
			)
			if path != "" {
				cfg, err = config.LoadFile(path)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			opts.Config = cfg
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file (overrides CONFIG_FILE)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))

	return cmd
}
