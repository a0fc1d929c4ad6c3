package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recipeworks/simmer/config"
	"github.com/recipeworks/simmer/errors"
)

// ConfigCmd prints the resolved configuration.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration",
	Long: `config — Print the configuration after merging all sources

Precedence (lowest to highest): /etc/simmer/config.toml, ~/.simmer/config.toml,
the nearest simmer.toml found walking up from the working directory, then
SIMMER_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}

		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to format configuration")
		}
		fmt.Println(string(out))
		return nil
	},
}
