package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/astroname/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration in effect after applying defaults, the user config
(~/.config/astroname/config.yml), the project config (.astroname/config.yml),
--config and ASTRONAME_* environment variables.`,
	Example: `  # Show the effective configuration
  astroname config

  # Start a project config from the commented template
  mkdir -p .astroname && astroname config --template > .astroname/config.yml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		template, _ := cmd.Flags().GetBool("template")
		return runConfig(cmd.OutOrStdout(), appConfig, template)
	},
}

func init() {
	configCmd.GroupID = GroupInspect
	configCmd.Flags().Bool("template", false, "Print a commented config template instead")
	rootCmd.AddCommand(configCmd)
}

func runConfig(out io.Writer, cfg *config.Configuration, template bool) error {
	if template {
		_, err := fmt.Fprint(out, config.GetDefaultConfigTemplate())
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}
