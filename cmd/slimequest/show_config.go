package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Prints the settings the game would start with after merging flags,
SLIMEQUEST_* environment variables and the config file. The output is a
valid slimequest.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(viper.GetViper()); err != nil {
			return err
		}
		out, err := renderSettings(viper.AllSettings())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// renderSettings encodes a settings tree as YAML.
func renderSettings(settings map[string]any) (string, error) {
	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(out), nil
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
