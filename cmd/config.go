package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/alib-cli/pkg/config"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the alib configuration file",
	Long: `Open the configuration file in your editor, creating it with defaults
when it does not exist yet.

Subcommands:
  alib config show    Print the effective configuration
  alib config path    Print the configuration file location`,
	Annotations: noSession(),
	RunE:        runConfigEdit,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Annotations: noSession(),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(appConfig)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the configuration file location",
	Annotations: noSession(),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appVault.ConfigPath)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := appVault.ConfigPath

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Println(ui.FormatInfo("Created default config"))
	}

	fmt.Println(ui.FormatInfo("Opening config: " + path))
	if err := editorLauncher.Open(getContext(), path); err != nil {
		return err
	}

	if _, err := config.Load(path); err != nil {
		fmt.Println(ui.FormatWarning("Config has errors and will be ignored: " + err.Error()))
	}
	return nil
}
