package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kanbanterm/internal"
)

func newInitConfigCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return InitConfigCommand(cmd, opts)
		},
	}
}

func InitConfigCommand(cmd *cobra.Command, opts *globalOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		var err error
		configPath, err = internal.UserConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	out := cmd.OutOrStdout()

	// Check if config already exists
	if content, err := os.ReadFile(configPath); err == nil {
		fmt.Fprintf(out, "Configuration file already exists at %s\n", configPath)
		fmt.Fprintln(out, "\nCurrent settings:")
		fmt.Fprintln(out, "=================")
		fmt.Fprintf(out, "%s\n", string(content))
		return nil
	}

	if err := internal.SaveDefaultConfig(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(out, "Created configuration file at %s\n", configPath)
	return nil
}
