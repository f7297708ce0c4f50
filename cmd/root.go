package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"kanbanterm/internal"
)

type globalOptions struct {
	taskFile   string
	configPath string
}

// environment is the resolved configuration shared by every command.
type environment struct {
	config    *internal.Config
	boardFile *internal.BoardFile
}

func Execute() {
	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "kanbanterm",
		Short: "Keyboard-driven kanban board in your terminal",
		Long: `kanbanterm - Backlog, In Progress and Done in one terminal screen

Board Keys (navigate mode):
  ←/→           Change column
  ↑/↓           Move selection
  i             Insert a new task in the current column
  k or ]        Promote task to the next column
  j or [        Demote task to the previous column
  d or Delete   Delete task
  q             Save and quit

Board Keys (insert mode):
  Enter         Add the task
  Esc           Discard the input
  Backspace     Erase last character

Environment Variables:
  KANBANTERM_FILE     Board file (default: ~/kanbanterm.json)
  KANBANTERM_CONFIG   Config file (default: ~/.config/kanbanterm/config.toml)

Files:
  Saving keeps a hidden lock file beside the board, e.g. ~/.kanbanterm.json.lock.
  It is safe to delete while no kanbanterm process is running.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return KanbanCommand(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.taskFile, "file", "f", "", "path to board file")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")

	root.AddCommand(
		newAddCommand(opts),
		newListCommand(opts),
		newInitConfigCommand(opts),
	)

	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

func loadEnvironment(opts *globalOptions) (*environment, error) {
	config, err := internal.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &environment{
		config:    config,
		boardFile: internal.NewBoardFileWithPath(config.BoardFilePath(opts.taskFile)),
	}, nil
}

// consoleLogger logs to the command's stderr for non-interactive commands.
func consoleLogger(cmd *cobra.Command, env *environment) *log.Logger {
	logger, err := internal.NewConsoleLogger(cmd.ErrOrStderr(), env.config.Log)
	if err != nil {
		return log.New(io.Discard)
	}
	return logger
}
