package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kanbanterm/internal"
)

func newAddCommand(opts *globalOptions) *cobra.Command {
	var columnName string

	cmd := &cobra.Command{
		Use:     "add <text>",
		Aliases: []string{"a"},
		Short:   "Add a task without opening the board",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return AddCommand(cmd, opts, columnName, args)
		},
	}
	cmd.Flags().StringVarP(&columnName, "column", "c", "backlog", "column to add to (backlog, in-progress, done)")
	return cmd
}

func AddCommand(cmd *cobra.Command, opts *globalOptions, columnName string, args []string) error {
	column, err := internal.ParseColumn(columnName)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("task text is required")
	}

	env, err := loadEnvironment(opts)
	if err != nil {
		return err
	}

	boardFile := env.boardFile.WithLogger(consoleLogger(cmd, env))
	err = boardFile.Update(func(board *internal.Board) error {
		_, err := board.Append(column, text)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task added to %s: %s\n", column.Title(), text)
	return nil
}
