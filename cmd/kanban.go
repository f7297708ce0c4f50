package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kanbanterm/internal"
)

// KanbanCommand opens the interactive board and saves it when the user quits.
func KanbanCommand(_ *cobra.Command, opts *globalOptions) error {
	env, err := loadEnvironment(opts)
	if err != nil {
		return err
	}

	bindings, err := env.config.Bindings()
	if err != nil {
		return err
	}

	logger, closeLog, err := internal.NewSessionLogger(env.config.Log)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	defer closeLog()

	boardFile := env.boardFile.WithLogger(logger)
	board := boardFile.Load()

	controller := internal.NewController(board, boardFile,
		internal.WithBindings(bindings),
		internal.WithBlankTasks(env.config.Board.AllowBlankTasks),
	)

	logger.Info("board session started", "path", boardFile.Path)
	if err := internal.ShowKanbanView(controller, logger); err != nil {
		logger.Error("board session failed", "err", err)
		return fmt.Errorf("board %s: %w", boardFile.Path, err)
	}
	logger.Info("board session ended")
	return nil
}
