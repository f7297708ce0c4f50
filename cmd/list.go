package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kanbanterm/internal"
)

func newListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list", "l"},
		Short:   "Print the board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ListCommand(cmd, opts)
		},
	}
}

func ListCommand(cmd *cobra.Command, opts *globalOptions) error {
	env, err := loadEnvironment(opts)
	if err != nil {
		return err
	}

	board := env.boardFile.WithLogger(consoleLogger(cmd, env)).Load()
	out := cmd.OutOrStdout()

	if board.Total() == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	renderer := lipgloss.NewRenderer(out)
	for i, column := range internal.AllColumns {
		if i > 0 {
			fmt.Fprintln(out)
		}

		heading := renderer.NewStyle().Bold(true).Foreground(columnColor(column))
		fmt.Fprintln(out, heading.Render(fmt.Sprintf("%s (%d)", column.Title(), board.Len(column))))
		for j, text := range board.Texts(column) {
			fmt.Fprintf(out, "  %d. %s\n", j+1, text)
		}
	}
	return nil
}

func columnColor(column internal.Column) lipgloss.Color {
	switch column {
	case internal.InProgress:
		return lipgloss.Color("3") // yellow
	case internal.Done:
		return lipgloss.Color("2") // green
	default:
		return lipgloss.Color("7") // white
	}
}
