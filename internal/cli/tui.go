package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-list/internal/tui"
)

func newTUICmd(root *rootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive student list",
		Long: `Open an interactive view that shows a loading indicator, then the
student table or the error. Press q to quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractiveTUI(cmd, root)
		},
	}
}

func runInteractiveTUI(cmd *cobra.Command, root *rootParams) error {
	client, err := root.client()
	if err != nil {
		return err
	}

	// Quitting cancels a fetch that is still in flight.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(tui.New(ctx, client),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
