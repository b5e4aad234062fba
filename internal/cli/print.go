package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/student-list/internal/studentlist"
	"github.com/aanand-mishra/student-list/internal/tui"
)

// Output formats accepted by print --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ErrFetchFailed is returned after the error view has been printed, so
// the caller only needs to set the exit code.
var ErrFetchFailed = errors.New("student list could not be loaded")

type printParams struct {
	output string
	plain  bool
}

func newPrintCmd(root *rootParams) *cobra.Command {
	var params printParams

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Fetch the student list once and print it",
		Example: `  # Table on a terminal, plain ASCII when piped
  student-list-cli print

  # Machine-readable output
  student-list-cli print --output json
  student-list-cli print --output yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executePrint(cmd, root, params)
		},
	}

	cmd.Flags().StringVarP(&params.output, "output", "o", OutputTable,
		"output format: table, json or yaml")
	cmd.Flags().BoolVar(&params.plain, "plain", false,
		"never style the table, even on a terminal")

	return cmd
}

func executePrint(cmd *cobra.Command, root *rootParams, params printParams) error {
	switch params.output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output format: %s", params.output)
	}

	client, err := root.client()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c := studentlist.New(client, studentlist.WithLogger(root.logger(cmd)))
	c.Mount(ctx)
	defer c.Unmount()

	select {
	case <-c.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	state := c.State()
	out := cmd.OutOrStdout()

	switch params.output {
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(state)
	case OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		err = enc.Encode(state)
		if err == nil {
			err = enc.Close()
		}
	default:
		styled := !params.plain && isTerminal(out)
		_, err = fmt.Fprintln(out, tui.RenderState(state, styled))
	}
	if err != nil {
		return fmt.Errorf("print: write output: %w", err)
	}

	if state.Failed {
		return ErrFetchFailed
	}
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
