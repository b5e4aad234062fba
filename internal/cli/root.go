// Package cli implements the student-list-cli command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-list/internal/config"
	"github.com/aanand-mishra/student-list/internal/directory"
	"github.com/aanand-mishra/student-list/internal/logging"
)

// rootParams holds the flags shared by every subcommand.
type rootParams struct {
	url        string
	configPath string
	logEnv     string
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var params rootParams

	cmd := &cobra.Command{
		Use:   "student-list-cli",
		Short: "Show the student list in a terminal",
		Long: `Fetch the student list once from the remote directory and show it,
either as an interactive terminal view or as a one-shot printout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&params.url, "url", "",
		"directory URL (default "+config.DefaultSourceURL+")")
	cmd.PersistentFlags().StringVar(&params.configPath, "config", "",
		"path to a configuration YAML file; only its source section is read")
	cmd.PersistentFlags().StringVar(&params.logEnv, "log-env", "quiet",
		"logger profile: quiet, dev, staging or prod")

	cmd.AddCommand(newTUICmd(&params), newPrintCmd(&params))
	return cmd
}

// client resolves the directory URL: --url wins over --config, which wins
// over the built-in default.
func (p *rootParams) client() (*directory.Client, error) {
	url := p.url
	if url == "" && p.configPath != "" {
		src, err := config.LoadSource(p.configPath)
		if err != nil {
			return nil, err
		}
		url = src.URL
	}
	return directory.New(url), nil
}

// logger writes to the command's stderr so stdout stays clean for output.
func (p *rootParams) logger(cmd *cobra.Command) *slog.Logger {
	return logging.Setup(p.logEnv, cmd.ErrOrStderr())
}
