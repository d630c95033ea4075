package cli

import (
	"io"
	"os"

	"github.com/denchenko/userdir/internal/adapters/primary/cli/commands"
	"github.com/denchenko/userdir/internal/config"
	"github.com/denchenko/userdir/internal/core/app"
	"github.com/denchenko/userdir/internal/log"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Command creates and returns the root CLI command.
func Command(i do.Injector) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:          "userdir",
		Long:         `A CLI tool for browsing the user directory.`,
		SilenceUsage: true,
	}

	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)

	cmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		configureLogging(cfg.Verbose, os.Stderr)
	}

	cmd.AddCommand(commands.Users(appInstance))

	return cmd, nil
}

// Logs would interleave with the spinner, so they stay hidden unless asked for.
func configureLogging(verbose bool, w io.Writer) {
	if !verbose {
		log.SetOutput(io.Discard)

		return
	}

	log.SetOutput(w)
	log.SetDebug(true)
}
