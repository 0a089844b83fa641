package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/skillmap/cmd/skillmap/cmd/export"
	"github.com/agentstation/skillmap/cmd/skillmap/cmd/inspect"
	"github.com/agentstation/skillmap/cmd/skillmap/cmd/list"
	"github.com/agentstation/skillmap/cmd/skillmap/cmd/serve"
	"github.com/agentstation/skillmap/cmd/skillmap/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(inspect.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(export.NewCommand(a))

	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("skillmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
