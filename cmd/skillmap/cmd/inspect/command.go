// Package inspect provides the command for showing one institution in detail.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/internal/cmd/output"
)

// AppContext defines the interface that the inspect command needs from the app.
type AppContext interface {
	Skillmap() (skillmap.Client, error)
	OutputFormat() string
}

// NewCommand creates the inspect command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <id>",
		GroupID: "core",
		Aliases: []string{"show"},
		Short:   "Show the reconciled record of one institution",
		Args:    cobra.ExactArgs(1),
		Example: `  skillmap inspect gec-thrissur
  skillmap inspect LEG-0007 -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Skillmap()
			if err != nil {
				return err
			}
			catalog, err := client.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			inst, err := catalog.Get(args[0])
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			var data any = inst
			if format.IsTable() {
				data = output.InstitutionDetail(inst)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}
}
