// Package list provides the command for listing catalog institutions.
package list

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/internal/cmd/output"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
)

// AppContext defines the interface that the list command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	Skillmap() (skillmap.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// Flags holds the list filters.
type Flags struct {
	Category string
	District string
	Search   string
	Limit    int
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Aliases: []string{"ls"},
		Short:   "List institutions in the catalog",
		Args:    cobra.NoArgs,
		Example: `  skillmap list                          # List every institution
  skillmap list --category iti           # ITIs only
  skillmap list --district thrissur      # Institutions in one district
  skillmap list --search nursing -o wide # Search names and areas`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Category, "category", "", "filter by category (college, iti, polytechnic, university, training_center, company)")
	cmd.Flags().StringVar(&flags.District, "district", "", "filter by district")
	cmd.Flags().StringVarP(&flags.Search, "search", "s", "", "case-insensitive search on name and area")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "maximum number of results (0 for all)")

	return cmd
}

func run(cmd *cobra.Command, app AppContext, flags *Flags) error {
	client, err := app.Skillmap()
	if err != nil {
		return err
	}
	catalog, err := client.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	list, err := Filter(catalog, flags)
	if err != nil {
		return err
	}

	app.Logger().Debug().Int("count", len(list)).Msg("Listing institutions")

	format := output.Format(app.OutputFormat())
	var data any = list
	if format.IsTable() {
		data = output.InstitutionsToData(list, format == output.FormatWide)
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d institutions\n", len(list))
	}
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
}

// Filter applies the flags to the catalog. Filters combine with AND and
// keep catalog order.
func Filter(catalog *institutions.Collection, flags *Flags) ([]institutions.Institution, error) {
	list := catalog.List()

	if flags.Category != "" {
		category := institutions.Category(flags.Category)
		if !category.Valid() {
			return nil, errors.NewValidationError("category", flags.Category, "unknown category")
		}
		list = intersect(list, catalog.ByCategory(category))
	}
	if flags.District != "" {
		list = intersect(list, catalog.ByDistrict(flags.District))
	}
	if flags.Search != "" {
		list = intersect(list, catalog.Search(flags.Search))
	}
	if flags.Limit > 0 && len(list) > flags.Limit {
		list = list[:flags.Limit]
	}
	return list, nil
}

func intersect(list, subset []institutions.Institution) []institutions.Institution {
	ids := make(map[string]bool, len(subset))
	for _, inst := range subset {
		ids[inst.ID] = true
	}
	out := list[:0]
	for _, inst := range list {
		if ids[inst.ID] {
			out = append(out, inst)
		}
	}
	return out
}
