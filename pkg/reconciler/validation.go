package reconciler

import (
	"fmt"

	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
)

// Validate checks the catalog invariants: ids are unique and no record
// carries a duplicate tool name or specialization.
func Validate(catalog []institutions.Institution) []error {
	var errs []error
	seen := make(map[string]bool, len(catalog))

	for _, inst := range catalog {
		if inst.ID == "" {
			errs = append(errs, errors.NewValidationError("id", inst.Name, "institution has no id"))
		} else if seen[inst.ID] {
			errs = append(errs, errors.NewValidationError("id", inst.ID, fmt.Sprintf("duplicate id %q", inst.ID)))
		}
		seen[inst.ID] = true

		if dup := firstDuplicate(inst.ToolNames()); dup != "" {
			errs = append(errs, errors.NewValidationError("tools", inst.ID,
				fmt.Sprintf("institution %s lists tool %q twice", inst.ID, dup)))
		}
		if dup := firstDuplicate(inst.Specializations); dup != "" {
			errs = append(errs, errors.NewValidationError("specializations", inst.ID,
				fmt.Sprintf("institution %s lists specialization %q twice", inst.ID, dup)))
		}
	}
	return errs
}

func firstDuplicate(values []string) string {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return v
		}
		seen[v] = true
	}
	return ""
}
