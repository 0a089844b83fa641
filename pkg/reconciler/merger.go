package reconciler

import (
	"strings"

	"github.com/agentstation/skillmap/pkg/institutions"
)

// mergeInstitution merges a user record over its legacy counterpart.
// The legacy record supplies whatever the user record lacks; every field
// present on the user record wins. Location and Academic merge per field,
// and programs follow mergePrograms.
func mergeInstitution(user, legacy institutions.Institution) institutions.Institution {
	merged := legacy.Clone()
	u := user.Clone()

	merged.ID = u.ID
	setString(&merged.Name, u.Name)
	if u.Category != "" {
		merged.Category = u.Category
	}
	setString(&merged.Type, u.Type)
	setString(&merged.Ownership, u.Ownership)
	if u.Established != 0 {
		merged.Established = u.Established
	}
	if u.Contact != nil {
		merged.Contact = u.Contact
	}
	if u.Domains != nil {
		merged.Domains = u.Domains
	}
	if u.Tools != nil {
		merged.Tools = u.Tools
	}
	if u.Specializations != nil {
		merged.Specializations = u.Specializations
	}

	merged.Location = mergeLocation(u.Location, merged.Location)
	merged.Academic = mergeAcademic(u.Academic, merged.Academic)

	return merged
}

// mergeLocation merges field by field so a legacy address survives a user
// record that only knows the area.
func mergeLocation(user, legacy *institutions.Location) *institutions.Location {
	if user == nil {
		return legacy
	}
	if legacy == nil {
		return user
	}
	out := *legacy
	setString(&out.District, user.District)
	setString(&out.Taluk, user.Taluk)
	setString(&out.Area, user.Area)
	setString(&out.Address, user.Address)
	setString(&out.Pincode, user.Pincode)
	return &out
}

func mergeAcademic(user, legacy *institutions.Academic) *institutions.Academic {
	if user == nil {
		return legacy
	}
	if legacy == nil {
		return user
	}
	out := *legacy
	setString(&out.Affiliation, user.Affiliation)
	setString(&out.Accreditation, user.Accreditation)
	out.Programs = mergePrograms(user.Programs, legacy.Programs)
	return &out
}

// mergePrograms returns the user's programs, borrowing seat counts from
// legacy programs for entries that have none. A legacy program matches when
// either name contains the other, ignoring case; the first match wins and
// one legacy program may serve several user programs. Legacy programs
// without a user counterpart are not carried over. A nil user list falls
// back to the legacy list.
func mergePrograms(user, legacy []institutions.Program) []institutions.Program {
	if user == nil {
		return cloneValues(legacy)
	}

	out := make([]institutions.Program, len(user))
	for i, up := range user {
		out[i] = up.Clone()
		if up.Seats != nil {
			continue
		}
		if lp, ok := matchProgram(up.Name, legacy); ok && lp.Seats != nil {
			seats := *lp.Seats
			out[i].Seats = &seats
		}
	}
	return out
}

func matchProgram(name string, legacy []institutions.Program) (institutions.Program, bool) {
	userName := institutions.Fold(name)
	for _, lp := range legacy {
		legacyName := institutions.Fold(lp.Name)
		if strings.Contains(userName, legacyName) || strings.Contains(legacyName, userName) {
			return lp, true
		}
	}
	return institutions.Program{}, false
}

func cloneValues(programs []institutions.Program) []institutions.Program {
	if programs == nil {
		return nil
	}
	out := make([]institutions.Program, len(programs))
	for i, p := range programs {
		out[i] = p.Clone()
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
