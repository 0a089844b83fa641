package output

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/skillmap/internal/utils/ptr"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

// InstitutionsToData converts institutions to table rows. Wide output adds
// the location, programs and tools columns.
func InstitutionsToData(list []institutions.Institution, wide bool) Data {
	headers := []string{"ID", "NAME", "CATEGORY", "DISTRICT", "DOMAINS"}
	if wide {
		headers = append(headers, "AREA", "PROGRAMS", "SEATS", "TOOLS")
	}

	data := Data{Headers: headers}
	for _, inst := range list {
		row := []string{
			inst.ID,
			inst.Name,
			string(inst.Category),
			inst.District(),
			strings.Join(TopDomains(inst.Domains, 3), ", "),
		}
		if wide {
			row = append(row,
				inst.Area(),
				strconv.Itoa(len(inst.Programs())),
				seatsTotal(inst.Programs()),
				strings.Join(inst.ToolNames(), ", "),
			)
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// InstitutionDetail converts one institution to a property table.
func InstitutionDetail(inst institutions.Institution) Data {
	data := Data{Headers: []string{"Property", "Value"}}
	add := func(k, v string) {
		if v != "" {
			data.Rows = append(data.Rows, []string{k, v})
		}
	}

	add("ID", inst.ID)
	add("Name", inst.Name)
	add("Category", string(inst.Category))
	add("Type", inst.Type)
	add("Ownership", inst.Ownership)
	if inst.Established != 0 {
		add("Established", strconv.Itoa(inst.Established))
	}
	if loc := inst.Location; loc != nil {
		add("District", loc.District)
		add("Taluk", loc.Taluk)
		add("Area", loc.Area)
		add("Address", loc.Address)
		add("Pincode", loc.Pincode)
	}
	if c := inst.Contact; c != nil {
		add("Phone", c.Phone)
		add("Email", c.Email)
		add("Website", c.Website)
		add("Principal", c.Principal)
	}
	if a := inst.Academic; a != nil {
		add("Affiliation", a.Affiliation)
		add("Accreditation", a.Accreditation)
		for _, p := range a.Programs {
			seats := "-"
			if p.Seats != nil {
				seats = strconv.Itoa(*p.Seats)
			}
			add("Program", fmt.Sprintf("%s (%s seats)", p.Name, seats))
		}
	}
	for _, d := range TopDomains(inst.Domains, len(inst.Domains)) {
		add("Domain", fmt.Sprintf("%s (%g)", d, inst.Domains[d]))
	}
	add("Tools", strings.Join(inst.ToolNames(), ", "))
	add("Specializations", strings.Join(inst.Specializations, ", "))
	return data
}

// FailuresToData converts inference failures to table rows.
func FailuresToData(failures []reconciler.InferenceFailure) Data {
	data := Data{Headers: []string{"ID", "ERROR"}}
	for _, f := range failures {
		data.Rows = append(data.Rows, []string{f.ID, f.Error})
	}
	return data
}

// StatsToData converts build statistics to a key-value table.
func StatsToData(stats reconciler.Statistics) Data {
	d := structToTableData(stats)
	d.ColumnAlignment = []Align{AlignLeft, AlignRight}
	return *d
}

// TopDomains returns up to n domain names by descending signal, ties by name.
func TopDomains(domains institutions.Domains, n int) []string {
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(domains[b], domains[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	if n < len(names) {
		names = names[:n]
	}
	return names
}

func seatsTotal(programs []institutions.Program) string {
	total, known := 0, false
	for _, p := range programs {
		if p.Seats != nil {
			known = true
		}
		total += ptr.Deref(p.Seats, 0)
	}
	if !known {
		return "-"
	}
	return strconv.Itoa(total)
}
