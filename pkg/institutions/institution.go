// Package institutions defines the institution data model shared by every
// skillmap component: the raw user, legacy and company datasets, and the
// reconciled, read-only catalog built from them.
package institutions

import (
	"maps"
	"slices"
)

// Category classifies an institution.
type Category string

// String returns the string representation of a category.
func (c Category) String() string {
	return string(c)
}

// Institution categories found in the district datasets.
const (
	CategoryCollege        Category = "college"
	CategoryITI            Category = "iti"
	CategoryPolytechnic    Category = "polytechnic"
	CategoryUniversity     Category = "university"
	CategoryTrainingCenter Category = "training_center"
	CategoryCompany        Category = "company"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCollege, CategoryITI, CategoryPolytechnic, CategoryUniversity, CategoryTrainingCenter, CategoryCompany:
		return true
	}
	return false
}

// Institution is a training institution or employer in the catalog.
// A field is considered present when it holds a non-zero value.
type Institution struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`           // e.g. "government", "aided", "private"
	Ownership   string   `json:"ownership,omitempty" yaml:"ownership,omitempty"` // owning department or trust
	Established int      `json:"established,omitempty" yaml:"established,omitempty"`

	Location *Location `json:"location,omitempty" yaml:"location,omitempty"`
	Contact  *Contact  `json:"contact,omitempty" yaml:"contact,omitempty"`
	Academic *Academic `json:"academic,omitempty" yaml:"academic,omitempty"`

	Domains         Domains  `json:"domains,omitempty" yaml:"domains,omitempty"`
	Tools           []Tool   `json:"tools,omitempty" yaml:"tools,omitempty"`
	Specializations []string `json:"specializations,omitempty" yaml:"specializations,omitempty"`
}

// Location holds address-like fields. Either source may populate it partially.
type Location struct {
	District string `json:"district,omitempty" yaml:"district,omitempty"`
	Taluk    string `json:"taluk,omitempty" yaml:"taluk,omitempty"`
	Area     string `json:"area,omitempty" yaml:"area,omitempty"`
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
	Pincode  string `json:"pincode,omitempty" yaml:"pincode,omitempty"`
}

// Contact holds administrative contact details.
type Contact struct {
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Website   string `json:"website,omitempty" yaml:"website,omitempty"`
	Principal string `json:"principal,omitempty" yaml:"principal,omitempty"`
}

// Academic describes what an institution teaches.
type Academic struct {
	Affiliation   string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
	Accreditation string `json:"accreditation,omitempty" yaml:"accreditation,omitempty"`
	// Programs is nil when a source supplies no program list at all.
	Programs []Program `json:"programs,omitempty" yaml:"programs,omitempty"`
}

// Program is a course offered by an institution.
type Program struct {
	Name  string `json:"name" yaml:"name"`
	Seats *int   `json:"seats,omitempty" yaml:"seats,omitempty"` // nil when unknown
}

// Domains maps a skill domain to its signal strength.
type Domains map[string]float64

// Tool is a tool or technology taught or used, keyed by Name.
type Tool struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Level    string `json:"level,omitempty" yaml:"level,omitempty"`
}

// Clone returns a deep copy of the institution.
func (i Institution) Clone() Institution {
	out := i
	if i.Location != nil {
		loc := *i.Location
		out.Location = &loc
	}
	if i.Contact != nil {
		c := *i.Contact
		out.Contact = &c
	}
	if i.Academic != nil {
		a := i.Academic.Clone()
		out.Academic = &a
	}
	out.Domains = maps.Clone(i.Domains)
	out.Tools = slices.Clone(i.Tools)
	out.Specializations = slices.Clone(i.Specializations)
	return out
}

// Clone returns a deep copy of the academic record, including seat counts.
func (a Academic) Clone() Academic {
	out := a
	if a.Programs != nil {
		out.Programs = make([]Program, len(a.Programs))
		for i, p := range a.Programs {
			out.Programs[i] = p.Clone()
		}
	}
	return out
}

// Clone returns a copy of the program that does not share its seat pointer.
func (p Program) Clone() Program {
	if p.Seats != nil {
		seats := *p.Seats
		p.Seats = &seats
	}
	return p
}

// ToolNames returns the tool names in order.
func (i Institution) ToolNames() []string {
	names := make([]string, 0, len(i.Tools))
	for _, t := range i.Tools {
		names = append(names, t.Name)
	}
	return names
}

// District returns the institution's district, or "" when no location is known.
func (i Institution) District() string {
	if i.Location == nil {
		return ""
	}
	return i.Location.District
}

// Area returns the institution's area, or "" when no location is known.
func (i Institution) Area() string {
	if i.Location == nil {
		return ""
	}
	return i.Location.Area
}

// Programs returns the institution's programs, or nil.
func (i Institution) Programs() []Program {
	if i.Academic == nil {
		return nil
	}
	return i.Academic.Programs
}
