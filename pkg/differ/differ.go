package differ

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/skillmap/pkg/institutions"
)

// Differ handles change detection between catalog snapshots.
type Differ interface {
	// Institutions compares two sets of institutions and returns changes.
	Institutions(existing, updated []institutions.Institution) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreFields   map[string]bool
	deepComparison bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields:   make(map[string]bool),
		deepComparison: true,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Institutions compares two sets of institutions and returns changes.
// Added and updated entries keep the order of updated, removed entries the
// order of existing.
func (diff *differ) Institutions(existing, updated []institutions.Institution) *Changeset {
	changeset := &Changeset{
		Added:   []institutions.Institution{},
		Updated: []Update{},
		Removed: []institutions.Institution{},
	}

	// Create maps for efficient lookup
	existingMap := make(map[string]institutions.Institution, len(existing))
	for _, inst := range existing {
		existingMap[inst.ID] = inst
	}
	newMap := make(map[string]bool, len(updated))
	for _, inst := range updated {
		newMap[inst.ID] = true
	}

	for _, inst := range updated {
		old, exists := existingMap[inst.ID]
		if !exists {
			changeset.Added = append(changeset.Added, inst)
			continue
		}
		if changes := diff.institution(old, inst); len(changes) > 0 {
			changeset.Updated = append(changeset.Updated, Update{ID: inst.ID, Changes: changes})
		}
	}

	for _, inst := range existing {
		if !newMap[inst.ID] {
			changeset.Removed = append(changeset.Removed, inst)
		}
	}

	return changeset
}

// institution compares two records and returns the field changes.
func (diff *differ) institution(old, updated institutions.Institution) []FieldChange {
	c := &collector{ignore: diff.ignoreFields}

	c.field("name", old.Name, updated.Name)
	c.field("category", string(old.Category), string(updated.Category))
	c.field("type", old.Type, updated.Type)
	c.field("ownership", old.Ownership, updated.Ownership)
	c.field("established", itoa(old.Established), itoa(updated.Established))

	if !diff.deepComparison {
		return c.changes
	}

	if !c.ignored("location") {
		var o, n institutions.Location
		if old.Location != nil {
			o = *old.Location
		}
		if updated.Location != nil {
			n = *updated.Location
		}
		c.field("location.district", o.District, n.District)
		c.field("location.taluk", o.Taluk, n.Taluk)
		c.field("location.area", o.Area, n.Area)
		c.field("location.address", o.Address, n.Address)
		c.field("location.pincode", o.Pincode, n.Pincode)
	}

	if !c.ignored("contact") {
		var o, n institutions.Contact
		if old.Contact != nil {
			o = *old.Contact
		}
		if updated.Contact != nil {
			n = *updated.Contact
		}
		c.field("contact.phone", o.Phone, n.Phone)
		c.field("contact.email", o.Email, n.Email)
		c.field("contact.website", o.Website, n.Website)
		c.field("contact.principal", o.Principal, n.Principal)
	}

	if !c.ignored("academic") {
		var o, n institutions.Academic
		if old.Academic != nil {
			o = *old.Academic
		}
		if updated.Academic != nil {
			n = *updated.Academic
		}
		c.field("academic.affiliation", o.Affiliation, n.Affiliation)
		c.field("academic.accreditation", o.Accreditation, n.Accreditation)
		c.programs(o.Programs, n.Programs)
	}

	if !c.ignored("domains") {
		c.domains(old.Domains, updated.Domains)
	}
	c.field("tools", strings.Join(old.ToolNames(), ", "), strings.Join(updated.ToolNames(), ", "))
	c.field("specializations", strings.Join(old.Specializations, ", "), strings.Join(updated.Specializations, ", "))

	return c.changes
}

type collector struct {
	ignore  map[string]bool
	changes []FieldChange
}

// ignored reports whether path or its top-level field is ignored.
func (c *collector) ignored(path string) bool {
	top, _, _ := strings.Cut(path, ".")
	return c.ignore[path] || c.ignore[top]
}

func (c *collector) field(path, old, updated string) {
	if old == updated || c.ignored(path) {
		return
	}
	change := FieldChange{Path: path, OldValue: old, NewValue: updated, Type: ChangeTypeUpdate}
	switch {
	case old == "":
		change.Type = ChangeTypeAdd
	case updated == "":
		change.Type = ChangeTypeRemove
	}
	c.changes = append(c.changes, change)
}

// programs compares program lists by name.
func (c *collector) programs(old, updated []institutions.Program) {
	oldSeats := make(map[string]string, len(old))
	for _, p := range old {
		oldSeats[p.Name] = seats(p.Seats)
	}
	seen := make(map[string]bool, len(updated))
	for _, p := range updated {
		seen[p.Name] = true
		path := fmt.Sprintf("academic.programs[%s]", p.Name)
		prev, ok := oldSeats[p.Name]
		if !ok {
			c.changes = append(c.changes, FieldChange{Path: path, NewValue: seats(p.Seats), Type: ChangeTypeAdd})
			continue
		}
		c.field(path+".seats", prev, seats(p.Seats))
	}
	for _, p := range old {
		if !seen[p.Name] {
			c.changes = append(c.changes, FieldChange{
				Path:     fmt.Sprintf("academic.programs[%s]", p.Name),
				OldValue: seats(p.Seats),
				Type:     ChangeTypeRemove,
			})
		}
	}
}

func (c *collector) domains(old, updated institutions.Domains) {
	keys := make([]string, 0, len(old)+len(updated))
	for k := range old {
		keys = append(keys, k)
	}
	for k := range updated {
		if _, ok := old[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		c.field("domains."+k, signal(old, k), signal(updated, k))
	}
}

func signal(d institutions.Domains, k string) string {
	v, ok := d[k]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func seats(p *int) string {
	if p == nil {
		return "?"
	}
	return strconv.Itoa(*p)
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
