// Package differ provides functionality for comparing catalogs and detecting changes.
package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/skillmap/pkg/institutions"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"`                               // Field path (e.g., "location.pincode")
	OldValue string     `json:"old_value,omitempty" yaml:"old_value,omitempty"` // Previous value (string representation)
	NewValue string     `json:"new_value,omitempty" yaml:"new_value,omitempty"` // New value (string representation)
	Type     ChangeType `json:"type" yaml:"type"`
}

// Update represents an update to an existing institution.
type Update struct {
	ID      string        `json:"id" yaml:"id"`
	Changes []FieldChange `json:"changes" yaml:"changes"`
}

// Changeset represents all changes between two catalogs.
type Changeset struct {
	Added   []institutions.Institution `json:"added" yaml:"added"`
	Updated []Update                   `json:"updated" yaml:"updated"`
	Removed []institutions.Institution `json:"removed" yaml:"removed"`
}

// Summary provides summary statistics for a changeset.
type Summary struct {
	Added        int
	Updated      int
	Removed      int
	TotalChanges int
}

// Summary computes the summary for the changeset.
func (c *Changeset) Summary() Summary {
	return Summary{
		Added:        len(c.Added),
		Updated:      len(c.Updated),
		Removed:      len(c.Removed),
		TotalChanges: len(c.Added) + len(c.Updated) + len(c.Removed),
	}
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary().TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return !c.HasChanges()
}

// String returns a one-line summary of the changeset.
func (c *Changeset) String() string {
	s := c.Summary()
	if s.TotalChanges == 0 {
		return "no changes"
	}
	return fmt.Sprintf("%d added, %d updated, %d removed", s.Added, s.Updated, s.Removed)
}

// Print writes a detailed, human-readable changeset.
func (c *Changeset) Print(w io.Writer) {
	var b strings.Builder
	for _, inst := range c.Added {
		fmt.Fprintf(&b, "+ %s (%s)\n", inst.ID, inst.Name)
	}
	for _, u := range c.Updated {
		fmt.Fprintf(&b, "~ %s\n", u.ID)
		for _, ch := range u.Changes {
			fmt.Fprintf(&b, "    %s: %s → %s\n", ch.Path, orDash(ch.OldValue), orDash(ch.NewValue))
		}
	}
	for _, inst := range c.Removed {
		fmt.Fprintf(&b, "- %s (%s)\n", inst.ID, inst.Name)
	}
	_, _ = io.WriteString(w, b.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
