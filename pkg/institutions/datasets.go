package institutions

import (
	"io/fs"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/skillmap/pkg/errors"
)

// Dataset file names inside a data directory.
const (
	UsersFile     = "users.yaml"
	LegacyFile    = "legacy.yaml"
	CompaniesFile = "companies.yaml"
	AliasesFile   = "aliases.yaml"
)

// Datasets bundles the raw inputs of a catalog build.
type Datasets struct {
	// Users are records maintained by this application; authoritative but possibly incomplete.
	Users []Institution `json:"users" yaml:"users"`
	// Legacy are records carried over from the prior dataset, keyed by a possibly different id.
	Legacy []Institution `json:"legacy" yaml:"legacy"`
	// Companies are employers; a disjoint id space that is never merged.
	Companies []Institution `json:"companies" yaml:"companies"`
	// Aliases maps a user id to the legacy id of the same entity when the two differ.
	Aliases map[string]string `json:"aliases" yaml:"aliases"`
}

// Load reads the four dataset files from fsys. A missing file is an empty
// input; a malformed one is a ParseError.
func Load(fsys fs.FS) (*Datasets, error) {
	ds := &Datasets{}

	if err := loadYAML(fsys, UsersFile, &ds.Users); err != nil {
		return nil, err
	}
	if err := loadYAML(fsys, LegacyFile, &ds.Legacy); err != nil {
		return nil, err
	}
	if err := loadYAML(fsys, CompaniesFile, &ds.Companies); err != nil {
		return nil, err
	}
	if err := loadYAML(fsys, AliasesFile, &ds.Aliases); err != nil {
		return nil, err
	}

	if ds.Aliases == nil {
		ds.Aliases = make(map[string]string)
	}
	return ds, nil
}

func loadYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil // File doesn't exist is okay
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.WrapParse("yaml", name, err)
	}
	return nil
}

// Size returns the total number of input records.
func (ds *Datasets) Size() int {
	if ds == nil {
		return 0
	}
	return len(ds.Users) + len(ds.Legacy) + len(ds.Companies)
}
