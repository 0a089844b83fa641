// Package embedded bundles the default district datasets into the binary.
package embedded

import (
	"embed"
	"io/fs"
)

// FS embeds the default user, legacy, company and alias datasets.
//
//go:embed data/*.yaml
var FS embed.FS

// Datasets returns the embedded datasets rooted so that institutions.Load can read them.
func Datasets() fs.FS {
	sub, err := fs.Sub(FS, "data")
	if err != nil {
		// data/ is embedded at build time
		panic(err)
	}
	return sub
}
