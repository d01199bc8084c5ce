// Package features describes the optional packages a generated project can include.
package features

import "strings"

// Feature ids.
const (
	API = "api"
	UI  = "ui"
	DB  = "db"
)

// Feature is one selectable package of the generated monorepo.
type Feature struct {
	ID             string
	Name           string
	Description    string
	DefaultEnabled bool
	// Dir is the package directory relative to the project root.
	Dir string
}

var registry = []Feature{
	{
		ID:             API,
		Name:           "API Backend",
		Description:    "FastAPI backend with Python",
		DefaultEnabled: true,
		Dir:            "packages/api",
	},
	{
		ID:             UI,
		Name:           "UI Package",
		Description:    "React UI components with Vite and TypeScript",
		DefaultEnabled: true,
		Dir:            "packages/ui",
	},
	{
		ID:             DB,
		Name:           "Database",
		Description:    "PostgreSQL database with migrations",
		DefaultEnabled: true,
		Dir:            "packages/db",
	},
}

// Registry returns every known feature in display order.
func Registry() []Feature {
	out := make([]Feature, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the feature with the given id, matched case-insensitively.
func Lookup(id string) (Feature, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, f := range registry {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// IDs returns all feature ids in display order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for _, f := range registry {
		ids = append(ids, f.ID)
	}
	return ids
}

// DefaultIDs returns the ids of features enabled by default.
func DefaultIDs() []string {
	var ids []string
	for _, f := range registry {
		if f.DefaultEnabled {
			ids = append(ids, f.ID)
		}
	}
	return ids
}
