package features

import (
	"fmt"
	"strings"

	oerrors "github.com/opmodel/kickstart/internal/errors"
)

// Set is the closed set of feature flags for one project.
type Set struct {
	UI  bool
	API bool
	DB  bool
}

// All returns a Set with every feature enabled.
func All() Set {
	return Set{UI: true, API: true, DB: true}
}

// Defaults returns the Set of default-enabled registry features.
func Defaults() Set {
	s, _ := ParseList(DefaultIDs())
	return s
}

// ParseList builds a Set from feature ids. Each entry may itself be a
// comma-separated list. Blank entries are ignored.
func ParseList(values []string) (Set, error) {
	var s Set
	var unknown []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if !s.set(id, true) {
				unknown = append(unknown, id)
			}
		}
	}
	if len(unknown) > 0 {
		return Set{}, unknownError(unknown)
	}
	return s, nil
}

func unknownError(ids []string) error {
	return oerrors.NewValidationError(
		fmt.Sprintf("unknown package(s): %s", strings.Join(ids, ", ")),
		"",
		"Valid packages: "+strings.Join(IDs(), ", "),
	)
}

func (s *Set) set(id string, enabled bool) bool {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case UI:
		s.UI = enabled
	case API:
		s.API = enabled
	case DB:
		s.DB = enabled
	default:
		return false
	}
	return true
}

// Has reports whether the feature id is enabled. Unknown ids are disabled.
func (s Set) Has(id string) bool {
	switch id {
	case UI:
		return s.UI
	case API:
		return s.API
	case DB:
		return s.DB
	default:
		return false
	}
}

// Enabled returns the enabled feature ids in registry order.
func (s Set) Enabled() []string {
	var ids []string
	for _, f := range registry {
		if s.Has(f.ID) {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Count returns the number of enabled features.
func (s Set) Count() int {
	return len(s.Enabled())
}

// HasPython reports whether a Python-backed package (api or db) is enabled.
func (s Set) HasPython() bool {
	return s.API || s.DB
}

// HasContainerized reports whether a package served over HTTP (api or ui) is enabled.
func (s Set) HasContainerized() bool {
	return s.API || s.UI
}

// String returns the enabled ids joined by commas, or "none".
func (s Set) String() string {
	ids := s.Enabled()
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ",")
}
