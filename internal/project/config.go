// Package project holds the validated input of a generation run.
package project

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	oerrors "github.com/opmodel/kickstart/internal/errors"
	"github.com/opmodel/kickstart/internal/features"
)

// Config is the immutable description of the project to generate.
type Config struct {
	// Name is a lowercase slug. It names the root directory, the workspace
	// scope, the Helm chart and the Kubernetes resources.
	Name string

	// Description is optional free text for the README and manifests.
	Description string

	PackageManager PackageManager

	Features features.Set
}

// DefaultDescription is used when Description is empty.
const DefaultDescription = "A full-stack application built with modern tools and best practices."

// DisplayDescription returns Description or the default text.
func (c Config) DisplayDescription() string {
	if strings.TrimSpace(c.Description) == "" {
		return DefaultDescription
	}
	return c.Description
}

// Validate checks the name and package manager.
func (c Config) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if !c.PackageManager.Valid() {
		return oerrors.NewValidationError(
			fmt.Sprintf("unsupported package manager %q", c.PackageManager),
			"",
			"Use one of: pnpm, yarn, npm",
		)
	}
	return nil
}

// ValidateName checks that name is usable as a directory, package scope and
// Kubernetes resource name.
func ValidateName(name string) error {
	if name == "" {
		return oerrors.NewValidationError("project name is required", "", "Pass a name, e.g. kickstart create my-app")
	}
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return oerrors.NewValidationError(
			fmt.Sprintf("invalid project name %q: %s", name, strings.Join(errs, "; ")),
			"",
			fmt.Sprintf("Try %q", NormalizeName(name)),
		)
	}
	return nil
}
