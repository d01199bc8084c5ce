package templates

import (
	"strings"

	"github.com/opmodel/kickstart/internal/features"
	"github.com/opmodel/kickstart/internal/project"
)

// Data is the value every template is executed with.
type Data struct {
	Name           string
	Description    string
	PackageManager project.PackageManager
	Features       features.Set
	Versions       Versions
}

// NewData derives template data from a project configuration.
func NewData(cfg project.Config) Data {
	return Data{
		Name:           cfg.Name,
		Description:    cfg.DisplayDescription(),
		PackageManager: cfg.PackageManager,
		Features:       cfg.Features,
		Versions:       DefaultVersions(),
	}
}

// Title returns the name in title case, e.g. "my-app" becomes "My App".
func (d Data) Title() string {
	parts := strings.Split(d.Name, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// Scope returns the workspace scope, e.g. "@demo".
func (d Data) Scope() string {
	return "@" + d.Name
}

// Package returns the scoped workspace package name for pkg.
func (d Data) Package(pkg string) string {
	return project.ScopedPackage(d.Name, pkg)
}

// Service returns the container service name for pkg.
func (d Data) Service(pkg string) string {
	return project.ServiceName(d.Name, pkg)
}

// Volume returns a compose volume name.
func (d Data) Volume(v string) string {
	return project.VolumeName(d.Name, v)
}

// PythonModule returns the name as a Python identifier.
func (d Data) PythonModule() string {
	return project.PythonModule(d.Name)
}

// Run returns the command prefix for a root script, e.g. "npm run".
func (d Data) Run() string {
	return d.PackageManager.ScriptCommand()
}

// Setup returns the full setup command.
func (d Data) Setup() string {
	return d.PackageManager.SetupCommand()
}

// Workspace returns the command running script in the workspace package pkg.
func (d Data) Workspace(pkg, script string) string {
	return d.PackageManager.WorkspaceScript(d.Package(pkg), script, true)
}

// Recursive returns the command running script in every workspace that has it.
func (d Data) Recursive(script string) string {
	return d.PackageManager.RecursiveScript(script, true)
}
