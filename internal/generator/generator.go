// Package generator materializes the packages of a generated project. Each
// sub-generator owns one directory below the project root.
package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/opmodel/kickstart/internal/output"
	"github.com/opmodel/kickstart/internal/templates"
)

// maxConcurrentWrites bounds the file writes in flight for one generator.
const maxConcurrentWrites = 8

const (
	fileMode = 0o644
	execMode = 0o755
	dirMode  = 0o755
)

// Generator produces one package of the project.
type Generator interface {
	// Name is a short id used in logs, e.g. "core" or "ui".
	Name() string

	// Dir is the directory the generator owns, relative to the project root.
	Dir() string

	// Generate writes the package. The project root must already exist.
	Generate(ctx context.Context) error
}

// PackageGenerator produces one optional feature package. Its Name is the
// feature id.
type PackageGenerator interface {
	Generator

	// Title is the progress message shown while the package is written.
	Title() string
}

// Env is shared by every generator of one project.
type Env struct {
	// Root is the absolute project directory.
	Root     string
	Data     templates.Data
	Renderer *templates.Renderer
}

// NewEnv creates an Env rendering with the embedded templates.
func NewEnv(root string, data templates.Data) Env {
	return Env{Root: root, Data: data, Renderer: templates.NewRenderer()}
}

// file is one output file, relative to the generator directory.
type file struct {
	path string
	mode fs.FileMode

	// template is rendered unless content is set.
	template string
	content  func() ([]byte, error)

	// header is prepended to the rendered template.
	header string
}

func tmpl(path, name string) file {
	return file{path: path, template: name, mode: fileMode}
}

func script(path, name string) file {
	return file{path: path, template: name, mode: execMode}
}

func generated(path string, content func() ([]byte, error)) file {
	return file{path: path, content: content, mode: fileMode}
}

func (f file) render(env Env) ([]byte, error) {
	if f.content != nil {
		return f.content()
	}
	out, err := env.Renderer.Render(f.template, env.Data)
	if err != nil {
		return nil, err
	}
	return []byte(f.header + out), nil
}

// emit creates dir and its subdirectories in order, then writes files
// concurrently. The first failure cancels writes that have not started.
func emit(ctx context.Context, env Env, dir string, subdirs []string, files []file) error {
	base := filepath.Join(env.Root, dir)
	if err := os.MkdirAll(base, dirMode); err != nil {
		return fmt.Errorf("creating %s: %w", base, err)
	}
	for _, d := range subdirs {
		p := filepath.Join(base, d)
		if err := os.MkdirAll(p, dirMode); err != nil {
			return fmt.Errorf("creating %s: %w", p, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWrites)
	for _, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeFile(env, base, f)
		})
	}
	return g.Wait()
}

func writeFile(env Env, base string, f file) error {
	content, err := f.render(env)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", f.path, err)
	}

	target := filepath.Join(base, filepath.FromSlash(f.path))
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}
	if err := os.WriteFile(target, content, f.mode); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	// WriteFile leaves the mode of an existing file alone.
	if err := os.Chmod(target, f.mode); err != nil {
		return fmt.Errorf("setting mode on %s: %w", target, err)
	}
	output.Debug("wrote file", "path", target)
	return nil
}
