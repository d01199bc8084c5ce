package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
)

// ChartNameToken is replaced with the chart name in static files.
const ChartNameToken = "<CHARTNAME>"

// Renderer renders embedded templates. Parsed templates are cached, and a
// Renderer is safe for concurrent use.
type Renderer struct {
	fsys  fs.FS
	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewRenderer creates a renderer over the embedded template tree.
func NewRenderer() *Renderer {
	return NewRendererFS(FS())
}

// NewRendererFS creates a renderer over fsys.
func NewRendererFS(fsys fs.FS) *Renderer {
	return &Renderer{
		fsys:  fsys,
		cache: make(map[string]*template.Template),
	}
}

// Render produces the content of the named file. Names ending in .tmpl are
// executed with data; any other file is returned with ChartNameToken
// replaced by data.Name.
func (r *Renderer) Render(name string, data Data) (string, error) {
	if !IsTemplate(name) {
		raw, err := fs.ReadFile(r.fsys, name)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", name, err)
		}
		return strings.ReplaceAll(string(raw), ChartNameToken, data.Name), nil
	}

	tmpl, err := r.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}

	raw, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(funcMap()).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	r.cache[name] = tmpl
	return tmpl, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"join":  strings.Join,
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"nodots": func(s string) string {
			return strings.ReplaceAll(s, ".", "")
		},
		"quote": func(s string) string {
			b, _ := json.Marshal(s)
			return string(b)
		},
		"indent": func(n int, s string) string {
			pad := strings.Repeat(" ", n)
			lines := strings.Split(s, "\n")
			for i, l := range lines {
				if l != "" {
					lines[i] = pad + l
				}
			}
			return strings.Join(lines, "\n")
		},
	}
}
