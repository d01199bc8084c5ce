package generator

import "context"

// API writes the FastAPI backend package.
type API struct {
	env Env
}

// NewAPI creates the backend generator.
func NewAPI(env Env) *API {
	return &API{env: env}
}

func (g *API) Name() string  { return "api" }
func (g *API) Dir() string   { return "packages/api" }
func (g *API) Title() string { return "Setting up Python API..." }

// Generate implements Generator.
func (g *API) Generate(ctx context.Context) error {
	dirs := []string{
		"src/core",
		"src/routes",
		"src/models",
		"src/schemas",
		"tests",
	}
	files := []file{
		tmpl("package.json", "api/package.json.tmpl"),
		tmpl("pyproject.toml", "api/pyproject.toml.tmpl"),
		tmpl("README.md", "api/README.md.tmpl"),
		tmpl("Containerfile", "api/Containerfile.tmpl"),
		tmpl("src/__init__.py", "api/init.py.tmpl"),
		tmpl("src/main.py", "api/main.py.tmpl"),
		tmpl("src/core/__init__.py", "common/empty.tmpl"),
		tmpl("src/core/config.py", "api/config.py.tmpl"),
		tmpl("src/routes/__init__.py", "common/empty.tmpl"),
		tmpl("src/routes/health.py", "api/health-route.py.tmpl"),
		tmpl("src/models/__init__.py", "api/models.py.tmpl"),
		tmpl("src/schemas/__init__.py", "common/empty.tmpl"),
		tmpl("src/schemas/health.py", "api/health-schema.py.tmpl"),
		tmpl("tests/__init__.py", "common/empty.tmpl"),
		tmpl("tests/conftest.py", "api/conftest.py.tmpl"),
		tmpl("tests/helpers.py", "api/helpers.py.tmpl"),
		tmpl("tests/test_health.py", "api/test_health.py.tmpl"),
	}
	return emit(ctx, g.env, g.Dir(), dirs, files)
}
