package generator

import "context"

// Configs writes the shared lint and format configuration packages.
type Configs struct {
	env Env
}

// NewConfigs creates the shared configuration generator.
func NewConfigs(env Env) *Configs {
	return &Configs{env: env}
}

func (g *Configs) Name() string { return "configs" }
func (g *Configs) Dir() string  { return "packages/configs" }

// Generate implements Generator. The Ruff config is only written when a
// Python package is enabled.
func (g *Configs) Generate(ctx context.Context) error {
	dirs := []string{"eslint", "prettier"}
	files := []file{
		tmpl("eslint/package.json", "configs/eslint-package.json.tmpl"),
		tmpl("eslint/index.cjs", "configs/eslint-index.cjs.tmpl"),
		tmpl("eslint/index.mjs", "configs/eslint-index.mjs.tmpl"),
		tmpl("prettier/package.json", "configs/prettier-package.json.tmpl"),
		tmpl("prettier/index.json", "configs/prettier-index.json.tmpl"),
	}
	if g.env.Data.Features.HasPython() {
		dirs = append(dirs, "ruff")
		files = append(files, tmpl("ruff/pyproject.toml", "configs/ruff-pyproject.toml.tmpl"))
	}
	return emit(ctx, g.env, g.Dir(), dirs, files)
}
