package generator

import "context"

// DB writes the SQLAlchemy models and Alembic migrations package.
type DB struct {
	env Env
}

// NewDB creates the database generator.
func NewDB(env Env) *DB {
	return &DB{env: env}
}

func (g *DB) Name() string  { return "db" }
func (g *DB) Dir() string   { return "packages/db" }
func (g *DB) Title() string { return "Setting up database package..." }

// Generate implements Generator.
func (g *DB) Generate(ctx context.Context) error {
	dirs := []string{
		"src/db",
		"alembic/versions",
		"tests",
	}
	files := []file{
		tmpl("package.json", "db/package.json.tmpl"),
		tmpl("pyproject.toml", "db/pyproject.toml.tmpl"),
		tmpl("README.md", "db/README.md.tmpl"),
		tmpl("alembic.ini", "db/alembic.ini.tmpl"),
		tmpl("Containerfile", "db/Containerfile.tmpl"),
		tmpl("src/db/__init__.py", "db/init.py.tmpl"),
		tmpl("src/db/database.py", "db/database.py.tmpl"),
		tmpl("alembic/env.py", "db/env.py.tmpl"),
		tmpl("alembic/script.py.mako", "db/script.py.mako"),
		tmpl("alembic/versions/.gitkeep", "common/empty.tmpl"),
		tmpl("tests/__init__.py", "common/empty.tmpl"),
		tmpl("tests/test_database.py", "db/test_database.py.tmpl"),
	}
	return emit(ctx, g.env, g.Dir(), dirs, files)
}
