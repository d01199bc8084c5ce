package templates

// Versions pins the dependency versions written into generated manifests.
type Versions struct {
	Node   string
	Python string

	Turbo            string
	Husky            string
	LintStaged       string
	Commitlint       string
	SemanticRelease  string
	React            string
	Vite             string
	VitePluginReact  string
	TailwindVite     string
	TypeScript       string
	Vitest           string
	TanstackRouter   string
	TanstackQuery    string
	ESLint           string
	TypescriptESLint string
	Prettier         string

	FastAPI          string
	Uvicorn          string
	Pydantic         string
	PydanticSettings string
	SQLAlchemy       string
	Alembic          string
	Psycopg          string
	Pytest           string
	HTTPX            string
	Ruff             string

	PostgresImage string
}

// DefaultVersions returns the versions used by new projects.
func DefaultVersions() Versions {
	return Versions{
		Node:   "20",
		Python: "3.11",

		Turbo:            "^2.0.0",
		Husky:            "^9.1.6",
		LintStaged:       "^15.2.10",
		Commitlint:       "^19.4.0",
		SemanticRelease:  "^24.2.7",
		React:            "^19.2.0",
		Vite:             "^7.2.2",
		VitePluginReact:  "^5.1.1",
		TailwindVite:     "^4.1.17",
		TypeScript:       "^5.9.3",
		Vitest:           "^4.0.8",
		TanstackRouter:   "^1.31.24",
		TanstackQuery:    "^5.32.0",
		ESLint:           "^9.15.0",
		TypescriptESLint: "^8.15.0",
		Prettier:         "^3.3.3",

		FastAPI:          ">=0.115.0",
		Uvicorn:          ">=0.32.0",
		Pydantic:         ">=2.9.0",
		PydanticSettings: ">=2.6.0",
		SQLAlchemy:       ">=2.0.36",
		Alembic:          ">=1.14.0",
		Psycopg:          ">=3.2.0",
		Pytest:           ">=8.3.0",
		HTTPX:            ">=0.27.0",
		Ruff:             ">=0.7.0",

		PostgresImage: "postgres:16-alpine",
	}
}
