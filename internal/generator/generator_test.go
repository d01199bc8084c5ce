package generator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/opmodel/kickstart/internal/features"
	"github.com/opmodel/kickstart/internal/project"
	"github.com/opmodel/kickstart/internal/templates"
	"github.com/opmodel/kickstart/internal/testutil"
)

func testEnv(t *testing.T, fs features.Set) Env {
	t.Helper()
	cfg := project.Config{
		Name:           "demo",
		PackageManager: project.PNPM,
		Features:       fs,
	}
	return NewEnv(t.TempDir(), templates.NewData(cfg))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	return testutil.ReadFile(t, root, rel)
}

func TestCore_WritesRootFiles(t *testing.T) {
	env := testEnv(t, features.Set{UI: true})
	require.NoError(t, NewCore(env).Generate(context.Background()))

	for _, rel := range []string{
		"package.json",
		"turbo.json",
		"pnpm-workspace.yaml",
		"README.md",
		".gitignore",
		".releaserc",
		"commitlint.config.js",
		".husky/pre-commit",
		".husky/commit-msg",
		".github/pull_request_template.md",
		"Makefile",
		".env.example",
	} {
		assert.FileExists(t, filepath.Join(env.Root, rel))
	}
	assert.DirExists(t, filepath.Join(env.Root, "packages"))
	assert.NoFileExists(t, filepath.Join(env.Root, "compose.yml"))

	var pkg map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, env.Root, "package.json")), &pkg))
	assert.Equal(t, "demo", pkg["name"])
}

func TestCore_HooksAreExecutable(t *testing.T) {
	env := testEnv(t, features.Set{UI: true})
	require.NoError(t, NewCore(env).Generate(context.Background()))

	for _, hook := range []string{".husky/pre-commit", ".husky/commit-msg"} {
		info, err := os.Stat(filepath.Join(env.Root, hook))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(execMode), info.Mode().Perm(), hook)
	}
}

func TestCore_TurboJSON(t *testing.T) {
	tests := []struct {
		name      string
		fs        features.Set
		storybook bool
	}{
		{"with ui", features.Set{UI: true}, true},
		{"without ui", features.Set{API: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t, tt.fs)
			require.NoError(t, NewCore(env).Generate(context.Background()))

			var cfg turboConfig
			require.NoError(t, json.Unmarshal([]byte(readFile(t, env.Root, "turbo.json")), &cfg))
			assert.Contains(t, cfg.Tasks, "build")
			assert.Contains(t, cfg.Tasks, "lint")
			_, ok := cfg.Tasks["storybook"]
			assert.Equal(t, tt.storybook, ok)
		})
	}
}

func TestCore_PnpmWorkspace(t *testing.T) {
	env := testEnv(t, features.Set{UI: true})
	require.NoError(t, NewCore(env).Generate(context.Background()))

	var ws struct {
		Packages []string `yaml:"packages"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, env.Root, "pnpm-workspace.yaml")), &ws))
	assert.Equal(t, []string{"packages/*", "packages/configs/*"}, ws.Packages)
}

func TestCore_ComposeWithDatabase(t *testing.T) {
	env := testEnv(t, features.All())
	require.NoError(t, NewCore(env).Generate(context.Background()))

	var cf composeFile
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, env.Root, "compose.yml")), &cf))

	require.Contains(t, cf.Services, "demo-db")
	require.Contains(t, cf.Services, "demo-api")
	require.Contains(t, cf.Services, "demo-ui")
	assert.Contains(t, cf.Volumes, "demo_postgres_data")
	assert.Equal(t, []string{"demo-db"}, cf.Services["demo-api"].DependsOn)
	assert.Equal(t, []string{"demo-api"}, cf.Services["demo-ui"].DependsOn)
	assert.Equal(t, "demo", cf.Services["demo-db"].Environment["POSTGRES_DB"])
}

func TestCore_ComposeDatabaseOnly(t *testing.T) {
	env := testEnv(t, features.Set{DB: true})
	require.NoError(t, NewCore(env).Generate(context.Background()))

	var cf composeFile
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, env.Root, "compose.yml")), &cf))
	assert.Len(t, cf.Services, 1)
	assert.Contains(t, cf.Services, "demo-db")
}

func TestConfigs_RuffOnlyWithPython(t *testing.T) {
	tests := []struct {
		name string
		fs   features.Set
		ruff bool
	}{
		{"ui only", features.Set{UI: true}, false},
		{"api", features.Set{API: true}, true},
		{"db", features.Set{DB: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t, tt.fs)
			require.NoError(t, NewConfigs(env).Generate(context.Background()))

			base := filepath.Join(env.Root, "packages", "configs")
			assert.FileExists(t, filepath.Join(base, "eslint", "package.json"))
			assert.FileExists(t, filepath.Join(base, "eslint", "index.cjs"))
			assert.FileExists(t, filepath.Join(base, "eslint", "index.mjs"))
			assert.FileExists(t, filepath.Join(base, "prettier", "package.json"))
			assert.FileExists(t, filepath.Join(base, "prettier", "index.json"))

			ruff := filepath.Join(base, "ruff", "pyproject.toml")
			if tt.ruff {
				assert.FileExists(t, ruff)
			} else {
				assert.NoFileExists(t, ruff)
			}
		})
	}
}

func TestAgents_FeatureRules(t *testing.T) {
	env := testEnv(t, features.Set{UI: true})
	require.NoError(t, NewAgents(env).Generate(context.Background()))

	assert.FileExists(t, filepath.Join(env.Root, ".claude", "rules", "architecture.md"))
	assert.FileExists(t, filepath.Join(env.Root, ".claude", "rules", "ui.md"))
	assert.NoFileExists(t, filepath.Join(env.Root, ".claude", "rules", "api.md"))
	assert.NoFileExists(t, filepath.Join(env.Root, ".claude", "rules", "database.md"))

	assert.FileExists(t, filepath.Join(env.Root, ".cursor", "rules", "ui-development.mdc"))
	assert.FileExists(t, filepath.Join(env.Root, ".cursor", "rules", "git-workflow.md"))
	assert.NoFileExists(t, filepath.Join(env.Root, ".cursor", "rules", "api-development.mdc"))
}

func TestAgents_CursorFrontmatter(t *testing.T) {
	env := testEnv(t, features.All())
	require.NoError(t, NewAgents(env).Generate(context.Background()))

	mdc := readFile(t, env.Root, ".cursor/rules/api-development.mdc")
	require.True(t, strings.HasPrefix(mdc, "---\n"))

	parts := strings.SplitN(mdc, "---\n", 3)
	require.Len(t, parts, 3)

	var fm cursorFrontmatter
	require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &fm))
	assert.Equal(t, "packages/api/**", fm.Globs)
	assert.False(t, fm.AlwaysApply)

	// Plain markdown rules carry no frontmatter, and the body matches Claude's.
	md := readFile(t, env.Root, ".cursor/rules/code-style.md")
	assert.False(t, strings.HasPrefix(md, "---"))
	assert.Equal(t, readFile(t, env.Root, ".claude/rules/code-style.md"), md)
	assert.Equal(t, readFile(t, env.Root, ".claude/rules/api.md"), strings.TrimPrefix(parts[2], "\n"))
}

func TestUI_HealthFilesFollowAPI(t *testing.T) {
	health := []string{"src/services/health.ts", "src/hooks/use-health.ts", "src/schemas/health.ts"}

	t.Run("with api", func(t *testing.T) {
		env := testEnv(t, features.Set{UI: true, API: true})
		require.NoError(t, NewUI(env).Generate(context.Background()))
		for _, rel := range health {
			assert.FileExists(t, filepath.Join(env.Root, "packages", "ui", rel))
		}
	})

	t.Run("without api", func(t *testing.T) {
		env := testEnv(t, features.Set{UI: true})
		require.NoError(t, NewUI(env).Generate(context.Background()))
		for _, rel := range health {
			assert.NoFileExists(t, filepath.Join(env.Root, "packages", "ui", rel))
		}
		assert.FileExists(t, filepath.Join(env.Root, "packages", "ui", "src", "routes", "__root.tsx"))
		assert.FileExists(t, filepath.Join(env.Root, "packages", "ui", ".prettierrc"))
	})
}

func TestAPI_Layout(t *testing.T) {
	env := testEnv(t, features.Set{API: true})
	require.NoError(t, NewAPI(env).Generate(context.Background()))

	base := filepath.Join(env.Root, "packages", "api")
	for _, rel := range []string{
		"pyproject.toml",
		"src/__init__.py",
		"src/main.py",
		"src/core/config.py",
		"src/routes/health.py",
		"src/schemas/health.py",
		"tests/conftest.py",
		"tests/test_health.py",
	} {
		assert.FileExists(t, filepath.Join(base, rel))
	}
}

func TestDB_Layout(t *testing.T) {
	env := testEnv(t, features.Set{DB: true})
	require.NoError(t, NewDB(env).Generate(context.Background()))

	base := filepath.Join(env.Root, "packages", "db")
	assert.FileExists(t, filepath.Join(base, "alembic.ini"))
	assert.FileExists(t, filepath.Join(base, "alembic", "env.py"))
	assert.FileExists(t, filepath.Join(base, "alembic", "versions", ".gitkeep"))
	assert.FileExists(t, filepath.Join(base, "src", "db", "database.py"))

	// The mako template is copied verbatim.
	mako := readFile(t, env.Root, "packages/db/alembic/script.py.mako")
	assert.Contains(t, mako, "${")
}

func TestHelm_Chart(t *testing.T) {
	env := testEnv(t, features.Set{UI: true, API: true})
	gen := NewHelm(env)
	require.NoError(t, gen.Generate(context.Background()))
	assert.Equal(t, "deploy/helm/demo", gen.Dir())

	var chart Chart
	require.NoError(t, sigsyaml.Unmarshal([]byte(readFile(t, env.Root, "deploy/helm/demo/Chart.yaml")), &chart))
	assert.Equal(t, "v2", chart.APIVersion)
	assert.Equal(t, "demo", chart.Name)
	assert.Equal(t, "0.1.0", chart.Version)
	assert.Equal(t, project.DefaultDescription, chart.Description)

	helpers := readFile(t, env.Root, "deploy/helm/demo/templates/_helpers.tpl")
	assert.Contains(t, helpers, `define "demo.fullname"`)
	assert.NotContains(t, helpers, templates.ChartNameToken)

	tmplDir := filepath.Join(env.Root, "deploy", "helm", "demo", "templates")
	assert.FileExists(t, filepath.Join(tmplDir, "api-deployment.yaml"))
	assert.FileExists(t, filepath.Join(tmplDir, "ui-deployment.yaml"))
	assert.NoFileExists(t, filepath.Join(tmplDir, "database-deployment.yaml"))
	assert.NoFileExists(t, filepath.Join(tmplDir, "migration-job.yaml"))
}

func TestHelm_ValuesAlwaysCarryEveryComponent(t *testing.T) {
	tests := []struct {
		name string
		fs   features.Set
	}{
		{"none", features.Set{}},
		{"ui", features.Set{UI: true}},
		{"all", features.All()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t, tt.fs)
			require.NoError(t, NewHelm(env).Generate(context.Background()))

			raw := readFile(t, env.Root, "deploy/helm/demo/values.yaml")
			assert.True(t, strings.HasPrefix(raw, "# Default values for demo."))

			var doc map[string]any
			require.NoError(t, sigsyaml.Unmarshal([]byte(raw), &doc))
			for _, key := range []string{"api", "ui", "database", "migration"} {
				require.Contains(t, doc, key)
			}

			var v Values
			require.NoError(t, sigsyaml.Unmarshal([]byte(raw), &v))
			assert.Equal(t, tt.fs.API, v.API.Enabled)
			assert.Equal(t, tt.fs.UI, v.UI.Enabled)
			assert.Equal(t, tt.fs.DB, v.Database.Enabled)
			assert.Equal(t, tt.fs.DB, v.Migration.Enabled)
			if tt.fs.DB {
				assert.Equal(t, "demo", v.Secrets["POSTGRES_DB"])
				assert.NotEmpty(t, v.Secrets["POSTGRES_PASSWORD"])
			} else {
				assert.Empty(t, v.Secrets)
			}
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	env := testEnv(t, features.All())
	gens := []Generator{NewCore(env), NewConfigs(env), NewAgents(env)}
	for _, g := range ForFeatures(env) {
		gens = append(gens, g)
	}
	gens = append(gens, NewHelm(env))

	var listings [][]string
	var values []string
	for range 2 {
		for _, g := range gens {
			require.NoError(t, g.Generate(context.Background()), g.Name())
		}
		listings = append(listings, testutil.ListFiles(t, env.Root))
		values = append(values, readFile(t, env.Root, "deploy/helm/demo/values.yaml"))
	}
	assert.Equal(t, listings[0], listings[1])
	assert.Equal(t, values[0], values[1])
	assert.Contains(t, listings[0], "packages/db/alembic.ini")
}

func TestGenerate_CancelledContext(t *testing.T) {
	env := testEnv(t, features.Set{UI: true})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewUI(env).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestForFeatures_Order(t *testing.T) {
	tests := []struct {
		fs   features.Set
		want []string
	}{
		{features.Set{}, nil},
		{features.Set{DB: true, UI: true}, []string{"ui", "db"}},
		{features.All(), []string{"ui", "api", "db"}},
	}
	for _, tt := range tests {
		t.Run(tt.fs.String(), func(t *testing.T) {
			var names []string
			for _, g := range ForFeatures(testEnv(t, tt.fs)) {
				names = append(names, g.Name())
				assert.NotEmpty(t, g.Title())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestEmit_RenderError(t *testing.T) {
	env := testEnv(t, features.Set{UI: true})
	err := emit(context.Background(), env, "x", nil, []file{tmpl("a.txt", "missing/a.tmpl")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering a.txt")
}
