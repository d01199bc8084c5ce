package generator

import (
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/opmodel/kickstart/internal/features"
)

// Core writes the root manifest, workspace files, docs, hooks and tooling config.
type Core struct {
	env Env
}

// NewCore creates the root configuration generator.
func NewCore(env Env) *Core {
	return &Core{env: env}
}

func (g *Core) Name() string { return "core" }
func (g *Core) Dir() string  { return "." }

// Generate implements Generator.
func (g *Core) Generate(ctx context.Context) error {
	fs := g.env.Data.Features
	files := []file{
		tmpl("package.json", "core/package.json.tmpl"),
		generated("turbo.json", g.turboJSON),
		generated("pnpm-workspace.yaml", pnpmWorkspace),
		tmpl("README.md", "core/README.md.tmpl"),
		tmpl(".gitignore", "core/gitignore.tmpl"),
		tmpl(".releaserc", "core/releaserc.tmpl"),
		tmpl("commitlint.config.js", "core/commitlint.config.js.tmpl"),
		script(".husky/pre-commit", "core/husky-pre-commit.tmpl"),
		script(".husky/commit-msg", "core/husky-commit-msg.tmpl"),
		tmpl(".github/pull_request_template.md", "core/pull_request_template.md.tmpl"),
		tmpl("Makefile", "core/Makefile.tmpl"),
		tmpl(".env.example", "core/env.example.tmpl"),
	}
	if fs.DB {
		files = append(files, generated("compose.yml", g.composeYAML))
	}
	return emit(ctx, g.env, g.Dir(), []string{"packages", ".husky", ".github"}, files)
}

type turboTask struct {
	DependsOn []string `json:"dependsOn,omitempty"`
	Outputs   []string `json:"outputs,omitempty"`
	Cache     *bool    `json:"cache,omitempty"`
	Persist   bool     `json:"persistent,omitempty"`
}

type turboConfig struct {
	Schema string               `json:"$schema"`
	UI     string               `json:"ui"`
	Tasks  map[string]turboTask `json:"tasks"`
}

func (g *Core) turboJSON() ([]byte, error) {
	noCache := false
	tasks := map[string]turboTask{
		"build":        {DependsOn: []string{"^build"}, Outputs: []string{"dist/**"}},
		"dev":          {Cache: &noCache, Persist: true},
		"lint":         {DependsOn: []string{"^lint"}},
		"lint:fix":     {Cache: &noCache},
		"format":       {Cache: &noCache},
		"format:check": {},
		"test":         {DependsOn: []string{"^build"}},
		"type-check":   {DependsOn: []string{"^type-check"}},
	}
	if g.env.Data.Features.UI {
		tasks["storybook"] = turboTask{Cache: &noCache, Persist: true}
		tasks["build-storybook"] = turboTask{Outputs: []string{"storybook-static/**"}}
	}
	out, err := json.MarshalIndent(turboConfig{
		Schema: "https://turbo.build/schema.json",
		UI:     "tui",
		Tasks:  tasks,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func pnpmWorkspace() ([]byte, error) {
	return yaml.Marshal(struct {
		Packages []string `yaml:"packages"`
	}{
		Packages: []string{"packages/*", "packages/configs/*"},
	})
}

type composeBuild struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile"`
}

type composeHealthcheck struct {
	Test     []string `yaml:"test"`
	Interval string   `yaml:"interval"`
	Timeout  string   `yaml:"timeout"`
	Retries  int      `yaml:"retries"`
}

type composeService struct {
	Image         string              `yaml:"image,omitempty"`
	Build         *composeBuild       `yaml:"build,omitempty"`
	ContainerName string              `yaml:"container_name"`
	Environment   map[string]string   `yaml:"environment,omitempty"`
	Ports         []string            `yaml:"ports,omitempty"`
	Volumes       []string            `yaml:"volumes,omitempty"`
	DependsOn     []string            `yaml:"depends_on,omitempty"`
	Healthcheck   *composeHealthcheck `yaml:"healthcheck,omitempty"`
}

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
	Volumes  map[string]struct{}       `yaml:"volumes,omitempty"`
}

func (g *Core) composeYAML() ([]byte, error) {
	d := g.env.Data
	dbService := d.Service(features.DB)
	volume := d.Volume("postgres_data")

	cf := composeFile{
		Services: map[string]composeService{
			dbService: {
				Image:         d.Versions.PostgresImage,
				ContainerName: dbService,
				Environment: map[string]string{
					"POSTGRES_DB":       d.Name,
					"POSTGRES_USER":     "user",
					"POSTGRES_PASSWORD": "changeme",
				},
				Ports:   []string{"5432:5432"},
				Volumes: []string{volume + ":/var/lib/postgresql/data"},
				Healthcheck: &composeHealthcheck{
					Test:     []string{"CMD-SHELL", "pg_isready -U user -d " + d.Name},
					Interval: "5s",
					Timeout:  "5s",
					Retries:  5,
				},
			},
		},
		Volumes: map[string]struct{}{volume: {}},
	}

	if d.Features.API {
		api := d.Service(features.API)
		cf.Services[api] = composeService{
			Build:         &composeBuild{Context: "./packages/api", Dockerfile: "Containerfile"},
			ContainerName: api,
			Environment: map[string]string{
				"DATABASE_URL": "postgresql+psycopg://user:changeme@" + dbService + ":5432/" + d.Name,
			},
			Ports:     []string{"8000:8000"},
			DependsOn: []string{dbService},
		}
	}
	if d.Features.UI {
		ui := d.Service(features.UI)
		svc := composeService{
			Build:         &composeBuild{Context: "./packages/ui", Dockerfile: "Containerfile"},
			ContainerName: ui,
			Ports:         []string{"8080:8080"},
		}
		if d.Features.API {
			svc.DependsOn = []string{d.Service(features.API)}
		}
		cf.Services[ui] = svc
	}

	return yaml.Marshal(cf)
}
