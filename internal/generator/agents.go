package generator

import (
	"context"

	"gopkg.in/yaml.v3"
)

// Agents writes instruction files for AI coding assistants.
type Agents struct {
	env Env
}

// NewAgents creates the agent rules generator.
func NewAgents(env Env) *Agents {
	return &Agents{env: env}
}

func (g *Agents) Name() string { return "agents" }
func (g *Agents) Dir() string  { return "." }

// agentRule is one rule rendered for both assistants.
type agentRule struct {
	template    string
	claude      string
	cursor      string
	description string
	globs       string
	always      bool
	enabled     bool
}

type cursorFrontmatter struct {
	Description string `yaml:"description"`
	Globs       string `yaml:"globs,omitempty"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

func (g *Agents) rules() []agentRule {
	fs := g.env.Data.Features
	return []agentRule{
		{template: "agents/architecture.md.tmpl", claude: "architecture.md", cursor: "architecture.mdc",
			description: "Monorepo layout and architecture principles", always: true, enabled: true},
		{template: "agents/code-style.md.tmpl", claude: "code-style.md", cursor: "code-style.md",
			enabled: true},
		{template: "agents/git.md.tmpl", claude: "git.md", cursor: "git-workflow.md",
			enabled: true},
		{template: "agents/testing.md.tmpl", claude: "testing.md", cursor: "testing.mdc",
			description: "How tests are written and run", globs: "**/*.test.*,**/test_*.py", enabled: true},
		{template: "agents/ui.md.tmpl", claude: "ui.md", cursor: "ui-development.mdc",
			description: "Frontend conventions", globs: "packages/ui/**", enabled: fs.UI},
		{template: "agents/api.md.tmpl", claude: "api.md", cursor: "api-development.mdc",
			description: "Backend API conventions", globs: "packages/api/**", enabled: fs.API},
		{template: "agents/database.md.tmpl", claude: "database.md", cursor: "database.mdc",
			description: "Database and migration conventions", globs: "packages/db/**", enabled: fs.DB},
	}
}

// Generate implements Generator. The same rule bodies are written for
// both assistants; Cursor .mdc files get a frontmatter block.
func (g *Agents) Generate(ctx context.Context) error {
	var files []file
	for _, r := range g.rules() {
		if !r.enabled {
			continue
		}
		files = append(files, tmpl(".claude/rules/"+r.claude, r.template))

		cursor := tmpl(".cursor/rules/"+r.cursor, r.template)
		if r.description != "" {
			header, err := frontmatter(cursorFrontmatter{
				Description: r.description,
				Globs:       r.globs,
				AlwaysApply: r.always,
			})
			if err != nil {
				return err
			}
			cursor.header = header
		}
		files = append(files, cursor)
	}
	return emit(ctx, g.env, g.Dir(), []string{".claude/rules", ".cursor/rules"}, files)
}

func frontmatter(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return "---\n" + string(out) + "---\n\n", nil
}
