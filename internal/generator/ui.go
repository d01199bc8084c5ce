package generator

import "context"

// UI writes the React frontend package.
type UI struct {
	env Env
}

// NewUI creates the frontend generator.
func NewUI(env Env) *UI {
	return &UI{env: env}
}

func (g *UI) Name() string  { return "ui" }
func (g *UI) Dir() string   { return "packages/ui" }
func (g *UI) Title() string { return "Setting up React frontend..." }

// Generate implements Generator. The health service, hook and schema are
// only written when the project also has an API to call.
func (g *UI) Generate(ctx context.Context) error {
	dirs := []string{
		"public",
		"src/components/layout",
		"src/lib",
		"src/routes",
		"src/styles",
	}
	files := []file{
		tmpl("package.json", "ui/package.json.tmpl"),
		tmpl("README.md", "ui/README.md.tmpl"),
		tmpl("vite.config.ts", "ui/vite.config.ts.tmpl"),
		tmpl("tsconfig.json", "ui/tsconfig.json.tmpl"),
		tmpl("tsconfig.node.json", "ui/tsconfig.node.json.tmpl"),
		tmpl("index.html", "ui/index.html.tmpl"),
		tmpl("eslint.config.mjs", "ui/eslint.config.mjs.tmpl"),
		tmpl(".prettierrc", "ui/prettierrc.tmpl"),
		tmpl("Containerfile", "ui/Containerfile.tmpl"),
		tmpl("public/.gitkeep", "common/empty.tmpl"),
		tmpl("src/main.tsx", "ui/main.tsx.tmpl"),
		tmpl("src/lib/utils.ts", "ui/utils.ts.tmpl"),
		tmpl("src/routes/__root.tsx", "ui/root-route.tsx.tmpl"),
		tmpl("src/routes/index.tsx", "ui/index-route.tsx.tmpl"),
		tmpl("src/routeTree.gen.ts", "ui/route-tree.gen.ts.tmpl"),
		tmpl("src/styles/globals.css", "ui/globals.css.tmpl"),
		tmpl("src/components/layout/header.tsx", "ui/header.tsx.tmpl"),
		tmpl("src/components/layout/footer.tsx", "ui/footer.tsx.tmpl"),
	}
	if g.env.Data.Features.API {
		dirs = append(dirs, "src/services", "src/hooks", "src/schemas")
		files = append(files,
			tmpl("src/schemas/health.ts", "ui/health-schema.ts.tmpl"),
			tmpl("src/services/health.ts", "ui/health-service.ts.tmpl"),
			tmpl("src/hooks/use-health.ts", "ui/use-health.ts.tmpl"),
		)
	}
	return emit(ctx, g.env, g.Dir(), dirs, files)
}
