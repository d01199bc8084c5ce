package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/kickstart/internal/config"
	oerrors "github.com/opmodel/kickstart/internal/errors"
	"github.com/opmodel/kickstart/internal/output"
	"github.com/opmodel/kickstart/internal/project"
	"github.com/opmodel/kickstart/internal/scaffold"
)

type createFlags struct {
	skipDependencies bool
	outputDir        string
	packages         []string
	description      string
	packageManager   string
	force            bool
}

// NewCreateCmd creates the create command.
func NewCreateCmd() *cobra.Command {
	var f createFlags

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Generate a new project",
		Long: `Generate a new monorepo in <output-dir>/<name>.

The project always contains root tooling, shared lint and format packages,
AI agent rules and a Helm chart. The ui, api and db packages are added
according to --packages. Dependencies are installed with the selected
package manager and a git repository is initialized with one commit.

A failed install that looks like stale local state is retried once after
removing node_modules and the lockfiles. A failed git step only warns.

Arguments:
  name    Project name (lowercase letters, digits and hyphens)

Examples:
  # Full stack project in the current directory
  kickstart create my-app

  # Frontend only, without installing dependencies
  kickstart create my-site -p ui --skip-deps

  # API and database with npm under ~/src
  kickstart create billing -p api,db --package-manager npm -o ~/src`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, &f)
		},
	}

	cmd.Flags().BoolVar(&f.skipDependencies, "skip-dependencies", false,
		"Skip dependency installation (env: KICKSTART_SKIP_DEPENDENCIES)")
	cmd.Flags().BoolVar(&f.skipDependencies, "skip-deps", false,
		"Alias for --skip-dependencies")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "",
		"Parent directory for the project (default: current directory)")
	cmd.Flags().StringSliceVarP(&f.packages, "packages", "p", nil,
		"Packages to include: api, ui, db (env: KICKSTART_PACKAGES)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "",
		"Project description")
	cmd.Flags().StringVar(&f.packageManager, "package-manager", "",
		"Package manager: pnpm, yarn, npm (env: KICKSTART_PACKAGE_MANAGER)")
	cmd.Flags().BoolVar(&f.force, "force", false,
		"Generate into an existing non-empty directory")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string, f *createFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	plan, err := planCreate(cmd, args, f)
	if err != nil {
		return oerrors.NewExitError(err)
	}

	fmt.Fprintf(out, "%s %s in %s\n",
		output.StyleAction.Render("Creating"),
		output.StyleNoun.Render(plan.project.Name),
		plan.dir)
	fmt.Fprintf(out, "%s\n\n", output.StyleDim.Render(fmt.Sprintf("packages: %s  package manager: %s",
		plan.project.Features, plan.project.PackageManager)))

	gen := scaffold.New(plan.dir, plan.project, plan.options)
	if err := runSteps(ctx, out, gen); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), output.FormatCross("Project generation failed"))
		return oerrors.NewExitError(err)
	}

	printSummary(out, gen, plan)
	return nil
}

type createPlan struct {
	dir     string
	project project.Config
	options scaffold.Options
}

// planCreate resolves every input into a validated project configuration.
// The working directory is read here once and passed down explicitly.
func planCreate(cmd *cobra.Command, args []string, f *createFlags) (*createPlan, error) {
	if len(args) == 0 {
		return nil, project.ValidateName("")
	}
	name := project.NormalizeName(args[0])
	if name != args[0] {
		output.Debug("normalized project name", "from", args[0], "to", name)
	}
	if err := project.ValidateName(name); err != nil {
		return nil, err
	}

	cfg := GetConfig()
	if err := config.Validate(cfg); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), GetConfigPath(), "Fix the file or run 'kickstart config vet'")
	}

	pm, pmRV, err := config.ResolvePackageManager(config.Flag{
		Value:   f.packageManager,
		Changed: cmd.Flags().Changed("package-manager"),
	}, cfg)
	if err != nil {
		return nil, err
	}

	fs, pkgRV, err := config.ResolvePackages(config.Flag{
		Value:   strings.Join(f.packages, ","),
		Changed: cmd.Flags().Changed("packages"),
	}, cfg)
	if err != nil {
		return nil, err
	}

	skipChanged := cmd.Flags().Changed("skip-dependencies") || cmd.Flags().Changed("skip-deps")
	skip, skipRV, err := config.ResolveSkipDependencies(config.Flag{
		Value:   fmt.Sprint(f.skipDependencies),
		Changed: skipChanged,
	}, cfg)
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	parent, dirRV, err := config.ResolveOutputDir(config.Flag{
		Value:   f.outputDir,
		Changed: cmd.Flags().Changed("output-dir"),
	}, cfg, wd)
	if err != nil {
		return nil, err
	}

	config.LogResolvedValues(pmRV, pkgRV, skipRV, dirRV)

	dir := filepath.Join(parent, name)
	if err := checkTarget(dir, f.force); err != nil {
		return nil, err
	}

	pc := project.Config{
		Name:           name,
		Description:    f.description,
		PackageManager: pm,
		Features:       fs,
	}
	if err := pc.Validate(); err != nil {
		return nil, err
	}

	return &createPlan{
		dir:     dir,
		project: pc,
		options: scaffold.Options{
			SkipDependencies:    skip,
			Runner:              newRunner(),
			RecoverablePatterns: cfg.Install.RecoverablePatterns,
			PruneCache:          cfg.PruneCacheEnabled(),
		},
	}, nil
}

// checkTarget refuses to generate into a file or a non-empty directory
// unless force is set.
func checkTarget(dir string, force bool) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return oerrors.NewValidationError("target exists and is not a directory", dir, "Choose another name or --output-dir")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	if len(entries) > 0 && !force {
		return oerrors.NewValidationError("target directory is not empty", dir,
			"Use --force to generate into it anyway, or choose another name")
	}
	return nil
}

// runSteps pulls the generation sequence to completion. Each pull runs the
// work announced by the previous step, so the spinner shows that message.
func runSteps(ctx context.Context, out io.Writer, gen *scaffold.ProjectGenerator) error {
	seq := gen.Generate()
	bar := output.NewProgressBar()
	tty := output.IsTTY()
	title := "Starting..."

	for {
		var more bool
		err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
			more = seq.Next(ctx)
			return seq.Err()
		}, output.WithTitle(title))
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		step := seq.Step()
		if step.Tag == scaffold.TagComplete {
			fmt.Fprintln(out, output.FormatCheckmark(step.Message))
		} else {
			fmt.Fprintln(out, output.FormatStep(step.Current, step.Total, step.Message))
		}
		if tty {
			fmt.Fprintln(out, "  "+bar.View(step.Percent()))
		}
		title = step.Message
	}
}

func printSummary(out io.Writer, gen *scaffold.ProjectGenerator, plan *createPlan) {
	dir := gen.OutputDir()
	fmt.Fprintln(out)
	fmt.Fprintln(out, output.RenderTree(plan.project.Name, summaryPaths(dir)))

	if !gen.GitInitialized() {
		fmt.Fprintln(out, output.StyleDim.Render("Git repository was not initialized; run git init yourself."))
	}

	pm := plan.project.PackageManager
	fmt.Fprintln(out, output.StyleSummary.Render("Next steps:"))
	fmt.Fprintf(out, "  cd %s\n", dir)
	if plan.options.SkipDependencies {
		fmt.Fprintf(out, "  %s\n", pm.SetupCommand())
	}
	fmt.Fprintf(out, "  %s dev\n", pm.ScriptCommand())
}

// summaryPaths lists the project two levels deep, skipping installed and
// VCS directories. Directories carry a trailing slash.
func summaryPaths(root string) []string {
	var paths []string
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || p == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/") + 1
		if d.IsDir() {
			switch d.Name() {
			case ".git", "node_modules":
				return filepath.SkipDir
			}
			paths = append(paths, rel+"/")
			if depth >= 2 {
				return filepath.SkipDir
			}
			return nil
		}
		if depth == 1 {
			paths = append(paths, rel)
		}
		return nil
	})
	return paths
}
