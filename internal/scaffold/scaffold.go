// Package scaffold orchestrates project generation: it sequences the package
// generators, installs dependencies and initializes the git repository,
// reporting each step to the caller.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/opmodel/kickstart/internal/generator"
	"github.com/opmodel/kickstart/internal/output"
	"github.com/opmodel/kickstart/internal/project"
	"github.com/opmodel/kickstart/internal/runner"
	"github.com/opmodel/kickstart/internal/templates"
)

// ErrAlreadyStarted is returned by a second Generate on the same ProjectGenerator.
var ErrAlreadyStarted = errors.New("project generation already started")

// Options alter a generation run.
type Options struct {
	// SkipDependencies leaves out the install step.
	SkipDependencies bool

	// Runner executes the package manager and git. Defaults to an ExecRunner.
	Runner runner.Runner

	// RecoverablePatterns extends DefaultRecoverablePatterns.
	RecoverablePatterns []string

	// PruneCache runs the package manager's store prune before the retry.
	PruneCache bool
}

// ProjectGenerator materializes one project into an output directory.
type ProjectGenerator struct {
	outputDir string
	cfg       project.Config
	opts      Options
	started   bool

	gitInitialized bool
}

// New creates a generator for cfg rooted at outputDir. It performs no I/O.
func New(outputDir string, cfg project.Config, opts Options) *ProjectGenerator {
	if opts.Runner == nil {
		opts.Runner = runner.NewExecRunner()
	}
	return &ProjectGenerator{
		outputDir: outputDir,
		cfg:       cfg,
		opts:      opts,
	}
}

// OutputDir returns the project directory.
func (g *ProjectGenerator) OutputDir() string {
	return g.outputDir
}

// TotalSteps returns the step count this generator will report.
func (g *ProjectGenerator) TotalSteps() int {
	return TotalSteps(g.cfg.Features, g.opts.SkipDependencies)
}

// Generate returns the step sequence. It can be called once; later calls
// return a sequence that fails with ErrAlreadyStarted.
func (g *ProjectGenerator) Generate() *Sequence {
	if g.started {
		return failedSequence(ErrAlreadyStarted)
	}
	g.started = true
	return newSequence(g.plan)
}

// Run drains the sequence, calling fn for every step.
func (g *ProjectGenerator) Run(ctx context.Context, fn func(Step)) error {
	seq := g.Generate()
	for seq.Next(ctx) {
		if fn != nil {
			fn(seq.Step())
		}
	}
	return seq.Err()
}

// plan validates the configuration and lays out the stages in their fixed
// order. Feature stages are only present when the feature is enabled.
func (g *ProjectGenerator) plan() ([]stage, error) {
	if g.outputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	env := generator.NewEnv(g.outputDir, templates.NewData(g.cfg))
	fs := g.cfg.Features
	total := g.TotalSteps()
	current := 0

	var stages []stage
	add := func(phase Phase, tag, msg string, work func(context.Context) error) {
		current++
		stages = append(stages, stage{
			step: Step{Phase: phase, Tag: tag, Message: msg, Current: current, Total: total},
			work: work,
		})
	}

	add(PhaseDirectory, TagFoundation, "Creating project directory...", g.createDir)
	add(PhaseCore, TagFoundation, "Setting up project structure...", g.run(generator.NewCore(env)))
	add(PhaseConfigs, TagConfigs, "Setting up shared configurations...", g.run(generator.NewConfigs(env)))
	add(PhaseAgents, TagAgents, "Generating AI agent configuration...", g.run(generator.NewAgents(env)))
	for _, gen := range generator.ForFeatures(env) {
		add(featurePhase(gen.Name()), gen.Name(), gen.Title(), g.run(gen))
	}
	add(PhaseHelm, TagHelm, "Generating Helm charts...", g.run(generator.NewHelm(env)))
	if !g.opts.SkipDependencies {
		add(PhaseDependencies, TagDependencies, "Installing dependencies...", g.installer().Install)
	}
	add(PhaseGit, TagFinalize, "Initializing Git repository...", g.initGit)

	// Completion shares the count of the step before it.
	stages = append(stages, stage{step: Step{
		Phase:   PhaseComplete,
		Tag:     TagComplete,
		Message: "Project generated successfully!",
		Current: current,
		Total:   total,
	}})

	output.Debug("planned project generation",
		"dir", g.outputDir,
		"packages", fs.String(),
		"steps", total,
		"skipDependencies", g.opts.SkipDependencies,
	)
	return stages, nil
}

func (g *ProjectGenerator) createDir(ctx context.Context) error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	output.Debug("created project directory", "dir", g.outputDir)
	return nil
}

func (g *ProjectGenerator) run(gen generator.Generator) func(context.Context) error {
	return func(ctx context.Context) error {
		output.Debug("generating package", "generator", gen.Name(), "dir", gen.Dir())
		if err := gen.Generate(ctx); err != nil {
			return fmt.Errorf("generating %s: %w", gen.Name(), err)
		}
		return nil
	}
}

func (g *ProjectGenerator) installer() *installer {
	return &installer{
		dir:        g.outputDir,
		pm:         g.cfg.PackageManager,
		runner:     g.opts.Runner,
		patterns:   g.opts.RecoverablePatterns,
		pruneCache: g.opts.PruneCache,
	}
}

func (g *ProjectGenerator) initGit(ctx context.Context) error {
	g.gitInitialized = initGitRepository(ctx, g.opts.Runner, g.outputDir)
	return nil
}

// GitInitialized reports whether the finalize step created the initial commit.
func (g *ProjectGenerator) GitInitialized() bool {
	return g.gitInitialized
}
