package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/kickstart/internal/errors"
	"github.com/opmodel/kickstart/internal/features"
	"github.com/opmodel/kickstart/internal/project"
	"github.com/opmodel/kickstart/internal/runner"
)

func demoConfig(fs features.Set) project.Config {
	return project.Config{
		Name:           "demo",
		PackageManager: project.PNPM,
		Features:       fs,
	}
}

// collect drains seq and returns every yielded step.
func collect(t *testing.T, seq *Sequence) []Step {
	t.Helper()
	var steps []Step
	for seq.Next(context.Background()) {
		steps = append(steps, seq.Step())
	}
	return steps
}

func tags(steps []Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Tag)
	}
	return out
}

func TestTotalSteps(t *testing.T) {
	for _, ui := range []bool{false, true} {
		for _, api := range []bool{false, true} {
			for _, db := range []bool{false, true} {
				fs := features.Set{UI: ui, API: api, DB: db}
				t.Run(fs.String(), func(t *testing.T) {
					assert.Equal(t, 6+fs.Count(), TotalSteps(fs, true))
					assert.Equal(t, 7+fs.Count(), TotalSteps(fs, false))
				})
			}
		}
	}
}

func TestGenerate_ScenarioA(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	fr := newFakeRunner()
	gen := New(dir, demoConfig(features.Set{UI: true}), Options{SkipDependencies: true, Runner: fr})

	seq := gen.Generate()
	assert.Equal(t, StateNotStarted, seq.State())

	steps := collect(t, seq)
	require.NoError(t, seq.Err())
	assert.Equal(t, StateCompleted, seq.State())

	assert.Equal(t,
		[]string{"foundation", "foundation", "configs", "agents", "ui", "helm", "finalize", "complete"},
		tags(steps))
	for _, s := range steps {
		assert.Equal(t, 7, s.Total)
	}
	last := steps[len(steps)-1]
	assert.Equal(t, PhaseComplete, last.Phase)
	assert.Equal(t, last.Total, last.Current)

	assert.DirExists(t, filepath.Join(dir, "packages", "ui"))
	assert.NoDirExists(t, filepath.Join(dir, "packages", "api"))
	assert.NoDirExists(t, filepath.Join(dir, "packages", "db"))
	assert.DirExists(t, filepath.Join(dir, "deploy", "helm", "demo"))

	assert.Equal(t, []string{"git init", "git add .", "git commit -m chore: initial commit"}, fr.lines())
	assert.True(t, gen.GitInitialized())
}

func TestGenerate_ScenarioB(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	fr := newFakeRunner().on("pnpm install", func(cmd runner.Command) (runner.Result, error) {
		require.NoError(t, os.WriteFile(filepath.Join(cmd.Dir, "pnpm-lock.yaml"), []byte("lockfileVersion: '9.0'\n"), 0o644))
		return runner.Result{}, nil
	})
	gen := New(dir, demoConfig(features.Set{UI: true}), Options{Runner: fr})

	steps := collect(t, gen.Generate())
	require.Len(t, steps, 9)
	assert.Equal(t,
		[]string{"foundation", "foundation", "configs", "agents", "ui", "helm", "dependencies", "finalize", "complete"},
		tags(steps))
	assert.Equal(t, 8, steps[0].Total)
	assert.FileExists(t, filepath.Join(dir, "pnpm-lock.yaml"))
	assert.Equal(t, 1, fr.count("pnpm install"))
}

func TestGenerate_ScenarioC(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	fr := newFakeRunner()
	fr.missing["pnpm"] = true
	gen := New(dir, demoConfig(features.Set{DB: true}), Options{Runner: fr})

	seq := gen.Generate()
	steps := collect(t, seq)

	require.Error(t, seq.Err())
	assert.ErrorIs(t, seq.Err(), oerrors.ErrEnvironment)
	assert.Contains(t, seq.Err().Error(), "pnpm is not installed")
	assert.Contains(t, seq.Err().Error(), "yarn:")
	assert.Equal(t, StateFailed, seq.State())

	assert.Equal(t, "dependencies", steps[len(steps)-1].Tag)
	assert.NotContains(t, tags(steps), "finalize")
	assert.DirExists(t, filepath.Join(dir, "packages", "db"))
	assert.Zero(t, fr.count("pnpm install"))

	assert.False(t, seq.Next(context.Background()))
}

func TestGenerate_NoFeatures(t *testing.T) {
	for _, skip := range []bool{true, false} {
		dir := filepath.Join(t.TempDir(), "demo")
		gen := New(dir, demoConfig(features.Set{}), Options{SkipDependencies: skip, Runner: newFakeRunner()})

		steps := collect(t, gen.Generate())
		want := []string{"foundation", "foundation", "configs", "agents", "helm"}
		total := 6
		if !skip {
			want = append(want, "dependencies")
			total = 7
		}
		want = append(want, "finalize", "complete")

		assert.Equal(t, want, tags(steps))
		assert.Equal(t, total, steps[len(steps)-1].Current)
		assert.Equal(t, total, steps[len(steps)-1].Total)
	}
}

func TestGenerate_ProgressIsMonotonic(t *testing.T) {
	for _, ui := range []bool{false, true} {
		for _, api := range []bool{false, true} {
			for _, db := range []bool{false, true} {
				for _, skip := range []bool{false, true} {
					fs := features.Set{UI: ui, API: api, DB: db}
					dir := filepath.Join(t.TempDir(), "demo")
					gen := New(dir, demoConfig(fs), Options{SkipDependencies: skip, Runner: newFakeRunner()})

					seq := gen.Generate()
					steps := collect(t, seq)
					require.NoError(t, seq.Err())

					total := TotalSteps(fs, skip)
					prev := 0
					featureSteps := 0
					for _, s := range steps {
						assert.GreaterOrEqual(t, s.Current, prev)
						assert.Equal(t, total, s.Total)
						prev = s.Current
						if s.Tag == features.UI || s.Tag == features.API || s.Tag == features.DB {
							featureSteps++
							assert.True(t, fs.Has(s.Tag))
						}
					}
					assert.Equal(t, fs.Count(), featureSteps)
					assert.Equal(t, total, prev)
				}
			}
		}
	}
}

func TestGenerate_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644))

	gen := New(dir, demoConfig(features.Set{API: true}), Options{SkipDependencies: true, Runner: newFakeRunner()})
	require.NoError(t, gen.Run(context.Background(), nil))

	assert.FileExists(t, filepath.Join(dir, "keep.txt"))
	assert.DirExists(t, filepath.Join(dir, "packages", "api"))
}

func TestGenerate_WorkRunsOnNextPull(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	gen := New(dir, demoConfig(features.Set{UI: true}), Options{SkipDependencies: true, Runner: newFakeRunner()})
	seq := gen.Generate()

	require.True(t, seq.Next(context.Background()))
	assert.Equal(t, PhaseDirectory, seq.Step().Phase)
	assert.NoDirExists(t, dir)

	require.True(t, seq.Next(context.Background()))
	assert.Equal(t, PhaseCore, seq.Step().Phase)
	assert.DirExists(t, dir)
	assert.NoFileExists(t, filepath.Join(dir, "package.json"))

	require.True(t, seq.Next(context.Background()))
	assert.FileExists(t, filepath.Join(dir, "package.json"))
}

func TestGenerate_GitFailureIsNotFatal(t *testing.T) {
	for _, failing := range []string{"git init", "git add .", "git commit -m chore: initial commit"} {
		t.Run(failing, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "demo")
			fr := newFakeRunner().on(failing, fail("", "fatal: something went wrong"))
			gen := New(dir, demoConfig(features.Set{UI: true}), Options{SkipDependencies: true, Runner: fr})

			seq := gen.Generate()
			steps := collect(t, seq)
			require.NoError(t, seq.Err())
			assert.Equal(t, "complete", steps[len(steps)-1].Tag)
			assert.False(t, gen.GitInitialized())

			// Commands after the failing one are skipped.
			lines := fr.lines()
			assert.Equal(t, failing, lines[len(lines)-1])
		})
	}
}

func TestGenerate_AlreadyStarted(t *testing.T) {
	gen := New(filepath.Join(t.TempDir(), "demo"), demoConfig(features.Set{}), Options{SkipDependencies: true, Runner: newFakeRunner()})
	require.NoError(t, gen.Run(context.Background(), nil))

	seq := gen.Generate()
	assert.False(t, seq.Next(context.Background()))
	assert.ErrorIs(t, seq.Err(), ErrAlreadyStarted)
	assert.Equal(t, StateFailed, seq.State())
}

func TestGenerate_InvalidConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Bad_Name")
	cfg := demoConfig(features.Set{UI: true})
	cfg.Name = "Bad_Name"

	seq := New(dir, cfg, Options{SkipDependencies: true, Runner: newFakeRunner()}).Generate()
	assert.False(t, seq.Next(context.Background()))
	assert.ErrorIs(t, seq.Err(), oerrors.ErrValidation)
	assert.NoDirExists(t, dir)
}

func TestGenerate_FilesystemErrorStopsSequence(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The project directory would live below a regular file.
	seq := New(filepath.Join(blocker, "demo"), demoConfig(features.Set{UI: true}), Options{SkipDependencies: true, Runner: newFakeRunner()}).Generate()
	steps := collect(t, seq)

	require.Error(t, seq.Err())
	assert.Len(t, steps, 1)
	assert.Equal(t, StateFailed, seq.State())
}

func TestGenerate_CancelledContext(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	seq := New(dir, demoConfig(features.Set{UI: true}), Options{SkipDependencies: true, Runner: newFakeRunner()}).Generate()

	require.True(t, seq.Next(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, seq.Next(ctx))
	assert.True(t, errors.Is(seq.Err(), context.Canceled))
	assert.NoDirExists(t, dir)
}

func TestRun_CallsFnPerStep(t *testing.T) {
	gen := New(filepath.Join(t.TempDir(), "demo"), demoConfig(features.All()), Options{SkipDependencies: true, Runner: newFakeRunner()})
	var seen []Step
	require.NoError(t, gen.Run(context.Background(), func(s Step) { seen = append(seen, s) }))

	assert.Len(t, seen, gen.TotalSteps()+1)
	assert.Equal(t,
		[]string{"foundation", "foundation", "configs", "agents", "ui", "api", "db", "helm", "finalize", "complete"},
		tags(seen))

	assert.Equal(t, PhaseUI, seen[4].Phase)
	assert.Equal(t, "Setting up React frontend...", seen[4].Message)
	assert.Equal(t, PhaseAPI, seen[5].Phase)
	assert.Equal(t, "Setting up Python API...", seen[5].Message)
	assert.Equal(t, PhaseDB, seen[6].Phase)
	assert.Equal(t, "Setting up database package...", seen[6].Message)
}

func TestStep_Percent(t *testing.T) {
	assert.InDelta(t, 0.5, Step{Current: 4, Total: 8}.Percent(), 0.001)
	assert.InDelta(t, 1.0, Step{Current: 9, Total: 8}.Percent(), 0.001)
	assert.Zero(t, Step{}.Percent())
}
