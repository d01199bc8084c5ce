package scaffold

import (
	"context"

	"github.com/opmodel/kickstart/internal/output"
	"github.com/opmodel/kickstart/internal/runner"
)

const initialCommitMessage = "chore: initial commit"

func gitCommands(dir string) []runner.Command {
	return []runner.Command{
		{Dir: dir, Name: "git", Args: []string{"init"}},
		{Dir: dir, Name: "git", Args: []string{"add", "."}},
		{Dir: dir, Name: "git", Args: []string{"commit", "-m", initialCommitMessage}},
	}
}

// initGitRepository initializes dir as a repository with one commit. It
// never fails generation: the first failing command is logged as a warning
// and the rest are skipped. It reports whether the commit was created.
func initGitRepository(ctx context.Context, r runner.Runner, dir string) bool {
	log := output.ScopedLogger("git")
	for _, cmd := range gitCommands(dir) {
		log.Debug("running", "cmd", cmd.String())
		if res, err := r.Run(ctx, cmd); err != nil {
			output.Warn("could not initialize git repository",
				"cmd", cmd.String(),
				"err", err,
				"stderr", trimOutput(res.Stderr),
			)
			return false
		}
	}
	return true
}
