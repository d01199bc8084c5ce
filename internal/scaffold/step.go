package scaffold

import "github.com/opmodel/kickstart/internal/features"

// Step tags reported to progress consumers.
const (
	TagFoundation   = "foundation"
	TagConfigs      = "configs"
	TagAgents       = "agents"
	TagHelm         = "helm"
	TagDependencies = "dependencies"
	TagFinalize     = "finalize"
	TagComplete     = "complete"
)

// baseSteps counts the unconditional steps: project directory, root
// configuration, shared configs, agent rules, Helm chart and git init.
const baseSteps = 6

// Phase identifies the unit of work a step announces.
type Phase int

const (
	PhaseDirectory Phase = iota
	PhaseCore
	PhaseConfigs
	PhaseAgents
	PhaseUI
	PhaseAPI
	PhaseDB
	PhaseHelm
	PhaseDependencies
	PhaseGit
	PhaseComplete
)

var phaseNames = map[Phase]string{
	PhaseDirectory:    "directory",
	PhaseCore:         "core",
	PhaseConfigs:      "configs",
	PhaseAgents:       "agents",
	PhaseUI:           "ui",
	PhaseAPI:          "api",
	PhaseDB:           "db",
	PhaseHelm:         "helm",
	PhaseDependencies: "dependencies",
	PhaseGit:          "git",
	PhaseComplete:     "complete",
}

// featurePhase maps a feature id to its phase.
func featurePhase(id string) Phase {
	switch id {
	case features.UI:
		return PhaseUI
	case features.API:
		return PhaseAPI
	default:
		return PhaseDB
	}
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Step is one progress event. Its work runs when the consumer asks for
// the following step.
type Step struct {
	Phase Phase

	// Tag is the machine-readable phase tag, e.g. "foundation" or "ui".
	Tag string

	Message string

	// Current is 1-based and never decreases across a sequence.
	Current int

	// Total is fixed for the lifetime of the sequence.
	Total int
}

// Percent returns Current/Total clamped to [0, 1].
func (s Step) Percent() float64 {
	if s.Total <= 0 || s.Current <= 0 {
		return 0
	}
	return min(float64(s.Current)/float64(s.Total), 1)
}

// TotalSteps returns the number of counted steps for a run: the unconditional
// steps, one per enabled feature package, and one for dependency install.
func TotalSteps(fs features.Set, skipDependencies bool) int {
	total := baseSteps + fs.Count()
	if !skipDependencies {
		total++
	}
	return total
}

// State is the lifecycle of a Sequence.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
