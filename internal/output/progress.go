package output

import (
	"github.com/charmbracelet/bubbles/progress"
)

// defaultBarWidth is the rendered width of the progress bar, percentage included.
const defaultBarWidth = 40

// ProgressBar renders a static percentage bar for step-based progress.
type ProgressBar struct {
	model progress.Model
}

// NewProgressBar creates a bar with the default gradient.
func NewProgressBar() *ProgressBar {
	return &ProgressBar{
		model: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(defaultBarWidth),
		),
	}
}

// View renders the bar filled to percent, a fraction clamped to [0, 1].
func (p *ProgressBar) View(percent float64) string {
	return p.model.ViewAs(max(0, min(percent, 1)))
}
