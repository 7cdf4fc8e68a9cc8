// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/cosmodesk/taskpulse/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRedFlags prints red flag results using the configured output format.
func (ow *OutWriter) WriteRedFlags(flags []schema.RedFlag, cfg *contract.Config, duration time.Duration) error {
	return PrintRedFlags(flags, cfg, duration)
}

// WriteFocusQueue prints focus queue results using the configured output format.
func (ow *OutWriter) WriteFocusQueue(tasks []schema.FocusTask, cfg *contract.Config, duration time.Duration) error {
	return PrintFocusQueue(tasks, cfg, duration)
}

// WriteItemRisk prints a single item's risk detail using the configured output format.
func (ow *OutWriter) WriteItemRisk(item schema.WorkItem, risk schema.DeadlineRisk, cfg *contract.Config) error {
	return PrintItemRisk(item, risk, cfg)
}

// getMaxTableNameWidth calculates the maximum width for item names in
// table output based on terminal width and table configuration.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (rank, severity/score,
	// category, project) plus borders, separators, and padding.
	const baseWidth = 55

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 60 {
		// Maximum name width to prevent overly long names
		return 60
	}
	return available
}
