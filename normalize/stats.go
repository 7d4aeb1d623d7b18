package normalize

import (
	"fmt"
	"log/slog"
)

// Stats describes one normalization pass.
type Stats struct {
	Column string
	// Rows is the number of rows visited.
	Rows int
	// Changed counts rows whose stored value differs after normalization.
	Changed int
	// Missing counts nil cells that were replaced by the empty string.
	Missing int
}

// Log prints the statistics to the provided logger.
func (s *Stats) Log(logger *slog.Logger) {
	logger.Info("--- Normalization Stats ---")
	logger.Info(fmt.Sprintf("Column: %s", s.Column))
	logger.Info(fmt.Sprintf("Rows visited: %d", s.Rows))
	logger.Info(fmt.Sprintf("Values changed: %d", s.Changed))
	logger.Info(fmt.Sprintf("Missing values blanked: %d", s.Missing))
	logger.Info("---------------------------")
}
