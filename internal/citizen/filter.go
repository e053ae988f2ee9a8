package citizen

import (
	"strings"

	"go.uber.org/zap"
)

// FilterMode selects which pursuit rows a filter removes.
type FilterMode string

const (
	// PursuitOnly removes rows where the officer force field is exactly
	// "Pursuit" and nothing else.
	PursuitOnly FilterMode = "pursuit-only"
	// AllPursuit removes rows where the officer force list contains
	// "Pursuit" anywhere.
	AllPursuit FilterMode = "all-pursuit"
)

// FilterPursuit returns the records that survive the given pursuit filter,
// plus the number removed.
func FilterPursuit(records []Record, mode FilterMode, log *zap.Logger) ([]Record, int) {
	kept := make([]Record, 0, len(records))
	removed := 0
	for _, r := range records {
		if excluded(r.OfficerForceUsed, mode) {
			removed++
			continue
		}
		kept = append(kept, r)
	}

	log.Info("applied pursuit filter",
		zap.String("mode", string(mode)),
		zap.Int("in", len(records)),
		zap.Int("removed", removed),
		zap.Int("out", len(kept)))
	return kept, removed
}

func excluded(officerForce string, mode FilterMode) bool {
	switch mode {
	case PursuitOnly:
		return strings.TrimSpace(officerForce) == "Pursuit"
	case AllPursuit:
		for _, part := range strings.Split(officerForce, ",") {
			if strings.TrimSpace(part) == "Pursuit" {
				return true
			}
		}
	}
	return false
}
