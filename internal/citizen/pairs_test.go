package citizen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uofstats/internal/incident"
)

func TestExpandPairsCartesian(t *testing.T) {
	incidents := []incident.Incident{
		{
			REN: "3001", Date: date(2023, 5, 1), RawDate: "5/1/2023",
			Troop: "Troop A", SubjectCount: 2, OfficerCount: 3,
			SubjectNames: []string{"A", "B"},
			SubjectRaces: []string{"Black", "White"},
			OfficerNames: []string{"X", "Y", "Z"},
			OfficerRaces: []string{"White"},
		},
	}

	pairs := ExpandPairs(incidents, zap.NewNop())
	require.Len(t, pairs, 6)

	// Subject-major order: all of A's officers, then all of B's.
	assert.Equal(t, "A", pairs[0].CitizenName)
	assert.Equal(t, "X", pairs[0].OfficerName)
	assert.Equal(t, "A", pairs[2].CitizenName)
	assert.Equal(t, "Z", pairs[2].OfficerName)
	assert.Equal(t, "B", pairs[3].CitizenName)
	assert.Equal(t, "X", pairs[3].OfficerName)

	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		assert.Len(t, p.InteractionUID, 32)
		assert.False(t, seen[p.InteractionUID], "duplicate interaction UID")
		seen[p.InteractionUID] = true
	}

	// Each subject keeps one citizen UID across all their pairs.
	assert.Equal(t, pairs[0].CitizenUID, pairs[1].CitizenUID)
	assert.NotEqual(t, pairs[0].CitizenUID, pairs[3].CitizenUID)
	// Each officer keeps one officer UID across all their pairs.
	assert.Equal(t, pairs[0].OfficerUID, pairs[3].OfficerUID)
	assert.NotEqual(t, pairs[0].OfficerUID, pairs[1].OfficerUID)
}

func TestExpandPairsEmptySides(t *testing.T) {
	incidents := []incident.Incident{
		{REN: "3002", SubjectCount: 0, OfficerCount: 2, OfficerNames: []string{"X", "Y"}},
		{REN: "3003", SubjectCount: 2, OfficerCount: 0, SubjectNames: []string{"A", "B"}},
	}

	pairs := ExpandPairs(incidents, zap.NewNop())
	assert.Empty(t, pairs)
}
