package citizen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFilterPursuit(t *testing.T) {
	records := []Record{
		{REN: "1", OfficerForceUsed: "Pursuit"},
		{REN: "2", OfficerForceUsed: "Pursuit, Takedown"},
		{REN: "3", OfficerForceUsed: "Takedown"},
		{REN: "4", OfficerForceUsed: ""},
		{REN: "5", OfficerForceUsed: " Pursuit "},
	}

	t.Run("pursuit_only", func(t *testing.T) {
		kept, removed := FilterPursuit(records, PursuitOnly, zap.NewNop())
		assert.Equal(t, 2, removed)
		assert.Equal(t, []string{"2", "3", "4"}, rens(kept))
	})

	t.Run("all_pursuit", func(t *testing.T) {
		kept, removed := FilterPursuit(records, AllPursuit, zap.NewNop())
		assert.Equal(t, 3, removed)
		assert.Equal(t, []string{"3", "4"}, rens(kept))
	})
}

func rens(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.REN
	}
	return out
}
