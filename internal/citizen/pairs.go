package citizen

import (
	"crypto/md5"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"uofstats/internal/incident"
)

// PairRecord is one row of the interaction dataset: the cartesian product of
// an incident's subjects and officers.
type PairRecord struct {
	REN            string
	TrackingID     string
	InteractionUID string
	IncidentDate   string
	Year           int
	Month          int
	Day            int

	Troop          string
	DepartmentDesc string
	Agency         string

	CitizenIndex   int
	CitizenName    string
	CitizenRace    string
	ForceByCitizen string
	CitizenUID     string

	OfficerIndex int
	OfficerName  string
	OfficerRace  string
	OfficerUID   string

	SubjectCount int
	OfficerCount int
	UsesOfForce  int

	OfficerForceUsed string
	Justified        string
}

// ExpandPairs flattens incidents into one PairRecord per (subject, officer)
// pair. An incident with zero subjects or zero officers contributes no rows.
func ExpandPairs(incidents []incident.Incident, log *zap.Logger) []PairRecord {
	var records []PairRecord
	var expected int
	for i := range incidents {
		in := &incidents[i]
		expected += in.SubjectCount * in.OfficerCount
		records = append(records, expandPairsOne(in)...)
	}

	log.Info("expanded incidents to citizen-officer pairs",
		zap.Int("incidents", len(incidents)),
		zap.Int("expected_pairs", expected),
		zap.Int("records", len(records)))
	return records
}

func expandPairsOne(in *incident.Incident) []PairRecord {
	subjects := in.Subjects()
	officers := in.Officers()
	if len(subjects) == 0 || len(officers) == 0 {
		return nil
	}

	troop := NormalizeTroop(in.Troop)
	trackingID := hashID(in.REN)

	records := make([]PairRecord, 0, len(subjects)*len(officers))
	for _, s := range subjects {
		for _, o := range officers {
			records = append(records, PairRecord{
				REN:            in.REN,
				TrackingID:     trackingID,
				InteractionUID: interactionUID(in.REN, s.Index, o.Index),
				IncidentDate:   in.RawDate,
				Year:           in.Date.Year(),
				Month:          int(in.Date.Month()),
				Day:            in.Date.Day(),

				Troop:          troop,
				DepartmentDesc: strings.ToLower(troop),
				Agency:         Agency,

				CitizenIndex:   s.Index,
				CitizenName:    s.Name,
				CitizenRace:    lowerOrEmpty(s.Race),
				ForceByCitizen: lowerOrEmpty(s.Force),
				CitizenUID:     citizenUID(in.REN, s),

				OfficerIndex: o.Index,
				OfficerName:  o.Name,
				OfficerRace:  lowerOrEmpty(o.Race),
				OfficerUID:   officerUID(in.REN, o),

				SubjectCount: in.SubjectCount,
				OfficerCount: in.OfficerCount,
				UsesOfForce:  in.UsesOfForce,

				OfficerForceUsed: in.OfficerForceUsed,
				Justified:        in.Justified,
			})
		}
	}
	return records
}

func officerUID(ren string, o incident.Officer) string {
	seed := fmt.Sprintf("%s_officer_%d_%s_%s", ren, o.Index-1, o.Name, o.Race)
	return fmt.Sprintf("%x", md5.Sum([]byte(seed)))
}

func interactionUID(ren string, citizenIndex, officerIndex int) string {
	seed := fmt.Sprintf("%s_c%d_o%d", ren, citizenIndex-1, officerIndex-1)
	return fmt.Sprintf("%x", md5.Sum([]byte(seed)))
}
