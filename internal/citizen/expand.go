// Package citizen expands incident-level records into citizen-level and
// citizen-officer level datasets, and derives the filtered dataset variants.
package citizen

import (
	"crypto/md5"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"uofstats/internal/incident"
)

// Agency is the fixed agency slug stamped onto every derived row.
const Agency = "louisiana-state-pd"

// Record is one row of the citizen-level dataset: one person subjected to
// force, with the incident-level fields copied onto it.
type Record struct {
	REN          string
	TrackingID   string
	IncidentDate string // source date string, preserved verbatim
	Year         int
	Month        int
	Day          int

	Troop          string
	DepartmentDesc string
	Agency         string

	CitizenIndex   int    // 1-based position within the incident
	CitizenName    string
	CitizenRace    string // lowercased source value, empty when missing
	ForceByCitizen string // lowercased, empty when missing
	CitizenUID     string

	SubjectCount int
	OfficerCount int
	UsesOfForce  int

	AllSubjectNames  string
	AllSubjectRaces  string
	OfficerForceUsed string
	OfficerNames     string
	OfficerRaces     string
	Justified        string
}

// Expand flattens incidents into one Record per subject. An incident with
// zero subjects contributes zero rows. The output preserves incident order,
// with each incident's citizens grouped together.
func Expand(incidents []incident.Incident, log *zap.Logger) []Record {
	var records []Record
	for i := range incidents {
		records = append(records, expandOne(&incidents[i])...)
	}

	var subjects int
	for i := range incidents {
		subjects += incidents[i].SubjectCount
	}
	log.Info("expanded incidents to citizen level",
		zap.Int("incidents", len(incidents)),
		zap.Int("subjects", subjects),
		zap.Int("records", len(records)))
	return records
}

func expandOne(in *incident.Incident) []Record {
	subjects := in.Subjects()
	if len(subjects) == 0 {
		return nil
	}

	troop := NormalizeTroop(in.Troop)
	trackingID := hashID(in.REN)

	records := make([]Record, 0, len(subjects))
	for _, s := range subjects {
		records = append(records, Record{
			REN:          in.REN,
			TrackingID:   trackingID,
			IncidentDate: in.RawDate,
			Year:         in.Date.Year(),
			Month:        int(in.Date.Month()),
			Day:          in.Date.Day(),

			Troop:          troop,
			DepartmentDesc: strings.ToLower(troop),
			Agency:         Agency,

			CitizenIndex:   s.Index,
			CitizenName:    s.Name,
			CitizenRace:    lowerOrEmpty(s.Race),
			ForceByCitizen: lowerOrEmpty(s.Force),
			CitizenUID:     citizenUID(in.REN, s),

			SubjectCount: in.SubjectCount,
			OfficerCount: in.OfficerCount,
			UsesOfForce:  in.UsesOfForce,

			AllSubjectNames:  in.RawSubjectNames,
			AllSubjectRaces:  in.RawSubjectRaces,
			OfficerForceUsed: in.OfficerForceUsed,
			OfficerNames:     in.RawOfficerNames,
			OfficerRaces:     in.RawOfficerRaces,
			Justified:        in.Justified,
		})
	}
	return records
}

// NormalizeTroop maps the legacy "Troop N" label onto "Troop NOLA"; both
// refer to the New Orleans unit.
func NormalizeTroop(troop string) string {
	if strings.TrimSpace(troop) == "Troop N" {
		return "Troop NOLA"
	}
	return strings.TrimSpace(troop)
}

// hashID derives the stable tracking identifier for an incident.
func hashID(ren string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(ren)))
}

// citizenUID derives a stable per-citizen identifier. The pre-normalization
// name and race feed the hash so IDs match across dataset regenerations.
func citizenUID(ren string, s incident.Subject) string {
	seed := fmt.Sprintf("%s_citizen_%d_%s_%s", ren, s.Index-1, s.Name, s.Race)
	return fmt.Sprintf("%x", md5.Sum([]byte(seed)))
}

func lowerOrEmpty(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
