// Package incident models raw use-of-force incident records and parses them
// from the agency's CSV export. One row is one incident; subjects and officers
// are embedded as comma-separated repeated fields.
package incident

import (
	"strings"
	"time"
)

// Incident is a single use-of-force incident as recorded by the agency.
// Immutable once parsed.
type Incident struct {
	REN          string    // report event number, the incident identifier
	Date         time.Time // event start date
	RawDate      string    // date exactly as it appeared in the source
	Troop        string    // geographic coverage unit
	SubjectCount int
	OfficerCount int
	UsesOfForce  int

	SubjectNames []string
	SubjectRaces []string
	SubjectForce []string // force used by each subject
	OfficerNames []string
	OfficerRaces []string

	OfficerForceUsed string // incident-level type of force used by officers
	Justified        string

	// Raw repeated fields, preserved verbatim for the citizen-level output.
	RawSubjectNames string
	RawSubjectRaces string
	RawOfficerNames string
	RawOfficerRaces string
}

// Subject is one person subjected to force within an incident.
type Subject struct {
	Index int // 1-based position within the incident
	Name  string
	Race  string
	Force string // force used by this subject, may be empty
}

// Officer is one trooper/officer involved in an incident.
type Officer struct {
	Index int
	Name  string
	Race  string
}

// Subjects expands the repeated subject fields to exactly SubjectCount
// entries. Source rows often list fewer values than subjects: a single race
// broadcasts to every subject, short name lists pad with "Unknown", and short
// force lists pad with empty strings. An incident with zero subjects returns
// nil.
func (in *Incident) Subjects() []Subject {
	if in.SubjectCount <= 0 {
		return nil
	}
	names := padNames(in.SubjectNames, in.SubjectCount)
	races := broadcastRaces(in.SubjectRaces, in.SubjectCount)
	force := padValues(in.SubjectForce, in.SubjectCount)

	subjects := make([]Subject, in.SubjectCount)
	for i := range subjects {
		subjects[i] = Subject{
			Index: i + 1,
			Name:  names[i],
			Race:  races[i],
			Force: force[i],
		}
	}
	return subjects
}

// Officers expands the repeated officer fields to exactly OfficerCount
// entries, using the same broadcast and padding rules as Subjects.
func (in *Incident) Officers() []Officer {
	if in.OfficerCount <= 0 {
		return nil
	}
	names := padNames(in.OfficerNames, in.OfficerCount)
	races := broadcastRaces(in.OfficerRaces, in.OfficerCount)

	officers := make([]Officer, in.OfficerCount)
	for i := range officers {
		officers[i] = Officer{
			Index: i + 1,
			Name:  names[i],
			Race:  races[i],
		}
	}
	return officers
}

// broadcastRaces handles race lists shorter than the person count: one listed
// race applies to everyone (a single value covering multiple subjects), an
// empty list fills with Unknown. Lists longer than n are truncated to n.
func broadcastRaces(races []string, n int) []string {
	out := make([]string, n)
	switch {
	case len(races) == 0:
		for i := range out {
			out[i] = "Unknown"
		}
	case len(races) < n:
		for i := range out {
			out[i] = races[0]
		}
	default:
		copy(out, races)
	}
	return out
}

// padNames extends short name lists with "Unknown" rather than broadcasting:
// two people sharing one name is not a plausible reading of the data.
func padNames(names []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		if i < len(names) {
			out[i] = names[i]
		} else {
			out[i] = "Unknown"
		}
	}
	return out
}

// padValues extends short lists with empty strings.
func padValues(values []string, n int) []string {
	out := make([]string, n)
	copy(out, values)
	return out
}

// SplitList parses a comma-separated repeated field, trimming whitespace and
// dropping empty entries.
func SplitList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
