package incident

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Source column headers in the agency export.
const (
	colREN          = "REN"
	colDate         = "Event Start Date"
	colTroop        = "Troop"
	colSubjectCount = "Subject Count"
	colOfficerCount = "Trooper/Officer Count"
	colUsesOfForce  = "# of Uses of Force"
	colSubjectNames = "Subject Full Name"
	colSubjectRaces = "Subject Race"
	colSubjectForce = "Type of Force Used By Subject"
	colOfficerForce = "Type of Force Used By Officer"
	colOfficerNames = "Trooper/Officer Name"
	colOfficerRaces = "Trooper/Officer Race"
	colJustified    = "Justified (Y/N)"
)

// dateLayouts covers the formats seen in agency exports.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"1/2/06",
	"2006-01-02 15:04:05",
}

// ReadResult is the outcome of parsing a raw incident file.
type ReadResult struct {
	Incidents []Incident
	Skipped   int // malformed rows dropped, per the skip-and-count policy
}

// ReadFile parses the raw incident CSV. Malformed rows (missing REN, missing
// or unparseable date, non-numeric subject count) are skipped and counted,
// never fatal; only file-level problems abort.
func ReadFile(path string, log *zap.Logger) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open incidents file: %w", err)
	}
	defer f.Close()

	res, err := Read(f, log)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return res, nil
}

// Read parses raw incident CSV from r.
func Read(r io.Reader, log *zap.Logger) (*ReadResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colREN, colDate, colTroop, colSubjectCount} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	res := &ReadResult{}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error at line %d: %w", line+1, err)
		}
		line++

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		in, err := parseRow(field)
		if err != nil {
			res.Skipped++
			log.Warn("skipping malformed incident row",
				zap.Int("line", line),
				zap.String("ren", field(colREN)),
				zap.Error(err))
			continue
		}
		res.Incidents = append(res.Incidents, in)
	}

	log.Info("parsed raw incidents",
		zap.Int("incidents", len(res.Incidents)),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func parseRow(field func(string) string) (Incident, error) {
	ren := field(colREN)
	if ren == "" {
		return Incident{}, fmt.Errorf("missing REN")
	}

	rawDate := field(colDate)
	date, err := parseDate(rawDate)
	if err != nil {
		return Incident{}, err
	}

	subjectCount, err := strconv.Atoi(field(colSubjectCount))
	if err != nil {
		return Incident{}, fmt.Errorf("bad subject count %q", field(colSubjectCount))
	}

	// Optional numeric fields default to zero rather than invalidating the row.
	officerCount, _ := strconv.Atoi(field(colOfficerCount))
	usesOfForce, _ := strconv.Atoi(field(colUsesOfForce))

	return Incident{
		REN:          ren,
		Date:         date,
		RawDate:      rawDate,
		Troop:        field(colTroop),
		SubjectCount: subjectCount,
		OfficerCount: officerCount,
		UsesOfForce:  usesOfForce,

		SubjectNames: SplitList(field(colSubjectNames)),
		SubjectRaces: SplitList(field(colSubjectRaces)),
		SubjectForce: SplitList(field(colSubjectForce)),
		OfficerNames: SplitList(field(colOfficerNames)),
		OfficerRaces: SplitList(field(colOfficerRaces)),

		OfficerForceUsed: field(colOfficerForce),
		Justified:        field(colJustified),

		RawSubjectNames: field(colSubjectNames),
		RawSubjectRaces: field(colSubjectRaces),
		RawOfficerNames: field(colOfficerNames),
		RawOfficerRaces: field(colOfficerRaces),
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing event date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable event date %q", raw)
}
