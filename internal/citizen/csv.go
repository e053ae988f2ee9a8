package citizen

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// citizenHeader is the documented schema of the citizen-level dataset.
var citizenHeader = []string{
	"ren", "tracking_id", "incident_date",
	"incident_year", "incident_month", "incident_day",
	"troop", "department_desc", "agency",
	"citizen_index", "citizen_name", "citizen_race",
	"use_of_force_by_citizen", "citizen_uid",
	"subject_count", "trooper_officer_count", "number_of_uses_of_force",
	"all_subject_names", "all_subject_races",
	"type_of_force_used_by_officer",
	"trooper_officer_names", "trooper_officer_races",
	"justified",
}

// pairHeader is the documented schema of the interaction dataset.
var pairHeader = []string{
	"ren", "tracking_id", "interaction_uid", "incident_date",
	"incident_year", "incident_month", "incident_day",
	"troop", "department_desc", "agency",
	"citizen_index", "citizen_name", "citizen_race",
	"use_of_force_by_citizen", "citizen_uid",
	"officer_index", "officer_name", "officer_race", "officer_uid",
	"subject_count", "trooper_officer_count", "number_of_uses_of_force",
	"type_of_force_used_by_officer", "justified",
}

// WriteRecords writes the citizen-level dataset, replacing any previous file.
func WriteRecords(path string, records []Record) error {
	return writeCSV(path, citizenHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.REN, r.TrackingID, r.IncidentDate,
			strconv.Itoa(r.Year), strconv.Itoa(r.Month), strconv.Itoa(r.Day),
			r.Troop, r.DepartmentDesc, r.Agency,
			strconv.Itoa(r.CitizenIndex), r.CitizenName, r.CitizenRace,
			r.ForceByCitizen, r.CitizenUID,
			strconv.Itoa(r.SubjectCount), strconv.Itoa(r.OfficerCount), strconv.Itoa(r.UsesOfForce),
			r.AllSubjectNames, r.AllSubjectRaces,
			r.OfficerForceUsed,
			r.OfficerNames, r.OfficerRaces,
			r.Justified,
		}
	})
}

// WritePairs writes the interaction dataset, replacing any previous file.
func WritePairs(path string, records []PairRecord) error {
	return writeCSV(path, pairHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.REN, r.TrackingID, r.InteractionUID, r.IncidentDate,
			strconv.Itoa(r.Year), strconv.Itoa(r.Month), strconv.Itoa(r.Day),
			r.Troop, r.DepartmentDesc, r.Agency,
			strconv.Itoa(r.CitizenIndex), r.CitizenName, r.CitizenRace,
			r.ForceByCitizen, r.CitizenUID,
			strconv.Itoa(r.OfficerIndex), r.OfficerName, r.OfficerRace, r.OfficerUID,
			strconv.Itoa(r.SubjectCount), strconv.Itoa(r.OfficerCount), strconv.Itoa(r.UsesOfForce),
			r.OfficerForceUsed, r.Justified,
		}
	})
}

// ReadRecords loads a citizen-level dataset written by WriteRecords.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open citizen dataset: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error in %s: %w", path, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		atoi := func(name string) int {
			n, _ := strconv.Atoi(get(name))
			return n
		}
		records = append(records, Record{
			REN:          get("ren"),
			TrackingID:   get("tracking_id"),
			IncidentDate: get("incident_date"),
			Year:         atoi("incident_year"),
			Month:        atoi("incident_month"),
			Day:          atoi("incident_day"),

			Troop:          get("troop"),
			DepartmentDesc: get("department_desc"),
			Agency:         get("agency"),

			CitizenIndex:   atoi("citizen_index"),
			CitizenName:    get("citizen_name"),
			CitizenRace:    get("citizen_race"),
			ForceByCitizen: get("use_of_force_by_citizen"),
			CitizenUID:     get("citizen_uid"),

			SubjectCount: atoi("subject_count"),
			OfficerCount: atoi("trooper_officer_count"),
			UsesOfForce:  atoi("number_of_uses_of_force"),

			AllSubjectNames:  get("all_subject_names"),
			AllSubjectRaces:  get("all_subject_races"),
			OfficerForceUsed: get("type_of_force_used_by_officer"),
			OfficerNames:     get("trooper_officer_names"),
			OfficerRaces:     get("trooper_officer_races"),
			Justified:        get("justified"),
		})
	}
	return records, nil
}

// writeCSV writes rows to path, creating parent directories as needed.
func writeCSV(path string, header []string, n int, row func(i int) []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
