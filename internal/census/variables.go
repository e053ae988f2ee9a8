// Package census fetches ACS 5-year population estimates for the 16+
// population by race per Louisiana parish and aggregates them to state police
// troop coverage areas.
package census

import "fmt"

// group is one race-specific ACS age table. The B01001 race iterations break
// population down by sex and age band; summing the male rows 007-016 and
// female rows 022-031 yields the 16+ population for that race.
type group struct {
	key   string // column key in the demographics table, e.g. "black"
	table string // ACS table suffix, e.g. "B" for B01001B
}

// groups lists the fetched race tables in output order. Asian and Pacific
// Islander are fetched separately and combined afterwards to match the
// use-of-force race categories.
var groups = []group{
	{key: "black", table: "B"},
	{key: "white", table: "H"}, // white alone, not Hispanic or Latino
	{key: "hispanic", table: "I"},
	{key: "native_american", table: "C"},
	{key: "asian", table: "D"},
	{key: "pacific_islander", table: "E"},
}

// ageRows are the B01001 row indices covering ages 16 and up.
var ageRows = func() []int {
	var rows []int
	for i := 7; i <= 16; i++ { // male 16+
		rows = append(rows, i)
	}
	for i := 22; i <= 31; i++ { // female 16+
		rows = append(rows, i)
	}
	return rows
}()

// variables returns the estimate variable names for a race table. The API
// caps a single request at 50 variables, which is why each race is fetched
// in its own call.
func (g group) variables() []string {
	vars := make([]string, 0, len(ageRows))
	for _, row := range ageRows {
		vars = append(vars, fmt.Sprintf("B01001%s_%03dE", g.table, row))
	}
	return vars
}
