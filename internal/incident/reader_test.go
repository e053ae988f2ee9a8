package incident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testHeader = `REN,Event Start Date,Troop,Subject Count,Trooper/Officer Count,# of Uses of Force,Subject Full Name,Subject Race,Type of Force Used By Subject,Type of Force Used By Officer,Trooper/Officer Name,Trooper/Officer Race,Justified (Y/N)`

func TestReadParsesRows(t *testing.T) {
	input := testHeader + "\n" +
		`12345,1/15/2023,Troop A,2,1,1,"Doe, Smith","Black, White",Resistance,Takedown,Jones,White,Y` + "\n"

	res, err := Read(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, res.Incidents, 1)
	assert.Equal(t, 0, res.Skipped)

	in := res.Incidents[0]
	assert.Equal(t, "12345", in.REN)
	assert.Equal(t, "1/15/2023", in.RawDate)
	assert.Equal(t, 2023, in.Date.Year())
	assert.Equal(t, "Troop A", in.Troop)
	assert.Equal(t, 2, in.SubjectCount)
	assert.Equal(t, 1, in.OfficerCount)
	assert.Equal(t, []string{"Doe", "Smith"}, in.SubjectNames)
	assert.Equal(t, []string{"Black", "White"}, in.SubjectRaces)
	assert.Equal(t, "Takedown", in.OfficerForceUsed)
	assert.Equal(t, "Doe, Smith", in.RawSubjectNames)
	assert.Equal(t, "Y", in.Justified)
}

func TestReadSkipsMalformedRows(t *testing.T) {
	input := testHeader + "\n" +
		`,1/15/2023,Troop A,1,1,1,A,Black,,,,,` + "\n" + // missing REN
		`22222,not-a-date,Troop B,1,1,1,B,White,,,,,` + "\n" + // bad date
		`33333,2/1/2023,Troop C,many,1,1,C,Black,,,,,` + "\n" + // bad subject count
		`44444,2/2/2023,Troop D,1,1,1,D,Black,,,,,` + "\n" // good

	res, err := Read(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Skipped)
	require.Len(t, res.Incidents, 1)
	assert.Equal(t, "44444", res.Incidents[0].REN)
}

func TestReadOptionalNumericsDefaultZero(t *testing.T) {
	input := testHeader + "\n" +
		`55555,3/1/2023,Troop A,1,,,E,Black,,,,,` + "\n"

	res, err := Read(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, res.Incidents, 1)
	assert.Equal(t, 0, res.Incidents[0].OfficerCount)
	assert.Equal(t, 0, res.Incidents[0].UsesOfForce)
}

func TestReadMissingRequiredColumn(t *testing.T) {
	input := "Event Start Date,Troop,Subject Count\n1/1/2023,Troop A,1\n"

	_, err := Read(strings.NewReader(input), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REN")
}

func TestParseDateLayouts(t *testing.T) {
	for _, raw := range []string{"1/15/2023", "01/15/2023", "2023-01-15"} {
		d, err := parseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 2023, d.Year(), raw)
		assert.Equal(t, 15, d.Day(), raw)
	}

	if _, err := parseDate(""); err == nil {
		t.Error("empty date parsed without error")
	}
}
