package policy

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	residentmodels "barangay/internal/resident/models"
	dErrors "barangay/pkg/domain-errors"
)

var fixedNow = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

// expectedKeys documents the fixed placeholder key set per clearance type.
// Changing a template means changing this table deliberately.
var expectedKeys = map[Type][]string{
	TypeBarangay:         {"name", "age", "civilstatus", "citizenship", "purok", "purpose", "day", "month", "year"},
	TypeBusiness:         {"BusinessName", "Owner", "Address", "Nature", "Day", "Month", "Year"},
	TypeBlotter:          {"Complainant", "Respondent", "Incident", "IncidentDate", "Statement", "Day", "Month", "Year"},
	TypeFacility:         {"name", "facility", "scheduleDate", "scheduleTime", "purpose", "Day", "Month", "Year"},
	TypeGoodMoral:        {"First", "Middle", "Last", "Suffix", "CivilStatus", "Citizenship", "Purok", "Purpose", "Day", "Month", "Year"},
	TypeIndigency:        {"FirstName", "MiddleName", "LastName", "Suffix", "Age", "Purok", "Purpose", "Day", "Month", "Year"},
	TypeResidency:        {"first", "middle", "last", "suffix", "purok", "yearsOfStay", "civilStatus", "citizenship", "Day", "Month", "Year"},
	TypeLuntian:          {"Name", "Purok", "Activity", "Date"},
	TypeCSOAccreditation: {"OrgName", "Acronym", "President", "Address", "Advocacies", "SpecialBodies", "Day", "Month", "Year"},
	TypeBarangayID:       {"FULLNAME", "ADDRESS", "BIRTHDATE", "CONTACT"},
}

func TestKeySetsAreFixed(t *testing.T) {
	for _, typ := range All() {
		t.Run(string(typ), func(t *testing.T) {
			// No form data, no resident: every declared key must still appear.
			table, err := Build(Input{Type: typ, Name: "Juan Dela Cruz", Form: nil, Now: fixedNow})
			require.NoError(t, err)

			got := make([]string, 0, len(table))
			for k := range table {
				got = append(got, k)
			}
			sort.Strings(got)

			want := append([]string(nil), expectedKeys[typ]...)
			sort.Strings(want)
			assert.Equal(t, want, got)
			assert.Equal(t, want, Keys(typ))
		})
	}
}

func TestMissingInputsResolveToEmpty(t *testing.T) {
	table, err := Build(Input{
		Type: TypeIndigency,
		Name: "Juan Dela Cruz",
		Form: map[string]string{"purpose": "undefined", "purok": "null"},
		Now:  fixedNow,
	})
	require.NoError(t, err)

	for key, value := range table {
		assert.NotEqual(t, "undefined", value, "key %s", key)
		assert.NotEqual(t, "null", value, "key %s", key)
	}
	assert.Equal(t, "", table["Purpose"])
	assert.Equal(t, "", table["Purok"])
	assert.Equal(t, "", table["MiddleName"])
}

func TestUnknownTypeIsAnError(t *testing.T) {
	_, err := Build(Input{Type: Type("marriage"), Now: fixedNow})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestResidentRecordTakesPrecedence(t *testing.T) {
	res := &residentmodels.Resident{
		ID:          uuid.New(),
		FirstName:   "MARIA",
		MiddleName:  "SANTOS",
		LastName:    "REYES",
		Birthdate:   time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		CivilStatus: "MARRIED",
		Citizenship: "FILIPINO",
		Purok:       "Purok 3",
	}

	table, err := Build(Input{
		Type:     TypeGoodMoral,
		Name:     "Completely Different Name",
		Form:     map[string]string{"civilStatus": "single"},
		Resident: res,
		Now:      fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria", table["First"])
	assert.Equal(t, "Santos", table["Middle"])
	assert.Equal(t, "Reyes", table["Last"])
	assert.Equal(t, "Married", table["CivilStatus"], "resident civil status wins over the form field")
	assert.Equal(t, "Purok 3", table["Purok"])
}

func TestFreeTextNameFallback(t *testing.T) {
	table, err := Build(Input{Type: TypeResidency, Name: "Juan Santos Dela Cruz Jr.", Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, "Juan", table["first"])
	assert.Equal(t, "Santos", table["middle"])
	assert.Equal(t, "Dela Cruz", table["last"])
	assert.Equal(t, "Jr.", table["suffix"])
}

func TestDateDerivations(t *testing.T) {
	table, err := Build(Input{Type: TypeBarangay, Name: "Juan Dela Cruz", Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, "3rd", table["day"])
	assert.Equal(t, "March", table["month"])
	assert.Equal(t, "2025", table["year"])

	luntian, err := Build(Input{Type: TypeLuntian, Name: "Juan Dela Cruz", Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, "March 3, 2025", luntian["Date"])
}

func TestOrdinalDays(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 31: "31st",
	}
	for day, want := range cases {
		got := ordinalDay(time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, want, got)
	}
}

func TestBulletListMovesOthersLast(t *testing.T) {
	lines := bulletLines("Health, Others, Education", "Coastal cleanup")
	require.Len(t, lines, 3)
	assert.Equal(t, "• Health", lines[0])
	assert.Equal(t, "• Education", lines[1])
	assert.Equal(t, "• Others: Coastal cleanup", lines[2])
}

func TestCSOPadding(t *testing.T) {
	countBlankPadding := func(table Table) int {
		return strings.Count(table["SpecialBodies"], "\n") - strings.Count(strings.TrimRight(table["SpecialBodies"], "\n"), "\n")
	}

	tests := []struct {
		name       string
		advocacies string
		specials   string
		wantPad    int
	}{
		{"both empty", "", "", 16},
		{"partial fill", "A, B, C", "X, Y", 11},
		{"exactly full", "A,B,C,D,E,F,G,H", "I,J,K,L,M,N,O,P", 0},
		{"overflow never negative", "A,B,C,D,E,F,G,H,I,J", "K,L,M,N,O,P,Q,R,S,T", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Build(Input{
				Type: TypeCSOAccreditation,
				Form: map[string]string{"advocacies": tt.advocacies, "specialBodies": tt.specials},
				Now:  fixedNow,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPad, countBlankPadding(table))
		})
	}
}

func TestBarangayIDUpperCasesName(t *testing.T) {
	table, err := Build(Input{Type: TypeBarangayID, Name: "Juan Dela Cruz", Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, "JUAN DELA CRUZ", table["FULLNAME"])
	assert.True(t, TypeBarangayID.TakesPhoto())
	assert.True(t, TypeBarangayID.BoldsName())
	assert.False(t, TypeResidency.TakesPhoto())
}
