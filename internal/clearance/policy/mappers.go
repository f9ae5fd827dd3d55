package policy

import (
	"strings"

	"barangay/pkg/names"
)

// Placeholder keys are literal and case-sensitive. Several types intentionally
// spell the same conceptual field with different casing because their templates
// were authored independently; do not conflate them.

var registry = map[Type]mapper{
	TypeBarangay: {
		keys: []string{"name", "age", "civilstatus", "citizenship", "purok", "purpose", "day", "month", "year"},
		build: func(in Input) Table {
			return Table{
				"name":        names.Title(in.FullName()),
				"age":         in.age(),
				"civilstatus": names.Sentence(in.civilStatus()),
				"citizenship": names.Sentence(in.citizenship()),
				"purok":       in.purok(),
				"purpose":     in.field("purpose"),
				"day":         ordinalDay(in.Now),
				"month":       monthName(in.Now),
				"year":        yearString(in.Now),
			}
		},
	},
	TypeBusiness: {
		keys: []string{"BusinessName", "Owner", "Address", "Nature", "Day", "Month", "Year"},
		build: func(in Input) Table {
			return Table{
				"BusinessName": in.field("businessName"),
				"Owner":        names.Title(in.FullName()),
				"Address":      in.field("address"),
				"Nature":       in.field("natureOfBusiness"),
				"Day":          ordinalDay(in.Now),
				"Month":        monthName(in.Now),
				"Year":         yearString(in.Now),
			}
		},
	},
	TypeBlotter: {
		keys: []string{"Complainant", "Respondent", "Incident", "IncidentDate", "Statement", "Day", "Month", "Year"},
		build: func(in Input) Table {
			return Table{
				"Complainant":  names.Title(in.FullName()),
				"Respondent":   in.field("respondent"),
				"Incident":     in.field("incident"),
				"IncidentDate": in.field("incidentDate"),
				"Statement":    in.field("statement"),
				"Day":          ordinalDay(in.Now),
				"Month":        monthName(in.Now),
				"Year":         yearString(in.Now),
			}
		},
	},
	TypeFacility: {
		keys: []string{"name", "facility", "scheduleDate", "scheduleTime", "purpose", "Day", "Month", "Year"},
		build: func(in Input) Table {
			return Table{
				"name":         names.Title(in.FullName()),
				"facility":     in.field("facility"),
				"scheduleDate": in.field("scheduleDate"),
				"scheduleTime": in.field("scheduleTime"),
				"purpose":      in.field("purpose"),
				"Day":          ordinalDay(in.Now),
				"Month":        monthName(in.Now),
				"Year":         yearString(in.Now),
			}
		},
	},
	TypeGoodMoral: {
		keys: []string{"First", "Middle", "Last", "Suffix", "CivilStatus", "Citizenship", "Purok", "Purpose", "Day", "Month", "Year"},
		build: func(in Input) Table {
			p := in.NameParts()
			return Table{
				"First":       names.Title(p.First),
				"Middle":      names.Title(p.Middle),
				"Last":        names.Title(p.Last),
				"Suffix":      p.Suffix,
				"CivilStatus": names.Sentence(in.civilStatus()),
				"Citizenship": names.Sentence(in.citizenship()),
				"Purok":       in.purok(),
				"Purpose":     in.field("purpose"),
				"Day":         ordinalDay(in.Now),
				"Month":       monthName(in.Now),
				"Year":        yearString(in.Now),
			}
		},
	},
	TypeIndigency: {
		keys: []string{"FirstName", "MiddleName", "LastName", "Suffix", "Age", "Purok", "Purpose", "Day", "Month", "Year"},
		build: func(in Input) Table {
			p := in.NameParts()
			return Table{
				"FirstName":  names.Title(p.First),
				"MiddleName": names.Title(p.Middle),
				"LastName":   names.Title(p.Last),
				"Suffix":     p.Suffix,
				"Age":        in.age(),
				"Purok":      in.purok(),
				"Purpose":    in.field("purpose"),
				"Day":        ordinalDay(in.Now),
				"Month":      monthName(in.Now),
				"Year":       yearString(in.Now),
			}
		},
	},
	TypeResidency: {
		keys: []string{"first", "middle", "last", "suffix", "purok", "yearsOfStay", "civilStatus", "citizenship", "Day", "Month", "Year"},
		build: func(in Input) Table {
			p := in.NameParts()
			return Table{
				"first":       names.Title(p.First),
				"middle":      names.Title(p.Middle),
				"last":        names.Title(p.Last),
				"suffix":      p.Suffix,
				"purok":       in.purok(),
				"yearsOfStay": in.field("yearsOfStay"),
				"civilStatus": names.Sentence(in.civilStatus()),
				"citizenship": names.Sentence(in.citizenship()),
				"Day":         ordinalDay(in.Now),
				"Month":       monthName(in.Now),
				"Year":        yearString(in.Now),
			}
		},
	},
	TypeLuntian: {
		keys: []string{"Name", "Purok", "Activity", "Date"},
		build: func(in Input) Table {
			return Table{
				"Name":     names.Title(in.FullName()),
				"Purok":    in.purok(),
				"Activity": in.field("activity"),
				"Date":     longDate(in.Now),
			}
		},
	},
	TypeCSOAccreditation: {
		keys: []string{"OrgName", "Acronym", "President", "Address", "Advocacies", "SpecialBodies", "Day", "Month", "Year"},
		build: buildCSOAccreditation,
	},
	TypeBarangayID: {
		keys: []string{"FULLNAME", "ADDRESS", "BIRTHDATE", "CONTACT"},
		build: func(in Input) Table {
			t := Table{
				"FULLNAME": names.Upper(in.FullName()),
				"ADDRESS":  in.purok(),
				"CONTACT":  in.field("contact"),
			}
			if r := in.Resident; r != nil && !r.Birthdate.IsZero() {
				t["BIRTHDATE"] = longDate(r.Birthdate)
			} else {
				t["BIRTHDATE"] = in.field("birthdate")
			}
			if r := in.Resident; r != nil && r.Contact != "" {
				t["CONTACT"] = r.Contact
			}
			return t
		},
	},
}

// csoBulletTotal is the fixed number of lines the accreditation template
// reserves across the advocacy and special-body sections. Shorter lists are
// padded with blank lines so the boxed area below the sections always lands at
// the same position.
const csoBulletTotal = 16

func buildCSOAccreditation(in Input) Table {
	advocacies := bulletLines(in.field("advocacies"), in.field("advocacyOthers"))
	specials := bulletLines(in.field("specialBodies"), in.field("specialBodyOthers"))

	pad := csoBulletTotal - (len(advocacies) + len(specials))
	if pad < 0 {
		pad = 0
	}
	special := strings.Join(specials, "\n")
	special += strings.Repeat("\n", pad)

	return Table{
		"OrgName":       in.field("orgName"),
		"Acronym":       in.field("acronym"),
		"President":     names.Title(in.field("president")),
		"Address":       in.field("address"),
		"Advocacies":    strings.Join(advocacies, "\n"),
		"SpecialBodies": special,
		"Day":           ordinalDay(in.Now),
		"Month":         monthName(in.Now),
		"Year":          yearString(in.Now),
	}
}

// bulletLines renders a comma-separated source field as bullet lines. The
// reserved "Others" item is moved after all concrete items, with its detail
// text appended, no matter where it appeared in the source.
func bulletLines(csv, othersDetail string) []string {
	var lines []string
	hasOthers := false
	for _, raw := range strings.Split(csv, ",") {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}
		if strings.EqualFold(item, "Others") {
			hasOthers = true
			continue
		}
		lines = append(lines, "• "+item)
	}
	if hasOthers {
		if othersDetail != "" {
			lines = append(lines, "• Others: "+othersDetail)
		} else {
			lines = append(lines, "• Others")
		}
	}
	return lines
}
