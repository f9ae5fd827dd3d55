package policy

import (
	"sort"
	"strconv"
	"strings"
	"time"

	residentmodels "barangay/internal/resident/models"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/names"
)

// Table is one document's replacement table: placeholder key to plain string.
// Keys carry no angle brackets; the substitution driver adds them.
type Table map[string]string

// Input is everything a mapper may draw from: the submission's free-form
// fields, the optional canonical resident record, and the processing time.
type Input struct {
	Type     Type
	Name     string
	Form     map[string]string
	Resident *residentmodels.Resident
	Now      time.Time
}

type mapper struct {
	keys  []string
	build func(in Input) Table
}

// Build computes the replacement table for the input's clearance type. An
// unknown type is an error, not a silent no-op. Every declared key is present
// in the result; missing inputs resolve to "".
func Build(in Input) (Table, error) {
	m, ok := registry[in.Type]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeValidation, "template not configured for clearance type %q", in.Type)
	}
	return m.build(in), nil
}

// Keys returns the fixed placeholder key set for a type, sorted, for
// introspection and tests.
func Keys(t Type) []string {
	m, ok := registry[t]
	if !ok {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	sort.Strings(out)
	return out
}

// field reads a form value, mapping absent fields and the literal
// "undefined"/"null" an upstream form client may submit to "".
func (in Input) field(key string) string {
	v := strings.TrimSpace(in.Form[key])
	if v == "undefined" || v == "null" {
		return ""
	}
	return v
}

// NameParts prefers the canonical resident record over the free-text name.
func (in Input) NameParts() names.Parts {
	if r := in.Resident; r != nil {
		return names.Parts{First: r.FirstName, Middle: r.MiddleName, Last: r.LastName, Suffix: r.Suffix}
	}
	return names.Split(in.Name)
}

func (in Input) FullName() string {
	if in.Resident != nil {
		return in.Resident.FullName()
	}
	return strings.TrimSpace(in.Name)
}

func (in Input) purok() string {
	if in.Resident != nil && in.Resident.Purok != "" {
		return in.Resident.Purok
	}
	return in.field("purok")
}

func (in Input) civilStatus() string {
	if in.Resident != nil && in.Resident.CivilStatus != "" {
		return in.Resident.CivilStatus
	}
	return in.field("civilStatus")
}

func (in Input) citizenship() string {
	if in.Resident != nil && in.Resident.Citizenship != "" {
		return in.Resident.Citizenship
	}
	return in.field("citizenship")
}

func (in Input) age() string {
	if in.Resident != nil {
		if age := in.Resident.Age(in.Now); age > 0 {
			return strconv.Itoa(age)
		}
	}
	return in.field("age")
}
