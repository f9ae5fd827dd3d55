// Package policy maps a clearance submission onto the flat replacement table
// that drives template substitution. Each clearance type declares a fixed,
// case-sensitive set of placeholder keys; keys are scoped per type and never
// unified across types even when their names collide under case folding.
package policy

import dErrors "barangay/pkg/domain-errors"

// Type is the clearance type tag carried by a submission.
type Type string

const (
	TypeBarangay         Type = "barangay"
	TypeBusiness         Type = "business"
	TypeBlotter          Type = "blotter"
	TypeFacility         Type = "facility"
	TypeGoodMoral        Type = "good-moral"
	TypeIndigency        Type = "indigency"
	TypeResidency        Type = "residency"
	TypeLuntian          Type = "luntian"
	TypeCSOAccreditation Type = "cso-accreditation"
	TypeBarangayID       Type = "barangay-id"
)

// All lists every supported clearance type in display order.
func All() []Type {
	return []Type{
		TypeBarangay, TypeBusiness, TypeBlotter, TypeFacility, TypeGoodMoral,
		TypeIndigency, TypeResidency, TypeLuntian, TypeCSOAccreditation, TypeBarangayID,
	}
}

// Parse validates a raw type tag.
func Parse(raw string) (Type, error) {
	t := Type(raw)
	if _, ok := registry[t]; !ok {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown clearance type %q", raw)
	}
	return t, nil
}

// DisplayName is the human form used in generated file names.
func (t Type) DisplayName() string {
	switch t {
	case TypeBarangay:
		return "Barangay"
	case TypeBusiness:
		return "Business"
	case TypeBlotter:
		return "Blotter"
	case TypeFacility:
		return "Facility"
	case TypeGoodMoral:
		return "Good Moral"
	case TypeIndigency:
		return "Indigency"
	case TypeResidency:
		return "Residency"
	case TypeLuntian:
		return "Luntian"
	case TypeCSOAccreditation:
		return "CSO Accreditation"
	case TypeBarangayID:
		return "Barangay ID"
	default:
		return string(t)
	}
}

// TakesPhoto reports whether generation inserts an applicant photo for this
// type. Photo insertion happens before text substitution.
func (t Type) TakesPhoto() bool {
	return t == TypeBarangayID
}

// BoldsName reports whether generation bolds every occurrence of the
// applicant's upper-cased name after substitution.
func (t Type) BoldsName() bool {
	return t == TypeBarangayID
}
