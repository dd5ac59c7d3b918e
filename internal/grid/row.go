// Package grid holds the in-memory sheet model behind the grid UI: the row
// store, the search/filter/sort view pipeline and the enrichment run state
// machine. Nothing here knows about terminals or timers.
package grid

import "strings"

type Status string

const (
	StatusFound   Status = "found"
	StatusMissing Status = "missing"
	StatusPending Status = "pending"
)

type Field string

const (
	FieldName     Field = "name"
	FieldDate     Field = "date"
	FieldCompany  Field = "company"
	FieldWebsite  Field = "website"
	FieldLinkedIn Field = "linkedin"
	FieldEmail    Field = "email"
)

// AllFields lists the row text fields in display order.
var AllFields = []Field{FieldName, FieldDate, FieldCompany, FieldWebsite, FieldLinkedIn, FieldEmail}

func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldDate:
		return "Date"
	case FieldCompany:
		return "Company"
	case FieldWebsite:
		return "Website"
	case FieldLinkedIn:
		return "LinkedIn"
	case FieldEmail:
		return "Email"
	default:
		return string(f)
	}
}

// Editable reports whether the grid lets users change the field in place.
func (f Field) Editable() bool {
	switch f {
	case FieldName, FieldCompany, FieldWebsite, FieldLinkedIn, FieldEmail:
		return true
	default:
		return false
	}
}

func ParseField(value string) (Field, bool) {
	key := Field(strings.ToLower(strings.TrimSpace(value)))
	for _, f := range AllFields {
		if f == key {
			return f, true
		}
	}
	return "", false
}

type Row struct {
	ID       int
	Name     string
	Date     string
	Company  string
	Website  string
	LinkedIn string
	Email    string
	Status   Status
	Loading  bool
}

func (r Row) Value(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldDate:
		return r.Date
	case FieldCompany:
		return r.Company
	case FieldWebsite:
		return r.Website
	case FieldLinkedIn:
		return r.LinkedIn
	case FieldEmail:
		return r.Email
	default:
		return ""
	}
}

func (r *Row) set(f Field, value string) bool {
	switch f {
	case FieldName:
		r.Name = value
	case FieldDate:
		r.Date = value
	case FieldCompany:
		r.Company = value
	case FieldWebsite:
		r.Website = value
	case FieldLinkedIn:
		r.LinkedIn = value
	case FieldEmail:
		r.Email = value
	default:
		return false
	}
	return true
}

// HasEmail is the predicate the found/missing filter keys on. It is
// deliberately independent of Status.
func (r Row) HasEmail() bool {
	return r.Email != ""
}

type Sheet struct {
	ID   int
	Name string
}
