package models

import "time"

// ReferenceKind names one of the lookup tables a car points at.
type ReferenceKind string

const (
	ReferenceBrand    ReferenceKind = "brand"
	ReferenceType     ReferenceKind = "type"
	ReferenceCategory ReferenceKind = "category"
)

// Reference is a brand, car type or car category row. Ids are short
// varchar codes such as "TOYOTA" or "SUV".
type Reference struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Image     *string    `json:"image,omitempty"`
	DeletedAt *time.Time `json:"-"`
}

// IsDeleted reports whether the row carries a soft-delete marker.
func (r *Reference) IsDeleted() bool {
	return r.DeletedAt != nil
}
