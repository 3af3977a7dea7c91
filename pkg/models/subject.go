// Package models contains domain types for harmony-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SubjectKind distinguishes people from organizations. An organization's
// founding date stands in for a birth date; when no founding time is
// recorded, profile computation substitutes noon.
type SubjectKind string

const (
	SubjectPerson       SubjectKind = "person"
	SubjectOrganization SubjectKind = "organization"
)

// Subject is a named party with birth (or founding) data. A subject is
// immutable once a profile has been computed against it.
type Subject struct {
	ID        uuid.UUID   `json:"id"`
	Kind      SubjectKind `json:"kind"`
	Name      string      `json:"name"`
	BirthDate string      `json:"birth_date"` // "2006-01-02"
	BirthTime string      `json:"birth_time"` // "15:04", may be empty for organizations
	BirthCity string      `json:"birth_city"`
	Timezone  string      `json:"timezone"` // IANA id
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
