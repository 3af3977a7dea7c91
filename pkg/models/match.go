package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchKind selects the framing of the synthesized narrative.
type MatchKind string

const (
	// MatchCandidate frames subject B as a candidate evaluated against
	// subject A as the hiring manager.
	MatchCandidate MatchKind = "candidate"
	// MatchOrganization frames subject B as an organization the person
	// behind subject A would join.
	MatchOrganization MatchKind = "organization"
)

// MatchStatus is the lifecycle state of a match row.
type MatchStatus string

const (
	MatchPending MatchStatus = "pending"
	MatchReady   MatchStatus = "ready"
	MatchFailed  MatchStatus = "failed"
)

// Match is a persisted compatibility result between an ordered pair of
// subjects. The (subject_a_id, subject_b_id) pair is unique; repeated
// requests reuse the existing row.
type Match struct {
	ID         uuid.UUID   `json:"id"`
	SubjectAID uuid.UUID   `json:"subject_a_id"`
	SubjectBID uuid.UUID   `json:"subject_b_id"`
	Kind       MatchKind   `json:"kind"`
	Status     MatchStatus `json:"status"`
	Score      int         `json:"score"`
	Analysis   *Analysis   `json:"analysis,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
