package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/database"
	"github.com/harmonyhq/harmony-engine/pkg/models"
)

// MatchRepository defines the interface for compatibility match data access.
type MatchRepository interface {
	// InsertPlaceholder creates a pending match row for the pair, or
	// returns the existing row's ID when one is already present. The
	// boolean result reports whether a new row was created.
	InsertPlaceholder(ctx context.Context, match *models.Match) (uuid.UUID, bool, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetByPair(ctx context.Context, subjectAID, subjectBID uuid.UUID) (*models.Match, error)
	ListBySubject(ctx context.Context, subjectAID uuid.UUID) ([]*models.Match, error)
	UpdateResult(ctx context.Context, id uuid.UUID, score int, analysis *models.Analysis) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// matchRepository implements MatchRepository using PostgreSQL.
type matchRepository struct {
	db *database.DB
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *database.DB) MatchRepository {
	return &matchRepository{db: db}
}

const matchColumns = `id, subject_a_id, subject_b_id, kind, status, score, analysis, created_at, updated_at`

// InsertPlaceholder relies on the unique (subject_a_id, subject_b_id)
// constraint to stay race-free: concurrent callers for the same pair all
// converge on a single row.
func (r *matchRepository) InsertPlaceholder(ctx context.Context, match *models.Match) (uuid.UUID, bool, error) {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now
	match.Status = models.MatchPending
	if match.Analysis == nil {
		match.Analysis = models.PendingAnalysis()
	}

	analysis, err := json.Marshal(match.Analysis)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO matches (id, subject_a_id, subject_b_id, kind, status, score, analysis, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (subject_a_id, subject_b_id) DO NOTHING
		RETURNING id`

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query,
		match.ID,
		match.SubjectAID,
		match.SubjectBID,
		match.Kind,
		match.Status,
		match.Score,
		analysis,
		match.CreatedAt,
		match.UpdatedAt,
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, fmt.Errorf("failed to insert match: %w", err)
	}

	// Conflict path: another caller owns the row. Fetch its ID.
	existing, err := r.GetByPair(ctx, match.SubjectAID, match.SubjectBID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to resolve existing match: %w", err)
	}
	return existing.ID, false, nil
}

// Get retrieves a match by ID.
func (r *matchRepository) Get(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// GetByPair retrieves the match for an ordered subject pair.
func (r *matchRepository) GetByPair(ctx context.Context, subjectAID, subjectBID uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE subject_a_id = $1 AND subject_b_id = $2`

	match, err := scanMatch(r.db.QueryRow(ctx, query, subjectAID, subjectBID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match by pair: %w", err)
	}

	return match, nil
}

// ListBySubject returns all matches where the subject is side A, newest first.
func (r *matchRepository) ListBySubject(ctx context.Context, subjectAID uuid.UUID) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE subject_a_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, subjectAID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return matches, nil
}

// UpdateResult stores a completed synthesis and flips the row to ready.
func (r *matchRepository) UpdateResult(ctx context.Context, id uuid.UUID, score int, analysis *models.Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		UPDATE matches
		SET status = $2, score = $3, analysis = $4, updated_at = $5
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, models.MatchReady, score, payload, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update match result: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// MarkFailed flips a match to failed after synthesis exhausted every
// provider. The pending placeholder analysis is left in place.
func (r *matchRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE matches SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, models.MatchFailed, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark match failed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	var analysis []byte

	err := row.Scan(
		&m.ID,
		&m.SubjectAID,
		&m.SubjectBID,
		&m.Kind,
		&m.Status,
		&m.Score,
		&analysis,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(analysis) > 0 {
		m.Analysis = &models.Analysis{}
		if err := json.Unmarshal(analysis, m.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
		}
	}

	return &m, nil
}

// Ensure matchRepository implements MatchRepository at compile time.
var _ MatchRepository = (*matchRepository)(nil)
