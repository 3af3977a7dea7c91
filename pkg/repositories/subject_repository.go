// Package repositories provides PostgreSQL data access for harmony-engine.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/database"
	"github.com/harmonyhq/harmony-engine/pkg/models"
)

// SubjectRepository defines the interface for subject data access.
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	Get(ctx context.Context, id uuid.UUID) (*models.Subject, error)
	List(ctx context.Context, kind models.SubjectKind) ([]*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// subjectRepository implements SubjectRepository using PostgreSQL.
type subjectRepository struct {
	db *database.DB
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *database.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

const subjectColumns = `id, kind, name, birth_date, birth_time, birth_city, timezone, created_at, updated_at`

// Create inserts a new subject. Generates the ID when the caller left it zero.
func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}

	now := time.Now()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	if subject.Kind == "" {
		subject.Kind = models.SubjectPerson
	}

	query := `
		INSERT INTO subjects (id, kind, name, birth_date, birth_time, birth_city, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		subject.ID,
		subject.Kind,
		subject.Name,
		subject.BirthDate,
		subject.BirthTime,
		subject.BirthCity,
		subject.Timezone,
		subject.CreatedAt,
		subject.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}

	return nil
}

// Get retrieves a subject by ID.
func (r *subjectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = $1`

	subject, err := scanSubject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return subject, nil
}

// List returns all subjects of a kind, newest first. An empty kind returns
// every subject.
func (r *subjectRepository) List(ctx context.Context, kind models.SubjectKind) ([]*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}

	return subjects, nil
}

// Update rewrites a subject's mutable fields.
func (r *subjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now()

	query := `
		UPDATE subjects
		SET name = $2, birth_date = $3, birth_time = $4, birth_city = $5, timezone = $6, updated_at = $7
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		subject.ID,
		subject.Name,
		subject.BirthDate,
		subject.BirthTime,
		subject.BirthCity,
		subject.Timezone,
		subject.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a subject. Matches referencing it are removed via CASCADE.
func (r *subjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var s models.Subject
	err := row.Scan(
		&s.ID,
		&s.Kind,
		&s.Name,
		&s.BirthDate,
		&s.BirthTime,
		&s.BirthCity,
		&s.Timezone,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Ensure subjectRepository implements SubjectRepository at compile time.
var _ SubjectRepository = (*subjectRepository)(nil)
