package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/database"
	"github.com/harmonyhq/harmony-engine/pkg/models"
)

// ReadingRepository defines the interface for tarot reading data access.
type ReadingRepository interface {
	Create(ctx context.Context, reading *models.Reading) error
	Get(ctx context.Context, id uuid.UUID) (*models.Reading, error)
	GetByMatchAndCard(ctx context.Context, matchID uuid.UUID, cardName string) (*models.Reading, error)
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.Reading, error)
	// SetAudio stores narration audio exactly once. A second writer for
	// the same reading is a no-op.
	SetAudio(ctx context.Context, id uuid.UUID, audio []byte, mime string) (bool, error)
}

// readingRepository implements ReadingRepository using PostgreSQL.
type readingRepository struct {
	db *database.DB
}

// NewReadingRepository creates a new reading repository.
func NewReadingRepository(db *database.DB) ReadingRepository {
	return &readingRepository{db: db}
}

const readingColumns = `id, match_id, card_name, meaning, interpretation, image_url, audio_data, audio_mime, created_at`

// Create inserts a new reading. The unique (match_id, card_name) constraint
// turns a duplicate draw into apperrors.ErrConflict so the service can
// return the stored reading instead.
func (r *readingRepository) Create(ctx context.Context, reading *models.Reading) error {
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}
	reading.CreatedAt = time.Now()

	query := `
		INSERT INTO readings (id, match_id, card_name, meaning, interpretation, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		reading.ID,
		reading.MatchID,
		reading.CardName,
		reading.Meaning,
		reading.Interpretation,
		reading.ImageURL,
		reading.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create reading: %w", err)
	}

	return nil
}

// Get retrieves a reading by ID.
func (r *readingRepository) Get(ctx context.Context, id uuid.UUID) (*models.Reading, error) {
	query := `SELECT ` + readingColumns + ` FROM readings WHERE id = $1`

	reading, err := scanReading(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reading: %w", err)
	}

	return reading, nil
}

// GetByMatchAndCard retrieves the reading for a card already drawn against
// a match.
func (r *readingRepository) GetByMatchAndCard(ctx context.Context, matchID uuid.UUID, cardName string) (*models.Reading, error) {
	query := `SELECT ` + readingColumns + ` FROM readings WHERE match_id = $1 AND card_name = $2`

	reading, err := scanReading(r.db.QueryRow(ctx, query, matchID, cardName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reading by card: %w", err)
	}

	return reading, nil
}

// ListByMatch returns all readings drawn against a match, oldest first.
func (r *readingRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.Reading, error) {
	query := `SELECT ` + readingColumns + ` FROM readings WHERE match_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer rows.Close()

	var readings []*models.Reading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}

	return readings, nil
}

// SetAudio writes narration audio only when none is stored yet, so the
// first completed synthesis wins and repeats are harmless.
func (r *readingRepository) SetAudio(ctx context.Context, id uuid.UUID, audio []byte, mime string) (bool, error) {
	query := `
		UPDATE readings
		SET audio_data = $2, audio_mime = $3
		WHERE id = $1 AND audio_data IS NULL`

	result, err := r.db.Exec(ctx, query, id, audio, mime)
	if err != nil {
		return false, fmt.Errorf("failed to set reading audio: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func scanReading(row pgx.Row) (*models.Reading, error) {
	var rd models.Reading
	var audioMime *string

	err := row.Scan(
		&rd.ID,
		&rd.MatchID,
		&rd.CardName,
		&rd.Meaning,
		&rd.Interpretation,
		&rd.ImageURL,
		&rd.AudioData,
		&audioMime,
		&rd.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if audioMime != nil {
		rd.AudioMime = *audioMime
	}

	return &rd, nil
}

// Ensure readingRepository implements ReadingRepository at compile time.
var _ ReadingRepository = (*readingRepository)(nil)
