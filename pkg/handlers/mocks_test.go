package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/repositories"
	"github.com/harmonyhq/harmony-engine/pkg/services"
)

// mockSubjectRepo is a function-field mock of repositories.SubjectRepository.
type mockSubjectRepo struct {
	CreateFunc func(ctx context.Context, subject *models.Subject) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*models.Subject, error)
	ListFunc   func(ctx context.Context, kind models.SubjectKind) ([]*models.Subject, error)
	UpdateFunc func(ctx context.Context, subject *models.Subject) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	return m.CreateFunc(ctx, subject)
}

func (m *mockSubjectRepo) Get(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockSubjectRepo) List(ctx context.Context, kind models.SubjectKind) ([]*models.Subject, error) {
	return m.ListFunc(ctx, kind)
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	return m.UpdateFunc(ctx, subject)
}

func (m *mockSubjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

// mockCompatService is a function-field mock of services.CompatibilityService.
type mockCompatService struct {
	ComputeCompatibilityFunc func(ctx context.Context, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) (*models.Match, error)
	EnsureMatchFunc          func(ctx context.Context, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) (*models.Match, error)
	GetMatchFunc             func(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatchesFunc          func(ctx context.Context, subjectAID uuid.UUID) ([]*models.Match, error)
}

func (m *mockCompatService) ComputeCompatibility(ctx context.Context, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) (*models.Match, error) {
	return m.ComputeCompatibilityFunc(ctx, subjectAID, subjectBID, kind)
}

func (m *mockCompatService) EnsureMatch(ctx context.Context, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) (*models.Match, error) {
	return m.EnsureMatchFunc(ctx, subjectAID, subjectBID, kind)
}

func (m *mockCompatService) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return m.GetMatchFunc(ctx, id)
}

func (m *mockCompatService) ListMatches(ctx context.Context, subjectAID uuid.UUID) ([]*models.Match, error) {
	return m.ListMatchesFunc(ctx, subjectAID)
}

// mockReadingService is a function-field mock of services.ReadingService.
type mockReadingService struct {
	GenerateReadingFunc func(ctx context.Context, matchID uuid.UUID, cardName string) (*models.Reading, error)
	GetReadingFunc      func(ctx context.Context, id uuid.UUID) (*models.Reading, error)
	ListReadingsFunc    func(ctx context.Context, matchID uuid.UUID) ([]*models.Reading, error)
	GetAudioFunc        func(ctx context.Context, id uuid.UUID) (*models.Reading, error)
}

func (m *mockReadingService) GenerateReading(ctx context.Context, matchID uuid.UUID, cardName string) (*models.Reading, error) {
	return m.GenerateReadingFunc(ctx, matchID, cardName)
}

func (m *mockReadingService) GetReading(ctx context.Context, id uuid.UUID) (*models.Reading, error) {
	return m.GetReadingFunc(ctx, id)
}

func (m *mockReadingService) ListReadings(ctx context.Context, matchID uuid.UUID) ([]*models.Reading, error) {
	return m.ListReadingsFunc(ctx, matchID)
}

func (m *mockReadingService) GetAudio(ctx context.Context, id uuid.UUID) (*models.Reading, error) {
	return m.GetAudioFunc(ctx, id)
}

var (
	_ repositories.SubjectRepository = (*mockSubjectRepo)(nil)
	_ services.CompatibilityService  = (*mockCompatService)(nil)
	_ services.ReadingService        = (*mockReadingService)(nil)
)
