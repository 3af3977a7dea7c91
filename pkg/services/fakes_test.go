package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/media"
	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/repositories"
)

// memSubjectRepo is an in-memory SubjectRepository for service tests.
type memSubjectRepo struct {
	mu       sync.Mutex
	subjects map[uuid.UUID]*models.Subject
}

func newMemSubjectRepo(subjects ...*models.Subject) *memSubjectRepo {
	r := &memSubjectRepo{subjects: make(map[uuid.UUID]*models.Subject)}
	for _, s := range subjects {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.subjects[s.ID] = s
	}
	return r
}

func (r *memSubjectRepo) Create(_ context.Context, subject *models.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}
	r.subjects[subject.ID] = subject
	return nil
}

func (r *memSubjectRepo) Get(_ context.Context, id uuid.UUID) (*models.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subjects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSubjectRepo) List(_ context.Context, kind models.SubjectKind) ([]*models.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Subject
	for _, s := range r.subjects {
		if kind == "" || s.Kind == kind {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memSubjectRepo) Update(_ context.Context, subject *models.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subjects[subject.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.subjects[subject.ID] = subject
	return nil
}

func (r *memSubjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subjects[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.subjects, id)
	return nil
}

// memMatchRepo is an in-memory MatchRepository for service tests.
type memMatchRepo struct {
	mu      sync.Mutex
	matches map[uuid.UUID]*models.Match
	pairs   map[[2]uuid.UUID]uuid.UUID
}

func newMemMatchRepo() *memMatchRepo {
	return &memMatchRepo{
		matches: make(map[uuid.UUID]*models.Match),
		pairs:   make(map[[2]uuid.UUID]uuid.UUID),
	}
}

func (r *memMatchRepo) InsertPlaceholder(_ context.Context, match *models.Match) (uuid.UUID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]uuid.UUID{match.SubjectAID, match.SubjectBID}
	if id, ok := r.pairs[key]; ok {
		return id, false, nil
	}

	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	match.Status = models.MatchPending
	if match.Analysis == nil {
		match.Analysis = models.PendingAnalysis()
	}

	copied := *match
	r.matches[match.ID] = &copied
	r.pairs[key] = match.ID
	return match.ID, true, nil
}

func (r *memMatchRepo) Get(_ context.Context, id uuid.UUID) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *memMatchRepo) GetByPair(_ context.Context, subjectAID, subjectBID uuid.UUID) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.pairs[[2]uuid.UUID{subjectAID, subjectBID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *r.matches[id]
	return &copied, nil
}

func (r *memMatchRepo) ListBySubject(_ context.Context, subjectAID uuid.UUID) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Match
	for _, m := range r.matches {
		if m.SubjectAID == subjectAID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memMatchRepo) UpdateResult(_ context.Context, id uuid.UUID, score int, analysis *models.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	m.Status = models.MatchReady
	m.Score = score
	m.Analysis = analysis
	return nil
}

func (r *memMatchRepo) MarkFailed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	m.Status = models.MatchFailed
	return nil
}

// memReadingRepo is an in-memory ReadingRepository for service tests.
type memReadingRepo struct {
	mu       sync.Mutex
	readings map[uuid.UUID]*models.Reading
	byCard   map[string]uuid.UUID
}

func newMemReadingRepo() *memReadingRepo {
	return &memReadingRepo{
		readings: make(map[uuid.UUID]*models.Reading),
		byCard:   make(map[string]uuid.UUID),
	}
}

func cardKey(matchID uuid.UUID, cardName string) string {
	return matchID.String() + "/" + cardName
}

func (r *memReadingRepo) Create(_ context.Context, reading *models.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cardKey(reading.MatchID, reading.CardName)
	if _, ok := r.byCard[key]; ok {
		return apperrors.ErrConflict
	}

	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}
	copied := *reading
	r.readings[reading.ID] = &copied
	r.byCard[key] = reading.ID
	return nil
}

func (r *memReadingRepo) Get(_ context.Context, id uuid.UUID) (*models.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rd, ok := r.readings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *rd
	return &copied, nil
}

func (r *memReadingRepo) GetByMatchAndCard(_ context.Context, matchID uuid.UUID, cardName string) (*models.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byCard[cardKey(matchID, cardName)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *r.readings[id]
	return &copied, nil
}

func (r *memReadingRepo) ListByMatch(_ context.Context, matchID uuid.UUID) ([]*models.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Reading
	for _, rd := range r.readings {
		if rd.MatchID == matchID {
			copied := *rd
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memReadingRepo) SetAudio(_ context.Context, id uuid.UUID, audio []byte, mime string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rd, ok := r.readings[id]
	if !ok {
		return false, apperrors.ErrNotFound
	}
	if rd.AudioData != nil {
		return false, nil
	}
	rd.AudioData = audio
	rd.AudioMime = mime
	return true, nil
}

// fakeImages is a function-backed ImageGenerator.
type fakeImages struct {
	generate func(ctx context.Context, cardName string, seed int32) (string, error)
}

func (f *fakeImages) GenerateCardImage(ctx context.Context, cardName string, seed int32) (string, error) {
	if f.generate == nil {
		return "", nil
	}
	return f.generate(ctx, cardName, seed)
}

// fakeSpeech is a function-backed SpeechSynthesizer.
type fakeSpeech struct {
	synthesize func(ctx context.Context, text string) (*media.SpeechResult, error)
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text string) (*media.SpeechResult, error) {
	return f.synthesize(ctx, text)
}

var (
	_ repositories.SubjectRepository = (*memSubjectRepo)(nil)
	_ repositories.MatchRepository   = (*memMatchRepo)(nil)
	_ repositories.ReadingRepository = (*memReadingRepo)(nil)
	_ media.ImageGenerator           = (*fakeImages)(nil)
	_ media.SpeechSynthesizer        = (*fakeSpeech)(nil)
)
