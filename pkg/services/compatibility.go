package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/llm"
	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/prompts"
	"github.com/harmonyhq/harmony-engine/pkg/repositories"
	"github.com/harmonyhq/harmony-engine/pkg/services/workqueue"
)

// synthesisTemperature matches the creative-but-grounded setting used for
// compatibility narratives.
const synthesisTemperature = 0.7

// CompatibilityService computes and persists compatibility matches.
type CompatibilityService interface {
	// ComputeCompatibility synthesizes a match for the ordered pair and
	// blocks until the result is stored. Re-running the pair refreshes
	// the existing row.
	ComputeCompatibility(ctx context.Context, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) (*models.Match, error)

	// EnsureMatch creates a pending match for the pair and schedules its
	// synthesis in the background. An existing pending or ready match is
	// returned unchanged; a failed match gets a fresh synthesis attempt.
	EnsureMatch(ctx context.Context, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) (*models.Match, error)

	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context, subjectAID uuid.UUID) ([]*models.Match, error)
}

// compatibilityService implements CompatibilityService.
type compatibilityService struct {
	subjectRepo repositories.SubjectRepository
	matchRepo   repositories.MatchRepository
	chain       *llm.Chain
	queue       *workqueue.Queue
	logger      *zap.Logger
}

// NewCompatibilityService creates a new compatibility service.
func NewCompatibilityService(
	subjectRepo repositories.SubjectRepository,
	matchRepo repositories.MatchRepository,
	chain *llm.Chain,
	queue *workqueue.Queue,
	logger *zap.Logger,
) CompatibilityService {
	return &compatibilityService{
		subjectRepo: subjectRepo,
		matchRepo:   matchRepo,
		chain:       chain,
		queue:       queue,
		logger:      logger.Named("compatibility"),
	}
}

func (s *compatibilityService) ComputeCompatibility(ctx context.Context, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) (*models.Match, error) {
	match := &models.Match{SubjectAID: subjectAID, SubjectBID: subjectBID, Kind: kind}
	matchID, created, err := s.matchRepo.InsertPlaceholder(ctx, match)
	if err != nil {
		return nil, err
	}
	if !created {
		s.logger.Debug("refreshing existing match",
			zap.String("match_id", matchID.String()))
	}

	if err := s.synthesizeAndStore(ctx, matchID, subjectAID, subjectBID, kind); err != nil {
		if markErr := s.matchRepo.MarkFailed(ctx, matchID); markErr != nil {
			s.logger.Error("failed to mark match failed",
				zap.String("match_id", matchID.String()),
				zap.Error(markErr))
		}
		return nil, err
	}

	return s.matchRepo.Get(ctx, matchID)
}

func (s *compatibilityService) EnsureMatch(ctx context.Context, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) (*models.Match, error) {
	match := &models.Match{SubjectAID: subjectAID, SubjectBID: subjectBID, Kind: kind}
	matchID, created, err := s.matchRepo.InsertPlaceholder(ctx, match)
	if err != nil {
		return nil, err
	}

	match, err = s.matchRepo.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if created || match.Status == models.MatchFailed {
		s.queue.Enqueue(NewSynthesizeMatchTask(s, matchID, match.SubjectAID, match.SubjectBID, match.Kind))
		s.logger.Info("match synthesis scheduled",
			zap.String("match_id", matchID.String()),
			zap.String("kind", string(match.Kind)))
	}

	return match, nil
}

func (s *compatibilityService) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return s.matchRepo.Get(ctx, id)
}

func (s *compatibilityService) ListMatches(ctx context.Context, subjectAID uuid.UUID) ([]*models.Match, error) {
	return s.matchRepo.ListBySubject(ctx, subjectAID)
}

// synthesizeAndStore runs the full synthesis for a match row: profiles,
// provider chain, figure merge, persistence.
func (s *compatibilityService) synthesizeAndStore(ctx context.Context, matchID, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) error {
	subjectA, err := s.subjectRepo.Get(ctx, subjectAID)
	if err != nil {
		return fmt.Errorf("failed to load subject A: %w", err)
	}
	subjectB, err := s.subjectRepo.Get(ctx, subjectBID)
	if err != nil {
		return fmt.Errorf("failed to load subject B: %w", err)
	}

	profileA, err := ProfileForSubject(subjectA)
	if err != nil {
		return err
	}
	profileB, err := ProfileForSubject(subjectB)
	if err != nil {
		return err
	}

	prompt := prompts.BuildCompatibilityPrompt(
		prompts.SubjectContext{Subject: subjectA, Profile: profileA},
		prompts.SubjectContext{Subject: subjectB, Profile: profileB},
		kind,
	)

	raw, provider, err := s.chain.Complete(ctx, llm.CompletionRequest{
		System:      prompts.CompatibilitySystemMessage,
		Prompt:      prompt,
		Temperature: synthesisTemperature,
		Validate:    validateAnalysisShape,
	})
	if err != nil {
		return fmt.Errorf("compatibility synthesis failed: %w", err)
	}

	analysis, err := llm.ParseJSONResponse[models.Analysis](raw)
	if err != nil {
		// Validate already parsed this payload; a failure here means the
		// provider mutated it between calls, which cannot happen.
		return fmt.Errorf("failed to parse accepted analysis: %w", err)
	}

	// The provider narrates; the computed figures are authoritative.
	analysis.Status = ""
	analysis.Profiles = &models.ProfilePair{
		SubjectA: figuresFromProfile(profileA),
		SubjectB: figuresFromProfile(profileB),
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, analysis.Score, &analysis); err != nil {
		return fmt.Errorf("failed to store match result: %w", err)
	}

	s.logger.Info("match synthesized",
		zap.String("match_id", matchID.String()),
		zap.String("provider", provider),
		zap.Int("score", analysis.Score))

	return nil
}

// validateAnalysisShape rejects provider output that does not parse into
// the strict analysis schema. Rejection counts as a provider failure and
// triggers fallback to the next provider in the chain.
func validateAnalysisShape(raw string) error {
	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		return err
	}

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		return fmt.Errorf("analysis does not match schema: %w", err)
	}

	return analysis.Validate()
}

// Ensure compatibilityService implements CompatibilityService at compile time.
var _ CompatibilityService = (*compatibilityService)(nil)
