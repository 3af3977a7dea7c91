package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/llm"
	"github.com/harmonyhq/harmony-engine/pkg/media"
	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/prompts"
	"github.com/harmonyhq/harmony-engine/pkg/repositories"
	"github.com/harmonyhq/harmony-engine/pkg/seed"
	"github.com/harmonyhq/harmony-engine/pkg/services/workqueue"
	"github.com/harmonyhq/harmony-engine/pkg/tarot"
)

// readingTemperature leans creative for the narrative interpretation.
const readingTemperature = 0.8

// ReadingService draws tarot cards against a match and generates their
// interpretation, illustration, and narration.
type ReadingService interface {
	// GenerateReading draws a card for a match. Drawing a card that was
	// already drawn for the same match returns the stored reading.
	GenerateReading(ctx context.Context, matchID uuid.UUID, cardName string) (*models.Reading, error)

	GetReading(ctx context.Context, id uuid.UUID) (*models.Reading, error)
	ListReadings(ctx context.Context, matchID uuid.UUID) ([]*models.Reading, error)

	// GetAudio returns the reading with its narration audio. The audio
	// fields are empty while narration is still being synthesized.
	GetAudio(ctx context.Context, id uuid.UUID) (*models.Reading, error)
}

// readingService implements ReadingService.
type readingService struct {
	readingRepo repositories.ReadingRepository
	matchRepo   repositories.MatchRepository
	subjectRepo repositories.SubjectRepository
	chain       *llm.Chain
	images      media.ImageGenerator
	speech      media.SpeechSynthesizer // nil disables narration
	queue       *workqueue.Queue
	logger      *zap.Logger
}

// NewReadingService creates a new reading service. The speech synthesizer
// may be nil, in which case readings are generated without narration.
func NewReadingService(
	readingRepo repositories.ReadingRepository,
	matchRepo repositories.MatchRepository,
	subjectRepo repositories.SubjectRepository,
	chain *llm.Chain,
	images media.ImageGenerator,
	speech media.SpeechSynthesizer,
	queue *workqueue.Queue,
	logger *zap.Logger,
) ReadingService {
	return &readingService{
		readingRepo: readingRepo,
		matchRepo:   matchRepo,
		subjectRepo: subjectRepo,
		chain:       chain,
		images:      images,
		speech:      speech,
		queue:       queue,
		logger:      logger.Named("reading"),
	}
}

func (s *readingService) GenerateReading(ctx context.Context, matchID uuid.UUID, cardName string) (*models.Reading, error) {
	card := tarot.Find(cardName)
	if card == nil {
		return nil, apperrors.ErrInvalidCard
	}

	existing, err := s.readingRepo.GetByMatchAndCard(ctx, matchID, cardName)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	match, err := s.matchRepo.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	// The reading ID is minted up front so the image seed is stable for
	// this reading even across provider retries.
	readingID := uuid.New()
	imageSeed := seed.Derive(readingID.String(), cardName)

	imageCh := make(chan string, 1)
	go func() {
		url, err := s.images.GenerateCardImage(ctx, cardName, imageSeed)
		if err != nil {
			s.logger.Warn("card image generation errored",
				zap.String("card", cardName),
				zap.Error(err))
			url = ""
		}
		imageCh <- url
	}()

	interpretation := s.interpretCard(ctx, card, match)

	imageURL := <-imageCh
	if imageURL == "" {
		imageURL = card.Image
	}

	reading := &models.Reading{
		ID:             readingID,
		MatchID:        matchID,
		CardName:       card.Name,
		Meaning:        card.Meaning,
		Interpretation: interpretation,
		ImageURL:       imageURL,
	}

	if err := s.readingRepo.Create(ctx, reading); err != nil {
		// A concurrent draw of the same card won the insert race.
		if errors.Is(err, apperrors.ErrConflict) {
			return s.readingRepo.GetByMatchAndCard(ctx, matchID, cardName)
		}
		return nil, err
	}

	s.logger.Info("reading generated",
		zap.String("reading_id", readingID.String()),
		zap.String("match_id", matchID.String()),
		zap.String("card", card.Name))

	if s.speech != nil {
		s.queue.Enqueue(NewReadingAudioTask(s, reading.ID, match.SubjectBID, card.Name, card.Meaning, interpretation))
	}

	return reading, nil
}

// interpretCard asks the provider chain for an interpretation and falls back
// to the card's own text if every provider fails. A reading always has an
// interpretation.
func (s *readingService) interpretCard(ctx context.Context, card *tarot.Card, match *models.Match) string {
	raw, provider, err := s.chain.Complete(ctx, llm.CompletionRequest{
		System:      prompts.ReadingSystemMessage,
		Prompt:      prompts.BuildReadingPrompt(card, match),
		Temperature: readingTemperature,
	})
	if err != nil {
		s.logger.Warn("interpretation providers failed, using card text",
			zap.String("card", card.Name),
			zap.Error(err))
		return prompts.FallbackInterpretation(card, match)
	}

	interpretation := strings.TrimSpace(raw)
	if interpretation == "" {
		return prompts.FallbackInterpretation(card, match)
	}

	s.logger.Debug("interpretation generated",
		zap.String("card", card.Name),
		zap.String("provider", provider))

	return interpretation
}

func (s *readingService) GetReading(ctx context.Context, id uuid.UUID) (*models.Reading, error) {
	return s.readingRepo.Get(ctx, id)
}

func (s *readingService) ListReadings(ctx context.Context, matchID uuid.UUID) ([]*models.Reading, error) {
	return s.readingRepo.ListByMatch(ctx, matchID)
}

func (s *readingService) GetAudio(ctx context.Context, id uuid.UUID) (*models.Reading, error) {
	return s.readingRepo.Get(ctx, id)
}

// Ensure readingService implements ReadingService at compile time.
var _ ReadingService = (*readingService)(nil)
