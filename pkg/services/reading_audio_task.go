package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/prompts"
	"github.com/harmonyhq/harmony-engine/pkg/services/workqueue"
)

// ReadingAudioTask synthesizes the spoken narration for a stored reading
// and attaches it to the row. Narration is best effort; a reading without
// audio is still complete.
type ReadingAudioTask struct {
	workqueue.BaseTask
	svc            *readingService
	readingID      uuid.UUID
	subjectID      uuid.UUID
	cardName       string
	meaning        string
	interpretation string
}

// NewReadingAudioTask creates a narration task for a stored reading. The
// subject is the one the reading is about; their name is spoken in the
// narration.
func NewReadingAudioTask(svc *readingService, readingID, subjectID uuid.UUID, cardName, meaning, interpretation string) *ReadingAudioTask {
	return &ReadingAudioTask{
		BaseTask:       workqueue.NewBaseTask(fmt.Sprintf("Narrate reading %s", readingID)),
		svc:            svc,
		readingID:      readingID,
		subjectID:      subjectID,
		cardName:       cardName,
		meaning:        meaning,
		interpretation: interpretation,
	}
}

// Execute implements workqueue.Task.
func (t *ReadingAudioTask) Execute(ctx context.Context, _ workqueue.TaskEnqueuer) error {
	subject, err := t.svc.subjectRepo.Get(ctx, t.subjectID)
	if err != nil {
		return fmt.Errorf("failed to load narration subject: %w", err)
	}

	text := prompts.BuildNarrationText(t.cardName, t.meaning, t.interpretation, subject.Name)

	result, err := t.svc.speech.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to synthesize narration: %w", err)
	}

	stored, err := t.svc.readingRepo.SetAudio(ctx, t.readingID, result.Audio, result.Mime)
	if err != nil {
		return err
	}
	if !stored {
		t.svc.logger.Debug("narration already stored, discarding duplicate",
			zap.String("reading_id", t.readingID.String()))
		return nil
	}

	t.svc.logger.Info("narration attached",
		zap.String("reading_id", t.readingID.String()),
		zap.Int("bytes", len(result.Audio)))

	return nil
}
