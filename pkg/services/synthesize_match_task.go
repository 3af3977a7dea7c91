package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/services/workqueue"
)

// SynthesizeMatchTask runs compatibility synthesis for a pending match in
// the background. On terminal failure the match row is flipped to failed so
// polling clients see a definitive state instead of a placeholder that
// never resolves.
type SynthesizeMatchTask struct {
	workqueue.BaseTask
	svc        *compatibilityService
	matchID    uuid.UUID
	subjectAID uuid.UUID
	subjectBID uuid.UUID
	kind       models.MatchKind
}

// NewSynthesizeMatchTask creates a synthesis task for a pending match.
func NewSynthesizeMatchTask(svc *compatibilityService, matchID, subjectAID, subjectBID uuid.UUID, kind models.MatchKind) *SynthesizeMatchTask {
	return &SynthesizeMatchTask{
		BaseTask:   workqueue.NewBaseTask(fmt.Sprintf("Synthesize match %s", matchID)),
		svc:        svc,
		matchID:    matchID,
		subjectAID: subjectAID,
		subjectBID: subjectBID,
		kind:       kind,
	}
}

// Execute implements workqueue.Task. Every failure marks the match row
// failed right away so pollers see a definitive state; the error is still
// returned so the queue can retry transient provider failures, and a
// successful retry flips the row back to ready.
func (t *SynthesizeMatchTask) Execute(ctx context.Context, _ workqueue.TaskEnqueuer) error {
	err := t.svc.synthesizeAndStore(ctx, t.matchID, t.subjectAID, t.subjectBID, t.kind)
	if err == nil {
		return nil
	}

	if markErr := t.svc.matchRepo.MarkFailed(ctx, t.matchID); markErr != nil && !errors.Is(markErr, context.Canceled) {
		t.svc.logger.Error("failed to mark match failed",
			zap.String("match_id", t.matchID.String()),
			zap.Error(markErr))
	}

	return err
}
