package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/slangscope/slangscope/pkg/models"
)

var _ models.Task = &PageScanTask{}

func NewPageScanTask(appState *models.AppState) *PageScanTask {
	return &PageScanTask{
		BaseTask{
			appState: appState,
		},
	}
}

// PageScanTask analyzes text relayed by the browser extension. The stored
// analysis is loaded by UUID, analyzed, and replaced with the result.
type PageScanTask struct {
	BaseTask
}

func (pt *PageScanTask) Execute(
	ctx context.Context,
	msg *message.Message,
) error {
	timeout := DefaultTaskTimeout
	if t := pt.appState.Config.Tasks.Timeout; t > 0 {
		timeout = time.Duration(t) * time.Second
	}
	ctx, done := context.WithTimeout(ctx, timeout)
	defer done()

	var task models.PageScanTask
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		// a malformed payload will never succeed
		log.Errorf("PageScanTask failed to unmarshal payload %s: %v", msg.UUID, err)
		return nil
	}

	log.Debugf("PageScanTask called for analysis %s", task.UUID)

	pending, err := pt.appState.AnalysisStore.Get(ctx, task.UUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warnf("PageScanTask analysis %s not found, skipping", task.UUID)
			return nil
		}
		return fmt.Errorf("PageScanTask failed to get analysis: %w", err)
	}

	// failed analyses are run again when the message is retried
	if pending.Status == models.AnalysisComplete {
		log.Debugf("PageScanTask analysis %s is already complete", task.UUID)
		return nil
	}

	_, err = pt.appState.Analyzer.Analyze(
		ctx,
		models.AnalysisRequest{Text: pending.Text},
		models.AnalyzeOptions{
			UUID:      pending.UUID,
			Summarize: pt.appState.Config.Analysis.Summarize,
			Persist:   true,
		},
	)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pending.Status = models.AnalysisFailed
			pending.Error = err.Error()
			if putErr := pt.appState.AnalysisStore.Put(ctx, pending); putErr != nil {
				return fmt.Errorf("PageScanTask failed to store analysis: %w", putErr)
			}
			return nil
		}
		// retried by the router; the failed attempt is already recorded
		return fmt.Errorf("PageScanTask analysis %s failed: %w", task.UUID, err)
	}

	msg.Ack()

	return nil
}
