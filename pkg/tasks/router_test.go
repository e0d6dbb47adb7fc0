package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/testutils"
)

func waitForRouter(t *testing.T, router models.TaskRouter) {
	t.Helper()
	require.Eventually(t, router.IsRunning, 5*time.Second, 10*time.Millisecond, "router did not start")
}

func TestRunTaskRouter(t *testing.T) {
	ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()

	appState := newTestAppState(t, testutils.NewFakeLLM(testutils.IdentifyResponse))
	err := RunTaskRouter(ctx, appState, NewGoChannelPubSub(NewLogger()))
	require.NoError(t, err)

	// check that the router is configured
	require.NotNil(t, appState.TaskRouter, "task router is nil")
	require.NotNil(t, appState.TaskPublisher, "task publisher is nil")
	waitForRouter(t, appState.TaskRouter)

	id := putPending(t, appState, testutils.DefaultText)
	err = appState.TaskPublisher.Publish(models.PageScanTopic, nil, models.PageScanTask{UUID: id})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		got, err := appState.AnalysisStore.Get(ctx, id)
		return err == nil && got.Status == models.AnalysisComplete
	}, 5*time.Second, 20*time.Millisecond)

	err = appState.TaskRouter.Close()
	assert.NoError(t, err, "failed to close task router")
}

type failingTask struct {
	BaseTask
	calls  chan struct{}
	errors int
}

func (f *failingTask) Execute(_ context.Context, _ *message.Message) error {
	f.calls <- struct{}{}
	return errors.New("always fails")
}

func (f *failingTask) HandleError(_ error) {
	f.errors++
}

func TestTaskRouter_RetriesThenDrops(t *testing.T) {
	ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()

	appState := newTestAppState(t, testutils.NewFakeLLM())
	appState.Config.Tasks.MaxRetries = 1

	logger := watermill.NopLogger{}
	pubsub := NewGoChannelPubSub(logger)
	router, err := NewTaskRouter(appState, pubsub, logger)
	require.NoError(t, err)

	task := &failingTask{calls: make(chan struct{}, 10)}
	router.AddTask(ctx, "failing", models.PageScanTopic, task)

	go func() {
		_ = router.Run(ctx)
	}()
	waitForRouter(t, router)

	publisher := NewTaskPublisher(pubsub)
	require.NoError(t, publisher.Publish(models.PageScanTopic, map[string]string{"k": "v"}, "payload"))

	// one attempt plus one retry, then the message is acked and not redelivered
	for i := 0; i < 2; i++ {
		select {
		case <-task.calls:
		case <-ctx.Done():
			t.Fatal("timed out waiting for task attempts")
		}
	}
	select {
	case <-task.calls:
		t.Fatal("message was redelivered after retries")
	case <-time.After(1500 * time.Millisecond):
	}

	assert.NoError(t, router.Close())
}
