package tasks

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	wla "github.com/ma-hartma/watermill-logrus-adapter"
	wotel "github.com/voi-oss/watermill-opentelemetry/pkg/opentelemetry"

	"github.com/slangscope/slangscope/pkg/models"
)

const DefaultTaskThrottle = 5 // messages per second
const DefaultTaskTimeout = 120 * time.Second

var _ models.TaskRouter = &TaskRouter{}

// TaskRouter is a wrapper around watermill's Router that adds some
// functionality for managing tasks and handlers.
type TaskRouter struct {
	*message.Router
	appState *models.AppState
	pubsub   *PubSub
	logger   watermill.LoggerAdapter
}

// NewLogger returns a watermill logger writing to the application logger.
func NewLogger() watermill.LoggerAdapter {
	return wla.NewLogrusLogger(log)
}

func NewTaskRouter(appState *models.AppState, pubsub *PubSub, logger watermill.LoggerAdapter) (*TaskRouter, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	throttle := appState.Config.Tasks.Throttle
	if throttle <= 0 {
		throttle = DefaultTaskThrottle
	}

	router.AddMiddleware(
		// CorrelationID will copy the correlation id from the incoming message's metadata to the produced messages
		middleware.CorrelationID,

		// Trace starts a span per handled message, linked to the publisher's span.
		wotel.Trace(),

		// Throttle limits the number of messages processed per second.
		middleware.NewThrottle(int64(throttle), time.Second).Middleware,

		// Messages that still fail after retries are acked so the pubsub doesn't redeliver them.
		// The failure has already been recorded on the analysis by the task.
		ackOnFailure(logger),

		// Recoverer handles panics from handlers.
		// In this case, it passes them as errors to the Retry middleware.
		middleware.Recoverer,

		// The handler function is retried if it returns an error.
		middleware.Retry{
			MaxRetries:      appState.Config.Tasks.MaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
			Logger:          logger,
		}.Middleware,
	)

	return &TaskRouter{
		Router:   router,
		appState: appState,
		pubsub:   pubsub,
		logger:   logger,
	}, nil
}

// AddTask adds a task handler to the router.
func (tr *TaskRouter) AddTask(_ context.Context, name string, taskType models.TaskTopic, task models.Task) {
	subscriber, err := tr.pubsub.NewSubscriber()
	if err != nil {
		log.Fatalf("Failed to create subscriber for task %s: %v", taskType, err)
	}
	tr.AddNoPublisherHandler(
		name,
		string(taskType),
		subscriber,
		TaskHandler(task),
	)
}

func (tr *TaskRouter) Close() (err error) {
	routerErr := tr.Router.Close()
	defer func() {
		psErr := tr.pubsub.Close()
		if err == nil {
			err = psErr
		}
	}()
	if routerErr != nil {
		err = routerErr
	}
	return err
}

// TaskHandler returns a message handler function for the given task.
// Handlers are NoPublishHandlerFuncs i.e. do not publish messages.
func TaskHandler(task models.Task) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		err := task.Execute(msg.Context(), msg)
		if err != nil {
			task.HandleError(err)
			return err
		}
		return nil
	}
}

func ackOnFailure(logger watermill.LoggerAdapter) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			msgs, err := h(msg)
			if err != nil {
				logger.Error("Dropping task message after retries", err, watermill.LogFields{
					"message_uuid": msg.UUID,
					"topic":        message.SubscribeTopicFromCtx(msg.Context()),
				})
				return nil, nil
			}
			return msgs, nil
		}
	}
}

// RunTaskRouter creates the router and publisher on pubsub, registers the
// tasks and runs the router in the background until ctx is done.
func RunTaskRouter(ctx context.Context, appState *models.AppState, pubsub *PubSub) error {
	logger := NewLogger()

	router, err := NewTaskRouter(appState, pubsub, logger)
	if err != nil {
		return err
	}

	publisher := NewTaskPublisher(pubsub)
	Initialize(ctx, appState, router)

	appState.TaskRouter = router
	appState.TaskPublisher = publisher

	go func() {
		log.Info("running task router")
		err := router.Run(ctx)
		if err != nil {
			log.Errorf("task router stopped: %v", err)
		}
	}()

	return nil
}
