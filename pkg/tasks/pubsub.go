package tasks

import (
	"database/sql"

	"github.com/ThreeDotsLabs/watermill"
	wsql "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver
)

// PubSub is the transport behind the task router and publisher.
type PubSub struct {
	Publisher     message.Publisher
	NewSubscriber func() (message.Subscriber, error)
	close         func() error
}

func (p *PubSub) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// NewGoChannelPubSub returns an in-process PubSub. Messages are lost on restart.
func NewGoChannelPubSub(logger watermill.LoggerAdapter) *PubSub {
	ch := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 100,
		},
		logger,
	)

	return &PubSub{
		Publisher: ch,
		NewSubscriber: func() (message.Subscriber, error) {
			return ch, nil
		},
		close: ch.Close,
	}
}

// NewSQLPubSub returns a PubSub backed by PostgreSQL tables. Note that db should
// not be a bun.DB instance as bun runs at an isolation level that is
// incompatible with watermill's SQL subscriber.
func NewSQLPubSub(db *sql.DB, logger watermill.LoggerAdapter) (*PubSub, error) {
	publisher, err := NewSQLQueuePublisher(db, logger)
	if err != nil {
		return nil, err
	}

	return &PubSub{
		Publisher: publisher,
		NewSubscriber: func() (message.Subscriber, error) {
			return NewSQLQueueSubscriber(db, logger)
		},
		close: db.Close,
	}, nil
}

// NewPostgresConnForQueue opens a database/sql connection for the SQL queue.
func NewPostgresConnForQueue(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewSQLQueuePublisher(db *sql.DB, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return wsql.NewPublisher(
		db,
		wsql.PublisherConfig{
			SchemaAdapter:        wsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		logger,
	)
}

func NewSQLQueueSubscriber(db *sql.DB, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return wsql.NewSubscriber(
		db,
		wsql.SubscriberConfig{
			SchemaAdapter:    wsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   &wsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
		},
		logger,
	)
}
