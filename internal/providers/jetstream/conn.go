package jetstream

import (
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/logger"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// MaxAge bounds how long change events stay in the stream. Zero keeps them forever.
	MaxAge time.Duration
	// DuplicateWindow is the server-side dedupe window keyed by event id
	DuplicateWindow time.Duration

	// ConsumerName selects a durable consumer. Empty uses an ordered ephemeral consumer.
	ConsumerName string
	AckWait      time.Duration
	MaxDeliver   int
	// Tables restricts delivery to the listed tables. Empty receives everything.
	Tables []domain.Table
}

// allChangesSubject matches every subject produced by domain.ChangeEvent.Subject
const allChangesSubject = "changes.>"

func connectOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// filterSubjects maps table filters onto stream subjects
func filterSubjects(tables []domain.Table) []string {
	if len(tables) == 0 {
		return []string{allChangesSubject}
	}

	subjects := make([]string, 0, len(tables))
	for _, t := range tables {
		subjects = append(subjects, "changes."+string(t)+".>")
	}
	return subjects
}
