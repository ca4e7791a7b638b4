package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// DefaultSubject is used when no subject is configured.
	DefaultSubject = "vncrypt.results"
	ConnectTimeout = 5 * time.Second
)

type publisher interface {
	Publish(subject string, data []byte) error
}

// ResultEvent is the message published for each reported run.
type ResultEvent struct {
	ProfileID string    `json:"profileId"`
	Delta     Delta     `json:"delta"`
	Result    RunResult `json:"result"`
}

// NATSSink publishes run results to a NATS subject.
type NATSSink struct {
	conn      publisher
	nc        *nats.Conn
	subject   string
	profileID string
	logger    *slog.Logger
}

// NewNATSSink connects to url and publishes on subject.
func NewNATSSink(url, subject, profileID string, logger *slog.Logger) (*NATSSink, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	nc, err := nats.Connect(url, nats.Timeout(ConnectTimeout), nats.Name("vncrypt-sim"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	logger.Info("NATS sink connected", "url", url, "subject", subject)
	return &NATSSink{conn: nc, nc: nc, subject: subject, profileID: profileID, logger: logger}, nil
}

// Record implements Sink. nats.Conn is safe for concurrent use.
func (s *NATSSink) Record(ctx context.Context, d Delta, r RunResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ResultEvent{ProfileID: s.profileID, Delta: d, Result: r})
	if err != nil {
		return fmt.Errorf("marshal result event: %w", err)
	}
	if err := s.conn.Publish(s.subject, data); err != nil {
		return fmt.Errorf("publish result: %w", err)
	}
	s.logger.Debug("result published", "mission", r.MissionKey, "subject", s.subject)
	return nil
}

// Close drains the connection.
func (s *NATSSink) Close() error {
	if s.nc == nil {
		return nil
	}
	return s.nc.Drain()
}
