package subscription

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/rohankumardubey/liveoak/types"
)

// Publisher is the slice of a NATS connection the notifier needs. *nats.Conn
// satisfies it directly.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// SubjectPrefix is the root of the subject hierarchy change events are
// published under.
const SubjectPrefix = "liveoak.resources"

// natsEvent is the wire form of a change event.
type natsEvent struct {
	Timestamp string               `json:"timestamp"` // RFC3339
	Type      string               `json:"type"`
	Path      string               `json:"path"`
	State     *types.ResourceState `json:"state,omitempty"`
}

// NATSNotifier publishes change events to NATS subjects derived from the
// resource path: a change at /widgets/w1 goes to liveoak.resources.widgets.w1.
type NATSNotifier struct {
	publisher Publisher
	conn      *nats.Conn
	logger    *slog.Logger
}

// NewNATSNotifier creates a notifier publishing through pub.
func NewNATSNotifier(pub Publisher, logger *slog.Logger) *NATSNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &NATSNotifier{publisher: pub, logger: logger}
}

// ConnectNATSNotifier dials a NATS server and returns a notifier that owns
// the connection. Close releases it.
func ConnectNATSNotifier(url string, logger *slog.Logger) (*NATSNotifier, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	n := NewNATSNotifier(conn, logger)
	n.conn = conn
	return n, nil
}

// Close drains and closes an owned NATS connection. It is a no-op for
// notifiers built over an external Publisher.
func (n *NATSNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}

// OnEvent implements Subscriber. Publish failures are logged, never
// propagated: notification is best-effort and must not disturb the pipeline.
func (n *NATSNotifier) OnEvent(event Event) {
	payload, err := json.Marshal(natsEvent{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Type:      event.Type.String(),
		Path:      event.Path.String(),
		State:     event.State,
	})
	if err != nil {
		n.logger.Error("failed to marshal change event",
			"path", event.Path.String(), "error", err)
		return
	}

	if err := n.publisher.Publish(Subject(event.Path), payload); err != nil {
		n.logger.Error("failed to publish change event",
			"path", event.Path.String(), "error", err)
	}
}

// Subject maps a resource path to its NATS subject.
func Subject(path types.ResourcePath) string {
	if path.IsRoot() {
		return SubjectPrefix
	}
	return SubjectPrefix + "." + strings.Join(path.Segments(), ".")
}
