package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"engage-escrow/internal/core/domain"
)

// pingInterval is how long the listener waits in silence before checking
// that the connection is still alive.
const pingInterval = 90 * time.Second

// EventListener tails the campaign event feed published with NOTIFY. It
// uses lib/pq because pgx has no reconnecting listener.
type EventListener struct {
	listener *pq.Listener
	logger   *slog.Logger
}

// NewEventListener subscribes to EventChannel on the database at addr.
func NewEventListener(addr string, minReconnect, maxReconnect time.Duration, logger *slog.Logger) (*EventListener, error) {
	l := pq.NewListener(addr, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
			logger.Warn("event listener connection lost", slog.Any("error", err))
		case pq.ListenerEventReconnected:
			logger.Info("event listener reconnected")
		}
	})
	if err := l.Listen(EventChannel); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("listen %s: %w", EventChannel, err)
	}
	return &EventListener{listener: l, logger: logger}, nil
}

// Run delivers every received event to handle until ctx is done or handle
// fails. Events published while the connection was down are not replayed;
// consumers that need them read the campaign_events table.
func (l *EventListener) Run(ctx context.Context, handle func(domain.Event) error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-l.listener.Notify:
			// nil after a reconnect
			if n == nil {
				continue
			}
			ev, err := DecodeEvent([]byte(n.Extra))
			if err != nil {
				l.logger.Error("malformed event notification", slog.Any("error", err))
				continue
			}
			if err = handle(ev); err != nil {
				return err
			}
		case <-time.After(pingInterval):
			go func() {
				if err := l.listener.Ping(); err != nil {
					l.logger.Warn("event listener ping failed", slog.Any("error", err))
				}
			}()
		}
	}
}

// Close stops the listener.
func (l *EventListener) Close() error {
	return l.listener.Close()
}

// DecodeEvent parses a notification payload.
func DecodeEvent(payload []byte) (domain.Event, error) {
	var ev domain.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return domain.Event{}, err
	}
	if ev.Type == "" {
		return domain.Event{}, fmt.Errorf("event %s has no type", ev.ID)
	}
	return ev, nil
}
