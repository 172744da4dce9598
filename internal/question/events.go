package question

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultEventChannel = "trivia:questions"

// Event types published when the question set changes.
const (
	EventQuestionCreated = "question.created"
	EventQuestionDeleted = "question.deleted"
)

// Event describes a change to a single question.
type Event struct {
	Type       string    `json:"type"`
	QuestionID int       `json:"question_id"`
	Category   int       `json:"category"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher announces question changes (implemented by Redis-backed RedisPublisher).
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// RedisPublisher sends events as JSON over Redis Pub/Sub.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

var _ Publisher = (*RedisPublisher)(nil)

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = defaultEventChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Channel returns the Pub/Sub channel events are published on.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

func (p *RedisPublisher) Publish(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}

// Listener subscribes to the event channel and hands each decoded event to
// a callback, logging the ones it cannot decode.
type Listener struct {
	client  *redis.Client
	channel string
	handle  func(Event)
	logger  zerolog.Logger
}

// NewListener creates a Pub/Sub listener. A nil handle logs each event.
func NewListener(client *redis.Client, channel string, handle func(Event), logger zerolog.Logger) *Listener {
	if channel == "" {
		channel = defaultEventChannel
	}
	l := &Listener{
		client:  client,
		channel: channel,
		handle:  handle,
		logger:  logger.With().Str("component", "question_events").Logger(),
	}
	if l.handle == nil {
		l.handle = l.logEvent
	}
	return l
}

// Run subscribes to the channel and blocks until the context is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	if l.client == nil {
		return nil
	}

	sub := l.client.Subscribe(ctx, l.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			l.dispatch(msg.Payload)
		}
	}
}

func (l *Listener) dispatch(payload string) {
	evt, err := DecodeEvent([]byte(payload))
	if err != nil {
		l.logger.Warn().Err(err).Msg("failed to decode question event")
		return
	}
	l.handle(evt)
}

func (l *Listener) logEvent(evt Event) {
	l.logger.Info().
		Str("event", evt.Type).
		Int("question_id", evt.QuestionID).
		Int("category", evt.Category).
		Time("occurred_at", evt.OccurredAt).
		Msg("question changed")
}

// DecodeEvent parses a published event and rejects unknown event types.
func DecodeEvent(data []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		return Event{}, fmt.Errorf("decode question event: %w", err)
	}
	switch evt.Type {
	case EventQuestionCreated, EventQuestionDeleted:
		return evt, nil
	default:
		return Event{}, fmt.Errorf("unknown question event type %q", evt.Type)
	}
}
