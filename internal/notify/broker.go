// Package notify delivers attack_detected notifications from the anomaly
// monitor to whoever is listening, over an in-process watermill pub/sub.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Notifier emits a notification that identity was flagged.
type Notifier interface {
	Notify(ctx context.Context, identity string) error
}

// AttackDetected is the payload published on common.TopicAttackDetected.
type AttackDetected struct {
	EventID    string    `json:"event_id"`
	Identity   string    `json:"identity"`
	DetectedAt time.Time `json:"detected_at"`
}

const (
	metadataEvent = "event"

	// subscriberBuffer is how many undelivered events a subscriber may hold
	// before newer ones are dropped.
	subscriberBuffer = 64
)

// Broker publishes notifications on a gochannel pub/sub. Messages published
// while nobody is subscribed are dropped, and so are messages for a
// subscriber whose buffer is full. Notify never waits on a consumer.
type Broker struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
	now    func() time.Time
}

func NewBroker(logger *slog.Logger) *Broker {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            subscriberBuffer,
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NewSlogLogger(logger))

	return &Broker{pubsub: pubsub, logger: logger, now: time.Now}
}

// Notify publishes an AttackDetected event for identity.
func (b *Broker) Notify(ctx context.Context, identity string) error {
	ev := AttackDetected{
		EventID:    uuid.NewString(),
		Identity:   identity,
		DetectedAt: b.now().UTC(),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := message.NewMessage(ev.EventID, payload)
	msg.Metadata.Set(metadataEvent, common.TopicAttackDetected)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(common.TopicAttackDetected, msg); err != nil {
		return fmt.Errorf("publish %s: %w", common.TopicAttackDetected, err)
	}
	return nil
}

// Subscribe returns a buffered channel of decoded events that stays open
// until ctx is cancelled or the broker is closed. Malformed payloads are
// skipped. Events arriving while the buffer is full are dropped.
func (b *Broker) Subscribe(ctx context.Context) (<-chan AttackDetected, error) {
	msgs, err := b.pubsub.Subscribe(ctx, common.TopicAttackDetected)
	if err != nil {
		return nil, err
	}

	out := make(chan AttackDetected, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range msgs {
			var ev AttackDetected
			if err := json.Unmarshal(msg.Payload, &ev); err == nil {
				select {
				case out <- ev:
				default:
					b.logger.Warn("subscriber buffer full, dropping event",
						"event_id", ev.EventID, "identity", ev.Identity)
				}
			}
			msg.Ack()
		}
	}()
	return out, nil
}

func (b *Broker) Close() error {
	return b.pubsub.Close()
}
