// Package publish pushes integrity events to Redis channels for downstream
// consumers (live clients, alerting, on-chain anchoring workers). Publishing
// is best effort: the core never fails a rules or validation path because a
// subscriber side channel is down.
package publish

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/fairpitch/matchcore/internal/rules"
	"github.com/fairpitch/matchcore/internal/validate"
)

const (
	cardChannel       = "matchcore.cards"
	validationChannel = "matchcore.validations"
)

// Publisher fans out card events and validation results. A nil Publisher is
// valid and publishes nothing, so wiring stays optional.
type Publisher struct {
	client *redis.Client
	logger *log.Logger
}

// New creates a publisher against the given Redis address.
func New(addr string) *Publisher {
	return &Publisher{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		logger: log.New(os.Stdout, "[PUBLISH] ", log.LstdFlags),
	}
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.client.Close()
}

// PublishCard announces a card event.
func (p *Publisher) PublishCard(ctx context.Context, e rules.CardEvent) {
	p.publish(ctx, cardChannel, e)
}

// PublishValidation announces a completed validation.
func (p *Publisher) PublishValidation(ctx context.Context, matchID string, res validate.ValidationResult) {
	p.publish(ctx, validationChannel, struct {
		MatchID string                    `json:"match_id"`
		Result  validate.ValidationResult `json:"result"`
	}{matchID, res})
}

func (p *Publisher) publish(ctx context.Context, channel string, payload any) {
	if p == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Printf("marshal for %s failed: %v", channel, err)
		return
	}
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		p.logger.Printf("publish to %s failed: %v", channel, err)
	}
}
