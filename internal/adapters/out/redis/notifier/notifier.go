// Package notifier publishes committed order events on Redis Pub/Sub so
// customers, shops and shippers learn about changes without polling.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher implements ports.OrderEventPublisher.
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix}
}

// Channels lists every channel event goes to.
func (p *RedisPublisher) Channels(event ports.OrderEvent) []string {
	channels := []string{
		p.prefix + ":customer:" + event.CustomerID.String(),
		p.prefix + ":shop:" + event.ShopID.String(),
	}
	if event.ShipperID != nil {
		channels = append(channels, p.prefix+":shipper:"+event.ShipperID.String())
	}
	if event.Type == ports.OrderReady {
		channels = append(channels, p.prefix+":shippers:ready")
	}
	return channels
}

func (p *RedisPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	pipe := p.client.Pipeline()
	for _, channel := range p.Channels(event) {
		pipe.Publish(ctx, channel, payload)
	}
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish %s event for order %s: %w", event.Type, event.OrderID, err)
	}
	return nil
}
