package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const presenceKey = "gateway:clients"

// Presence mirrors the set of connected gateway clients into a Redis set.
// Entries carry no TTL; Reset clears leftovers from a previous process at
// startup.
type Presence struct {
	client *redis.Client
}

func NewPresence(client *redis.Client) *Presence {
	return &Presence{client: client}
}

// Add records a newly connected client.
func (p *Presence) Add(ctx context.Context, clientID string) error {
	if err := p.client.SAdd(ctx, presenceKey, clientID).Err(); err != nil {
		return fmt.Errorf("presence add: %w", err)
	}
	return nil
}

// Remove forgets a disconnected client.
func (p *Presence) Remove(ctx context.Context, clientID string) error {
	if err := p.client.SRem(ctx, presenceKey, clientID).Err(); err != nil {
		return fmt.Errorf("presence remove: %w", err)
	}
	return nil
}

// Count returns the number of currently tracked clients.
func (p *Presence) Count(ctx context.Context) (int64, error) {
	n, err := p.client.SCard(ctx, presenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("presence count: %w", err)
	}
	return n, nil
}

// Reset drops all tracked clients. Called once at startup so connections
// left behind by a crashed process are not counted forever.
func (p *Presence) Reset(ctx context.Context) error {
	if err := p.client.Del(ctx, presenceKey).Err(); err != nil {
		return fmt.Errorf("presence reset: %w", err)
	}
	return nil
}
