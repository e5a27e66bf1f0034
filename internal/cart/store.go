package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chronovahq/chronova-backend/pkg/config"
	redisclient "github.com/chronovahq/chronova-backend/pkg/redis"
)

// Store persists carts between requests. Load returns an empty cart when
// the token has no saved state; writes are last-writer-wins.
type Store interface {
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

type redisStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

// NewRedisStore builds a cart store backed by Redis with the configured TTL.
func NewRedisStore(client *redisclient.Client, cfg config.CartConfig) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &redisStore{client: client, ttl: cfg.TTL}, nil
}

func (s *redisStore) Load(ctx context.Context, token string) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(token))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return NewCart(token), nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// Corrupt payloads reset to an empty cart rather than wedging the shopper.
		return NewCart(token), nil
	}
	cart.Token = token
	return &cart, nil
}

func (s *redisStore) Save(ctx context.Context, cart *Cart) error {
	if cart == nil || cart.Token == "" {
		return fmt.Errorf("cart with token required")
	}
	cart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(cart.Token), payload, s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.client.CartKey(token)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
