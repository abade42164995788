// internal/domain/cart/redis_store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
)

const redisOpTimeout = 2 * time.Second

// registerCart is the JSON document stored per register session
type registerCart struct {
	RegisterID string    `json:"register_id"`
	Lines      []Line    `json:"lines"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RedisStore keeps the register's cart in Redis so an in-progress sale
// survives a terminal restart. It applies the same mutation rules as the
// in-memory store through the shared helpers.
type RedisStore struct {
	client     *redis.Client
	registerID string
	ttl        time.Duration
}

// NewRedisStore creates a Redis-backed cart store for a register session
func NewRedisStore(client *redis.Client, registerID string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		registerID: registerID,
		ttl:        ttl,
	}
}

// Lines returns the cart lines in insertion order
func (s *RedisStore) Lines() ([]Line, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Lines, nil
}

// AddProduct increments an existing line or appends a new one
func (s *RedisStore) AddProduct(p catalog.Product) error {
	return s.mutate(func(lines []Line) ([]Line, error) {
		return addProduct(lines, p), nil
	})
}

// IncrementLine increases the quantity of the line at the given position
func (s *RedisStore) IncrementLine(index int) error {
	return s.mutate(func(lines []Line) ([]Line, error) {
		if index < 0 || index >= len(lines) {
			return nil, ErrIndexOutOfRange
		}
		lines[index].Quantity++
		return lines, nil
	})
}

// DecrementLine decreases the quantity, removing the line at quantity 1
func (s *RedisStore) DecrementLine(index int) error {
	return s.mutate(func(lines []Line) ([]Line, error) {
		if index < 0 || index >= len(lines) {
			return nil, ErrIndexOutOfRange
		}
		if lines[index].Quantity > 1 {
			lines[index].Quantity--
			return lines, nil
		}
		return removeLine(lines, index), nil
	})
}

// RemoveLine removes the line at the given position
func (s *RedisStore) RemoveLine(index int) error {
	return s.mutate(func(lines []Line) ([]Line, error) {
		if index < 0 || index >= len(lines) {
			return nil, ErrIndexOutOfRange
		}
		return removeLine(lines, index), nil
	})
}

// OverridePrice sets a negotiated price; non-positive prices are rejected
// silently and leave the line unchanged.
func (s *RedisStore) OverridePrice(index int, price decimal.Decimal) error {
	return s.mutate(func(lines []Line) ([]Line, error) {
		if index < 0 || index >= len(lines) {
			return nil, ErrIndexOutOfRange
		}
		lines[index] = overridePrice(lines[index], price)
		return lines, nil
	})
}

// Clear empties the cart
func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.client.Del(ctx, s.cartKey()).Err()
}

func (s *RedisStore) cartKey() string {
	return fmt.Sprintf("cart:register:%s", s.registerID)
}

func (s *RedisStore) load() (*registerCart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.cartKey()).Result()
	if err == redis.Nil {
		// Cart doesn't exist yet, start empty
		return &registerCart{
			RegisterID: s.registerID,
			Lines:      []Line{},
			CreatedAt:  nowUTC(),
			UpdatedAt:  nowUTC(),
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load register cart: %w", err)
	}

	var doc registerCart
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode register cart: %w", err)
	}
	return &doc, nil
}

func (s *RedisStore) save(doc *registerCart) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode register cart: %w", err)
	}
	return s.client.Set(ctx, s.cartKey(), data, s.ttl).Err()
}

func (s *RedisStore) mutate(fn func(lines []Line) ([]Line, error)) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	lines, err := fn(doc.Lines)
	if err != nil {
		return err
	}

	doc.Lines = lines
	doc.UpdatedAt = nowUTC()
	return s.save(doc)
}
