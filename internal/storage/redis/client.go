package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"wedding_site/internal/storage"
)

const scanBatch = 100

// casScript sets KEYS[1] to ARGV[2] when its value equals ARGV[1]; ARGV[3] == "1" means the key must be absent.
var casScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if ARGV[3] == '1' then
	if cur then return 0 end
elseif cur ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2])
return 1
`)

type Client struct {
	*redis.Client
}

func NewClient(addr, password string, db int) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() {
	c.Client.Close()
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "storage.redis.Get"

	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %s: %w", op, key, storage.ErrorNoSuchKey)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return val, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	const op = "storage.redis.Set"

	if err := c.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	const op = "storage.redis.Delete"

	if err := c.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) Keys(ctx context.Context, prefix string) ([]string, error) {
	const op = "storage.redis.Keys"

	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := c.Client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			break
		}
		cursor = next
	}

	return keys, nil
}

func (c *Client) CompareAndSwap(ctx context.Context, key string, expected, value []byte) error {
	const op = "storage.redis.CompareAndSwap"

	mustBeAbsent := "0"
	if expected == nil {
		mustBeAbsent = "1"
	}

	res, err := casScript.Run(ctx, c.Client, []string{key}, string(expected), string(value), mustBeAbsent).Int()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res != 1 {
		return fmt.Errorf("%s: %s: %w", op, key, storage.ErrVersionMismatch)
	}

	return nil
}
