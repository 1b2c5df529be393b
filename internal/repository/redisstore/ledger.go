// Package redisstore keeps the versioned stock ledger in a Redis hash so every
// replica of the service validates orders against the same snapshot.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

const (
	defaultKey  = "yakshop:stock"
	fieldMilk   = "milk"
	fieldWool   = "wool"
	fieldVer    = "version"
	fieldStamp  = "refreshed_at"
	staleResult = -1
)

var resetScript = redis.NewScript(`
local v = redis.call('HINCRBY', KEYS[1], 'version', 1)
redis.call('HSET', KEYS[1], 'milk', ARGV[1], 'wool', ARGV[2], 'refreshed_at', ARGV[3])
return v
`)

var compareAndSwapScript = redis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], 'version') or '0')
if current ~= tonumber(ARGV[1]) then
	return {-1, ''}
end
redis.call('HSET', KEYS[1], 'milk', ARGV[2], 'wool', ARGV[3])
local v = redis.call('HINCRBY', KEYS[1], 'version', 1)
return {v, redis.call('HGET', KEYS[1], 'refreshed_at') or ''}
`)

var restoreScript = redis.NewScript(`
redis.call('HINCRBYFLOAT', KEYS[1], 'milk', ARGV[1])
redis.call('HINCRBYFLOAT', KEYS[1], 'wool', ARGV[2])
return redis.call('HINCRBY', KEYS[1], 'version', 1)
`)

// Ledger implements the stock ledger on top of a Redis hash.
type Ledger struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

// NewLedger wraps client. An empty key uses "yakshop:stock".
func NewLedger(client *redis.Client, key string) *Ledger {
	if key == "" {
		key = defaultKey
	}
	return &Ledger{client: client, key: key, now: time.Now}
}

// Snapshot reads the current ledger. A missing hash is an empty ledger at version 0.
func (l *Ledger) Snapshot(ctx context.Context) (models.StockSnapshot, error) {
	values, err := l.client.HGetAll(ctx, l.key).Result()
	if err != nil {
		return models.StockSnapshot{}, fmt.Errorf("read ledger %s: %w", l.key, err)
	}
	return decodeSnapshot(values)
}

// Reset replaces the ledger unconditionally.
func (l *Ledger) Reset(ctx context.Context, ledger models.StockLedger) (models.StockSnapshot, error) {
	stamp := l.now().UTC().Truncate(time.Second)

	version, err := resetScript.Run(ctx, l.client, []string{l.key},
		formatFloat(ledger.Milk), formatFloat(ledger.Wool), stamp.Format(time.RFC3339)).Int64()
	if err != nil {
		return models.StockSnapshot{}, fmt.Errorf("reset ledger %s: %w", l.key, err)
	}

	return models.StockSnapshot{Ledger: ledger, Version: uint64(version), RefreshedAt: stamp}, nil
}

// CompareAndSwap writes ledger only if the stored version equals expected.
func (l *Ledger) CompareAndSwap(ctx context.Context, expected uint64, ledger models.StockLedger) (models.StockSnapshot, error) {
	result, err := compareAndSwapScript.Run(ctx, l.client, []string{l.key},
		expected, formatFloat(ledger.Milk), formatFloat(ledger.Wool)).Slice()
	if err != nil {
		return models.StockSnapshot{}, fmt.Errorf("swap ledger %s: %w", l.key, err)
	}
	if len(result) != 2 {
		return models.StockSnapshot{}, fmt.Errorf("swap ledger %s: unexpected reply %v", l.key, result)
	}

	version, ok := result[0].(int64)
	if !ok {
		return models.StockSnapshot{}, fmt.Errorf("swap ledger %s: unexpected version %v", l.key, result[0])
	}
	if version == staleResult {
		return models.StockSnapshot{}, fmt.Errorf("%w: expected version %d", models.ErrStaleSnapshot, expected)
	}

	snap := models.StockSnapshot{Ledger: ledger, Version: uint64(version)}
	if stamp, ok := result[1].(string); ok && stamp != "" {
		snap.RefreshedAt, _ = time.Parse(time.RFC3339, stamp)
	}
	return snap, nil
}

// Restore adds delta back to the ledger.
func (l *Ledger) Restore(ctx context.Context, delta models.StockLedger) error {
	err := restoreScript.Run(ctx, l.client, []string{l.key}, formatFloat(delta.Milk), formatFloat(delta.Wool)).Err()
	if err != nil {
		return fmt.Errorf("restore ledger %s: %w", l.key, err)
	}
	return nil
}

func decodeSnapshot(values map[string]string) (models.StockSnapshot, error) {
	var snap models.StockSnapshot
	if len(values) == 0 {
		return snap, nil
	}

	var errs []error
	if v, ok := values[fieldMilk]; ok {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, err)
		snap.Ledger.Milk = f
	}
	if v, ok := values[fieldWool]; ok {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, err)
		snap.Ledger.Wool = f
	}
	if v, ok := values[fieldVer]; ok {
		n, err := strconv.ParseUint(v, 10, 64)
		errs = append(errs, err)
		snap.Version = n
	}
	if v, ok := values[fieldStamp]; ok && v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		errs = append(errs, err)
		snap.RefreshedAt = ts
	}

	if err := errors.Join(errs...); err != nil {
		return models.StockSnapshot{}, fmt.Errorf("decode ledger: %w", err)
	}
	return snap, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
