package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridebook/internal/config"
)

// NewRedisClient connects to Redis, which backs booking locks, the booking cache,
// driver positions and idempotency keys. Commands are traced when nrApp is set.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, nrApp *newrelic.Application) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Add New Relic hook for Redis instrumentation if enabled
	if nrApp != nil {
		client.AddHook(&nrRedisHook{app: nrApp})
	}

	// Verify connection.
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// keyFamilies maps key prefixes to the collection name reported to New Relic.
var keyFamilies = []struct {
	prefix     string
	collection string
}{
	{"cache:booking:", "cache:booking"},
	{"lock:booking:", "lock:booking"},
	{"idempotency:", "idempotency"},
	{"drivers:online", "drivers:online"},
	{"drivers:locations", "drivers:locations"},
}

// keyFamily returns the collection a command touches, taken from its first key.
func keyFamily(cmd redis.Cmder) string {
	args := cmd.Args()
	// EVAL/EVALSHA carry the script and key count before the first key.
	keyIndex := 1
	switch strings.ToLower(cmd.Name()) {
	case "eval", "evalsha", "evalsha_ro", "eval_ro":
		keyIndex = 3
	}
	if len(args) <= keyIndex {
		return "redis"
	}
	key, ok := args[keyIndex].(string)
	if !ok {
		return "redis"
	}
	for _, f := range keyFamilies {
		if strings.HasPrefix(key, f.prefix) {
			return f.collection
		}
	}
	return "redis"
}

// nrRedisHook reports each command as a datastore segment on the request's transaction.
type nrRedisHook struct {
	app *newrelic.Application
}

func (h *nrRedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *nrRedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if txn := newrelic.FromContext(ctx); txn != nil {
			segment := newrelic.DatastoreSegment{
				StartTime:  txn.StartSegmentNow(),
				Product:    newrelic.DatastoreRedis,
				Operation:  cmd.Name(),
				Collection: keyFamily(cmd),
			}
			defer segment.End()
		}
		return next(ctx, cmd)
	}
}

func (h *nrRedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if txn := newrelic.FromContext(ctx); txn != nil {
			collection := "redis"
			if len(cmds) > 0 {
				collection = keyFamily(cmds[0])
			}
			segment := newrelic.DatastoreSegment{
				StartTime:  txn.StartSegmentNow(),
				Product:    newrelic.DatastoreRedis,
				Operation:  "pipeline",
				Collection: collection,
			}
			defer segment.End()
		}
		return next(ctx, cmds)
	}
}
