package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Failed receipt jobs land on a per-queue dead-letter list (dlq:{queue}) so
// a cashier can re-print later. Entries keep the full job envelope.

const deadLetterPrefix = "dlq:"

type deadLetter struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Cause    string          `json:"cause"`
	FailedAt time.Time       `json:"failed_at"`
	Attempts int             `json:"attempts"`
}

// pushDeadLetter parks a failed job with its failure cause. Best effort: if
// redis itself is down the loss is logged, never propagated.
func pushDeadLetter(ctx context.Context, rdb *redis.Client, queue string, job Job, attempts int, cause error) {
	entry := deadLetter{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Cause:    cause.Error(),
		FailedAt: time.Now().UTC(),
		Attempts: attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead letter: marshal entry")
		return
	}
	if err := rdb.LPush(ctx, deadLetterPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead letter: push")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("type", job.Type).
		Str("cause", entry.Cause).
		Int("attempts", attempts).
		Msg("job moved to dead letter list")
}

// DeadLetterCount reports the size of a queue's dead-letter list.
func DeadLetterCount(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, deadLetterPrefix+queue).Result()
}
