package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/musetix/polls/internal/core/domain"
	"github.com/musetix/polls/internal/core/ports"
)

// indexKey is the sorted set mapping poll id to its expiry in Unix
// milliseconds, used to classify polls without scanning every record.
const indexKey = "active_polls"

// voteScript makes the existence, expiry and option checks atomic with the
// increment. ARGV[1] is the current time in Unix milliseconds, ARGV[2] the
// option. The counters hash mirrors the declared options, so HEXISTS on it
// rejects votes for undeclared options.
var voteScript = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return "not_found"
end
if tonumber(ARGV[1]) > tonumber(redis.call("HGET", KEYS[1], "endsAt")) then
  return "ended"
end
if redis.call("HEXISTS", KEYS[2], ARGV[2]) == 0 then
  return "bad_option"
end
redis.call("HINCRBY", KEYS[2], ARGV[2], 1)
return "ok"
`)

type PollRepository struct {
	client *goredis.Client
}

func NewPollRepository(client *goredis.Client) *PollRepository {
	return &PollRepository{
		client: client,
	}
}

var _ ports.PollRepository = (*PollRepository)(nil)
var _ ports.HealthChecker = (*PollRepository)(nil)

func (r *PollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	optionsJSON, err := json.Marshal(poll.Options)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}

	counters := make([]any, 0, len(poll.Options)*2)
	for _, opt := range poll.Options {
		counters = append(counters, opt, "0")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, poll.ID, map[string]any{
			"question":  poll.Question,
			"options":   string(optionsJSON),
			"createdAt": strconv.FormatInt(poll.CreatedAt.UnixMilli(), 10),
			"endsAt":    strconv.FormatInt(poll.EndsAt.UnixMilli(), 10),
		})
		pipe.HSet(ctx, votesKey(poll.ID), counters...)
		pipe.ZAdd(ctx, indexKey, goredis.Z{
			Score:  float64(poll.EndsAt.UnixMilli()),
			Member: poll.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save poll: %w", err)
	}

	return nil
}

func (r *PollRepository) GetByID(ctx context.Context, id string) (*domain.Poll, error) {
	data, err := r.client.HGetAll(ctx, id).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.ErrPollNotFound
	}

	votesData, err := r.client.HGetAll(ctx, votesKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get poll votes: %w", err)
	}

	var options []string
	if err := json.Unmarshal([]byte(data["options"]), &options); err != nil {
		return nil, fmt.Errorf("failed to decode options for poll %s: %w", id, err)
	}

	createdAt, err := parseMillis(data["createdAt"])
	if err != nil {
		return nil, fmt.Errorf("malformed createdAt for poll %s: %w", id, err)
	}
	endsAt, err := parseMillis(data["endsAt"])
	if err != nil {
		return nil, fmt.Errorf("malformed endsAt for poll %s: %w", id, err)
	}

	// Tallies follow the declared option order; counters missing from the
	// votes hash read as zero.
	votes := make([]int64, len(options))
	var total int64
	for i, opt := range options {
		if raw, ok := votesData[opt]; ok {
			if count, err := strconv.ParseInt(raw, 10, 64); err == nil {
				votes[i] = count
			}
		}
		total += votes[i]
	}

	return &domain.Poll{
		ID:         id,
		Question:   data["question"],
		Options:    options,
		Votes:      votes,
		TotalVotes: total,
		CreatedAt:  createdAt,
		EndsAt:     endsAt,
	}, nil
}

func (r *PollRepository) RegisterVote(ctx context.Context, id, option string, now time.Time) error {
	keys := []string{id, votesKey(id)}
	res, err := voteScript.Run(ctx, r.client, keys, now.UnixMilli(), option).Result()
	if err != nil {
		return fmt.Errorf("failed to register vote: %w", err)
	}

	switch res {
	case "ok":
		return nil
	case "not_found":
		return domain.ErrPollNotFound
	case "ended":
		return domain.ErrPollEnded
	case "bad_option":
		return domain.ErrInvalidOption
	default:
		return fmt.Errorf("unexpected vote script result: %v", res)
	}
}

func (r *PollRepository) IDsEndingAfter(ctx context.Context, t time.Time) ([]string, error) {
	ids, err := r.client.ZRangeByScore(ctx, indexKey, &goredis.ZRangeBy{
		Min: strconv.FormatInt(t.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query poll index: %w", err)
	}
	return ids, nil
}

func (r *PollRepository) IDsEndingBefore(ctx context.Context, t time.Time) ([]string, error) {
	ids, err := r.client.ZRangeByScore(ctx, indexKey, &goredis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(t.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query poll index: %w", err)
	}
	return ids, nil
}

func (r *PollRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func votesKey(pollID string) string {
	return pollID + ":votes"
}

func parseMillis(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
