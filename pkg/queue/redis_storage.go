package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// claimScript first returns expired processing entries to their pending set,
// then moves the best ready task from the pending sets to the processing set.
//
// KEYS[1] processing zset (score: lock expiry ms)
// KEYS[2] priorities hash
// KEYS[3] queue-of hash
// KEYS[4..] pending zsets (score: scheduled at ms)
// ARGV[1] now ms, ARGV[2] lock expiry ms, ARGV[3] scan limit, ARGV[4] pending key prefix
var claimScript = redis.NewScript(`
local expired = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(expired) do
	redis.call('ZREM', KEYS[1], id)
	local q = redis.call('HGET', KEYS[3], id)
	if q then
		redis.call('ZADD', ARGV[4] .. q, ARGV[1], id)
	end
end

local best, bestKey, bestPrio, bestScore
for i = 4, #KEYS do
	local ready = redis.call('ZRANGEBYSCORE', KEYS[i], '-inf', ARGV[1], 'WITHSCORES', 'LIMIT', 0, tonumber(ARGV[3]))
	for j = 1, #ready, 2 do
		local id = ready[j]
		local score = tonumber(ready[j + 1])
		local prio = tonumber(redis.call('HGET', KEYS[2], id) or '0')
		if best == nil or prio > bestPrio or (prio == bestPrio and score < bestScore) then
			best, bestKey, bestPrio, bestScore = id, KEYS[i], prio, score
		end
	end
end

if best == nil then
	return false
end
redis.call('ZREM', bestKey, best)
redis.call('ZADD', KEYS[1], ARGV[2], best)
return best
`)

const claimScanLimit = 100

// RedisStorage implements EnqueuerRepository and WorkerRepository on Redis.
//
// Task bodies live as JSON in a hash; pending tasks sit in one sorted set per
// queue scored by scheduled time, and claimed tasks in a processing set scored
// by lock expiry. Claims are atomic, expired locks are recovered on the next
// claim, completed tasks are removed and dead letters are kept in their own hash.
type RedisStorage struct {
	db     redis.UniversalClient
	prefix string
}

// NewRedisStorage uses prefix for every key. A prefix wrapped in braces,
// such as the default "{queue}", keeps all keys in one cluster slot.
func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "{queue}"
	}
	return &RedisStorage{db: client, prefix: prefix}
}

func (s *RedisStorage) tasksKey() string      { return s.prefix + ":tasks" }
func (s *RedisStorage) prioritiesKey() string { return s.prefix + ":priorities" }
func (s *RedisStorage) queuesKey() string     { return s.prefix + ":queues" }
func (s *RedisStorage) processingKey() string { return s.prefix + ":processing" }
func (s *RedisStorage) dlqKey() string        { return s.prefix + ":dlq" }
func (s *RedisStorage) pendingPrefix() string { return s.prefix + ":pending:" }
func (s *RedisStorage) pendingKey(queue string) string {
	return s.pendingPrefix() + queue
}

func (s *RedisStorage) CreateTask(ctx context.Context, task *Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	id := task.ID.String()
	created, err := s.db.HSetNX(ctx, s.tasksKey(), id, raw).Result()
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("task with ID %s already exists", id)
	}

	_, err = s.db.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.prioritiesKey(), id, int(task.Priority))
		p.HSet(ctx, s.queuesKey(), id, task.Queue)
		p.ZAdd(ctx, s.pendingKey(task.Queue), redis.Z{Score: msec(task.ScheduledAt), Member: id})
		return nil
	})
	return err
}

func (s *RedisStorage) ClaimTask(ctx context.Context, workerID uuid.UUID, queues []string, lockDuration time.Duration) (*Task, error) {
	if len(queues) == 0 {
		return nil, ErrNoTaskToClaim
	}

	now := time.Now()
	lockUntil := now.Add(lockDuration)

	keys := []string{s.processingKey(), s.prioritiesKey(), s.queuesKey()}
	for _, q := range queues {
		keys = append(keys, s.pendingKey(q))
	}

	id, err := claimScript.Run(ctx, s.db, keys,
		strconv.FormatInt(now.UnixMilli(), 10),
		strconv.FormatInt(lockUntil.UnixMilli(), 10),
		claimScanLimit,
		s.pendingPrefix(),
	).Text()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoTaskToClaim
	}
	if err != nil {
		return nil, fmt.Errorf("claim task: %w", err)
	}

	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = TaskStatusProcessing
	task.LockedUntil = &lockUntil
	task.LockedBy = &workerID
	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *RedisStorage) CompleteTask(ctx context.Context, taskID uuid.UUID) error {
	if _, err := s.processing(ctx, taskID); err != nil {
		return err
	}
	return s.remove(ctx, taskID.String())
}

func (s *RedisStorage) FailTask(ctx context.Context, taskID uuid.UUID, errorMsg string) error {
	task, err := s.processing(ctx, taskID)
	if err != nil {
		return err
	}

	task.RetryCount++
	task.Error = &errorMsg
	task.LockedUntil = nil
	task.LockedBy = nil

	id := task.ID.String()
	if task.RetryCount > task.MaxRetries {
		task.Status = TaskStatusFailed
		if err := s.save(ctx, task); err != nil {
			return err
		}
		return s.db.ZRem(ctx, s.processingKey(), id).Err()
	}

	task.Status = TaskStatusPending
	task.ScheduledAt = time.Now().Add(retryBackoff(task.RetryCount))
	if err := s.save(ctx, task); err != nil {
		return err
	}
	_, err = s.db.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZRem(ctx, s.processingKey(), id)
		p.ZAdd(ctx, s.pendingKey(task.Queue), redis.Z{Score: msec(task.ScheduledAt), Member: id})
		return nil
	})
	return err
}

func (s *RedisStorage) MoveToDLQ(ctx context.Context, taskID uuid.UUID) error {
	task, err := s.load(ctx, taskID.String())
	if err != nil {
		return err
	}

	dl := newDeadLetter(task, time.Now())
	raw, err := json.Marshal(dl)
	if err != nil {
		return fmt.Errorf("marshal dead letter: %w", err)
	}
	if err := s.db.HSet(ctx, s.dlqKey(), dl.ID.String(), raw).Err(); err != nil {
		return err
	}
	return s.remove(ctx, task.ID.String())
}

// Task returns a stored task.
func (s *RedisStorage) Task(ctx context.Context, taskID uuid.UUID) (*Task, error) {
	return s.load(ctx, taskID.String())
}

// DeadLetters returns all dead-lettered tasks in no particular order.
func (s *RedisStorage) DeadLetters(ctx context.Context) ([]DeadLetter, error) {
	vals, err := s.db.HVals(ctx, s.dlqKey()).Result()
	if err != nil {
		return nil, err
	}
	out := make([]DeadLetter, 0, len(vals))
	for _, v := range vals {
		var dl DeadLetter
		if err := json.Unmarshal([]byte(v), &dl); err != nil {
			return nil, fmt.Errorf("decode dead letter: %w", err)
		}
		out = append(out, dl)
	}
	return out, nil
}

func (s *RedisStorage) processing(ctx context.Context, taskID uuid.UUID) (*Task, error) {
	task, err := s.load(ctx, taskID.String())
	if err != nil {
		return nil, err
	}
	if task.Status != TaskStatusProcessing {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotProcessing, taskID)
	}
	return task, nil
}

func (s *RedisStorage) load(ctx context.Context, id string) (*Task, error) {
	raw, err := s.db.HGet(ctx, s.tasksKey(), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var task Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", id, err)
	}
	return &task, nil
}

func (s *RedisStorage) save(ctx context.Context, task *Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	return s.db.HSet(ctx, s.tasksKey(), task.ID.String(), raw).Err()
}

func (s *RedisStorage) remove(ctx context.Context, id string) error {
	queue, err := s.db.HGet(ctx, s.queuesKey(), id).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	_, err = s.db.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZRem(ctx, s.processingKey(), id)
		if queue != "" {
			p.ZRem(ctx, s.pendingKey(queue), id)
		}
		p.HDel(ctx, s.tasksKey(), id)
		p.HDel(ctx, s.prioritiesKey(), id)
		p.HDel(ctx, s.queuesKey(), id)
		return nil
	})
	return err
}

func msec(t time.Time) float64 {
	return float64(t.UnixMilli())
}
