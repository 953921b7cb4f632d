// README: Cache store on a Redis sorted set; members are JSON entries scored by unix milliseconds.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMalformedEntry marks a set member that is not a JSON entry.
var ErrMalformedEntry = errors.New("malformed cache entry")

type Store struct {
	rdb     *redis.Client
	key     string
	timeout time.Duration
}

func NewStore(rdb *redis.Client, key string, timeout time.Duration) *Store {
	return &Store{rdb: rdb, key: key, timeout: timeout}
}

// Add writes one entry. The API never calls it; population belongs to
// whatever fills the cache, and tests use it to seed data.
func (s *Store) Add(ctx context.Context, e Entry) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	member, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	return s.rdb.ZAdd(ctx, s.key, redis.Z{
		Score:  float64(e.Timestamp.UnixMilli()),
		Member: string(member),
	}).Err()
}

// List returns every member newest-first. Members that fail to decode are
// counted in skipped instead of failing the call.
func (s *Store) List(ctx context.Context) (entries []Entry, skipped int, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	zs, err := s.rdb.ZRevRangeWithScores(ctx, s.key, 0, -1).Result()
	if errors.Is(err, redis.Nil) {
		return []Entry{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list cache: %w", err)
	}

	entries = make([]Entry, 0, len(zs))
	for _, z := range zs {
		e, err := decodeMember(z)
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

func decodeMember(z redis.Z) (Entry, error) {
	raw, ok := z.Member.(string)
	if !ok {
		return Entry{}, ErrMalformedEntry
	}
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.UnixMilli(int64(z.Score)).UTC()
	}
	return e, nil
}
