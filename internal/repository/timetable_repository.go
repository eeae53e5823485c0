package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/schedassist/sched-assist-api/internal/models"
)

const timetableKeyPrefix = "timetable:"

// TimetableRepository persists date buckets as JSON documents in Redis,
// keyed per user and per date.
type TimetableRepository struct {
	client  *redis.Client
	retries int
}

// NewTimetableRepository constructs the repository. retries bounds the
// optimistic-transaction attempts for ReplaceEntry.
func NewTimetableRepository(client *redis.Client, retries int) *TimetableRepository {
	if retries <= 0 {
		retries = 3
	}
	return &TimetableRepository{client: client, retries: retries}
}

func dateKey(userID, date string) string {
	return fmt.Sprintf("%s%s:dates:%s", timetableKeyPrefix, userID, date)
}

func userPattern(userID string) string {
	return fmt.Sprintf("%s%s:dates:*", timetableKeyPrefix, userID)
}

func encodeBucket(bucket models.DateBucket) ([]byte, error) {
	if bucket.Updates == nil {
		bucket.Updates = []models.TimetableEntry{}
	}
	return json.Marshal(bucket)
}

func decodeBucket(raw []byte) (models.DateBucket, error) {
	var bucket models.DateBucket
	if err := json.Unmarshal(raw, &bucket); err != nil {
		return models.DateBucket{}, fmt.Errorf("decode bucket: %w", err)
	}
	return bucket, nil
}

// GetBucket fetches one date bucket; a missing document yields an empty bucket.
func (r *TimetableRepository) GetBucket(ctx context.Context, userID, date string) (models.DateBucket, error) {
	raw, err := r.client.Get(ctx, dateKey(userID, date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return models.DateBucket{Updates: []models.TimetableEntry{}}, nil
		}
		return models.DateBucket{}, fmt.Errorf("redis get %s: %w", dateKey(userID, date), err)
	}
	return decodeBucket(raw)
}

// ListAll scans every date bucket stored for the user.
func (r *TimetableRepository) ListAll(ctx context.Context, userID string) (models.UserTimetable, error) {
	timetable := models.UserTimetable{}
	prefix := fmt.Sprintf("%s%s:dates:", timetableKeyPrefix, userID)

	iter := r.client.Scan(ctx, 0, userPattern(userID), 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("redis get %s: %w", key, err)
		}
		bucket, err := decodeBucket(raw)
		if err != nil {
			return nil, err
		}
		timetable[strings.TrimPrefix(key, prefix)] = bucket
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", userPattern(userID), err)
	}

	return timetable, nil
}

// ReplaceEntry atomically removes any entry sharing the new entry's time key
// within the date bucket and appends the new entry. The read-modify-write runs
// under WATCH so concurrent writers retry instead of losing updates.
func (r *TimetableRepository) ReplaceEntry(ctx context.Context, userID string, entry models.TimetableEntry) (models.DateBucket, error) {
	key := dateKey(userID, entry.Date)
	var result models.DateBucket

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		bucket := models.DateBucket{Updates: []models.TimetableEntry{}}
		if err != nil && err != redis.Nil {
			return fmt.Errorf("redis get %s: %w", key, err)
		}
		if err == nil {
			if bucket, err = decodeBucket(raw); err != nil {
				return err
			}
		}

		kept := make([]models.TimetableEntry, 0, len(bucket.Updates)+1)
		for _, existing := range bucket.Updates {
			if existing.Time != entry.Time {
				kept = append(kept, existing)
			}
		}
		bucket.Updates = append(kept, entry)

		encoded, err := encodeBucket(bucket)
		if err != nil {
			return fmt.Errorf("encode bucket: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			return nil
		})
		if err != nil {
			return err
		}
		result = bucket
		return nil
	}

	var err error
	for attempt := 0; attempt < r.retries; attempt++ {
		err = r.client.Watch(ctx, txn, key)
		if err != redis.TxFailedErr {
			break
		}
	}
	if err != nil {
		return models.DateBucket{}, err
	}
	return result, nil
}
