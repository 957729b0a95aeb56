package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BillSequence issues gate-pass and transaction numbers formatted as
// CF + YYYYMMDD + per-day counter. Redis INCR makes the counter collision-free
// under concurrent writers; the key expires two days after first use so stale
// counters do not accumulate.
type BillSequence struct {
	rdb *redis.Client
}

func NewBillSequence(rdb *redis.Client) *BillSequence {
	return &BillSequence{rdb: rdb}
}

// Next returns the next number for today, e.g. CF20250901007.
func (s *BillSequence) Next(ctx context.Context) (string, error) {
	day := time.Now().Format("20060102")
	key := "billseq:" + day

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("bill sequence: %w", err)
	}
	if n == 1 {
		s.rdb.Expire(ctx, key, 48*time.Hour)
	}
	return fmt.Sprintf("CF%s%03d", day, n), nil
}
