package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const testRedisAddr = "localhost:6379"

func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "test:" + t.Name() + ":"
	t.Cleanup(func() {
		var cursor uint64
		for {
			keys, next, err := client.Scan(ctx, cursor, prefix+"*", 100).Result()
			if err != nil {
				break
			}
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
		client.Close()
	})

	return New(client, prefix, time.Minute)
}

type testEntry struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestCache_SetGetDelete(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "entry", testEntry{ID: "a", Count: 3}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got testEntry
	found, err := c.Get(ctx, "entry", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() reported miss after Set()")
	}
	if got.ID != "a" || got.Count != 3 {
		t.Errorf("Get() = %+v, want {a 3}", got)
	}

	if err := c.Delete(ctx, "entry"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	found, err = c.Get(ctx, "entry", &got)
	if err != nil {
		t.Fatalf("Get() after delete error = %v", err)
	}
	if found {
		t.Error("Get() reported hit after Delete()")
	}
}

func TestCache_Stats(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	var dest testEntry
	c.Get(ctx, "absent", &dest)
	c.Set(ctx, "present", testEntry{ID: "b"})
	c.Get(ctx, "present", &dest)

	stats := c.GetStats()
	if stats.Misses != 1 {
		t.Errorf("stats.Misses = %d, want 1", stats.Misses)
	}
	if stats.Hits != 1 {
		t.Errorf("stats.Hits = %d, want 1", stats.Hits)
	}
	if stats.Sets != 1 {
		t.Errorf("stats.Sets = %d, want 1", stats.Sets)
	}
	if stats.HitRate != 50 {
		t.Errorf("stats.HitRate = %v, want 50", stats.HitRate)
	}
}
