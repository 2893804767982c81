package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get returns stored bytes", func(t *testing.T) {
		c := NewMemoryCache()
		if err := c.Set(ctx, "k", []byte(`{"a":1}`), time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		data, err := c.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(data) != `{"a":1}` {
			t.Errorf("Get() = %s, want {\"a\":1}", data)
		}
	})

	t.Run("missing key returns ErrCacheMiss", func(t *testing.T) {
		c := NewMemoryCache()
		_, err := c.Get(ctx, "absent")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("expired entry misses", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", []byte("v"), -time.Second)

		if _, err := c.Get(ctx, "k"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss for expired entry", err)
		}
		if ok, _ := c.Exists(ctx, "k"); ok {
			t.Error("Exists() = true for expired entry")
		}
	})

	t.Run("delete removes entry", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "k", []byte("v"), time.Minute)
		c.Delete(ctx, "k")

		if _, err := c.Get(ctx, "k"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss after delete", err)
		}
	})

	t.Run("stored bytes are isolated from caller buffer", func(t *testing.T) {
		c := NewMemoryCache()
		buf := []byte("original")
		c.Set(ctx, "k", buf, time.Minute)
		buf[0] = 'X'

		data, _ := c.Get(ctx, "k")
		if string(data) != "original" {
			t.Errorf("Get() = %s, want original (caller mutation leaked)", data)
		}
	})

	t.Run("size tracks entries", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "a", []byte("1"), time.Minute)
		c.Set(ctx, "b", []byte("2"), time.Minute)
		if c.Size() != 2 {
			t.Errorf("Size() = %d, want 2", c.Size())
		}
	})
}
