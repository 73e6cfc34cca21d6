package closer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCloseRunsInReverseOrder(t *testing.T) {
	c := NewCloser(time.Second)

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) Func {
		return func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	c.Add("store", record("store"))
	c.Add("redis", record("redis"))
	c.Add("http", record("http"))

	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := strings.Join(order, ",")
	if got != "http,redis,store" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	c := NewCloser(time.Second)
	c.Add("kafka", func(context.Context) error { return errors.New("broker gone") })
	c.Add("http", func(context.Context) error { return nil })

	err := c.Close(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "kafka: broker gone") {
		t.Fatalf("expected resource name in error, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewCloser(time.Second)
	calls := 0
	c.Add("store", func(context.Context) error { calls++; return nil })

	_ = c.Close(context.Background())
	_ = c.Close(context.Background())

	if calls != 1 {
		t.Fatalf("expected a single close, got %d", calls)
	}
}

func TestCloseForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)

	forced := make(chan struct{}, 1)
	c.Add("store", func(ctx context.Context) error {
		forced <- struct{}{}
		return nil
	})
	c.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	if err == nil || !strings.Contains(err.Error(), "shutdown interrupted") {
		t.Fatalf("expected interrupted shutdown, got %v", err)
	}

	select {
	case <-forced:
	case <-time.After(time.Second):
		t.Fatalf("remaining resource was not closed")
	}
}
