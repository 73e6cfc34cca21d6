package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/memory"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/sony/gobreaker"
)

var errDown = errors.New("connection refused")

type flakyStore struct {
	*memory.DocumentStore
	fail  bool
	calls int
}

func (s *flakyStore) GetDocuments(ctx context.Context, collection string, filter domain.Filter, limit *int64) ([]domain.Document, error) {
	s.calls++
	if s.fail {
		return nil, errDown
	}
	return s.DocumentStore.GetDocuments(ctx, collection, filter, limit)
}

func testCfg() *cfg.BreakerCfg {
	return &cfg.BreakerCfg{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreakerPassesThrough(t *testing.T) {
	next := &flakyStore{DocumentStore: memory.NewDocumentStore()}
	s := NewDocumentStore(next, testCfg(), logger.NewDiscardLogger())
	ctx := context.Background()

	id, err := s.CreateDocument(ctx, "product", domain.Document{"name": "polo"})
	if err != nil || id == "" {
		t.Fatalf("unexpected create result %q, %v", id, err)
	}

	docs, err := s.GetDocuments(ctx, "product", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	next := &flakyStore{DocumentStore: memory.NewDocumentStore(), fail: true}
	s := NewDocumentStore(next, testCfg(), logger.NewDiscardLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.GetDocuments(ctx, "product", nil, nil)
		if !errors.Is(err, errDown) {
			t.Fatalf("call %d: expected underlying error, got %v", i, err)
		}
	}

	if s.State() != gobreaker.StateOpen {
		t.Fatalf("expected open state, got %s", s.State())
	}

	_, err := s.GetDocuments(ctx, "product", nil, nil)
	if !errors.Is(err, e.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if next.calls != 3 {
		t.Fatalf("open breaker must not reach the store, calls=%d", next.calls)
	}
}

func TestBreakerIgnoresCanceledContext(t *testing.T) {
	next := &flakyStore{DocumentStore: memory.NewDocumentStore()}
	s := NewDocumentStore(&canceledStore{next}, testCfg(), logger.NewDiscardLogger())

	for i := 0; i < 5; i++ {
		_, _ = s.GetDocuments(context.Background(), "product", nil, nil)
	}

	if s.State() != gobreaker.StateClosed {
		t.Fatalf("expected closed state, got %s", s.State())
	}
}

type canceledStore struct {
	*flakyStore
}

func (s *canceledStore) GetDocuments(context.Context, string, domain.Filter, *int64) ([]domain.Document, error) {
	return nil, context.Canceled
}

func TestDiagnosticsBypassBreaker(t *testing.T) {
	next := &flakyStore{DocumentStore: memory.NewDocumentStore(), fail: true}
	s := NewDocumentStore(next, testCfg(), logger.NewDiscardLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = s.GetDocuments(ctx, "product", nil, nil)
	}

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping must reach the store, got %v", err)
	}
}
