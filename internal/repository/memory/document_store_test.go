package memory

import (
	"context"
	"testing"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	id, err := s.CreateDocument(ctx, "subscriber", domain.Document{"email": "a@b.com"})
	if err != nil || id == "" {
		t.Fatalf("unexpected create result %q, %v", id, err)
	}

	docs, err := s.GetDocuments(ctx, "subscriber", domain.Filter{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0]["_id"] != id || docs[0]["email"] != "a@b.com" {
		t.Fatalf("unexpected docs %v", docs)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	_, _ = s.CreateDocument(ctx, "product", domain.Document{"title": "a"})

	docs, _ := s.GetDocuments(ctx, "product", nil, nil)
	docs[0]["title"] = "mutated"
	delete(docs[0], "_id")

	again, _ := s.GetDocuments(ctx, "product", nil, nil)
	if again[0]["title"] != "a" || again[0]["_id"] == nil {
		t.Fatalf("store state leaked through returned document: %v", again[0])
	}
}

func TestLimitAndFilter(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	for _, cat := range []string{"retro", "vintage", "retro", "custom"} {
		_, _ = s.CreateDocument(ctx, "product", domain.Document{"category": cat})
	}

	two := int64(2)
	docs, _ := s.GetDocuments(ctx, "product", domain.Filter{}, &two)
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}

	zero := int64(0)
	docs, _ = s.GetDocuments(ctx, "product", domain.Filter{}, &zero)
	if len(docs) != 0 {
		t.Fatalf("expected no docs for zero limit, got %d", len(docs))
	}

	docs, _ = s.GetDocuments(ctx, "product", domain.Filter{"category": "retro"}, nil)
	if len(docs) != 2 {
		t.Fatalf("expected 2 retro docs, got %d", len(docs))
	}
}

func TestListCollections(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	_, _ = s.CreateDocument(ctx, "subscriber", domain.Document{})
	_, _ = s.CreateDocument(ctx, "product", domain.Document{})

	names, err := s.ListCollections(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "product" || names[1] != "subscriber" {
		t.Fatalf("unexpected names %v", names)
	}
}
