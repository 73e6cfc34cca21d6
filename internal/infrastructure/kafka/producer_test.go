package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
)

func TestMarshalSubscribedEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := MarshalSubscribedEvent(usecase.NewSubscribedEvent("sub-1", "a@b.com", at))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got["subscriber_id"] != "sub-1" || got["email"] != "a@b.com" {
		t.Fatalf("unexpected payload %s", data)
	}
	if got["occurred_at"] != "2025-03-01T12:00:00Z" {
		t.Fatalf("unexpected timestamp %v", got["occurred_at"])
	}
}

func TestMarshalNilEvent(t *testing.T) {
	if _, err := MarshalSubscribedEvent(nil); err == nil {
		t.Fatal("expected error for nil event")
	}
}
