package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// CatalogCache — кэш готовых ответов каталога по значению limit.
type CatalogCache interface {
	Get(ctx context.Context, limit *int64) ([]domain.Document, bool, error)
	Set(ctx context.Context, limit *int64, items []domain.Document) error
	Invalidate(ctx context.Context) error
}

// SubscriberEventProducer публикует события о новых подписчиках.
type SubscriberEventProducer interface {
	PublishSubscribed(ctx context.Context, event *SubscribedEvent) error
}

// NopCatalogCache используется, когда кэш не сконфигурирован.
type NopCatalogCache struct{}

func (NopCatalogCache) Get(context.Context, *int64) ([]domain.Document, bool, error) {
	return nil, false, nil
}

func (NopCatalogCache) Set(context.Context, *int64, []domain.Document) error { return nil }

func (NopCatalogCache) Invalidate(context.Context) error { return nil }

// NopEventProducer используется, когда брокер не сконфигурирован.
type NopEventProducer struct{}

func (NopEventProducer) PublishSubscribed(context.Context, *SubscribedEvent) error { return nil }
