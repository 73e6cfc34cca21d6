package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// DocumentStore — хранилище документов, сгруппированных в именованные коллекции.
// Ошибки транспорта адаптеры оборачивают в e.ErrStoreUnavailable.
type DocumentStore interface {
	// CreateDocument сохраняет документ и возвращает присвоенный хранилищем идентификатор.
	CreateDocument(ctx context.Context, collection string, doc domain.Document) (string, error)
	// GetDocuments возвращает документы коллекции. При limit == nil ограничения нет,
	// при *limit == 0 результат пуст.
	GetDocuments(ctx context.Context, collection string, filter domain.Filter, limit *int64) ([]domain.Document, error)
}

// StoreInspector даёт доступ к состоянию подключения хранилища.
type StoreInspector interface {
	Ping(ctx context.Context) error
	ListCollections(ctx context.Context) ([]string, error)
}
