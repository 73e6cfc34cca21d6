package memory

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/google/uuid"
)

// DocumentStore хранит коллекции в памяти процесса. Подходит для локального запуска и тестов.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string][]domain.Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{collections: make(map[string][]domain.Document)}
}

// CreateDocument сохраняет копию документа с новым uuid в поле _id.
func (s *DocumentStore) CreateDocument(_ context.Context, collection string, doc domain.Document) (string, error) {
	id := uuid.NewString()

	stored := doc.Clone()
	stored[domain.NativeIDField] = id

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], stored)
	s.mu.Unlock()

	return id, nil
}

// GetDocuments возвращает копии документов в порядке вставки. Фильтр сравнивает поля верхнего уровня на равенство.
func (s *DocumentStore) GetDocuments(_ context.Context, collection string, filter domain.Filter, limit *int64) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Document, 0)
	for _, doc := range s.collections[collection] {
		if limit != nil && int64(len(result)) >= *limit {
			break
		}
		if !matches(doc, filter) {
			continue
		}
		result = append(result, doc.Clone())
	}

	return result, nil
}

func (s *DocumentStore) Ping(context.Context) error {
	return nil
}

// ListCollections возвращает имена непустых коллекций в алфавитном порядке.
func (s *DocumentStore) ListCollections(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name, docs := range s.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// Count возвращает число документов в коллекции.
func (s *DocumentStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.collections[collection])
}

func matches(doc domain.Document, filter domain.Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}

	return true
}
