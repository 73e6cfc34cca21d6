package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/memory"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
)

var errConnRefused = e.Wrap("dial tcp 127.0.0.1:27017: connect: connection refused", e.ErrStoreUnavailable)

// downStore имитирует недоступное хранилище.
type downStore struct {
	mu     sync.Mutex
	reads  int
	writes int
	err    error
}

func newDownStore(err error) *downStore {
	if err == nil {
		err = errConnRefused
	}
	return &downStore{err: err}
}

func (s *downStore) CreateDocument(context.Context, string, domain.Document) (string, error) {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return "", s.err
}

func (s *downStore) GetDocuments(context.Context, string, domain.Filter, *int64) ([]domain.Document, error) {
	s.mu.Lock()
	s.reads++
	s.mu.Unlock()
	return nil, s.err
}

func (s *downStore) Ping(context.Context) error { return s.err }

func (s *downStore) ListCollections(context.Context) ([]string, error) { return nil, s.err }

// recordingStore оборачивает in-memory хранилище и считает вызовы.
type recordingStore struct {
	*memory.DocumentStore
	mu         sync.Mutex
	limits     []*int64
	creates    int
	failCreate func(n int) bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{DocumentStore: memory.NewDocumentStore()}
}

func (s *recordingStore) CreateDocument(ctx context.Context, collection string, doc domain.Document) (string, error) {
	s.mu.Lock()
	s.creates++
	n := s.creates
	fail := s.failCreate
	s.mu.Unlock()

	if fail != nil && fail(n) {
		return "", errors.New("write conflict")
	}
	return s.DocumentStore.CreateDocument(ctx, collection, doc)
}

func (s *recordingStore) GetDocuments(ctx context.Context, collection string, filter domain.Filter, limit *int64) ([]domain.Document, error) {
	s.mu.Lock()
	s.limits = append(s.limits, limit)
	s.mu.Unlock()
	return s.DocumentStore.GetDocuments(ctx, collection, filter, limit)
}

// rawStore отдаёт заранее заданные документы.
type rawStore struct {
	docs []domain.Document
}

func (s *rawStore) CreateDocument(context.Context, string, domain.Document) (string, error) {
	return "", errors.New("read only")
}

func (s *rawStore) GetDocuments(context.Context, string, domain.Filter, *int64) ([]domain.Document, error) {
	out := make([]domain.Document, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Clone()
	}
	return out, nil
}

type hexID string

func (h hexID) Hex() string    { return string(h) }
func (h hexID) String() string { return "ObjectID(\"" + string(h) + "\")" }

// mapCache хранит кэш каталога в памяти.
type mapCache struct {
	mu          sync.Mutex
	items       map[string][]domain.Document
	invalidated int
	getErr      error
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string][]domain.Document)}
}

func cacheKey(limit *int64) string {
	if limit == nil {
		return "all"
	}
	return strconv.FormatInt(*limit, 10)
}

func (c *mapCache) Get(_ context.Context, limit *int64) ([]domain.Document, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	items, ok := c.items[cacheKey(limit)]
	return items, ok, nil
}

func (c *mapCache) Set(_ context.Context, limit *int64, items []domain.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey(limit)] = items
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.items = make(map[string][]domain.Document)
	return nil
}

// captureProducer запоминает опубликованные события.
type captureProducer struct {
	mu     sync.Mutex
	events []*SubscribedEvent
	err    error
}

func (p *captureProducer) PublishSubscribed(_ context.Context, event *SubscribedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

// panicInspector паникует при обращении.
type panicInspector struct{}

func (panicInspector) Ping(context.Context) error { panic("nil client") }

func (panicInspector) ListCollections(context.Context) ([]string, error) { panic("nil client") }

// listFailInspector отвечает на ping, но не может перечислить коллекции.
type listFailInspector struct{ err error }

func (listFailInspector) Ping(context.Context) error { return nil }

func (i listFailInspector) ListCollections(context.Context) ([]string, error) { return nil, i.err }

type staticInspector struct{ names []string }

func (staticInspector) Ping(context.Context) error { return nil }

func (i staticInspector) ListCollections(context.Context) ([]string, error) { return i.names, nil }

// adapterError повторяет форму ошибок mongodb/pgdb: длинное место вызова плюс текст драйвера.
func adapterError(driverMsg string) error {
	const where = "File: document_store.go  Function: github.com/DRSN-tech/storefront-backend/internal/repository/mongodb.(*DocumentStore).CreateDocument Line: 30"
	return e.Store(where, errors.New(driverMsg))
}
