package breaker

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/sony/gobreaker"
)

// Store — хранилище, которое одновременно отдаёт данные и умеет себя диагностировать.
type Store interface {
	usecase.DocumentStore
	usecase.StoreInspector
}

// DocumentStore оборачивает хранилище автоматическим выключателем: после серии ошибок
// запросы к базе прекращаются на cfg.Timeout и сразу завершаются ErrStoreUnavailable.
type DocumentStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker
}

func NewDocumentStore(next Store, cfg *cfg.BreakerCfg, log logger.Logger) *DocumentStore {
	st := gobreaker.Settings{
		Name:        "DocumentStore",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		// отмена запроса клиентом не говорит о состоянии базы
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("circuit breaker[%s] state changed from %s to %s", name, from, to)
		},
	}

	return &DocumentStore{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, doc domain.Document) (string, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.CreateDocument(ctx, collection, doc)
	})
	if err != nil {
		return "", breakerError("breaker.CreateDocument", err)
	}

	return res.(string), nil
}

func (s *DocumentStore) GetDocuments(ctx context.Context, collection string, filter domain.Filter, limit *int64) ([]domain.Document, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.GetDocuments(ctx, collection, filter, limit)
	})
	if err != nil {
		return nil, breakerError("breaker.GetDocuments", err)
	}

	return res.([]domain.Document), nil
}

// Ping и ListCollections идут в обход выключателя: диагностика должна видеть реальное состояние базы.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *DocumentStore) ListCollections(ctx context.Context) ([]string, error) {
	return s.next.ListCollections(ctx)
}

// State возвращает текущее состояние выключателя.
func (s *DocumentStore) State() gobreaker.State {
	return s.cb.State()
}

func breakerError(op string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return e.Store(op, err)
	}

	return err
}
