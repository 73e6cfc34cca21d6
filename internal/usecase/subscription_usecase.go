package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// SubscriptionUseCase записывает подписчиков рассылки.
// В отличие от каталога, отказ хранилища возвращается клиенту.
type SubscriptionUseCase struct {
	store    DocumentStore
	producer SubscriberEventProducer
	validate *validator.Validate
	logger   logger.Logger
	now      func() time.Time
}

// NewSubscriptionUC создаёт use case подписки. store может быть nil, если хранилище не инициализировано.
func NewSubscriptionUC(store DocumentStore, producer SubscriberEventProducer, logger logger.Logger) *SubscriptionUseCase {
	if producer == nil {
		producer = NopEventProducer{}
	}

	return &SubscriptionUseCase{
		store:    store,
		producer: producer,
		validate: newSubscriberValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

// dottedDomainTag требует точку в домене email: тег email пропускает адреса вида user@localhost.
const dottedDomainTag = "dotted_domain"

func newSubscriberValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(dottedDomainTag, hasDottedDomain); err != nil {
		panic(err)
	}

	return v
}

func hasDottedDomain(fl validator.FieldLevel) bool {
	email := fl.Field().String()

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}

	host := email[at+1:]
	dot := strings.Index(host, ".")
	return dot > 0 && !strings.HasSuffix(host, ".")
}

// Subscribe проверяет email и сохраняет подписчика. Повторные подписки не отсекаются.
func (s *SubscriptionUseCase) Subscribe(ctx context.Context, req *SubscribeReq) (*SubscribeRes, error) {
	const op = "SubscriptionUseCase.Subscribe"

	if err := s.validate.Struct(req); err != nil {
		return nil, e.Wrap(op, e.ErrInvalidEmail)
	}

	if s.store == nil {
		return nil, NewDependencyError(e.ErrStoreNotInitialized)
	}

	subscriber := domain.NewSubscriber(req.Email)
	id, err := s.store.CreateDocument(ctx, domain.SubscriberCollection, subscriber.ToDocument())
	if err != nil {
		s.logger.Warnf("Failed to store subscriber: %v", e.Wrap(op, err))
		return nil, NewDependencyError(err)
	}

	// подписка уже записана, ошибка публикации только логируется
	if err := s.producer.PublishSubscribed(ctx, NewSubscribedEvent(id, subscriber.Email, s.now().UTC())); err != nil {
		s.logger.Warnf("Failed to publish subscriber event (subscriber_id: %s): %v", id, e.Wrap(op, err))
	}

	return NewSubscribeRes(SubscribeStatusOK, id), nil
}
