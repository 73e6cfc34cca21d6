package usecase

import (
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
)

// CATALOG

// ListProductsReq — запрос списка товаров. Limit == nil означает «без ограничения».
type ListProductsReq struct {
	Limit *int64
}

// ListProductsRes — ответ каталога. Каждый элемент несёт ровно одно поле id.
type ListProductsRes struct {
	Items []domain.Document
}

// SeedReport — результат заполнения пустого каталога товарами по умолчанию.
type SeedReport struct {
	Inserted int
	Failed   []error
}

// SUBSCRIPTION

const SubscribeStatusOK = "ok"

type SubscribeReq struct {
	Email string `validate:"required,email,dotted_domain"`
}

type SubscribeRes struct {
	Status string
	ID     string
}

// SubscribedEvent публикуется после успешной записи подписчика.
type SubscribedEvent struct {
	SubscriberID string    `json:"subscriber_id"`
	Email        string    `json:"email"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// DependencyError — отказ хранилища при записи. Detail содержит текст причины без мест вызова,
// обрезанный до dependencyDetailLimit, и безопасен для показа клиенту.
type DependencyError struct {
	Detail string
	cause  error
}

// dependencyDetailLimit: максимальная длина описания отказа, отдаваемого клиенту.
const dependencyDetailLimit = 200

func NewDependencyError(cause error) *DependencyError {
	return &DependencyError{
		Detail: e.Truncate(e.Describe(cause), dependencyDetailLimit),
		cause:  cause,
	}
}

func (d *DependencyError) Error() string {
	return d.Detail
}

func (d *DependencyError) Unwrap() []error {
	return []error{e.ErrDependencyFailure, d.cause}
}

// DIAGNOSTICS

const (
	BackendRunning = "✅ Running"

	DatabaseWorking        = "✅ Connected & Working"
	DatabaseErrorPrefix    = "⚠️  Connected but Error: "
	DatabaseNotInitialized = "⚠️  Available but not initialized"

	ConnectionConnected    = "Connected"
	ConnectionNotConnected = "Not Connected"

	EnvSet    = "✅ Set"
	EnvNotSet = "❌ Not Set"
)

// DiagnosticsSettings — сведения о конфигурации, которые попадают в отчёт.
type DiagnosticsSettings struct {
	StoreDriver string
	URLSet      bool
	NameSet     bool
}

// DiagnosticsReport — отчёт о состоянии бэкенда и хранилища.
type DiagnosticsReport struct {
	Backend          string
	Database         string
	DatabaseURL      string
	DatabaseName     string
	ConnectionStatus string
	Collections      []string
	StoreDriver      string
}

// MAPPERS

func NewListProductsReq(limit *int64) *ListProductsReq {
	return &ListProductsReq{Limit: limit}
}

func NewListProductsRes(items []domain.Document) *ListProductsRes {
	return &ListProductsRes{Items: items}
}

func NewSubscribeReq(email string) *SubscribeReq {
	return &SubscribeReq{Email: email}
}

func NewSubscribeRes(status, id string) *SubscribeRes {
	return &SubscribeRes{Status: status, ID: id}
}

func NewSubscribedEvent(id, email string, at time.Time) *SubscribedEvent {
	return &SubscribedEvent{SubscriberID: id, Email: email, OccurredAt: at}
}
