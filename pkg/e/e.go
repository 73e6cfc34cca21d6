package e

import (
	"errors"
	"fmt"
)

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = errors.New("incorrect environment variable")
	ErrUnknownStoreDriver   = errors.New("unknown store driver")

	// Ошибки хранилища документов
	ErrStoreUnavailable    = errors.New("document store unavailable")
	ErrStoreNotInitialized = errors.New("document store not initialized")

	// 400 / 422
	ErrInvalidEmail      = errors.New("value is not a valid email address")
	ErrInvalidLimit      = errors.New("limit must be a non-negative integer")
	ErrInvalidBody       = errors.New("request body must be a JSON object")
	ErrDependencyFailure = errors.New("dependency failure")

	// 500
	ErrInternalServerError = errors.New("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// StoreError — отказ транспорта хранилища. Where (место вызова) попадает только в логи,
// клиенту показывается текст драйвера через Describe.
type StoreError struct {
	Where string
	Err   error
}

// Store оборачивает ошибку драйвера в StoreError с местом вызова where.
func Store(where string, err error) error {
	if err == nil {
		return nil
	}

	return &StoreError{Where: where, Err: err}
}

func (s *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %s", s.Where, ErrStoreUnavailable, s.Err)
}

func (s *StoreError) Unwrap() []error {
	return []error{ErrStoreUnavailable, s.Err}
}

// Describe возвращает описание причины без внутренних мест вызова.
// Для ошибок хранилища это текст драйвера, для остальных err.Error().
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Err.Error()
	}

	return err.Error()
}

// Truncate обрезает строку до max рун.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
