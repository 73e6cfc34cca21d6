package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	var depErr *usecase.DependencyError

	switch {
	case errors.Is(err, e.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, e.ErrInvalidEmail.Error()
	case errors.Is(err, e.ErrInvalidLimit):
		return http.StatusUnprocessableEntity, e.ErrInvalidLimit.Error()
	case errors.Is(err, e.ErrInvalidBody):
		return http.StatusUnprocessableEntity, e.ErrInvalidBody.Error()
	case errors.As(err, &depErr):
		return http.StatusBadRequest, depErr.Detail
	case errors.Is(err, e.ErrDependencyFailure):
		return http.StatusBadRequest, e.ErrDependencyFailure.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseLimit читает необязательный query-параметр limit.
// Без параметра возвращает nil, на нечисловое или отрицательное значение ErrInvalidLimit.
func parseLimit(r *http.Request) (*int64, error) {
	query := r.URL.Query()
	if !query.Has("limit") {
		return nil, nil
	}

	limit, err := strconv.ParseInt(query.Get("limit"), 10, 64)
	if err != nil || limit < 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidLimit)
	}

	return &limit, nil
}
