package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

const (
	rootMessage  = "Rugby Polos Backend Running"
	helloMessage = "Hello from the backend API!"
)

type SystemHandler struct {
	diagnosticsUsecase usecase.DiagnosticsUC
	logger             logger.Logger
}

func NewSystemHandler(diagnosticsUsecase usecase.DiagnosticsUC, logger logger.Logger) *SystemHandler {
	return &SystemHandler{diagnosticsUsecase: diagnosticsUsecase, logger: logger}
}

// root
//
//	@Summary	Проверка работы бэкенда
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	MessageResponse
//	@Router		/ [get]
func (h *SystemHandler) root(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, &MessageResponse{Message: rootMessage})
}

// hello
//
//	@Summary	Приветствие API
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	MessageResponse
//	@Router		/api/hello [get]
func (h *SystemHandler) hello(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, &MessageResponse{Message: helloMessage})
}

// diagnose
//
//	@Summary		Диагностика хранилища
//	@Description	Состояние подключения, список коллекций и наличие переменных окружения. Всегда отвечает 200.
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	DiagnosticsResponse
//	@Router			/test [get]
func (h *SystemHandler) diagnose(w http.ResponseWriter, r *http.Request) {
	report := h.diagnosticsUsecase.Diagnose(r.Context())
	WriteSuccess(w, http.StatusOK, toDiagnosticsResponse(report))
}
