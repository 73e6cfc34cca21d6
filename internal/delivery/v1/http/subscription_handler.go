package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

const maxSubscribeBodySize = 1 << 20

type SubscriptionHandler struct {
	subscriptionUsecase usecase.SubscriptionUC
	logger              logger.Logger
}

func NewSubscriptionHandler(subscriptionUsecase usecase.SubscriptionUC, logger logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase, logger: logger}
}

// subscribe
//
//	@Summary		Подписка на рассылку
//	@Description	Сохраняет email подписчика. Ошибка базы возвращается клиенту, а не маскируется.
//	@Tags			newsletter
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SubscribeRequest	true	"Email подписчика"
//	@Success		200		{object}	SubscribeResponse	"Подписка сохранена"
//	@Failure		400		{object}	ErrorResponse		"Ошибка хранилища"
//	@Failure		422		{object}	ErrorResponse		"Некорректный email"
//	@Router			/api/subscribe [post]
func (s *SubscriptionHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubscribeBodySize)

	var body SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warnf("%d %s: %s", http.StatusUnprocessableEntity, e.ErrInvalidBody.Error(), err.Error())
		WriteError(w, e.Wrap(whereami.WhereAmI(), e.ErrInvalidBody))
		return
	}

	res, err := s.subscriptionUsecase.Subscribe(r.Context(), usecase.NewSubscribeReq(body.Email))
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSubscribeResponse(res))
}
