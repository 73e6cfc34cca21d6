package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает товары каталога. Пустой каталог заполняется товарами по умолчанию, при недоступной базе отдаётся базовый каталог.
//	@Tags			products
//	@Produce		json
//	@Param			limit	query		int					false	"Максимальное число товаров"	minimum(0)
//	@Success		200		{object}	ProductsResponse	"Товары"
//	@Failure		422		{object}	ErrorResponse		"Некорректный limit"
//	@Router			/api/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		p.logger.Warnf("%d invalid limit %q: %s", http.StatusUnprocessableEntity, r.URL.Query().Get("limit"), err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.catalogUsecase.ListProducts(r.Context(), usecase.NewListProductsReq(limit))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductsResponse(res))
}
