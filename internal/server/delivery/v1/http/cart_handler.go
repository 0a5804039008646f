package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// getCart отдаёт корзину пользователя из токена в порядке добавления строк.
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromCtx(r.Context())

	entries, err := c.cartUsecase.GetCart(r.Context(), userID)
	if err != nil {
		c.logger.Warnf("get cart failed, user=%s: %s", userID, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrCartEntryJSON(entries))
}

// postCart устанавливает количество одного товара и отвечает полной корзиной.
// qty = 0 удаляет строку.
func (c *CartHandler) postCart(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromCtx(r.Context())

	var body CartEntryJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.logger.Warnf("bad cart body, user=%s: %s", userID, err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if body.ProductID == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	entries, err := c.cartUsecase.UpsertEntry(r.Context(), usecase.NewUpsertCartReq(userID, body.ProductID, body.Quantity))
	if err != nil {
		c.logger.Warnf("cart upsert failed, user=%s product=%s: %s", userID, body.ProductID, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrCartEntryJSON(entries))
}
