package http

import (
	"errors"
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts отдаёт весь каталог. Пустой каталог — это пустой массив, не ошибка.
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.catalogUsecase.ListProducts(r.Context())
	if err != nil {
		p.logger.Warnf("list products failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductJSON(products))
}

// searchProducts отдаёт товары по подстроке запроса.
// Отсутствие совпадений — это 404 с текстом "No products found": клиент
// трактует такой ответ как пустой результат, а не как сбой.
func (p *ProductHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("value")

	products, err := p.catalogUsecase.SearchProducts(r.Context(), query)
	if err != nil {
		p.logger.Warnf("search %q failed: %s", query, err.Error())
		WriteError(w, err)
		return
	}

	if len(products) == 0 {
		WriteError(w, e.ErrNoProductsFound)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductJSON(products))
}

// registerNewProduct создаёт новый товар в каталоге с изображениями.
func (p *ProductHandler) registerNewProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	prMeta, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		// Товар без изображений допустим
		if !errors.Is(err, e.ErrNoImages) {
			p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
			WriteError(w, err)
			return
		}
	}

	product, err := p.catalogUsecase.RegisterNewProduct(r.Context(),
		usecase.NewAddNewProductReq(prMeta.Name, prMeta.CategoryName, prMeta.Cost, prMeta.Rating, images))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductJSON(*product))
}
