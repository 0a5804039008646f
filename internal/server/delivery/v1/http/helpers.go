package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// ErrorResponse — тело ошибки, единое для всех обработчиков.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProductJSON — товар в том виде, в котором его видит клиент.
// Стоимость отдаётся в рублях (число с двумя знаками), в БД хранится в копейках.
type ProductJSON struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"`
	ImageURL string  `json:"image"`
}

// CartEntryJSON — строка корзины на проводе.
type CartEntryJSON struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"qty"`
}

type ProductMetadata struct {
	Name         string
	CategoryName string
	Cost         int64
	Rating       int
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Message: message,
	}
}

// ToHTTPResponse переводит доменную ошибку в HTTP-статус и текст для клиента.
// Текст отдаётся дословно: клиент показывает его пользователю как есть.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest),
		errors.Is(err, e.ErrExpectedMultipart),
		errors.Is(err, e.ErrMissingFields),
		errors.Is(err, e.ErrInvalidPrice),
		errors.Is(err, e.ErrPricePrecision),
		errors.Is(err, e.ErrTooManyImages),
		errors.Is(err, e.ErrNoImages),
		errors.Is(err, e.ErrFileTooLarge),
		errors.Is(err, e.ErrUnsupportedMediaType),
		errors.Is(err, e.ErrProductNameRequired),
		errors.Is(err, e.ErrPriceMustBePositive),
		errors.Is(err, e.ErrQuantityNegative),
		errors.Is(err, e.ErrUsernameRequired),
		errors.Is(err, e.ErrPasswordRequired),
		errors.Is(err, e.ErrUsernameTooShort),
		errors.Is(err, e.ErrPasswordTooShort),
		errors.Is(err, e.ErrUsernameTaken),
		errors.Is(err, e.ErrUnknownUsername),
		errors.Is(err, e.ErrWrongPassword):
		return http.StatusBadRequest, unwrapMessage(err)
	case errors.Is(err, e.ErrProductNotFound),
		errors.Is(err, e.ErrNoProductsFound):
		return http.StatusNotFound, unwrapMessage(err)
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// unwrapMessage достаёт текст самой внутренней ошибки, без технических префиксов.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// toProductJSON переводит DTO каталога в формат ответа.
func toProductJSON(info usecase.ProductInfo) ProductJSON {
	return ProductJSON{
		ID:       info.ID,
		Name:     info.Name,
		Category: info.Category,
		Cost:     centsToUnits(info.Cost),
		Rating:   info.Rating,
		ImageURL: info.ImageURL,
	}
}

func toArrProductJSON(infos []usecase.ProductInfo) []ProductJSON {
	result := make([]ProductJSON, len(infos))
	for i, info := range infos {
		result[i] = toProductJSON(info)
	}

	return result
}

func toArrCartEntryJSON(entries []usecase.CartEntryInfo) []CartEntryJSON {
	result := make([]CartEntryJSON, len(entries))
	for i, entry := range entries {
		result[i] = CartEntryJSON{ProductID: entry.ProductID, Quantity: entry.Quantity}
	}

	return result
}

// centsToUnits переводит копейки в рубли без потери двух знаков после запятой.
func centsToUnits(cents int64) float64 {
	units, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return units
}

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit (e.g. 10^9 rubles)
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("price is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	// Reject negative
	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	// Enforce max value (1 billion rubles)
	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	// Check decimal places
	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision // "price must have at most 2 decimal places"
	}

	// Convert to cents: multiply by 100 and round
	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	return cents.IntPart(), nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseProductForm(r *http.Request) (*ProductMetadata, error) {
	name := r.FormValue("name")
	category := r.FormValue("category")
	costStr := r.FormValue("cost")
	ratingStr := r.FormValue("rating")

	if name == "" || category == "" || costStr == "" {
		return nil, e.Wrap(fmt.Sprintf("name: %s, category: %s, cost: %s", name, category, costStr), e.ErrMissingFields)
	}

	costCents, err := parsePriceToCents(costStr)
	if err != nil {
		return nil, err
	}

	rating := 0
	if ratingStr != "" {
		rating, err = strconv.Atoi(ratingStr)
		if err != nil || rating < 0 || rating > 5 {
			return nil, e.ErrStatusBadRequest
		}
	}

	return &ProductMetadata{
		Name:         name,
		CategoryName: category,
		Cost:         costCents,
		Rating:       rating,
	}, nil
}

func parseImages(files []*multipart.FileHeader) ([]usecase.ProductImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
