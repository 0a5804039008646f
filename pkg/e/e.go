package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Локальные ошибки клиента, сеть не задействуется
	ErrUnauthenticated = fmt.Errorf("login required")
	ErrDuplicateItem   = fmt.Errorf("item already in cart")

	// Ошибки обмена с сервером
	ErrAuthRejected       = fmt.Errorf("authentication rejected")
	ErrValidation         = fmt.Errorf("request rejected by server")
	ErrServiceUnreachable = fmt.Errorf("service unreachable")

	// 400 Bad Request
	ErrUsernameRequired    = fmt.Errorf("username is required")
	ErrPasswordRequired    = fmt.Errorf("password is required")
	ErrUsernameTooShort    = fmt.Errorf("username must be at least 6 characters")
	ErrPasswordTooShort    = fmt.Errorf("password must be at least 6 characters")
	ErrPasswordMismatch    = fmt.Errorf("passwords do not match")
	ErrUsernameTaken       = fmt.Errorf("Username is already taken")
	ErrUnknownUsername     = fmt.Errorf("Username is incorrect")
	ErrWrongPassword       = fmt.Errorf("Password is incorrect")
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrPriceMustBePositive = fmt.Errorf("price must be positive")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrQuantityNegative    = fmt.Errorf("quantity must not be negative")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrStatusBadRequest    = fmt.Errorf("bad request")

	// Изображения продуктов
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("Product doesn't exist")
	ErrNoProductsFound = fmt.Errorf("No products found")

	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
