package gateway

import (
	"net/http"

	"github.com/DRSN-tech/go-storefront/pkg/e"
)

// APIError — интерпретируемый отказ сервера: есть статус и текст для пользователя.
// Текст показывается дословно. Через Unwrap ошибка сопоставляется с
// e.ErrAuthRejected (проблема токена/учётных данных) либо e.ErrValidation
// (сервер отклонил сам запрос), чтобы вызывающий код различал их errors.Is.
type APIError struct {
	Status  int
	Message string
}

func (a *APIError) Error() string {
	return a.Message
}

func (a *APIError) Unwrap() error {
	switch {
	case a.Status == http.StatusUnauthorized || a.Status == http.StatusForbidden:
		return e.ErrAuthRejected
	case a.Status >= 400 && a.Status < 500:
		return e.ErrValidation
	default:
		return e.ErrInternalServerError
	}
}
