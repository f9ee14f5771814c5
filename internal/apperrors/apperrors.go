package apperrors

import (
	"errors"
	"net/http"
)

// Базовые виды ошибок. Сервисы оборачивают их через fmt.Errorf("%w: ...", ...),
// а слой хендлеров переводит в HTTP-статус через StatusCode.
var (
	ErrValidation      = errors.New("некорректные данные запроса")
	ErrUnauthenticated = errors.New("требуется авторизация")
	ErrForbidden       = errors.New("доступ запрещён")
	ErrNotFound        = errors.New("ресурс не найден")
	ErrResetToken      = errors.New("токен сброса недействителен или истёк")
	ErrDelivery        = errors.New("не удалось отправить письмо")
	ErrInternal        = errors.New("внутренняя ошибка сервера")
)

func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrResetToken):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
