package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotYetValid     = fmt.Errorf("токен ещё не активен")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")
	ErrSessionNotFound      = fmt.Errorf("сессия не найдена или завершена")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("требуется авторизация")
	ErrForbidden          = fmt.Errorf("доступ запрещён")
	ErrAccountBlocked     = fmt.Errorf("Ваш аккаунт заблокирован. Обратитесь к администратору.")
	ErrTooManyAttempts    = fmt.Errorf("слишком много неудачных попыток входа, попробуйте позже")
	ErrEmailTaken         = fmt.Errorf("пользователь с таким email уже зарегистрирован")

	ErrCannotChangeOwnRole = fmt.Errorf("нельзя изменить собственную роль")

	// Контекст
	ErrSessionNotFoundInContext = fmt.Errorf("сессия не найдена в контексте запроса")

	// Заявки и склад
	ErrRequestAlreadyResolved = fmt.Errorf("заявка уже обработана")
	ErrInsufficientStock      = fmt.Errorf("недостаточно исправного оборудования на складе")
	ErrInvalidRequestVariant  = fmt.Errorf("заявка не содержит обязательных полей для своего типа")
	ErrInvalidStatus          = fmt.Errorf("недопустимый целевой статус заявки")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError несёт код ответа и сообщение для пользователя; Err хранит техническую причину для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// IsInvalidInput сообщает, является ли ошибка ошибкой пользовательского ввода.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
