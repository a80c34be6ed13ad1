package e

import (
	"errors"
	"strings"
)

// ErrorDetail — одно сообщение об ошибке из ответа удалённого слоя.
type ErrorDetail struct {
	Message string `json:"message"`
}

// FieldErrors — ошибки одного поля. Порядок полей в RemoteError сохраняется.
type FieldErrors struct {
	Field  string        `json:"field"`
	Errors []ErrorDetail `json:"errors"`
}

// RemoteError — ошибка удалённого слоя данных: ошибки уровня страницы,
// ошибки полей и общее сообщение. Любая часть может отсутствовать.
type RemoteError struct {
	PageErrors  []ErrorDetail `json:"pageErrors,omitempty"`
	FieldErrors []FieldErrors `json:"fieldErrors,omitempty"`
	Message     string        `json:"message,omitempty"`
	Cause       error         `json:"-"`
}

func NewRemoteError(message string, cause error) *RemoteError {
	return &RemoteError{Message: message, Cause: cause}
}

// WithPageError добавляет ошибку уровня страницы.
func (r *RemoteError) WithPageError(message string) *RemoteError {
	r.PageErrors = append(r.PageErrors, ErrorDetail{Message: message})
	return r
}

// WithFieldError добавляет ошибку поля, сохраняя порядок первого появления поля.
func (r *RemoteError) WithFieldError(field, message string) *RemoteError {
	for i := range r.FieldErrors {
		if r.FieldErrors[i].Field == field {
			r.FieldErrors[i].Errors = append(r.FieldErrors[i].Errors, ErrorDetail{Message: message})
			return r
		}
	}

	r.FieldErrors = append(r.FieldErrors, FieldErrors{
		Field:  field,
		Errors: []ErrorDetail{{Message: message}},
	})
	return r
}

// Messages возвращает сообщения в порядке: страница, поля, общее сообщение.
func (r *RemoteError) Messages() []string {
	var res []string
	for _, pe := range r.PageErrors {
		res = append(res, pe.Message)
	}

	for _, fe := range r.FieldErrors {
		for _, d := range fe.Errors {
			res = append(res, d.Message)
		}
	}

	if r.Message != "" {
		res = append(res, r.Message)
	}

	return res
}

func (r *RemoteError) Error() string {
	msg := strings.Join(r.Messages(), " - ")
	if msg == "" && r.Cause != nil {
		return r.Cause.Error()
	}

	return msg
}

func (r *RemoteError) Unwrap() error {
	return r.Cause
}

// ErrorMessage строит текст уведомления об ошибке.
// Для RemoteError части склеиваются через " - ". Текст прочих ошибок содержит внутренние
// подробности (op, место вызова, адреса), поэтому пользователь видит общее сообщение.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Error()
	}

	return ErrInternalServerError.Error()
}
