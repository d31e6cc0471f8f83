package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingBaseURL возвращается на каждом сетевом вызове, если api.base_url не задан.
var ErrMissingBaseURL = errors.New("gateway: missing api base url")

const defaultErrorMessage = "Request failed"

// APIError — единственный тип ошибки, который видят потребители шлюза для не-2xx ответов.
type APIError struct {
	Status    int                 `json:"status"`
	Message   string              `json:"message"`
	Details   map[string][]string `json:"details,omitempty"`
	RequestID string              `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized сообщает, что ошибка — 401 от API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// newAPIError разбирает тело ошибки.
// Сообщение: error.message, затем message, затем title, затем сырой текст, затем "Request failed".
// Детали: error.details или errors, только если это объект.
func newAPIError(status int, rawText string, parsed any) *APIError {
	apiErr := &APIError{Status: status, Message: rawText}
	if apiErr.Message == "" {
		apiErr.Message = defaultErrorMessage
	}

	record, ok := parsed.(map[string]any)
	if !ok {
		return apiErr
	}

	// error может оказаться строкой: тогда у вложенного объекта полей нет
	var errObj map[string]any
	if nested := record["error"]; truthy(nested) {
		errObj, _ = nested.(map[string]any)
	} else {
		errObj = record
	}

	if msg := firstString(errObj["message"], record["message"], record["title"]); msg != "" {
		apiErr.Message = msg
	}

	details := errObj["details"]
	if !truthy(details) {
		details = record["errors"]
	}
	apiErr.Details = toDetails(details)

	return apiErr
}

func firstString(values ...any) string {
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func toDetails(v any) map[string][]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string][]string, len(m))
	for field, raw := range m {
		switch val := raw.(type) {
		case string:
			out[field] = []string{val}
		case []any:
			msgs := make([]string, 0, len(val))
			for _, item := range val {
				if s, ok := item.(string); ok {
					msgs = append(msgs, s)
				}
			}
			out[field] = msgs
		}
	}
	return out
}

// truthy повторяет правило "пустое значение не в счет" для распарсенного JSON.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		return true
	}
}
