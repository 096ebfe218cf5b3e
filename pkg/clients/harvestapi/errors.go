package harvestapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNetwork means the request never completed.
	ErrNetwork = errors.New("network failure")
	// ErrValidation means the backend rejected the payload.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means the resource does not exist or belongs to someone else.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the session token is missing or no longer valid.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the user lacks the privilege for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrServer means the backend failed to handle a valid request.
	ErrServer = errors.New("server error")
)

// FieldError is one entry of a FastAPI validation error list.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Field returns the name of the offending field, the last element of Loc.
func (f FieldError) Field() string {
	if len(f.Loc) == 0 {
		return ""
	}
	return fmt.Sprint(f.Loc[len(f.Loc)-1])
}

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Kind       error
	Detail     string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("harvest api: status %d: %v", e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("harvest api: status %d: %v: %s", e.StatusCode, e.Kind, e.Detail)
}

// Unwrap exposes the taxonomy sentinel to errors.Is.
func (e *APIError) Unwrap() error {
	return e.Kind
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Kind: kindFor(status)}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Detail) == 0 {
		return apiErr
	}

	raw := bytes.TrimSpace(parsed.Detail)
	switch {
	case len(raw) > 0 && raw[0] == '"':
		_ = json.Unmarshal(raw, &apiErr.Detail)
	case len(raw) > 0 && raw[0] == '[':
		if err := json.Unmarshal(raw, &apiErr.Fields); err == nil {
			msgs := make([]string, 0, len(apiErr.Fields))
			for _, f := range apiErr.Fields {
				if f.Msg != "" {
					msgs = append(msgs, f.Msg)
				}
			}
			apiErr.Detail = strings.Join(msgs, ", ")
		}
	}

	return apiErr
}

func kindFor(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrValidation
	}
}

// Message renders err for a banner: the backend's detail when it sent one,
// fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
