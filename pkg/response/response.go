package response

import "github.com/memberhub/memberhub/pkg/apperr"

// New generic response spec
type APIResponseCode int

const (
	APIResponseCodeOK           APIResponseCode = 0
	APIResponseCodeBadRequest   APIResponseCode = 40000
	APIResponseCodeUnauthorized APIResponseCode = 40100
	APIResponseCodeForbidden    APIResponseCode = 40300
	APIResponseCodeNotFound     APIResponseCode = 40400
	APIResponseCodeConflict     APIResponseCode = 40900
	APIResponseCodeValidation   APIResponseCode = 42200
	APIResponseCodeError        APIResponseCode = 50000
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:           "ok",
	APIResponseCodeBadRequest:   "bad request",
	APIResponseCodeUnauthorized: "unauthorized",
	APIResponseCodeForbidden:    "forbidden",
	APIResponseCodeNotFound:     "not found",
	APIResponseCodeConflict:     "conflict",
	APIResponseCodeValidation:   "validation failed",
	APIResponseCodeError:        "internal error",
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// ErrorT returns an error response with message and optional data.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}

// ErrorMsg returns an error response whose message carries the caller-facing
// cause ("affiliate not found") instead of the generic code text, so clients
// can render it directly.
func ErrorMsg[T any](code APIResponseCode, msg string) *APIResponse[T] {
	if msg == "" {
		msg = codeToMsg[code]
	}
	return &APIResponse[T]{Code: code, Message: msg}
}

// CodeForError maps a rule-layer error to its response code, defaulting to the
// internal error code for store failures and other unclassified errors.
func CodeForError(err error) APIResponseCode {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return APIResponseCodeNotFound
	case apperr.KindConflict:
		return APIResponseCodeConflict
	case apperr.KindValidation:
		return APIResponseCodeValidation
	case apperr.KindUnauthorized:
		return APIResponseCodeUnauthorized
	case apperr.KindForbidden:
		return APIResponseCodeForbidden
	default:
		return APIResponseCodeError
	}
}
