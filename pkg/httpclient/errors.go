package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/bookcourier/bookcourier/pkg/errors"
)

// apiErrorBody mirrors the error envelope returned by the BookCourier API.
// Every endpoint responds with {"success": bool, "message": string} on
// failure; some older endpoints use "error" instead of "message".
type apiErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ErrMsg  string `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError carrying the server's human-readable message when one
// is present, or a generic message with the status code otherwise.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("server returned status %d (failed to read body: %w)", resp.StatusCode, err)
	}

	var body apiErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil {
		msg := body.Message
		if msg == "" {
			msg = body.ErrMsg
		}
		if msg != "" {
			return mapStatusError(resp.StatusCode, msg)
		}
	}

	// Fallback: unstructured or empty error body.
	return mapStatusError(resp.StatusCode, fmt.Sprintf("request failed with status %d", resp.StatusCode))
}

// mapStatusError translates an HTTP status code and message into an AppError
// that preserves the error semantics for errors.Is checks upstream.
func mapStatusError(status int, message string) error {
	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: message,
			Status:  status,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(message)
	case status >= 500:
		return &apperrors.AppError{
			Code:    "SERVER_ERROR",
			Message: message,
			Status:  status,
			Err:     apperrors.ErrInternal,
		}
	default:
		return &apperrors.AppError{
			Code:    "REQUEST_FAILED",
			Message: message,
			Status:  status,
		}
	}
}
