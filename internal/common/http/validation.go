package http

import (
	"errors"
	"io"
	"net/http"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
)

// DecodeBody reads a JSON body into v. Malformed, empty and oversized bodies
// are reported as INVALID_JSON (400).
func DecodeBody(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return commonerrors.ErrInvalidJSON.WithMessage("request body too large")
		case errors.Is(err, io.EOF):
			return commonerrors.ErrInvalidJSON.WithMessage("request body is required")
		default:
			return commonerrors.ErrInvalidJSON.WithCause(err)
		}
	}
	return nil
}
