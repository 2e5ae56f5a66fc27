package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"taskdesk/internal/platform/validation"
	"taskdesk/internal/transport/http/api"
)

var ErrBodyTooLarge = errors.New("request body too large")

func FailValidation(w http.ResponseWriter, requestID string, issues []validation.Issue) {
	api.FailWithDetails(
		w,
		http.StatusUnprocessableEntity,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}

// RejectInvalid writes a 422 when err carries validation issues.
func RejectInvalid(w http.ResponseWriter, requestID string, err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	FailValidation(w, requestID, verr.Issues)
	return true
}

// DecodeJSON reads a single JSON object from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// ReadPayload decodes the body and answers the client itself on failure.
func ReadPayload(w http.ResponseWriter, r *http.Request, requestID string, dst any) bool {
	err := DecodeJSON(r, dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrBodyTooLarge):
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
	default:
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "invalid_payload", "invalid request payload",
			map[string]any{"cause": err.Error()}, requestID)
	}
	return false
}

// ParseID reads an integer URL parameter; failures are reported on "id".
func ParseID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		v := validation.New()
		v.Add("id", fmt.Sprintf("must be an integer, got %q", raw))
		return 0, v.Err()
	}
	return id, nil
}
