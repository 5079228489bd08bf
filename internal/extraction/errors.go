package extraction

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

var (
	// ErrMissingCredential indicates no Gemini API key is configured. It is
	// raised before any network attempt.
	ErrMissingCredential = errors.New("gemini api key is not configured")

	// ErrUnsupportedType indicates a file whose MIME type the request
	// builder cannot dispatch. Raised locally, per file.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrInvalidResponse indicates the endpoint answered but its text could
	// not be parsed into extracted fields.
	ErrInvalidResponse = errors.New("invalid extraction response")

	// ErrNoFiles indicates a batch extraction was requested with an empty
	// file set.
	ErrNoFiles = errors.New("no receipt files selected")
)

// Reason buckets an extraction failure for user display.
type Reason string

const (
	ReasonMissingCredential Reason = "missing_credential"
	ReasonPermissionDenied  Reason = "permission_denied"
	ReasonQuotaExceeded     Reason = "quota_exceeded"
	ReasonUnsupportedType   Reason = "unsupported_type"
	ReasonInvalidResponse   Reason = "invalid_response"
	ReasonUnknown           Reason = "unknown"
)

// Message returns the human-readable message for the failure bucket.
func (r Reason) Message() string {
	switch r {
	case ReasonMissingCredential:
		return "The extraction service API key is not configured."
	case ReasonPermissionDenied:
		return "The extraction service rejected the configured credential."
	case ReasonQuotaExceeded:
		return "The extraction service quota has been exceeded. Try again later."
	case ReasonUnsupportedType:
		return "Unsupported file type. Accepted types: images, PDF and XML invoices."
	case ReasonInvalidResponse:
		return "The extraction service returned a response that could not be read."
	default:
		return "Unexpected error while extracting receipt data. Check the logs."
	}
}

// ClassifyError maps an extraction failure to its Reason bucket. Anything
// unrecognized falls into ReasonUnknown.
func ClassifyError(err error) Reason {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return ReasonMissingCredential
	case errors.Is(err, ErrUnsupportedType):
		return ReasonUnsupportedType
	case errors.Is(err, ErrInvalidResponse):
		return ReasonInvalidResponse
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return ReasonPermissionDenied
		case 429:
			return ReasonQuotaExceeded
		}
	}

	// The genai client surfaces gRPC transport errors as plain wrapped
	// strings, so fall back to matching the status names.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key not valid") || strings.Contains(msg, "api_key_invalid"):
		return ReasonPermissionDenied
	case strings.Contains(msg, "permissiondenied") || strings.Contains(msg, "permission denied"):
		return ReasonPermissionDenied
	case strings.Contains(msg, "resourceexhausted") || strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "quota"):
		return ReasonQuotaExceeded
	}

	return ReasonUnknown
}
