package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind buckets a remote failure by how the caller should react.
type Kind int

const (
	// KindUnknown covers failures that match neither keyword set.
	// They are never retried but are counted as errors.
	KindUnknown Kind = iota
	// KindTransient covers transport-level failures worth retrying.
	KindTransient
	// KindSemantic covers rejections of the payload itself; retrying
	// can never succeed.
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Error is the tagged failure type constructed once at the client boundary.
// Call sites consult the Kind instead of re-parsing message text.
type Error struct {
	Kind    Kind
	Op      string // e.g. "GET ipam/vrfs"
	Status  int    // HTTP status, 0 if the request never completed
	Message string // remote response body or transport error text
	Err     error  // underlying error, if any
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", e.Op, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// transientKeywords mark network-level failures in free-text messages.
var transientKeywords = []string{
	"connection reset",
	"connection refused",
	"timeout",
	"timed out",
	"unreachable",
	"temporary failure",
	"bad gateway",
	"service unavailable",
	"gateway timeout",
	"too many requests",
	"eof",
}

// semanticKeywords mark payload rejections the target will never accept.
var semanticKeywords = []string{
	"already exists",
	"duplicate",
	"unique constraint",
	"invalid",
	"required",
	"must be",
	"not allowed",
	"bad request",
}

// duplicateKeywords identify the subset of semantic failures that mean the
// record is already present; these resolve to a skip, not an error.
var duplicateKeywords = []string{
	"already exists",
	"duplicate",
	"unique constraint",
}

// Classify wraps a remote failure in a tagged Error. status is the HTTP
// status code if a response was received, 0 otherwise. message should carry
// the response body or transport error text.
func Classify(op string, status int, message string, err error) *Error {
	return &Error{
		Kind:    classifyKind(status, message, err),
		Op:      op,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

func classifyKind(status int, message string, err error) Kind {
	// A completed response classifies by status first.
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusBadGateway, http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return KindTransient
	case http.StatusBadRequest, http.StatusConflict,
		http.StatusUnprocessableEntity:
		return KindSemantic
	}

	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return KindTransient
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return KindTransient
		}
	}

	lower := strings.ToLower(message)
	for _, kw := range transientKeywords {
		if strings.Contains(lower, kw) {
			return KindTransient
		}
	}
	for _, kw := range semanticKeywords {
		if strings.Contains(lower, kw) {
			return KindSemantic
		}
	}
	return KindUnknown
}

// IsTransient reports whether err is a remote failure worth retrying.
func IsTransient(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindTransient
}

// IsSemantic reports whether err is a remote rejection that retrying
// cannot fix.
func IsSemantic(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindSemantic
}

// IsDuplicate reports whether err means the record already exists in the
// target. Duplicate failures resolve to "skipped" rather than "error".
func IsDuplicate(err error) bool {
	var re *Error
	if !errors.As(err, &re) {
		return false
	}
	if re.Kind != KindSemantic {
		return false
	}
	lower := strings.ToLower(re.Message)
	for _, kw := range duplicateKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
