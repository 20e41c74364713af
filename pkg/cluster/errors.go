package cluster

import (
	"errors"
	"fmt"
	"net"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Kind classifies why a cluster call failed.
type Kind string

const (
	KindUnavailable  Kind = "unavailable"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not-found"
	KindInvalid      Kind = "invalid"
	KindUnknown      Kind = "unknown"
)

var (
	// ErrNoClient is returned when the clients could not be built at start-up.
	ErrNoClient = errors.New("kubernetes client not configured")
	// ErrEmptyNamespace is returned for namespace-scoped queries without a
	// namespace; client-go would otherwise widen the call to all namespaces.
	ErrEmptyNamespace = errors.New("namespace must not be empty")
)

// Error is the failure of a single query. Message is the fixed text shown to
// tool callers; Err keeps the cause for logs and for callers that branch on Kind.
type Error struct {
	Op      string
	Message string
	Kind    Kind
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a query error, KindUnknown for anything else.
func KindOf(err error) Kind {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindUnknown
}

// Render joins result lines into a tool response. A query error renders as
// its fixed message so callers never see the underlying cause.
func Render(lines []string, err error) string {
	if err != nil {
		var qe *Error
		if errors.As(err, &qe) {
			return qe.Message
		}
		return err.Error()
	}
	return strings.Join(lines, "\n")
}

func classify(err error) Kind {
	var netErr net.Error
	switch {
	case errors.Is(err, ErrEmptyNamespace):
		return KindInvalid
	case errors.Is(err, ErrNoClient):
		return KindUnavailable
	case apierrors.IsNotFound(err):
		return KindNotFound
	case apierrors.IsUnauthorized(err):
		return KindUnauthorized
	case apierrors.IsForbidden(err):
		return KindForbidden
	case apierrors.IsBadRequest(err), apierrors.IsInvalid(err):
		return KindInvalid
	case apierrors.IsServiceUnavailable(err), apierrors.IsServerTimeout(err),
		apierrors.IsTimeout(err), apierrors.IsTooManyRequests(err), apierrors.IsInternalError(err):
		return KindUnavailable
	case errors.As(err, &netErr):
		return KindUnavailable
	}
	return KindUnknown
}
