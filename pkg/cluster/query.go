// Package cluster translates tool intents into single Kubernetes API calls
// and renders the responses as display lines.
//
// Every query performs exactly one request. Failures are logged and returned
// as *Error carrying the fixed message shown to tool callers.
package cluster

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/futuretea/kubernetics-mcp-server/pkg/client/kube"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/logging"
)

// Query operation names, used in logs and error values.
const (
	OpListAllPods         = "list-all-pods"
	OpListNamespaces      = "list-namespaces"
	OpListPodsByNamespace = "list-pods-by-namespace"
	OpDescribePod         = "describe-pod"
	OpListEvents          = "list-events"
	OpTopNodes            = "top-nodes"
	OpNodeDetails         = "node-details"
)

// Querier runs the read-only cluster queries against one shared client.
type Querier struct {
	client    *kube.Client
	clientErr error
}

// NewQuerier creates a querier over client. A non-nil clientErr records why
// the client could not be built; every query then fails with ErrNoClient.
func NewQuerier(client *kube.Client, clientErr error) *Querier {
	return &Querier{client: client, clientErr: clientErr}
}

// Available reports whether the querier holds a usable client.
func (q *Querier) Available() bool {
	return q != nil && q.clientErr == nil && q.client != nil && q.client.Typed != nil
}

func (q *Querier) typed() (kubernetes.Interface, error) {
	if q.clientErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoClient, q.clientErr)
	}
	if q.client == nil || q.client.Typed == nil {
		return nil, ErrNoClient
	}
	return q.client.Typed, nil
}

func (q *Querier) metrics() (metricsclient.Interface, error) {
	if q.clientErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoClient, q.clientErr)
	}
	if q.client == nil || q.client.Metrics == nil {
		return nil, ErrNoClient
	}
	return q.client.Metrics, nil
}

// fail logs err and wraps it with the fixed caller-facing message.
func (q *Querier) fail(op, message string, err error) error {
	qe := &Error{Op: op, Message: message, Kind: classify(err), Err: err}
	logging.Err(err, message, map[string]interface{}{
		"op":   op,
		"kind": string(qe.Kind),
	})
	return qe
}
