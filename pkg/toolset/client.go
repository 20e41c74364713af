package toolset

import (
	"errors"

	"github.com/futuretea/kubernetics-mcp-server/pkg/cluster"
)

// ErrQuerierNotConfigured is returned when a handler is invoked without a querier.
var ErrQuerierNotConfigured = errors.New("cluster querier not configured")

// ValidateQuerier validates and returns the cluster querier passed to handlers.
func ValidateQuerier(client interface{}) (*cluster.Querier, error) {
	querier, ok := client.(*cluster.Querier)
	if !ok || querier == nil {
		return nil, ErrQuerierNotConfigured
	}
	return querier, nil
}
