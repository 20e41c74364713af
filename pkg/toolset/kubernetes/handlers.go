package kubernetes

import (
	"context"

	"github.com/futuretea/kubernetics-mcp-server/pkg/cluster"
	"github.com/futuretea/kubernetics-mcp-server/pkg/core/logging"
	"github.com/futuretea/kubernetics-mcp-server/pkg/toolset"
	"github.com/futuretea/kubernetics-mcp-server/pkg/toolset/paramutil"
)

// Handlers return an error only for malformed calls. Cluster failures come
// back as the query's fixed message inside a successful result.

// listNamespacesHandler handles the get-kubernetics-namespaces tool
func listNamespacesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	querier, err := toolset.ValidateQuerier(client)
	if err != nil {
		return "", err
	}
	return cluster.Render(querier.ListNamespaces(ctx)), nil
}

// listPodsByNamespaceHandler handles the get-kubernetics-pods-detail-by-namespace tool
func listPodsByNamespaceHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	querier, err := toolset.ValidateQuerier(client)
	if err != nil {
		return "", err
	}
	namespace, err := paramutil.ExtractString(params, paramutil.ParamNamespace)
	if err != nil {
		return "", err
	}
	return cluster.Render(querier.ListPodsByNamespace(ctx, namespace)), nil
}

// listAllPodsHandler handles the get-kubernetics-all-pods-detail tool.
// clusterName is accepted for compatibility and ignored.
func listAllPodsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	querier, err := toolset.ValidateQuerier(client)
	if err != nil {
		return "", err
	}
	if name := paramutil.ExtractOptionalString(params, paramutil.ParamClusterName); name != "" {
		logging.Debug("Ignoring clusterName %q, querying the configured cluster", name)
	}
	return cluster.Render(querier.ListAllPods(ctx)), nil
}

// describePodHandler handles the describe-kubernetics-pod tool
func describePodHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	querier, err := toolset.ValidateQuerier(client)
	if err != nil {
		return "", err
	}
	name, err := paramutil.ExtractString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}
	namespace, err := paramutil.ExtractString(params, paramutil.ParamNamespace)
	if err != nil {
		return "", err
	}
	format, err := paramutil.ExtractAndValidateFormat(params)
	if err != nil {
		return "", err
	}
	return cluster.Render(querier.DescribePod(ctx, name, namespace, format)), nil
}

// listEventsHandler handles the get-kubernetics-events tool
func listEventsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	querier, err := toolset.ValidateQuerier(client)
	if err != nil {
		return "", err
	}
	namespace, err := paramutil.ExtractString(params, paramutil.ParamNamespace)
	if err != nil {
		return "", err
	}
	raw := paramutil.ExtractBool(params, paramutil.ParamRawOutput, false)
	return cluster.Render(querier.ListEvents(ctx, namespace, raw)), nil
}

// topNodesHandler handles the get-kubernetics-top-nodes tool
func topNodesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	querier, err := toolset.ValidateQuerier(client)
	if err != nil {
		return "", err
	}
	return cluster.Render(querier.TopNodes(ctx)), nil
}

// nodeDetailsHandler handles the get-kubernetics-node-details tool
func nodeDetailsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	querier, err := toolset.ValidateQuerier(client)
	if err != nil {
		return "", err
	}
	raw := paramutil.ExtractBool(params, paramutil.ParamRawOutput, false)
	return cluster.Render(querier.NodeDetails(ctx, raw)), nil
}
