package kubernetes

// Tool names exposed over MCP
const (
	ToolListNamespaces      = "get-kubernetics-namespaces"
	ToolListPodsByNamespace = "get-kubernetics-pods-detail-by-namespace"
	ToolListAllPods         = "get-kubernetics-all-pods-detail"
	ToolDescribePod         = "describe-kubernetics-pod"
	ToolListEvents          = "get-kubernetics-events"
	ToolTopNodes            = "get-kubernetics-top-nodes"
	ToolNodeDetails         = "get-kubernetics-node-details"
)
