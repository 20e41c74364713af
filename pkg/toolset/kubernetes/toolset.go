// Package kubernetes provides the read-only Kubernetes introspection toolset.
package kubernetes

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/futuretea/kubernetics-mcp-server/pkg/toolset"
	"github.com/futuretea/kubernetics-mcp-server/pkg/toolset/paramutil"
)

// Toolset implements the Kubernetes introspection toolset
type Toolset struct{}

var _ toolset.Toolset = (*Toolset)(nil)

// rawOutputProperty is the shared schema for the rawOutput parameter of the
// events and node details tools.
var rawOutputProperty = map[string]any{
	"type":        "boolean",
	"description": "Return the unprocessed API list response as JSON instead of one formatted line per item",
	"default":     false,
}

// GetName returns the name of the toolset
func (t *Toolset) GetName() string {
	return "kubernetes"
}

// GetDescription returns the description of the toolset
func (t *Toolset) GetDescription() string {
	return "Read-only Kubernetes introspection: pods, namespaces, events, node metrics and node metadata"
}

// GetTools returns the tools provided by this toolset
func (t *Toolset) GetTools(client interface{}) []toolset.ServerTool {
	readOnly := toolset.ToolAnnotations{
		ReadOnlyHint:       paramutil.BoolPtr(true),
		DestructiveHint:    paramutil.BoolPtr(false),
		RequiresKubernetes: paramutil.BoolPtr(true),
	}

	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        ToolListNamespaces,
				Description: "get kubernetics namespaces",
				InputSchema: mcp.ToolInputSchema{
					Type:       "object",
					Properties: map[string]any{},
				},
			},
			Annotations: readOnly,
			Handler:     listNamespacesHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        ToolListPodsByNamespace,
				Description: "get pods details from kubernetics cluster by namespace",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{paramutil.ParamNamespace},
					Properties: map[string]any{
						paramutil.ParamNamespace: map[string]any{
							"type":        "string",
							"description": "Name of the namespace in kubernetics cluster",
						},
					},
				},
			},
			Annotations: readOnly,
			Handler:     listPodsByNamespaceHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        ToolListAllPods,
				Description: "get all pods details from kubernetics cluster",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						paramutil.ParamClusterName: map[string]any{
							"type":        "string",
							"description": "Name of the kubernetics cluster (informational, the configured cluster is always used)",
						},
					},
				},
			},
			Annotations: readOnly,
			Handler:     listAllPodsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        ToolDescribePod,
				Description: "Describe pod details by name and namespace",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{paramutil.ParamName, paramutil.ParamNamespace},
					Properties: map[string]any{
						paramutil.ParamName: map[string]any{
							"type":        "string",
							"description": "Pod name",
						},
						paramutil.ParamNamespace: map[string]any{
							"type":        "string",
							"description": "Namespace of the pod",
						},
						paramutil.ParamFormat: map[string]any{
							"type":        "string",
							"description": "Output format: json or yaml",
							"enum":        []string{paramutil.FormatJSON, paramutil.FormatYAML},
							"default":     paramutil.FormatJSON,
						},
					},
				},
			},
			Annotations: readOnly,
			Handler:     describePodHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        ToolListEvents,
				Description: "Get sorted events in a Kubernetes namespace",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{paramutil.ParamNamespace},
					Properties: map[string]any{
						paramutil.ParamNamespace: map[string]any{
							"type":        "string",
							"description": "Namespace to fetch events",
						},
						paramutil.ParamRawOutput: rawOutputProperty,
					},
				},
			},
			Annotations: readOnly,
			Handler:     listEventsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        ToolTopNodes,
				Description: "Get CPU and memory usage for nodes",
				InputSchema: mcp.ToolInputSchema{
					Type:       "object",
					Properties: map[string]any{},
				},
			},
			Annotations: readOnly,
			Handler:     topNodesHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        ToolNodeDetails,
				Description: "Get Kubernetes node taints and labels",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						paramutil.ParamRawOutput: rawOutputProperty,
					},
				},
			},
			Annotations: readOnly,
			Handler:     nodeDetailsHandler,
		},
	}
}
