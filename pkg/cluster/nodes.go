package cluster

import (
	"context"
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"

	"github.com/futuretea/kubernetics-mcp-server/pkg/output"
)

// TopNodes lists current CPU and memory usage per node from metrics.k8s.io.
func (q *Querier) TopNodes(ctx context.Context) ([]string, error) {
	metrics, err := q.metrics()
	if err != nil {
		return nil, q.fail(OpTopNodes, "Error fetching node metrics", err)
	}

	nodeMetrics, err := metrics.MetricsV1beta1().NodeMetricses().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, q.fail(OpTopNodes, "Error fetching node metrics", err)
	}

	lines := make([]string, 0, len(nodeMetrics.Items))
	for i := range nodeMetrics.Items {
		lines = append(lines, FormatNodeUsage(&nodeMetrics.Items[i]))
	}
	return lines, nil
}

// FormatNodeUsage renders one node metrics line.
func FormatNodeUsage(m *metricsv1beta1.NodeMetrics) string {
	cpu := m.Usage[corev1.ResourceCPU]
	memory := m.Usage[corev1.ResourceMemory]
	return fmt.Sprintf("Node: %s, CPU: %s, Memory: %s", m.Name, cpu.String(), memory.String())
}

// NodeDetails lists nodes with their taints and labels. With raw set, the
// whole list response is returned as one JSON line instead.
func (q *Querier) NodeDetails(ctx context.Context, raw bool) ([]string, error) {
	typed, err := q.typed()
	if err != nil {
		return nil, q.fail(OpNodeDetails, "Error fetching node details", err)
	}

	nodes, err := typed.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, q.fail(OpNodeDetails, "Error fetching node details", err)
	}

	if raw {
		nodes.TypeMeta = metav1.TypeMeta{Kind: "NodeList", APIVersion: "v1"}
		dump, err := output.NewFormatter().FormatCompactJSON(nodes)
		if err != nil {
			return nil, q.fail(OpNodeDetails, "Error fetching node details", err)
		}
		return []string{dump}, nil
	}

	lines := make([]string, 0, len(nodes.Items))
	for i := range nodes.Items {
		line, err := FormatNodeDetails(&nodes.Items[i])
		if err != nil {
			return nil, q.fail(OpNodeDetails, "Error fetching node details", err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// FormatNodeDetails renders one node as "Node: <name>, Taints: <json>, Labels: <json>".
func FormatNodeDetails(node *corev1.Node) (string, error) {
	taints := node.Spec.Taints
	if taints == nil {
		taints = []corev1.Taint{}
	}
	labels := node.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	taintsJSON, err := json.Marshal(taints)
	if err != nil {
		return "", fmt.Errorf("failed to encode taints of node %s: %w", node.Name, err)
	}
	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("failed to encode labels of node %s: %w", node.Name, err)
	}
	return fmt.Sprintf("Node: %s, Taints: %s, Labels: %s", node.Name, taintsJSON, labelsJSON), nil
}
