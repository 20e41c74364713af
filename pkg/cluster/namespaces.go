package cluster

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ListNamespaces lists every namespace, one line each.
func (q *Querier) ListNamespaces(ctx context.Context) ([]string, error) {
	typed, err := q.typed()
	if err != nil {
		return nil, q.fail(OpListNamespaces, "Error fetching namespaces", err)
	}

	namespaces, err := typed.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, q.fail(OpListNamespaces, "Error fetching namespaces", err)
	}

	lines := make([]string, 0, len(namespaces.Items))
	for _, ns := range namespaces.Items {
		lines = append(lines, fmt.Sprintf("Namespace: %s", ns.Name))
	}
	return lines, nil
}
