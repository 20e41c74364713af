package cluster

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/futuretea/kubernetics-mcp-server/pkg/output"
)

// FormatPod renders the one-line pod summary shared by every pod listing.
func FormatPod(pod *corev1.Pod) string {
	return fmt.Sprintf("Namespace: %s, Pod: %s, Status: %s", pod.Namespace, pod.Name, pod.Status.Phase)
}

func formatPods(pods []corev1.Pod) []string {
	lines := make([]string, 0, len(pods))
	for i := range pods {
		lines = append(lines, FormatPod(&pods[i]))
	}
	return lines
}

// ListAllPods lists pods across all namespaces.
func (q *Querier) ListAllPods(ctx context.Context) ([]string, error) {
	typed, err := q.typed()
	if err != nil {
		return nil, q.fail(OpListAllPods, "Error fetching pods", err)
	}

	pods, err := typed.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, q.fail(OpListAllPods, "Error fetching pods", err)
	}
	return formatPods(pods.Items), nil
}

// ListPodsByNamespace lists the pods of one namespace.
func (q *Querier) ListPodsByNamespace(ctx context.Context, namespace string) ([]string, error) {
	message := fmt.Sprintf("Error fetching pods for namespace %s", namespace)

	typed, err := q.typed()
	if err != nil {
		return nil, q.fail(OpListPodsByNamespace, message, err)
	}
	if namespace == "" {
		return nil, q.fail(OpListPodsByNamespace, message, ErrEmptyNamespace)
	}

	pods, err := typed.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, q.fail(OpListPodsByNamespace, message, err)
	}
	return formatPods(pods.Items), nil
}

// DescribePod fetches one pod and renders the whole object as a JSON or YAML
// document. The result holds a single, multi-line entry.
func (q *Querier) DescribePod(ctx context.Context, name, namespace, format string) ([]string, error) {
	message := fmt.Sprintf("Error describing pod %s", name)

	typed, err := q.typed()
	if err != nil {
		return nil, q.fail(OpDescribePod, message, err)
	}
	if namespace == "" {
		return nil, q.fail(OpDescribePod, message, ErrEmptyNamespace)
	}

	pod, err := typed.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, q.fail(OpDescribePod, message, fmt.Errorf("failed to get pod %s in %s: %w", name, namespace, err))
	}
	// typed clients drop the type meta on decode
	pod.TypeMeta = metav1.TypeMeta{Kind: "Pod", APIVersion: "v1"}

	doc, err := output.NewFormatter().Format(pod, format)
	if err != nil {
		return nil, q.fail(OpDescribePod, message, err)
	}
	return []string{doc}, nil
}
