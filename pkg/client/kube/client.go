// Package kube builds the Kubernetes clients shared by every tool call.
package kube

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"
)

// Client bundles the typed and metrics clientsets built from one REST config.
type Client struct {
	RestConfig *rest.Config
	Typed      kubernetes.Interface
	Metrics    metricsclient.Interface
}

// Options selects the kubeconfig to load. Zero values use the ambient
// configuration: $KUBECONFIG, ~/.kube/config, then the in-cluster service account.
type Options struct {
	Kubeconfig string
	Context    string
}

// NewClient resolves the REST config and creates the clientsets.
func NewClient(opts Options) (*Client, error) {
	restConfig, err := RestConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubernetes configuration: %w", err)
	}
	return NewClientForConfig(restConfig)
}

// NewClientForConfig creates the clientsets for an already resolved REST config.
func NewClientForConfig(restConfig *rest.Config) (*Client, error) {
	typed, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	metrics, err := metricsclient.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}

	return &Client{
		RestConfig: restConfig,
		Typed:      typed,
		Metrics:    metrics,
	}, nil
}

// NewClientFromInterfaces wraps existing clientsets, mainly for tests.
func NewClientFromInterfaces(typed kubernetes.Interface, metrics metricsclient.Interface) *Client {
	return &Client{Typed: typed, Metrics: metrics}
}

// RestConfig resolves the REST config from the default loading chain. The
// deferred loader falls back to the in-cluster config when no kubeconfig is found.
func RestConfig(opts Options) (*rest.Config, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if explicit := expandPath(opts.Kubeconfig); explicit != "" {
		loadingRules.ExplicitPath = explicit
	}

	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		&clientcmd.ConfigOverrides{CurrentContext: opts.Context},
	).ClientConfig()
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~") {
		home := homedir.HomeDir()
		if home == "" {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return os.ExpandEnv(path)
}
