package node

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8sfake "k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/NVIDIA/bcm-node-labeler/pkg/errors"
)

func newFakeNode(name string, existing map[string]string) *v1.Node {
	return &v1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: existing,
		},
	}
}

func getNodeLabels(t *testing.T, c *k8sfake.Clientset, name string) map[string]string {
	t.Helper()
	n, err := c.CoreV1().Nodes().Get(context.TODO(), name, metav1.GetOptions{})
	require.NoError(t, err)
	return n.Labels
}

func TestApplyPrefixesAndPatches(t *testing.T) {
	//nolint:staticcheck // SA1019: NewSimpleClientset is adequate for basic test needs
	fakeClient := k8sfake.NewSimpleClientset(newFakeNode("node-1", map[string]string{
		"kubernetes.io/arch": "amd64",
	}))

	a := &Applier{Client: fakeClient, NodeName: "node-1", Prefix: "bcm.nvidia.com"}

	err := a.Apply(context.TODO(), map[string]string{
		"node-name":   "node-1",
		"bcm-cluster": "cluster-a",
	})
	require.NoError(t, err)

	got := getNodeLabels(t, fakeClient, "node-1")
	assert.Equal(t, "node-1", got["bcm.nvidia.com/node-name"])
	assert.Equal(t, "cluster-a", got["bcm.nvidia.com/bcm-cluster"])

	// Merge-patch must leave unrelated labels untouched.
	assert.Equal(t, "amd64", got["kubernetes.io/arch"])
}

func TestApplyIsIdempotent(t *testing.T) {
	//nolint:staticcheck // SA1019: NewSimpleClientset is adequate for basic test needs
	fakeClient := k8sfake.NewSimpleClientset(newFakeNode("node-1", nil))

	a := &Applier{Client: fakeClient, NodeName: "node-1", Prefix: "bcm.nvidia.com"}
	labelSet := map[string]string{"node-name": "node-1"}

	require.NoError(t, a.Apply(context.TODO(), labelSet))
	first := getNodeLabels(t, fakeClient, "node-1")

	require.NoError(t, a.Apply(context.TODO(), labelSet))
	second := getNodeLabels(t, fakeClient, "node-1")

	assert.Equal(t, first, second)
}

func TestApplySkipsInvalidKeys(t *testing.T) {
	//nolint:staticcheck // SA1019: NewSimpleClientset is adequate for basic test needs
	fakeClient := k8sfake.NewSimpleClientset(newFakeNode("node-1", nil))

	a := &Applier{Client: fakeClient, NodeName: "node-1", Prefix: "bcm.nvidia.com"}

	err := a.Apply(context.TODO(), map[string]string{
		"bad key":   "x",
		"node-name": "node-1",
	})
	require.NoError(t, err)

	got := getNodeLabels(t, fakeClient, "node-1")
	assert.Equal(t, "node-1", got["bcm.nvidia.com/node-name"])
	assert.Len(t, got, 1)
}

func TestApplyEmptySetIsNoOp(t *testing.T) {
	//nolint:staticcheck // SA1019: NewSimpleClientset is adequate for basic test needs
	fakeClient := k8sfake.NewSimpleClientset(newFakeNode("node-1", nil))

	a := &Applier{Client: fakeClient, NodeName: "node-1", Prefix: "bcm.nvidia.com"}

	require.NoError(t, a.Apply(context.TODO(), map[string]string{}))
	assert.Empty(t, fakeClient.Actions())
	assert.Empty(t, getNodeLabels(t, fakeClient, "node-1"))
}

func TestApplyReportsTypedFailure(t *testing.T) {
	//nolint:staticcheck // SA1019: NewSimpleClientset is adequate for basic test needs
	fakeClient := k8sfake.NewSimpleClientset(newFakeNode("node-1", nil))
	fakeClient.PrependReactor("patch", "nodes",
		func(action k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, fmt.Errorf("the server is currently unable to handle the request")
		})

	a := &Applier{Client: fakeClient, NodeName: "node-1", Prefix: "bcm.nvidia.com"}

	err := a.Apply(context.TODO(), map[string]string{"node-name": "node-1"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeApplyFailure, errors.CodeOf(err))
}

func TestApplyMissingConfiguration(t *testing.T) {
	a := &Applier{}
	err := a.Apply(context.TODO(), map[string]string{"node-name": "node-1"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeApplyFailure, errors.CodeOf(err))
}

func TestResolveNodeName(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		t.Setenv("NODE_NAME", "from-env")

		name, err := ResolveNodeName("explicit")
		require.NoError(t, err)
		assert.Equal(t, "explicit", name)
	})

	t.Run("NODE_NAME preferred", func(t *testing.T) {
		t.Setenv("NODE_NAME", "downward-api-name")
		t.Setenv("KUBERNETES_NODE_NAME", "alternative")

		name, err := ResolveNodeName("")
		require.NoError(t, err)
		assert.Equal(t, "downward-api-name", name)
	})

	t.Run("KUBERNETES_NODE_NAME fallback", func(t *testing.T) {
		t.Setenv("NODE_NAME", "")
		t.Setenv("KUBERNETES_NODE_NAME", "alternative")

		name, err := ResolveNodeName("")
		require.NoError(t, err)
		assert.Equal(t, "alternative", name)
	})

	t.Run("hostname last resort", func(t *testing.T) {
		t.Setenv("NODE_NAME", "")
		t.Setenv("KUBERNETES_NODE_NAME", "")

		name, err := ResolveNodeName("")
		require.NoError(t, err)
		assert.NotEmpty(t, name)
	})
}
