package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeflow/ribd/pkg/northbound"
)

type recordingOwner struct {
	applied []northbound.Delta
}

func (o *recordingOwner) Validate(d northbound.Delta) error { return nil }
func (o *recordingOwner) Apply(d northbound.Delta) error {
	o.applied = append(o.applied, d)
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiffDetectsCreateAndModify(t *testing.T) {
	prev := map[string]any{"/a": 1, "/b": 2}
	next := map[string]any{"/a": 1, "/b": 3, "/c": 4}

	deltas := diff(prev, next)
	require.Len(t, deltas, 2)
	assert.Equal(t, "/b", deltas[0].Path)
	assert.Equal(t, northbound.OpModify, deltas[0].Op)
	assert.Equal(t, "/c", deltas[1].Path)
	assert.Equal(t, northbound.OpCreate, deltas[1].Op)
}

func TestDiffDetectsDeletedPath(t *testing.T) {
	prev := map[string]any{"/a": 1, "/b": 2}
	next := map[string]any{"/a": 1}

	deltas := diff(prev, next)
	require.Len(t, deltas, 1)
	assert.Equal(t, "/b", deltas[0].Path)
	assert.Equal(t, northbound.OpDelete, deltas[0].Op)
}

func TestFlattenNestedMapsAndSlices(t *testing.T) {
	out := make(map[string]any)
	flatten("", map[string]any{
		"protocol": map[string]any{
			"ospf": map[string]any{
				"router-id": "1.1.1.1",
				"areas":     []any{"0.0.0.0", "0.0.0.1"},
			},
		},
	}, out)

	assert.Equal(t, "1.1.1.1", out["/protocol/ospf/router-id"])
	assert.Equal(t, "0.0.0.0", out["/protocol/ospf/areas/0"])
	assert.Equal(t, "0.0.0.1", out["/protocol/ospf/areas/1"])
}

func TestWatcherAppliesFileChangesAsTransaction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ribd.yaml")
	writeFile(t, path, "protocol:\n  router-id: \"1.1.1.1\"\n")

	reg := northbound.NewRegistry()
	owner := &recordingOwner{}
	reg.Register("/protocol", owner, owner)

	w, err := NewWatcher(path, reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	writeFile(t, path, "protocol:\n  router-id: \"2.2.2.2\"\n")

	require.Eventually(t, func() bool {
		return len(owner.applied) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "/protocol/router-id", owner.applied[0].Path)
	assert.Equal(t, northbound.OpModify, owner.applied[0].Op)
}
