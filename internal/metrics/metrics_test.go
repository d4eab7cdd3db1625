package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	r := New()
	r.Observe("warp", "obj", 120, 40, 3*time.Millisecond)
	r.Observe("warp", "obj", 30, 10, time.Millisecond)
	r.Observe("scale", "stl", 9, 3, time.Microsecond)

	assert.Equal(t, 150.0, testutil.ToFloat64(r.vertices.WithLabelValues("warp", "obj")))
	assert.Equal(t, 50.0, testutil.ToFloat64(r.faces.WithLabelValues("warp", "obj")))
	assert.Equal(t, 9.0, testutil.ToFloat64(r.vertices.WithLabelValues("scale", "stl")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestFail(t *testing.T) {
	r := New()
	r.Fail("rotate", "parameter")
	r.Fail("rotate", "parameter")

	expected := `
# HELP meshpipe_failures_total Runs that ended in an error, by kind.
# TYPE meshpipe_failures_total counter
meshpipe_failures_total{kind="parameter",op="rotate"} 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "meshpipe_failures_total"))
}

func TestWriteFile(t *testing.T) {
	r := New()
	r.Observe("translate", "ply", 8, 6, time.Millisecond)

	path := filepath.Join(t.TempDir(), "meshpipe.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `meshpipe_vertices_transformed_total{format="ply",op="translate"} 8`)
	assert.Contains(t, string(data), "meshpipe_transform_duration_seconds_count{op=\"translate\"} 1")
}
