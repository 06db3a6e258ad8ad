package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christopherhurt/AmbiguousGame/mapgen"
)

func TestCollectorExposesMetrics(t *testing.T) {
	c := New()
	c.ConnectedClients.Inc()
	c.MessagesReceived.WithLabelValues("tileUpdate").Add(2)
	c.ObserveWorld(mapgen.Stats{LandTiles: 100, Islands: 3, Objects: 7, Elapsed: time.Second})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.MessagesReceived.WithLabelValues("tileUpdate")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.islands))

	srv := httptest.NewServer(c.Handler())
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "ambiguous_connected_clients 1")
	assert.Contains(t, string(body), "ambiguous_world_land_tiles 100")
}

func TestCollectorsAreIndependent(t *testing.T) {
	// Separate registries must not collide on registration
	a, b := New(), New()
	a.TileEdits.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.TileEdits))
}
