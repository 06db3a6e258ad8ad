package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/christopherhurt/AmbiguousGame/mapgen"
)

const namespace = "ambiguous"

// Collector holds the server's Prometheus metrics in a private registry
type Collector struct {
	registry *prometheus.Registry

	ConnectedClients prometheus.Gauge
	MessagesReceived *prometheus.CounterVec
	ProtocolErrors   *prometheus.CounterVec
	DroppedSends     prometheus.Counter
	TileEdits        prometheus.Counter

	landTiles      prometheus.Gauge
	islands        prometheus.Gauge
	objects        prometheus.Gauge
	generationTime prometheus.Gauge
}

// New creates and registers all collectors
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      "Open websocket connections.",
		}),
		MessagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Decoded client messages by type.",
		}, []string{"type"}),
		ProtocolErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "Client messages dropped, by reason.",
		}, []string{"reason"}),
		DroppedSends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_sends_total",
			Help:      "Outbound messages skipped because a client buffer was full or closed.",
		}),
		TileEdits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tile_edits_total",
			Help:      "Tile edits applied to the canonical grid.",
		}),
		landTiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "world_land_tiles",
			Help:      "Land tiles in the generated world.",
		}),
		islands: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "world_islands",
			Help:      "Islands in the generated world.",
		}),
		objects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "world_objects",
			Help:      "Decorative objects placed at generation.",
		}),
		generationTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "world_generation_seconds",
			Help:      "Wall time of the generation pipeline.",
		}),
	}

	c.registry.MustRegister(
		c.ConnectedClients, c.MessagesReceived, c.ProtocolErrors, c.DroppedSends, c.TileEdits,
		c.landTiles, c.islands, c.objects, c.generationTime,
	)
	return c
}

// ObserveWorld records generation statistics
func (c *Collector) ObserveWorld(stats mapgen.Stats) {
	c.landTiles.Set(float64(stats.LandTiles))
	c.islands.Set(float64(stats.Islands))
	c.objects.Set(float64(stats.Objects))
	c.generationTime.Set(stats.Elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
