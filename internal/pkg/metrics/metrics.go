// Package metrics exposes Prometheus collectors for the query engine.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geoquery-service/internal/domain"
)

const namespace = "geoquery"

// Metrics holds every collector registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	routes         *prometheus.CounterVec
	routeExplored  prometheus.Histogram
	routeDuration  prometheus.Histogram
	routeCacheHits prometheus.Counter
	autocomplete   *prometheus.CounterVec
	popularityHits *prometheus.CounterVec
	streamEvents   *prometheus.CounterVec
	mapSize        *prometheus.GaugeVec
}

// New creates the collectors on a fresh registry together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_total",
			Help:      "Route searches by outcome",
		}, []string{"outcome"}),
		routeExplored: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_explored_states",
			Help:      "Vertices dequeued per route search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		routeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_search_seconds",
			Help:      "Wall-clock time spent in route search",
			Buckets:   prometheus.DefBuckets,
		}),
		routeCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_cache_hits_total",
			Help:      "Routes served from cache",
		}),
		autocomplete: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autocomplete_requests_total",
			Help:      "Autocomplete requests by whether anything matched",
		}, []string{"result"}),
		popularityHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "popularity_hits_total",
			Help:      "Location selections applied to the name index by origin",
		}, []string{"origin"}),
		streamEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_events_total",
			Help:      "Popularity stream messages by processing status",
		}, []string{"status"}),
		mapSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "map_size",
			Help:      "Size of the loaded street map",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.routes,
		m.routeExplored,
		m.routeDuration,
		m.routeCacheHits,
		m.autocomplete,
		m.popularityHits,
		m.streamEvents,
		m.mapSize,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveRoute(outcome domain.RouteOutcome, explored int, elapsed time.Duration) {
	m.routes.WithLabelValues(string(outcome)).Inc()
	m.routeExplored.Observe(float64(explored))
	m.routeDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RouteCacheHit() { m.routeCacheHits.Inc() }

func (m *Metrics) Autocomplete(matched bool) {
	result := "empty"
	if matched {
		result = "matched"
	}
	m.autocomplete.WithLabelValues(result).Inc()
}

// PopularityHit counts a selection applied locally or received from the stream.
func (m *Metrics) PopularityHit(origin string) {
	m.popularityHits.WithLabelValues(origin).Inc()
}

func (m *Metrics) StreamEvent(status string) {
	m.streamEvents.WithLabelValues(status).Inc()
}

func (m *Metrics) SetMapStats(stats domain.Statistics) {
	m.mapSize.WithLabelValues("nodes").Set(float64(stats.Nodes))
	m.mapSize.WithLabelValues("routable_nodes").Set(float64(stats.RoutableNodes))
	m.mapSize.WithLabelValues("edges").Set(float64(stats.Edges))
	m.mapSize.WithLabelValues("distinct_names").Set(float64(stats.DistinctNames))
}
