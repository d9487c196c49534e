// Package metrics exposes Prometheus counters for account and messaging events.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// Collector implements usecasecontract.IMetrics on top of Prometheus.
type Collector struct {
	registrations       *prometheus.CounterVec
	logins              *prometheus.CounterVec
	approvals           prometheus.Counter
	messagesPosted      prometheus.Counter
	assetDeleteFailures prometheus.Counter
	httpRequests        *prometheus.CounterVec
	httpLatency         *prometheus.HistogramVec
}

var _ usecasecontract.IMetrics = (*Collector)(nil)

// NewCollector registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "convene_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "convene_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		approvals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "convene_approvals_total",
			Help: "Accounts approved by an administrator.",
		}),
		messagesPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "convene_messages_posted_total",
			Help: "Messages appended to conversations.",
		}),
		assetDeleteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "convene_asset_delete_failures_total",
			Help: "Old profile pictures that could not be deleted from the asset store.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "convene_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "convene_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.registrations,
		c.logins,
		c.approvals,
		c.messagesPosted,
		c.assetDeleteFailures,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordApproval() {
	c.approvals.Inc()
}

func (c *Collector) RecordMessagePosted() {
	c.messagesPosted.Inc()
}

func (c *Collector) RecordAssetDeleteFailure() {
	c.assetDeleteFailures.Inc()
}

// RecordHTTPRequest observes one served request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
