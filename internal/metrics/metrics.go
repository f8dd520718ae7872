package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/relay"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_contact_submissions_total",
		Help: "Total number of contact form submissions by final status and error reason",
	}, []string{"status", "reason"})
	ValidationBlockedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "folio_contact_validation_blocked_total",
		Help: "Total number of submissions blocked by form validation",
	})
	FormsOpen = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "folio_contact_forms_open",
		Help: "Number of live contact form instances",
	})
	FormsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "folio_contact_forms_expired_total",
		Help: "Total number of idle contact forms closed by the cleanup task",
	})
	RelayRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_relay_request_duration_seconds",
		Help:    "Latency of email relay send calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"code"})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ValidationBlockedTotal,
		FormsOpen,
		FormsExpired,
		RelayRequestDuration,
	)
}

// ObserveStatus counts terminal submission outcomes. Idle and Sending are ignored.
func ObserveStatus(s contact.Status) {
	switch s.Kind {
	case contact.StatusSuccess:
		SubmissionsTotal.WithLabelValues(string(s.Kind), "").Inc()
	case contact.StatusError:
		SubmissionsTotal.WithLabelValues(string(s.Kind), string(s.Reason)).Inc()
	}
}

// InstrumentSender records relay latency labelled by the relay's status code
func InstrumentSender(next relay.Sender) relay.Sender {
	return relay.SenderFunc(func(ctx context.Context, payload relay.Payload) (*relay.Response, error) {
		start := time.Now()
		resp, err := next.Send(ctx, payload)
		RelayRequestDuration.WithLabelValues(relayCode(resp, err)).Observe(time.Since(start).Seconds())
		return resp, err
	})
}

func relayCode(resp *relay.Response, err error) string {
	if resp != nil {
		return strconv.Itoa(resp.Status)
	}
	var relayErr *relay.Error
	if errors.As(err, &relayErr) && relayErr.Status != 0 {
		return strconv.Itoa(relayErr.Status)
	}
	return "error"
}
