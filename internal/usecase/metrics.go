package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
)

const (
	outcomeAccepted  = "accepted"
	outcomeDenied    = "denied"
	outcomeDuplicate = "duplicate"
	outcomeConflict  = "conflict"
	outcomeInvalid   = "invalid"
	outcomeError     = "error"
)

// Metrics counts admission outcomes. A nil *Metrics records nothing.
type Metrics struct {
	submissions *prometheus.CounterVec
	denials     *prometheus.CounterVec
	autoCloses  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tournament_registration_submissions_total",
			Help: "Team registration submissions by outcome.",
		}, []string{"outcome"}),
		denials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tournament_registration_admission_denials_total",
			Help: "Submissions rejected by the admission gate, by cause.",
		}, []string{"cause"}),
		autoCloses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tournament_registration_auto_close_total",
			Help: "Times registration was closed automatically on reaching capacity, by trigger.",
		}, []string{"trigger"}),
	}
}

func (m *Metrics) observeSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeDenial(cause registration.Cause) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcomeDenied).Inc()
	m.denials.WithLabelValues(string(cause)).Inc()
}

func (m *Metrics) observeAutoClose(trigger string) {
	if m == nil {
		return
	}
	m.autoCloses.WithLabelValues(trigger).Inc()
}
