package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetrics counts webhook updates by command label and outcome status.
type CommandMetrics struct {
	commands *prometheus.CounterVec
	replies  *prometheus.CounterVec
}

// NewCommandMetrics registers the webhook counters with reg.
// A nil reg uses prometheus.DefaultRegisterer, which /-/metrics serves.
func NewCommandMetrics(reg prometheus.Registerer) (*CommandMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	commands, err := registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: "quotebot",
		Subsystem: "webhook",
		Name:      "commands_total",
		Help:      "Webhook updates handled, by command and outcome status.",
	}, "command", "status")
	if err != nil {
		return nil, err
	}

	replies, err := registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: "quotebot",
		Subsystem: "telegram",
		Name:      "replies_total",
		Help:      "Outbound sendMessage calls, by result.",
	}, "result")
	if err != nil {
		return nil, err
	}

	return &CommandMetrics{commands: commands, replies: replies}, nil
}

// registerCounterVec registers a counter, reusing an identical one that is
// already registered.
func registerCounterVec(reg prometheus.Registerer, opts prometheus.CounterOpts, labels ...string) (*prometheus.CounterVec, error) {
	vec := prometheus.NewCounterVec(opts, labels)

	if err := reg.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}

		return nil, err
	}

	return vec, nil
}

// RecordCommand increments the counter for one handled update.
func (m *CommandMetrics) RecordCommand(command, status string) {
	if m == nil {
		return
	}

	m.commands.WithLabelValues(command, status).Inc()
}

// RecordReply increments the outbound reply counter; result is "ok" or "error".
func (m *CommandMetrics) RecordReply(ok bool) {
	if m == nil {
		return
	}

	result := "ok"
	if !ok {
		result = "error"
	}

	m.replies.WithLabelValues(result).Inc()
}
