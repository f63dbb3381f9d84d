// Package metrics exposes game counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives game events from the service layer.
type Recorder interface {
	GameCreated()
	MoveApplied()
	MoveRejected(reason string)
	Jumped()
	Reset()
	Finished(result string)
}

// Metrics is the Prometheus-backed Recorder.
type Metrics struct {
	created  prometheus.Counter
	moves    *prometheus.CounterVec
	jumps    prometheus.Counter
	resets   prometheus.Counter
	finished *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_games_created_total",
			Help: "Total number of games created",
		}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_moves_total",
			Help: "Moves by result (applied or the rejection reason)",
		}, []string{"result"}),
		jumps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_history_jumps_total",
			Help: "Total number of jumps through the move history",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tictactoe_resets_total",
			Help: "Total number of game resets",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_games_finished_total",
			Help: "Games reaching a decided board, by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.created, m.moves, m.jumps, m.resets, m.finished)
	return m
}

func (m *Metrics) GameCreated()               { m.created.Inc() }
func (m *Metrics) MoveApplied()               { m.moves.WithLabelValues("applied").Inc() }
func (m *Metrics) MoveRejected(reason string) { m.moves.WithLabelValues(reason).Inc() }
func (m *Metrics) Jumped()                    { m.jumps.Inc() }
func (m *Metrics) Reset()                     { m.resets.Inc() }
func (m *Metrics) Finished(result string)     { m.finished.WithLabelValues(result).Inc() }

// Nop discards every event.
type Nop struct{}

func (Nop) GameCreated()        {}
func (Nop) MoveApplied()        {}
func (Nop) MoveRejected(string) {}
func (Nop) Jumped()             {}
func (Nop) Reset()              {}
func (Nop) Finished(string)     {}
