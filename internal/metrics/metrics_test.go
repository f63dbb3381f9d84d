package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.GameCreated()
	m.MoveApplied()
	m.MoveApplied()
	m.MoveRejected("occupied")
	m.Jumped()
	m.Reset()
	m.Finished("win")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.created))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.moves.WithLabelValues("applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.moves.WithLabelValues("occupied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jumps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resets))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.finished.WithLabelValues("win")))
}

func TestRegisterTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
