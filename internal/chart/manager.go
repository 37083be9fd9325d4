package chart

import (
	"log"

	"github.com/csheth/commentpulse/internal/sentiment"
)

// Manager keeps at most one chart alive. Every Present destroys the previous
// instance before the replacement is constructed.
type Manager struct {
	factory Factory
	live    Chart
	created int
}

// NewManager returns a manager that builds charts with factory, or with pie
// charts when factory is nil.
func NewManager(factory Factory) *Manager {
	if factory == nil {
		factory = FactoryFunc(func(slices []Slice) Chart { return NewPie(slices) })
	}
	return &Manager{factory: factory}
}

// Present replaces the live chart with one built from result.
func (m *Manager) Present(result sentiment.Result) {
	m.release()
	m.live = m.factory.New([]Slice{
		{Label: LabelPositive, Value: result.Positive, Color: SuccessColor},
		{Label: LabelNegative, Value: result.Negative, Color: DangerColor},
	})
	m.created++
	log.Printf("[chart] presented chart #%d (positive=%d negative=%d)", m.created, result.Positive, result.Negative)
}

// Clear destroys the live chart, if any.
func (m *Manager) Clear() {
	if m.live == nil {
		return
	}
	m.release()
	log.Printf("[chart] cleared chart #%d", m.created)
}

// Live returns the current chart or nil.
func (m *Manager) Live() Chart {
	return m.live
}

func (m *Manager) release() {
	if m.live == nil {
		return
	}
	m.live.Destroy()
	m.live = nil
}
