package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime   time.Time
	Duration    time.Duration
	Goroutines  int
	Simulations int
	Episodes    int64 // completed iterations
	Expansions  int64 // nodes added below the root
	BestVisits  int64
	BestRewards float64
}

type MetricsCollector interface {
	Start(goroutines, simulations int)
	AddEpisode()
	AddExpansion()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime   time.Time
	goroutines  int
	simulations int
	episodes    atomic.Int64
	expansions  atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(goroutines, simulations int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.simulations = simulations
}

func (m *metricsCollector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *metricsCollector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:   m.startTime,
		Duration:    time.Since(m.startTime),
		Goroutines:  m.goroutines,
		Simulations: m.simulations,
		Episodes:    m.episodes.Load(),
		Expansions:  m.expansions.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(goroutines, simulations int) {}
func (m *noMetricsCollector) AddEpisode()                       {}
func (m *noMetricsCollector) AddExpansion()                     {}
func (m *noMetricsCollector) Complete() SearchMetrics           { return SearchMetrics{} }
